package ioutest

import "github.com/iov-one/iou"

// Decorator is a mock implementation of the iou.Decorator interface.
//
// Set CheckErr or DeliverErr to force error response for corresponding
// method. If error attributes are not set then the wrapped handler method
// is called and its result returned.
// Each method call is counted. Regardless of the method call result the
// counter is incremented.
type Decorator struct {
	checkCall int
	// CheckErr if set is returned by the Check method before calling
	// the wrapped handler.
	CheckErr error

	deliverCall int
	// DeliverErr if set is returned by the Deliver method before calling
	// the wrapped handler.
	DeliverErr error
}

var _ iou.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx iou.Context, db iou.KVStore, tx iou.Tx, next iou.Checker) (*iou.CheckResult, error) {
	d.checkCall++

	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx iou.Context, db iou.KVStore, tx iou.Tx, next iou.Deliverer) (*iou.DeliverResult, error) {
	d.deliverCall++

	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

func (d *Decorator) CheckCallCount() int {
	return d.checkCall
}

func (d *Decorator) DeliverCallCount() int {
	return d.deliverCall
}

func (d *Decorator) CallCount() int {
	return d.checkCall + d.deliverCall
}

// Decorate wraps given handler with a single decorator.
func Decorate(h iou.Handler, d iou.Decorator) iou.Handler {
	return &decoratedHandler{hn: h, dc: d}
}

type decoratedHandler struct {
	hn iou.Handler
	dc iou.Decorator
}

var _ iou.Handler = (*decoratedHandler)(nil)

func (d *decoratedHandler) Check(ctx iou.Context, db iou.KVStore, tx iou.Tx) (*iou.CheckResult, error) {
	return d.dc.Check(ctx, db, tx, d.hn)
}

func (d *decoratedHandler) Deliver(ctx iou.Context, db iou.KVStore, tx iou.Tx) (*iou.DeliverResult, error) {
	return d.dc.Deliver(ctx, db, tx, d.hn)
}
