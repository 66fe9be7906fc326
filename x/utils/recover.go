package utils

import (
	"github.com/iov-one/iou"
	"github.com/iov-one/iou/errors"
)

// Recovery converts panics raised by the wrapped handler into
// regular ErrPanic errors, so one broken operation cannot take the
// whole process down. It sits at the top of the decorator chain,
// above the savepoint, so a recovered operation is also rolled
// back.
type Recovery struct{}

var _ iou.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator.
func NewRecovery() Recovery {
	return Recovery{}
}

// Check turns panics into normal errors.
func (r Recovery) Check(ctx iou.Context, store iou.KVStore, tx iou.Tx, next iou.Checker) (_ *iou.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, store, tx)
}

// Deliver turns panics into normal errors.
func (r Recovery) Deliver(ctx iou.Context, store iou.KVStore, tx iou.Tx, next iou.Deliverer) (_ *iou.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, store, tx)
}
