package utils

import (
	"time"

	"github.com/iov-one/iou"
)

// Logging reports every processed transaction to the logger bound
// to the context, tagged with the message path and the processing
// time in microseconds.
type Logging struct{}

var _ iou.Decorator = Logging{}

// NewLogging creates a Logging decorator.
func NewLogging() Logging {
	return Logging{}
}

// Check logs failures as info and successes as debug, as check runs
// are frequent and usually boring.
func (l Logging) Check(ctx iou.Context, store iou.KVStore, tx iou.Tx, next iou.Checker) (*iou.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	var msg string
	if err == nil {
		msg = res.Log
	}
	l.log(ctx, tx, start, msg, err, true)
	return res, err
}

// Deliver logs failures as error and successes as info.
func (l Logging) Deliver(ctx iou.Context, store iou.KVStore, tx iou.Tx, next iou.Deliverer) (*iou.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	var msg string
	if err == nil {
		msg = res.Log
	}
	l.log(ctx, tx, start, msg, err, false)
	return res, err
}

// log emits one entry per processed transaction. An empty message
// is still emitted, the path and duration fields carry the
// information.
func (Logging) log(ctx iou.Context, tx iou.Tx, start time.Time, msg string, err error, lowPrio bool) {
	logger := iou.GetLogger(ctx).With(
		"path", iou.GetPath(tx),
		"duration", time.Since(start)/time.Microsecond,
	)

	if err != nil {
		logger.With("err", err).Error(msg)
		return
	}
	if lowPrio {
		logger.Debug(msg)
	} else {
		logger.Info(msg)
	}
}
