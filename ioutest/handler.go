package ioutest

import "github.com/iov-one/iou"

// Handler is a mock implementation of the iou.Handler interface.
//
// Set CheckResult, CheckErr, DeliverResult and DeliverErr to configure the
// values returned. Each method call is counted.
type Handler struct {
	checkCall   int
	CheckResult iou.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult iou.DeliverResult
	DeliverErr    error
}

var _ iou.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx iou.Context, db iou.KVStore, tx iou.Tx) (*iou.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx iou.Context, db iou.KVStore, tx iou.Tx) (*iou.DeliverResult, error) {
	h.deliverCall++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}
