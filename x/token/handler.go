package token

import (
	"github.com/iov-one/iou"
	"github.com/iov-one/iou/errors"
	"github.com/iov-one/iou/x"
)

// RegisterRoutes will instantiate and register
// all handlers in this package.
func RegisterRoutes(r iou.Registry, auth x.Authenticator, control Controller) {
	r.Handle(&SendMsg{}, NewSendHandler(auth, control))
}

// SendHandler will handle sending tokens.
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ iou.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg.
func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{
		auth:    auth,
		control: control,
	}
}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h SendHandler) Check(ctx iou.Context, store iou.KVStore, tx iou.Tx) (*iou.CheckResult, error) {
	var msg SendMsg
	if err := iou.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}

	// Make sure we have permission from the source.
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "account owner signature missing")
	}

	res := iou.CheckResult{
		GasAllocated: sendTxCost,
	}
	return &res, nil
}

// Deliver moves the tokens from source to destination if
// all preconditions are met.
func (h SendHandler) Deliver(ctx iou.Context, store iou.KVStore, tx iou.Tx) (*iou.DeliverResult, error) {
	var msg SendMsg
	if err := iou.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}

	// Make sure we have permission from the source.
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "account owner signature missing")
	}

	if err := h.control.Move(store, msg.Source, msg.Destination, msg.Asset, msg.Amount); err != nil {
		return nil, err
	}
	return &iou.DeliverResult{}, nil
}
