package token

import (
	"github.com/iov-one/iou"
	"github.com/iov-one/iou/errors"
)

// Ensure we implement the Msg interface
var _ iou.Msg = (*SendMsg)(nil)

const sendTxCost int64 = 100

// Path returns the routing path for this message.
func (SendMsg) Path() string {
	return "token/send"
}

// Validate makes sure that this is sensible.
func (m *SendMsg) Validate() error {
	if err := m.Source.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := m.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if err := m.Asset.Validate(); err != nil {
		return errors.Wrap(err, "asset")
	}
	if m.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero transfer")
	}
	return nil
}
