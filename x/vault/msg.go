package vault

import (
	"github.com/iov-one/iou"
	"github.com/iov-one/iou/errors"
)

// Ensure we implement the Msg interface
var (
	_ iou.Msg = (*CreateVaultMsg)(nil)
	_ iou.Msg = (*DepositMsg)(nil)
	_ iou.Msg = (*RequestWithdrawMsg)(nil)
	_ iou.Msg = (*ClaimWithdrawMsg)(nil)
	_ iou.Msg = (*IncreaseRateMsg)(nil)
	_ iou.Msg = (*DepositYieldMsg)(nil)
)

// Path returns the routing path for this message.
func (CreateVaultMsg) Path() string {
	return "vault/create"
}

// Validate makes sure that this is sensible.
func (m *CreateVaultMsg) Validate() error {
	if err := m.Admin.Validate(); err != nil {
		return errors.Wrap(err, "admin")
	}
	if err := m.DepositAsset.Validate(); err != nil {
		return errors.Wrap(err, "deposit asset")
	}
	if err := m.ShareAsset.Validate(); err != nil {
		return errors.Wrap(err, "share asset")
	}
	if m.DepositAsset.Equals(m.ShareAsset) {
		return errors.Wrap(errors.ErrInput, "deposit and share asset equal")
	}
	return nil
}

// Path returns the routing path for this message.
func (DepositMsg) Path() string {
	return "vault/deposit"
}

// Validate makes sure that this is sensible.
func (m *DepositMsg) Validate() error {
	if err := m.Depositor.Validate(); err != nil {
		return errors.Wrap(err, "depositor")
	}
	if err := m.DepositAsset.Validate(); err != nil {
		return errors.Wrap(err, "deposit asset")
	}
	if m.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero deposit")
	}
	return nil
}

// Path returns the routing path for this message.
func (RequestWithdrawMsg) Path() string {
	return "vault/request_withdraw"
}

// Validate makes sure that this is sensible.
func (m *RequestWithdrawMsg) Validate() error {
	if err := m.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if err := m.DepositAsset.Validate(); err != nil {
		return errors.Wrap(err, "deposit asset")
	}
	if m.ShareAmount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero share amount")
	}
	return nil
}

// Path returns the routing path for this message.
func (ClaimWithdrawMsg) Path() string {
	return "vault/claim_withdraw"
}

// Validate makes sure that this is sensible.
func (m *ClaimWithdrawMsg) Validate() error {
	if err := m.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if err := m.DepositAsset.Validate(); err != nil {
		return errors.Wrap(err, "deposit asset")
	}
	return nil
}

// Path returns the routing path for this message.
func (IncreaseRateMsg) Path() string {
	return "vault/increase_rate"
}

// Validate makes sure that this is sensible.
func (m *IncreaseRateMsg) Validate() error {
	if err := m.DepositAsset.Validate(); err != nil {
		return errors.Wrap(err, "deposit asset")
	}
	if m.ExchangeRate == 0 {
		return errors.Wrap(ErrInvalidRate, "zero rate")
	}
	return nil
}

// Path returns the routing path for this message.
func (DepositYieldMsg) Path() string {
	return "vault/deposit_yield"
}

// Validate makes sure that this is sensible.
func (m *DepositYieldMsg) Validate() error {
	if err := m.DepositAsset.Validate(); err != nil {
		return errors.Wrap(err, "deposit asset")
	}
	if m.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero yield")
	}
	return nil
}
