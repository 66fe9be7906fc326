package vault

import (
	"github.com/iov-one/iou"
	"github.com/iov-one/iou/errors"
	"github.com/iov-one/iou/x"
	"github.com/iov-one/iou/x/token"
)

const (
	// pay vault creation cost up-front
	createVaultCost     int64 = 300
	depositCost         int64 = 200
	requestWithdrawCost int64 = 200
	claimWithdrawCost   int64 = 200
	increaseRateCost    int64 = 100
	depositYieldCost    int64 = 100
)

// RegisterRoutes will instantiate and register
// all handlers in this package.
func RegisterRoutes(r iou.Registry, auth x.Authenticator, control token.Controller) {
	vaults := NewVaultBucket()
	tickets := NewTicketBucket()

	r.Handle(&CreateVaultMsg{}, CreateVaultHandler{auth, vaults})
	r.Handle(&DepositMsg{}, DepositHandler{auth, vaults, control})
	r.Handle(&RequestWithdrawMsg{}, RequestWithdrawHandler{auth, vaults, tickets, control})
	r.Handle(&ClaimWithdrawMsg{}, ClaimWithdrawHandler{auth, vaults, tickets, control})
	r.Handle(&IncreaseRateMsg{}, IncreaseRateHandler{auth, vaults})
	r.Handle(&DepositYieldMsg{}, DepositYieldHandler{auth, vaults, control})
}

// CreateVaultHandler initializes the ledger for one deposit asset.
type CreateVaultHandler struct {
	auth   x.Authenticator
	vaults VaultBucket
}

var _ iou.Handler = CreateVaultHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h CreateVaultHandler) Check(ctx iou.Context, db iou.KVStore, tx iou.Tx) (*iou.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &iou.CheckResult{GasAllocated: createVaultCost}, nil
}

// Deliver writes a fresh ledger with a 1:1 exchange rate and the
// epoch clock at zero.
func (h CreateVaultHandler) Deliver(ctx iou.Context, db iou.KVStore, tx iou.Tx) (*iou.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	vaultAddr := VaultAddr(msg.DepositAsset)
	state := &VaultState{
		Admin:        msg.Admin,
		DepositAsset: msg.DepositAsset,
		ShareAsset:   msg.ShareAsset,
		ExchangeRate: RateScale,
		CurrentEpoch: 0,
	}
	if err := h.vaults.Save(db, vaultAddr, state); err != nil {
		return nil, errors.Wrap(err, "cannot store vault")
	}
	return &iou.DeliverResult{Data: vaultAddr}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h CreateVaultHandler) validate(ctx iou.Context, db iou.KVStore, tx iou.Tx) (*CreateVaultMsg, error) {
	var msg CreateVaultMsg
	if err := iou.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}

	// The admin must authorize the creation.
	if !h.auth.HasAddress(ctx, msg.Admin) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "admin signature missing")
	}

	// One vault per deposit asset.
	existing, err := h.vaults.Get(db, VaultAddr(msg.DepositAsset))
	if err != nil {
		return nil, errors.Wrap(err, "cannot load vault from the store")
	}
	if existing != nil {
		return nil, errors.Wrapf(errors.ErrDuplicate, "vault for %s", msg.DepositAsset)
	}

	return &msg, nil
}

// DepositHandler moves deposit assets into vault custody and
// issues shares at the current exchange rate.
type DepositHandler struct {
	auth    x.Authenticator
	vaults  VaultBucket
	control token.Controller
}

var _ iou.Handler = DepositHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h DepositHandler) Check(ctx iou.Context, db iou.KVStore, tx iou.Tx) (*iou.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &iou.CheckResult{GasAllocated: depositCost}, nil
}

// Deliver moves the deposit into vault custody and issues the
// converted share amount to the depositor.
func (h DepositHandler) Deliver(ctx iou.Context, db iou.KVStore, tx iou.Tx) (*iou.DeliverResult, error) {
	msg, vault, shares, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	vaultAddr := VaultAddr(msg.DepositAsset)
	if err := h.control.Move(db, msg.Depositor, vaultAddr, vault.DepositAsset, msg.Amount); err != nil {
		return nil, err
	}
	if err := h.control.Issue(db, msg.Depositor, vault.ShareAsset, shares); err != nil {
		return nil, err
	}
	return &iou.DeliverResult{}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h DepositHandler) validate(ctx iou.Context, db iou.KVStore, tx iou.Tx) (*DepositMsg, *VaultState, uint64, error) {
	var msg DepositMsg
	if err := iou.LoadMsg(tx, &msg); err != nil {
		return nil, nil, 0, errors.Wrap(err, "load msg")
	}

	if !h.auth.HasAddress(ctx, msg.Depositor) {
		return nil, nil, 0, errors.Wrap(errors.ErrUnauthorized, "depositor signature missing")
	}

	vault, err := h.vaults.Get(db, VaultAddr(msg.DepositAsset))
	if err != nil {
		return nil, nil, 0, errors.Wrap(err, "cannot load vault from the store")
	}
	if vault == nil {
		return nil, nil, 0, errors.Wrapf(errors.ErrNotFound, "vault for %s", msg.DepositAsset)
	}

	shares, err := sharesFor(msg.Amount, vault.ExchangeRate)
	if err != nil {
		return nil, nil, 0, err
	}
	if shares == 0 {
		return nil, nil, 0, errors.Wrapf(errors.ErrAmount, "deposit of %d converts to no shares", msg.Amount)
	}

	return &msg, vault, shares, nil
}

// RequestWithdrawHandler burns shares and opens a withdrawal
// ticket unlocking in the next epoch.
type RequestWithdrawHandler struct {
	auth    x.Authenticator
	vaults  VaultBucket
	tickets TicketBucket
	control token.Controller
}

var _ iou.Handler = RequestWithdrawHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h RequestWithdrawHandler) Check(ctx iou.Context, db iou.KVStore, tx iou.Tx) (*iou.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &iou.CheckResult{GasAllocated: requestWithdrawCost}, nil
}

// Deliver destroys the committed shares and writes the ticket
// slot. A claimed ticket slot is overwritten, a pending one
// blocks the request.
func (h RequestWithdrawHandler) Deliver(ctx iou.Context, db iou.KVStore, tx iou.Tx) (*iou.DeliverResult, error) {
	msg, vault, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	if err := h.control.Destroy(db, msg.Owner, vault.ShareAsset, msg.ShareAmount); err != nil {
		return nil, err
	}

	ticketAddr := TicketAddr(msg.Owner, VaultAddr(msg.DepositAsset))
	ticket := &WithdrawalTicket{
		Owner:        msg.Owner,
		BurnedShares: msg.ShareAmount,
		UnlockEpoch:  vault.CurrentEpoch + 1,
		Claimed:      false,
	}
	if err := h.tickets.Save(db, ticketAddr, ticket); err != nil {
		return nil, errors.Wrap(err, "cannot store ticket")
	}
	return &iou.DeliverResult{Data: ticketAddr}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h RequestWithdrawHandler) validate(ctx iou.Context, db iou.KVStore, tx iou.Tx) (*RequestWithdrawMsg, *VaultState, error) {
	var msg RequestWithdrawMsg
	if err := iou.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}

	if !h.auth.HasAddress(ctx, msg.Owner) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "owner signature missing")
	}

	vaultAddr := VaultAddr(msg.DepositAsset)
	vault, err := h.vaults.Get(db, vaultAddr)
	if err != nil {
		return nil, nil, errors.Wrap(err, "cannot load vault from the store")
	}
	if vault == nil {
		return nil, nil, errors.Wrapf(errors.ErrNotFound, "vault for %s", msg.DepositAsset)
	}

	// The slot must be absent or already claimed.
	ticket, err := h.tickets.Get(db, TicketAddr(msg.Owner, vaultAddr))
	if err != nil {
		return nil, nil, errors.Wrap(err, "cannot load ticket from the store")
	}
	if ticket != nil && !ticket.Claimed {
		return nil, nil, errors.Wrapf(ErrPendingTicket, "unlock epoch %d", ticket.UnlockEpoch)
	}

	return &msg, vault, nil
}

// ClaimWithdrawHandler pays out a matured ticket at the exchange
// rate in effect at claim time.
type ClaimWithdrawHandler struct {
	auth    x.Authenticator
	vaults  VaultBucket
	tickets TicketBucket
	control token.Controller
}

var _ iou.Handler = ClaimWithdrawHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h ClaimWithdrawHandler) Check(ctx iou.Context, db iou.KVStore, tx iou.Tx) (*iou.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &iou.CheckResult{GasAllocated: claimWithdrawCost}, nil
}

// Deliver moves the payout from vault custody to the owner and
// marks the ticket claimed. The slot stays reusable by a later
// withdrawal request.
func (h ClaimWithdrawHandler) Deliver(ctx iou.Context, db iou.KVStore, tx iou.Tx) (*iou.DeliverResult, error) {
	msg, ticket, amount, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	vaultAddr := VaultAddr(msg.DepositAsset)
	if err := h.control.Move(db, vaultAddr, msg.Owner, msg.DepositAsset, amount); err != nil {
		return nil, err
	}

	ticket.Claimed = true
	if err := h.tickets.Save(db, TicketAddr(msg.Owner, vaultAddr), ticket); err != nil {
		return nil, errors.Wrap(err, "cannot store ticket")
	}
	return &iou.DeliverResult{}, nil
}

// validate does all common pre-processing between Check and Deliver.
// It returns the payout amount converted at the current rate.
func (h ClaimWithdrawHandler) validate(ctx iou.Context, db iou.KVStore, tx iou.Tx) (*ClaimWithdrawMsg, *WithdrawalTicket, uint64, error) {
	var msg ClaimWithdrawMsg
	if err := iou.LoadMsg(tx, &msg); err != nil {
		return nil, nil, 0, errors.Wrap(err, "load msg")
	}

	if !h.auth.HasAddress(ctx, msg.Owner) {
		return nil, nil, 0, errors.Wrap(errors.ErrUnauthorized, "owner signature missing")
	}

	vaultAddr := VaultAddr(msg.DepositAsset)
	vault, err := h.vaults.Get(db, vaultAddr)
	if err != nil {
		return nil, nil, 0, errors.Wrap(err, "cannot load vault from the store")
	}
	if vault == nil {
		return nil, nil, 0, errors.Wrapf(errors.ErrNotFound, "vault for %s", msg.DepositAsset)
	}

	ticket, err := h.tickets.Get(db, TicketAddr(msg.Owner, vaultAddr))
	if err != nil {
		return nil, nil, 0, errors.Wrap(err, "cannot load ticket from the store")
	}
	if ticket == nil {
		return nil, nil, 0, errors.Wrapf(errors.ErrNotFound, "no ticket for %s", msg.Owner)
	}
	if !ticket.Owner.Equals(msg.Owner) {
		return nil, nil, 0, errors.Wrapf(ErrTicketOwner, "ticket belongs to %s", ticket.Owner)
	}
	if ticket.Claimed {
		return nil, nil, 0, errors.Wrap(ErrClaimedTicket, "nothing to pay out")
	}
	if vault.CurrentEpoch < ticket.UnlockEpoch {
		return nil, nil, 0, errors.Wrapf(ErrNotReady, "unlocks at epoch %d, current %d", ticket.UnlockEpoch, vault.CurrentEpoch)
	}

	// Payout uses the rate at claim time, not at request time.
	amount, err := depositFor(ticket.BurnedShares, vault.ExchangeRate)
	if err != nil {
		return nil, nil, 0, err
	}
	if amount == 0 {
		return nil, nil, 0, errors.Wrapf(errors.ErrAmount, "%d shares convert to no deposit", ticket.BurnedShares)
	}

	// Check custody up-front so the claim fails before any write.
	balance, err := h.control.Balance(db, vaultAddr, msg.DepositAsset)
	if err != nil {
		return nil, nil, 0, err
	}
	if balance < amount {
		return nil, nil, 0, errors.Wrapf(errors.ErrInsufficientAmount, "vault holds %d, claim needs %d", balance, amount)
	}

	return &msg, ticket, amount, nil
}

// IncreaseRateHandler sets a new exchange rate and advances the
// epoch clock.
type IncreaseRateHandler struct {
	auth   x.Authenticator
	vaults VaultBucket
}

var _ iou.Handler = IncreaseRateHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h IncreaseRateHandler) Check(ctx iou.Context, db iou.KVStore, tx iou.Tx) (*iou.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &iou.CheckResult{GasAllocated: increaseRateCost}, nil
}

// Deliver stores the new rate and bumps the epoch. Rate changes
// are the only way the epoch clock advances, so submitting the
// unchanged rate is how an epoch tick without repricing is done.
func (h IncreaseRateHandler) Deliver(ctx iou.Context, db iou.KVStore, tx iou.Tx) (*iou.DeliverResult, error) {
	msg, vault, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	vault.ExchangeRate = msg.ExchangeRate
	vault.CurrentEpoch++
	if err := h.vaults.Save(db, VaultAddr(msg.DepositAsset), vault); err != nil {
		return nil, errors.Wrap(err, "cannot store vault")
	}
	return &iou.DeliverResult{}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h IncreaseRateHandler) validate(ctx iou.Context, db iou.KVStore, tx iou.Tx) (*IncreaseRateMsg, *VaultState, error) {
	var msg IncreaseRateMsg
	if err := iou.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}

	vault, err := h.vaults.Get(db, VaultAddr(msg.DepositAsset))
	if err != nil {
		return nil, nil, errors.Wrap(err, "cannot load vault from the store")
	}
	if vault == nil {
		return nil, nil, errors.Wrapf(errors.ErrNotFound, "vault for %s", msg.DepositAsset)
	}

	if !h.auth.HasAddress(ctx, vault.Admin) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "admin signature missing")
	}

	return &msg, vault, nil
}

// DepositYieldHandler moves deposit assets from the admin into
// vault custody without issuing shares, raising the backing per
// outstanding share.
type DepositYieldHandler struct {
	auth    x.Authenticator
	vaults  VaultBucket
	control token.Controller
}

var _ iou.Handler = DepositYieldHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h DepositYieldHandler) Check(ctx iou.Context, db iou.KVStore, tx iou.Tx) (*iou.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &iou.CheckResult{GasAllocated: depositYieldCost}, nil
}

// Deliver moves the yield into vault custody. No ledger fields
// change and no shares are issued.
func (h DepositYieldHandler) Deliver(ctx iou.Context, db iou.KVStore, tx iou.Tx) (*iou.DeliverResult, error) {
	msg, vault, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	vaultAddr := VaultAddr(msg.DepositAsset)
	if err := h.control.Move(db, vault.Admin, vaultAddr, vault.DepositAsset, msg.Amount); err != nil {
		return nil, err
	}
	return &iou.DeliverResult{}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h DepositYieldHandler) validate(ctx iou.Context, db iou.KVStore, tx iou.Tx) (*DepositYieldMsg, *VaultState, error) {
	var msg DepositYieldMsg
	if err := iou.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}

	vault, err := h.vaults.Get(db, VaultAddr(msg.DepositAsset))
	if err != nil {
		return nil, nil, errors.Wrap(err, "cannot load vault from the store")
	}
	if vault == nil {
		return nil, nil, errors.Wrapf(errors.ErrNotFound, "vault for %s", msg.DepositAsset)
	}

	if !h.auth.HasAddress(ctx, vault.Admin) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "admin signature missing")
	}

	return &msg, vault, nil
}
