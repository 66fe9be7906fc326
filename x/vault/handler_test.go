package vault

import (
	"context"
	"testing"

	"github.com/iov-one/iou"
	"github.com/iov-one/iou/errors"
	"github.com/iov-one/iou/ioutest"
	"github.com/iov-one/iou/store"
	"github.com/iov-one/iou/x/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// vaultFixture wires a vault with custody into a fresh store.
type vaultFixture struct {
	db      iou.CacheableKVStore
	auth    *ioutest.CtxAuth
	control token.Controller
	vaults  VaultBucket
	tickets TicketBucket

	admin     iou.Condition
	depositor iou.Condition
	deposit   iou.Address
	share     iou.Address
}

func newVaultFixture(t *testing.T) *vaultFixture {
	t.Helper()

	f := &vaultFixture{
		db:        store.MemStore(),
		auth:      &ioutest.CtxAuth{Key: "auth"},
		vaults:    NewVaultBucket(),
		tickets:   NewTicketBucket(),
		admin:     ioutest.NewCondition(),
		depositor: ioutest.NewCondition(),
		deposit:   ioutest.NewAddress(),
		share:     ioutest.NewAddress(),
	}
	f.control = token.NewController(token.NewBucket())

	h := CreateVaultHandler{f.auth, f.vaults}
	tx := &ioutest.Tx{Msg: &CreateVaultMsg{
		Admin:        f.admin.Address(),
		DepositAsset: f.deposit,
		ShareAsset:   f.share,
	}}
	if _, err := h.Deliver(f.as(f.admin), f.db, tx); err != nil {
		t.Fatalf("cannot create vault: %+v", err)
	}
	return f
}

// as returns a context authenticating the given signers.
func (f *vaultFixture) as(signers ...iou.Condition) iou.Context {
	return f.auth.SetConditions(context.Background(), signers...)
}

func (f *vaultFixture) vaultAddr() iou.Address {
	return VaultAddr(f.deposit)
}

func (f *vaultFixture) fund(t *testing.T, dest iou.Address, amount uint64) {
	t.Helper()
	if err := f.control.Issue(f.db, dest, f.deposit, amount); err != nil {
		t.Fatalf("cannot fund account: %+v", err)
	}
}

func (f *vaultFixture) depositAmount(t *testing.T, signer iou.Condition, amount uint64) error {
	t.Helper()
	h := DepositHandler{f.auth, f.vaults, f.control}
	tx := &ioutest.Tx{Msg: &DepositMsg{
		Depositor:    signer.Address(),
		DepositAsset: f.deposit,
		Amount:       amount,
	}}
	_, err := h.Deliver(f.as(signer), f.db, tx)
	return err
}

func (f *vaultFixture) requestWithdraw(t *testing.T, signer iou.Condition, shares uint64) error {
	t.Helper()
	h := RequestWithdrawHandler{f.auth, f.vaults, f.tickets, f.control}
	tx := &ioutest.Tx{Msg: &RequestWithdrawMsg{
		Owner:        signer.Address(),
		DepositAsset: f.deposit,
		ShareAmount:  shares,
	}}
	_, err := h.Deliver(f.as(signer), f.db, tx)
	return err
}

func (f *vaultFixture) claimWithdraw(t *testing.T, signer iou.Condition) error {
	t.Helper()
	h := ClaimWithdrawHandler{f.auth, f.vaults, f.tickets, f.control}
	tx := &ioutest.Tx{Msg: &ClaimWithdrawMsg{
		Owner:        signer.Address(),
		DepositAsset: f.deposit,
	}}
	_, err := h.Deliver(f.as(signer), f.db, tx)
	return err
}

func (f *vaultFixture) increaseRate(t *testing.T, signer iou.Condition, rate uint64) error {
	t.Helper()
	h := IncreaseRateHandler{f.auth, f.vaults}
	tx := &ioutest.Tx{Msg: &IncreaseRateMsg{
		DepositAsset: f.deposit,
		ExchangeRate: rate,
	}}
	_, err := h.Deliver(f.as(signer), f.db, tx)
	return err
}

func (f *vaultFixture) depositYield(t *testing.T, signer iou.Condition, amount uint64) error {
	t.Helper()
	h := DepositYieldHandler{f.auth, f.vaults, f.control}
	tx := &ioutest.Tx{Msg: &DepositYieldMsg{
		DepositAsset: f.deposit,
		Amount:       amount,
	}}
	_, err := h.Deliver(f.as(signer), f.db, tx)
	return err
}

func (f *vaultFixture) balance(t *testing.T, acct iou.Address, asset iou.Address) uint64 {
	t.Helper()
	got, err := f.control.Balance(f.db, acct, asset)
	if err != nil {
		t.Fatalf("cannot read balance: %+v", err)
	}
	return got
}

func (f *vaultFixture) state(t *testing.T) *VaultState {
	t.Helper()
	state, err := f.vaults.Get(f.db, f.vaultAddr())
	if err != nil || state == nil {
		t.Fatalf("cannot load vault: %+v", err)
	}
	return state
}

func TestCreateVault(t *testing.T) {
	f := newVaultFixture(t)

	state := f.state(t)
	assert.Equal(t, f.admin.Address(), state.Admin)
	assert.Equal(t, RateScale, state.ExchangeRate)
	assert.Equal(t, uint64(0), state.CurrentEpoch)
}

func TestCreateVaultDuplicate(t *testing.T) {
	f := newVaultFixture(t)
	other := ioutest.NewCondition()

	h := CreateVaultHandler{f.auth, f.vaults}
	tx := &ioutest.Tx{Msg: &CreateVaultMsg{
		Admin:        other.Address(),
		DepositAsset: f.deposit,
		ShareAsset:   ioutest.NewAddress(),
	}}
	_, err := h.Deliver(f.as(other), f.db, tx)
	assert.True(t, errors.ErrDuplicate.Is(err))

	// the original ledger is untouched
	state := f.state(t)
	assert.Equal(t, f.admin.Address(), state.Admin)
}

func TestDeposit(t *testing.T) {
	f := newVaultFixture(t)
	f.fund(t, f.depositor.Address(), 100)

	require.NoError(t, f.depositAmount(t, f.depositor, 100))

	// shares issued 1:1 at the initial rate
	assert.Equal(t, uint64(100), f.balance(t, f.depositor.Address(), f.share))
	assert.Equal(t, uint64(100), f.balance(t, f.vaultAddr(), f.deposit))
	assert.Equal(t, uint64(0), f.balance(t, f.depositor.Address(), f.deposit))
}

func TestDepositUnauthorized(t *testing.T) {
	f := newVaultFixture(t)
	f.fund(t, f.depositor.Address(), 100)

	h := DepositHandler{f.auth, f.vaults, f.control}
	tx := &ioutest.Tx{Msg: &DepositMsg{
		Depositor:    f.depositor.Address(),
		DepositAsset: f.deposit,
		Amount:       100,
	}}
	// signed by someone else
	_, err := h.Deliver(f.as(ioutest.NewCondition()), f.db, tx)
	assert.True(t, errors.ErrUnauthorized.Is(err))
}

func TestDepositDustRejected(t *testing.T) {
	f := newVaultFixture(t)
	f.fund(t, f.depositor.Address(), 100)
	require.NoError(t, f.increaseRate(t, f.admin, 2*RateScale))

	// 1 unit converts to 0 shares at a 2.0 rate
	err := f.depositAmount(t, f.depositor, 1)
	assert.True(t, errors.ErrAmount.Is(err))

	// no custody movement happened
	assert.Equal(t, uint64(100), f.balance(t, f.depositor.Address(), f.deposit))
	assert.Equal(t, uint64(0), f.balance(t, f.vaultAddr(), f.deposit))
}

// The full scenario: deposit at 1.0, rate raised to 1.1, half the
// shares withdrawn. The claim pays out at the claim-time rate.
func TestWithdrawalYieldBenefit(t *testing.T) {
	f := newVaultFixture(t)
	f.fund(t, f.depositor.Address(), 100)
	f.fund(t, f.admin.Address(), 50)

	require.NoError(t, f.depositAmount(t, f.depositor, 100))
	require.NoError(t, f.depositYield(t, f.admin, 10))
	require.NoError(t, f.increaseRate(t, f.admin, 1100000))

	require.NoError(t, f.requestWithdraw(t, f.depositor, 50))
	// burned on request
	assert.Equal(t, uint64(50), f.balance(t, f.depositor.Address(), f.share))

	// not claimable in the epoch of the request
	err := f.claimWithdraw(t, f.depositor)
	assert.True(t, ErrNotReady.Is(err))

	// one more epoch tick, same rate
	require.NoError(t, f.increaseRate(t, f.admin, 1100000))
	require.NoError(t, f.claimWithdraw(t, f.depositor))

	// floor(50 * 1100000 / 1000000) = 55
	assert.Equal(t, uint64(55), f.balance(t, f.depositor.Address(), f.deposit))
	assert.Equal(t, uint64(55), f.balance(t, f.vaultAddr(), f.deposit))
}

func TestClaimTwice(t *testing.T) {
	f := newVaultFixture(t)
	f.fund(t, f.depositor.Address(), 100)
	require.NoError(t, f.depositAmount(t, f.depositor, 100))
	require.NoError(t, f.requestWithdraw(t, f.depositor, 40))
	require.NoError(t, f.increaseRate(t, f.admin, RateScale))

	require.NoError(t, f.claimWithdraw(t, f.depositor))
	assert.Equal(t, uint64(40), f.balance(t, f.depositor.Address(), f.deposit))

	// the second claim fails and pays out nothing
	err := f.claimWithdraw(t, f.depositor)
	assert.True(t, ErrClaimedTicket.Is(err))
	assert.Equal(t, uint64(40), f.balance(t, f.depositor.Address(), f.deposit))
}

func TestRequestBlockedByPendingTicket(t *testing.T) {
	f := newVaultFixture(t)
	f.fund(t, f.depositor.Address(), 100)
	require.NoError(t, f.depositAmount(t, f.depositor, 100))

	require.NoError(t, f.requestWithdraw(t, f.depositor, 30))
	// a pending ticket blocks another request
	err := f.requestWithdraw(t, f.depositor, 10)
	assert.True(t, ErrPendingTicket.Is(err))
	// the blocked request must not burn shares
	assert.Equal(t, uint64(70), f.balance(t, f.depositor.Address(), f.share))
}

func TestTicketSlotReuse(t *testing.T) {
	f := newVaultFixture(t)
	f.fund(t, f.depositor.Address(), 100)
	require.NoError(t, f.depositAmount(t, f.depositor, 100))

	require.NoError(t, f.requestWithdraw(t, f.depositor, 30))
	require.NoError(t, f.increaseRate(t, f.admin, RateScale))
	require.NoError(t, f.claimWithdraw(t, f.depositor))

	// after a claim the slot accepts a new request
	require.NoError(t, f.requestWithdraw(t, f.depositor, 20))

	ticket, err := f.tickets.Get(f.db, TicketAddr(f.depositor.Address(), f.vaultAddr()))
	require.NoError(t, err)
	require.NotNil(t, ticket)
	assert.False(t, ticket.Claimed)
	assert.Equal(t, uint64(20), ticket.BurnedShares)
	assert.Equal(t, f.state(t).CurrentEpoch+1, ticket.UnlockEpoch)
}

func TestClaimEpochBoundary(t *testing.T) {
	f := newVaultFixture(t)
	f.fund(t, f.depositor.Address(), 100)
	require.NoError(t, f.depositAmount(t, f.depositor, 100))
	require.NoError(t, f.requestWithdraw(t, f.depositor, 10))

	// currentEpoch 0, unlockEpoch 1
	err := f.claimWithdraw(t, f.depositor)
	assert.True(t, ErrNotReady.Is(err))

	// the claim succeeds the moment currentEpoch == unlockEpoch
	require.NoError(t, f.increaseRate(t, f.admin, RateScale))
	require.NoError(t, f.claimWithdraw(t, f.depositor))
}

func TestClaimWrongOwner(t *testing.T) {
	f := newVaultFixture(t)
	f.fund(t, f.depositor.Address(), 100)
	require.NoError(t, f.depositAmount(t, f.depositor, 100))
	require.NoError(t, f.requestWithdraw(t, f.depositor, 10))
	require.NoError(t, f.increaseRate(t, f.admin, RateScale))

	// a stranger has no ticket slot at their own address
	err := f.claimWithdraw(t, ioutest.NewCondition())
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestClaimInsufficientCustody(t *testing.T) {
	f := newVaultFixture(t)
	f.fund(t, f.depositor.Address(), 100)
	require.NoError(t, f.depositAmount(t, f.depositor, 100))
	require.NoError(t, f.requestWithdraw(t, f.depositor, 100))
	// doubling the rate makes the claim worth 200, backed by 100
	require.NoError(t, f.increaseRate(t, f.admin, 2*RateScale))

	err := f.claimWithdraw(t, f.depositor)
	assert.True(t, errors.ErrInsufficientAmount.Is(err))

	// yield deposits cover the difference
	f.fund(t, f.admin.Address(), 100)
	require.NoError(t, f.depositYield(t, f.admin, 100))
	require.NoError(t, f.claimWithdraw(t, f.depositor))
	assert.Equal(t, uint64(200), f.balance(t, f.depositor.Address(), f.deposit))
}

func TestIncreaseRateAdminOnly(t *testing.T) {
	f := newVaultFixture(t)
	intruder := ioutest.NewCondition()

	err := f.increaseRate(t, intruder, 2*RateScale)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	// ledger unchanged
	state := f.state(t)
	assert.Equal(t, RateScale, state.ExchangeRate)
	assert.Equal(t, uint64(0), state.CurrentEpoch)
}

func TestIncreaseRateAdvancesEpoch(t *testing.T) {
	f := newVaultFixture(t)

	require.NoError(t, f.increaseRate(t, f.admin, 1200000))
	state := f.state(t)
	assert.Equal(t, uint64(1200000), state.ExchangeRate)
	assert.Equal(t, uint64(1), state.CurrentEpoch)

	// repeating the same rate still ticks the clock
	require.NoError(t, f.increaseRate(t, f.admin, 1200000))
	assert.Equal(t, uint64(2), f.state(t).CurrentEpoch)
}

func TestDepositYieldAdminOnly(t *testing.T) {
	f := newVaultFixture(t)
	intruder := ioutest.NewCondition()
	f.fund(t, intruder.Address(), 50)

	h := DepositYieldHandler{f.auth, f.vaults, f.control}
	tx := &ioutest.Tx{Msg: &DepositYieldMsg{
		DepositAsset: f.deposit,
		Amount:       50,
	}}
	_, err := h.Deliver(f.as(intruder), f.db, tx)
	assert.True(t, errors.ErrUnauthorized.Is(err))
	assert.Equal(t, uint64(0), f.balance(t, f.vaultAddr(), f.deposit))
}

func TestDepositYieldMintsNoShares(t *testing.T) {
	f := newVaultFixture(t)
	f.fund(t, f.admin.Address(), 50)

	require.NoError(t, f.depositYield(t, f.admin, 50))
	assert.Equal(t, uint64(50), f.balance(t, f.vaultAddr(), f.deposit))
	assert.Equal(t, uint64(0), f.balance(t, f.admin.Address(), f.share))
	// ledger fields unchanged
	state := f.state(t)
	assert.Equal(t, RateScale, state.ExchangeRate)
	assert.Equal(t, uint64(0), state.CurrentEpoch)
}
