package iouapp

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"testing"

	"github.com/iov-one/iou"
	"github.com/iov-one/iou/errors"
	"github.com/iov-one/iou/ioutest"
	"github.com/iov-one/iou/store"
	"github.com/iov-one/iou/x/token"
	"github.com/iov-one/iou/x/vault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// appFixture runs a full stack over a fresh store, with one vault
// created through genesis and the depositor funded with 100 units
// of the deposit asset.
type appFixture struct {
	db      iou.CacheableKVStore
	auth    *ioutest.CtxAuth
	stack   iou.Handler
	control token.Controller

	admin     iou.Condition
	depositor iou.Condition
	deposit   iou.Address
	share     iou.Address
}

func newAppFixture(t *testing.T) *appFixture {
	t.Helper()

	f := &appFixture{
		db:        store.MemStore(),
		auth:      &ioutest.CtxAuth{Key: "auth"},
		control:   TokenControl(),
		admin:     ioutest.NewCondition(),
		depositor: ioutest.NewCondition(),
		deposit:   ioutest.NewAddress(),
		share:     ioutest.NewAddress(),
	}
	f.stack = Stack(f.auth)

	opts := iou.Options{
		"vaults": json.RawMessage(fmt.Sprintf(`[
			{"admin": %q, "deposit_asset": %q, "share_asset": %q}
		]`, f.admin.Address().String(), f.deposit.String(), f.share.String())),
		"tokens": json.RawMessage(fmt.Sprintf(`[
			{"address": %q, "tokens": [{"asset": %q, "amount": 100}]}
		]`, f.depositor.Address().String(), f.deposit.String())),
	}
	for _, ini := range Initializers() {
		require.NoError(t, ini.FromGenesis(opts, f.db))
	}
	return f
}

// deliver pushes one message through the whole stack, signed by
// the given signer.
func (f *appFixture) deliver(signer iou.Condition, msg iou.Msg) error {
	ctx := f.auth.SetConditions(context.Background(), signer)
	_, err := f.stack.Deliver(ctx, f.db, &ioutest.Tx{Msg: msg})
	return err
}

func (f *appFixture) balance(t *testing.T, acct iou.Address, asset iou.Address) uint64 {
	t.Helper()
	got, err := f.control.Balance(f.db, acct, asset)
	if err != nil {
		t.Fatalf("cannot read balance: %+v", err)
	}
	return got
}

func (f *appFixture) vaultAddr() iou.Address {
	return vault.VaultAddr(f.deposit)
}

func TestStackDeposit(t *testing.T) {
	f := newAppFixture(t)

	err := f.deliver(f.depositor, &vault.DepositMsg{
		Depositor:    f.depositor.Address(),
		DepositAsset: f.deposit,
		Amount:       100,
	})
	require.NoError(t, err)

	assert.Equal(t, uint64(100), f.balance(t, f.depositor.Address(), f.share))
	assert.Equal(t, uint64(100), f.balance(t, f.vaultAddr(), f.deposit))
	assert.Equal(t, uint64(0), f.balance(t, f.depositor.Address(), f.deposit))
}

// A failing operation must leave the store untouched. The share
// issue here fails after the custody move already happened, so
// without the savepoint the depositor would lose the funds.
func TestStackDepositRollback(t *testing.T) {
	f := newAppFixture(t)
	require.NoError(t, f.control.Issue(f.db, f.depositor.Address(), f.share, math.MaxUint64))

	err := f.deliver(f.depositor, &vault.DepositMsg{
		Depositor:    f.depositor.Address(),
		DepositAsset: f.deposit,
		Amount:       100,
	})
	assert.True(t, errors.ErrOverflow.Is(err), "unexpected error: %+v", err)

	// the custody move was rolled back with the rest
	assert.Equal(t, uint64(100), f.balance(t, f.depositor.Address(), f.deposit))
	assert.Equal(t, uint64(0), f.balance(t, f.vaultAddr(), f.deposit))
	assert.Equal(t, uint64(math.MaxUint64), f.balance(t, f.depositor.Address(), f.share))
}

// Check must not leave any writes behind either.
func TestStackCheckLeavesNoState(t *testing.T) {
	f := newAppFixture(t)

	ctx := f.auth.SetConditions(context.Background(), f.depositor)
	res, err := f.stack.Check(ctx, f.db, &ioutest.Tx{Msg: &vault.DepositMsg{
		Depositor:    f.depositor.Address(),
		DepositAsset: f.deposit,
		Amount:       100,
	}})
	require.NoError(t, err)
	assert.True(t, res.GasAllocated > 0)

	assert.Equal(t, uint64(100), f.balance(t, f.depositor.Address(), f.deposit))
	assert.Equal(t, uint64(0), f.balance(t, f.vaultAddr(), f.deposit))
}

// The full lifecycle through the assembled stack: deposit, request
// a withdrawal, tick the epoch, claim.
func TestStackWithdrawalFlow(t *testing.T) {
	f := newAppFixture(t)

	require.NoError(t, f.deliver(f.depositor, &vault.DepositMsg{
		Depositor:    f.depositor.Address(),
		DepositAsset: f.deposit,
		Amount:       100,
	}))
	require.NoError(t, f.deliver(f.depositor, &vault.RequestWithdrawMsg{
		Owner:        f.depositor.Address(),
		DepositAsset: f.deposit,
		ShareAmount:  100,
	}))
	require.NoError(t, f.deliver(f.admin, &vault.IncreaseRateMsg{
		DepositAsset: f.deposit,
		ExchangeRate: vault.RateScale,
	}))
	require.NoError(t, f.deliver(f.depositor, &vault.ClaimWithdrawMsg{
		Owner:        f.depositor.Address(),
		DepositAsset: f.deposit,
	}))

	assert.Equal(t, uint64(100), f.balance(t, f.depositor.Address(), f.deposit))
	assert.Equal(t, uint64(0), f.balance(t, f.vaultAddr(), f.deposit))
	assert.Equal(t, uint64(0), f.balance(t, f.depositor.Address(), f.share))
}

func TestStackUnknownPath(t *testing.T) {
	f := newAppFixture(t)

	err := f.deliver(f.depositor, &ioutest.Msg{RoutePath: "test/unknown"})
	assert.True(t, errors.ErrNotFound.Is(err))
}
