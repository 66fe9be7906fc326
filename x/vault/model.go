package vault

import (
	"github.com/iov-one/iou"
	"github.com/iov-one/iou/errors"
	"github.com/iov-one/iou/orm"
)

const (
	// VaultBucketName is where the per-asset ledgers are stored.
	VaultBucketName = "vault"
	// TicketBucketName is where the withdrawal tickets are stored.
	TicketBucketName = "ticket"
)

// VaultCondition returns the condition a vault ledger lives under.
// Its address doubles as the custody account of the vault.
func VaultCondition(depositAsset iou.Address) iou.Condition {
	return iou.NewCondition("vault", "state", depositAsset)
}

// VaultAddr returns the deterministic address of the ledger for
// one deposit asset. At most one vault can exist per asset.
func VaultAddr(depositAsset iou.Address) iou.Address {
	return VaultCondition(depositAsset).Address()
}

// TicketCondition returns the condition a withdrawal ticket lives
// under, derived from the owner and the vault address. Both
// components are fixed-width addresses, so plain concatenation is
// unambiguous.
func TicketCondition(owner iou.Address, vaultAddr iou.Address) iou.Condition {
	data := make([]byte, 0, len(owner)+len(vaultAddr))
	data = append(data, owner...)
	data = append(data, vaultAddr...)
	return iou.NewCondition("vault", "ticket", data)
}

// TicketAddr returns the deterministic address of the single
// ticket slot for one (owner, vault) pair.
func TicketAddr(owner iou.Address, vaultAddr iou.Address) iou.Address {
	return TicketCondition(owner, vaultAddr).Address()
}

//---- VaultState

var _ orm.CloneableData = (*VaultState)(nil)

// Validate enforces the ledger invariants.
func (v *VaultState) Validate() error {
	if err := v.Admin.Validate(); err != nil {
		return errors.Wrap(err, "admin")
	}
	if err := v.DepositAsset.Validate(); err != nil {
		return errors.Wrap(err, "deposit asset")
	}
	if err := v.ShareAsset.Validate(); err != nil {
		return errors.Wrap(err, "share asset")
	}
	if v.ExchangeRate == 0 {
		return errors.Wrap(ErrInvalidRate, "zero rate")
	}
	return nil
}

// Copy produces an independent copy of the ledger.
func (v *VaultState) Copy() orm.CloneableData {
	return &VaultState{
		Admin:        v.Admin.Clone(),
		DepositAsset: v.DepositAsset.Clone(),
		ShareAsset:   v.ShareAsset.Clone(),
		ExchangeRate: v.ExchangeRate,
		CurrentEpoch: v.CurrentEpoch,
	}
}

//---- WithdrawalTicket

var _ orm.CloneableData = (*WithdrawalTicket)(nil)

// Validate enforces the ticket invariants.
func (t *WithdrawalTicket) Validate() error {
	if err := t.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if t.BurnedShares == 0 {
		return errors.Wrap(errors.ErrAmount, "zero burned shares")
	}
	return nil
}

// Copy produces an independent copy of the ticket.
func (t *WithdrawalTicket) Copy() orm.CloneableData {
	return &WithdrawalTicket{
		Owner:        t.Owner.Clone(),
		BurnedShares: t.BurnedShares,
		UnlockEpoch:  t.UnlockEpoch,
		Claimed:      t.Claimed,
	}
}

//---- buckets

// VaultBucket is a type-safe wrapper around orm.Bucket for the
// per-asset ledgers.
type VaultBucket struct {
	orm.Bucket
}

// NewVaultBucket initializes a VaultBucket with default name.
func NewVaultBucket() VaultBucket {
	return VaultBucket{
		Bucket: orm.NewBucket(VaultBucketName,
			orm.NewSimpleObj(nil, &VaultState{})),
	}
}

// Get loads the ledger stored under the vault address, or nil.
func (b VaultBucket) Get(db iou.ReadOnlyKVStore, vaultAddr iou.Address) (*VaultState, error) {
	obj, err := b.Bucket.Get(db, vaultAddr)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, nil
	}
	return obj.Value().(*VaultState), nil
}

// Save persists the ledger under the vault address.
func (b VaultBucket) Save(db iou.KVStore, vaultAddr iou.Address, state *VaultState) error {
	obj := orm.NewSimpleObj(vaultAddr, state)
	return b.Bucket.Save(db, obj)
}

// TicketBucket is a type-safe wrapper around orm.Bucket for the
// withdrawal ticket slots.
type TicketBucket struct {
	orm.Bucket
}

// NewTicketBucket initializes a TicketBucket with default name.
func NewTicketBucket() TicketBucket {
	return TicketBucket{
		Bucket: orm.NewBucket(TicketBucketName,
			orm.NewSimpleObj(nil, &WithdrawalTicket{})),
	}
}

// Get loads the ticket stored under the slot address, or nil.
func (b TicketBucket) Get(db iou.ReadOnlyKVStore, ticketAddr iou.Address) (*WithdrawalTicket, error) {
	obj, err := b.Bucket.Get(db, ticketAddr)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, nil
	}
	return obj.Value().(*WithdrawalTicket), nil
}

// Save persists the ticket under the slot address.
func (b TicketBucket) Save(db iou.KVStore, ticketAddr iou.Address, ticket *WithdrawalTicket) error {
	obj := orm.NewSimpleObj(ticketAddr, ticket)
	return b.Bucket.Save(db, obj)
}
