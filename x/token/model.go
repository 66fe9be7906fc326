package token

import (
	"bytes"
	"sort"

	"github.com/iov-one/iou"
	"github.com/iov-one/iou/errors"
	"github.com/iov-one/iou/orm"
)

// BucketName is where we store the balances.
const BucketName = "tokens"

//---- Set

// Validate requires that all tokens are sorted by asset with
// no duplicates and no zero amounts.
func (s *Set) Validate() error {
	var prev iou.Address
	for _, t := range s.GetTokens() {
		if t == nil {
			return errors.Wrap(errors.ErrEmpty, "nil token")
		}
		if err := t.Asset.Validate(); err != nil {
			return errors.Wrap(err, "asset")
		}
		if t.Amount == 0 {
			return errors.Wrapf(errors.ErrAmount, "zero amount of %s", t.Asset)
		}
		if prev != nil && bytes.Compare(prev, t.Asset) >= 0 {
			return errors.Wrapf(errors.ErrState, "unsorted asset %s", t.Asset)
		}
		prev = t.Asset
	}
	return nil
}

// Copy makes a new set with the same tokens.
func (s *Set) Copy() *Set {
	tokens := make([]*Token, len(s.GetTokens()))
	for i, t := range s.GetTokens() {
		tokens[i] = &Token{
			Asset:  t.Asset.Clone(),
			Amount: t.Amount,
		}
	}
	return &Set{Tokens: tokens}
}

//---- Wallet (Set object, balances + key)

// Wallet is the actual object that we pass around in our code.
// It contains a set of token balances as well as the address
// they belong to. It is connected to the Bucket to easily
// manipulate state.
//
// Wallet is a type-safe wrapper around orm.Object.
type Wallet struct {
	key   []byte
	value *Set
}

var _ orm.Object = (*Wallet)(nil)

// NewWallet creates an empty wallet with this address.
func NewWallet(key iou.Address) *Wallet {
	return &Wallet{
		key:   key,
		value: new(Set),
	}
}

// Value gets the value stored in the object.
func (w Wallet) Value() iou.Persistent {
	return w.value
}

// Key returns the key to store the object under.
func (w Wallet) Key() []byte {
	return w.key
}

// Validate makes sure the fields aren't empty.
// And delegates to the value validator.
func (w Wallet) Validate() error {
	if len(w.key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "missing key")
	}
	return w.value.Validate()
}

// SetKey may be used to update a wallet key.
func (w *Wallet) SetKey(key []byte) {
	w.key = key
}

// Clone will make a copy of this object.
func (w *Wallet) Clone() orm.Object {
	res := &Wallet{
		value: w.value.Copy(),
	}
	// only copy key if non-nil
	if len(w.key) > 0 {
		res.key = append([]byte(nil), w.key...)
	}
	return res
}

// Balance returns the amount of the given asset held.
// Missing assets count as zero.
func (w Wallet) Balance(asset iou.Address) uint64 {
	idx, ok := w.index(asset)
	if !ok {
		return 0
	}
	return w.value.Tokens[idx].Amount
}

// Add increases the balance of the given asset, keeping the
// set sorted. It fails with ErrOverflow when the sum does not
// fit a uint64.
func (w *Wallet) Add(asset iou.Address, amount uint64) error {
	if amount == 0 {
		return nil
	}
	idx, ok := w.index(asset)
	if !ok {
		tokens := w.value.Tokens
		tokens = append(tokens, nil)
		copy(tokens[idx+1:], tokens[idx:])
		tokens[idx] = &Token{Asset: asset.Clone(), Amount: amount}
		w.value.Tokens = tokens
		return nil
	}
	t := w.value.Tokens[idx]
	if t.Amount+amount < t.Amount {
		return errors.Wrapf(errors.ErrOverflow, "balance of %s", asset)
	}
	t.Amount += amount
	return nil
}

// Subtract decreases the balance of the given asset, removing
// the entry when it drains to zero. It fails with
// ErrInsufficientAmount when not enough is held.
func (w *Wallet) Subtract(asset iou.Address, amount uint64) error {
	if amount == 0 {
		return nil
	}
	idx, ok := w.index(asset)
	if !ok || w.value.Tokens[idx].Amount < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "balance of %s", asset)
	}
	t := w.value.Tokens[idx]
	t.Amount -= amount
	if t.Amount == 0 {
		w.value.Tokens = append(w.value.Tokens[:idx], w.value.Tokens[idx+1:]...)
	}
	return nil
}

// index returns the position of asset in the sorted token set,
// or the insertion position and false when absent.
func (w Wallet) index(asset iou.Address) (int, bool) {
	tokens := w.value.GetTokens()
	idx := sort.Search(len(tokens), func(i int) bool {
		return bytes.Compare(tokens[i].Asset, asset) >= 0
	})
	if idx < len(tokens) && tokens[idx].Asset.Equals(asset) {
		return idx, true
	}
	return idx, false
}

//--- token.Bucket - type-safe bucket

// Bucket is a type-safe wrapper around orm.Bucket.
type Bucket struct {
	orm.Bucket
}

// NewBucket initializes a token.Bucket with default name.
func NewBucket() Bucket {
	return Bucket{
		Bucket: orm.NewBucket(BucketName, NewWallet(nil)),
	}
}

// Get loads the wallet at given address, or nil if absent.
func (b Bucket) Get(db iou.ReadOnlyKVStore, key iou.Address) (*Wallet, error) {
	obj, err := b.Bucket.Get(db, key)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, nil
	}
	return obj.(*Wallet), nil
}

// GetOrCreate loads the wallet at given address, creating an
// empty one in memory if absent.
func (b Bucket) GetOrCreate(db iou.ReadOnlyKVStore, key iou.Address) (*Wallet, error) {
	wallet, err := b.Get(db, key)
	if err != nil {
		return nil, err
	}
	if wallet == nil {
		wallet = NewWallet(key)
	}
	return wallet, nil
}

// Save persists the wallet, dropping it from the store when it
// holds no tokens anymore.
func (b Bucket) Save(db iou.KVStore, wallet *Wallet) error {
	if len(wallet.value.GetTokens()) == 0 {
		return b.Bucket.Delete(db, wallet.Key())
	}
	return b.Bucket.Save(db, wallet)
}
