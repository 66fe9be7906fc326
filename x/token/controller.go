package token

import (
	"github.com/iov-one/iou"
	"github.com/iov-one/iou/errors"
)

// Controller is the functionality needed by other extensions
// to move tokens between accounts. BaseController is the
// standard implementation.
type Controller interface {
	// Balance returns the amount of asset held by an account.
	// A missing account counts as zero.
	Balance(db iou.ReadOnlyKVStore, account iou.Address, asset iou.Address) (uint64, error)
	// Move transfers amount of asset between two accounts.
	Move(db iou.KVStore, src iou.Address, dest iou.Address, asset iou.Address, amount uint64) error
	// Issue creates amount of asset in the destination account.
	Issue(db iou.KVStore, dest iou.Address, asset iou.Address, amount uint64) error
	// Destroy removes amount of asset from the source account.
	Destroy(db iou.KVStore, src iou.Address, asset iou.Address, amount uint64) error
}

// BaseController implements Controller on top of a wallet Bucket.
type BaseController struct {
	bucket Bucket
}

var _ Controller = BaseController{}

// NewController returns a base controller implementation.
func NewController(bucket Bucket) BaseController {
	return BaseController{bucket: bucket}
}

// Balance returns the amount of asset held by an account.
func (c BaseController) Balance(db iou.ReadOnlyKVStore, account iou.Address, asset iou.Address) (uint64, error) {
	wallet, err := c.bucket.Get(db, account)
	if err != nil {
		return 0, err
	}
	if wallet == nil {
		return 0, nil
	}
	return wallet.Balance(asset), nil
}

// Move transfers amount of asset from src to dest. It fails if
// src does not hold enough, or if the amount is zero.
func (c BaseController) Move(db iou.KVStore, src iou.Address, dest iou.Address, asset iou.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero transfer")
	}

	sender, err := c.bucket.Get(db, src)
	if err != nil {
		return err
	}
	if sender == nil {
		return errors.Wrapf(errors.ErrEmpty, "account %s", src)
	}
	if err := sender.Subtract(asset, amount); err != nil {
		return err
	}

	// a transfer to self must not double-load the wallet
	recipient := sender
	if !src.Equals(dest) {
		recipient, err = c.bucket.GetOrCreate(db, dest)
		if err != nil {
			return err
		}
	}
	if err := recipient.Add(asset, amount); err != nil {
		return err
	}

	if err := c.bucket.Save(db, sender); err != nil {
		return err
	}
	if src.Equals(dest) {
		return nil
	}
	return c.bucket.Save(db, recipient)
}

// Issue adds amount of asset to the destination account.
func (c BaseController) Issue(db iou.KVStore, dest iou.Address, asset iou.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero issue")
	}

	recipient, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return err
	}
	if err := recipient.Add(asset, amount); err != nil {
		return err
	}
	return c.bucket.Save(db, recipient)
}

// Destroy removes amount of asset from the source account.
func (c BaseController) Destroy(db iou.KVStore, src iou.Address, asset iou.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero destroy")
	}

	holder, err := c.bucket.Get(db, src)
	if err != nil {
		return err
	}
	if holder == nil {
		return errors.Wrapf(errors.ErrEmpty, "account %s", src)
	}
	if err := holder.Subtract(asset, amount); err != nil {
		return err
	}
	return c.bucket.Save(db, holder)
}
