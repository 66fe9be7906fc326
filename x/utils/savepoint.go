package utils

import (
	"github.com/iov-one/iou"
	"github.com/iov-one/iou/errors"
)

// Savepoint runs the wrapped handler against a cache of the store.
// The cache is written out when the handler succeeds and discarded
// when it errors, so an operation commits all of its writes or none
// of them. Multi-step operations like a vault deposit, which moves
// custody and issues shares in two writes, rely on this.
//
// The savepoint is inert until activated with OnCheck or OnDeliver.
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ iou.Decorator = Savepoint{}

// NewSavepoint returns a savepoint decorator that is not yet
// activated for any phase.
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck returns a savepoint that triggers on Check.
func (s Savepoint) OnCheck() Savepoint {
	return Savepoint{
		onCheck:   true,
		onDeliver: s.onDeliver,
	}
}

// OnDeliver returns a savepoint that triggers on Deliver.
func (s Savepoint) OnDeliver() Savepoint {
	return Savepoint{
		onCheck:   s.onCheck,
		onDeliver: true,
	}
}

// Check runs the next checker inside a cache when activated for the
// check phase.
func (s Savepoint) Check(ctx iou.Context, store iou.KVStore, tx iou.Tx, next iou.Checker) (*iou.CheckResult, error) {
	cstore, ok := store.(iou.CacheableKVStore)
	if !s.onCheck || !ok {
		return next.Check(ctx, store, tx)
	}

	cache := cstore.CacheWrap()
	res, err := next.Check(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "cannot write cache")
	}
	return res, nil
}

// Deliver runs the next deliverer inside a cache when activated for
// the deliver phase.
func (s Savepoint) Deliver(ctx iou.Context, store iou.KVStore, tx iou.Tx, next iou.Deliverer) (*iou.DeliverResult, error) {
	cstore, ok := store.(iou.CacheableKVStore)
	if !s.onDeliver || !ok {
		return next.Deliver(ctx, store, tx)
	}

	cache := cstore.CacheWrap()
	res, err := next.Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "cannot write cache")
	}
	return res, nil
}
