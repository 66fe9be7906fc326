package store

import (
	"github.com/iov-one/iou"
)

// Op describes a single operation to be performed on a store. It is
// recorded by batches so a group of writes can be applied at once.
type Op struct {
	delete bool
	key    []byte
	value  []byte
}

// SetOp returns an Op that sets the given key.
func SetOp(key, value []byte) Op {
	return Op{
		delete: false,
		key:    key,
		value:  value,
	}
}

// DelOp returns an Op that deletes the given key.
func DelOp(key []byte) Op {
	return Op{
		delete: true,
		key:    key,
	}
}

// Apply performs the operation on the given writable store.
func (o Op) Apply(out iou.SetDeleter) error {
	if o.delete {
		return out.Delete(o.key)
	}
	return out.Set(o.key, o.value)
}

// IsSetOp returns true if it is setting a value (false for delete).
func (o Op) IsSetOp() bool {
	return !o.delete
}

// Key returns a copy of the key affected by this operation.
func (o Op) Key() []byte {
	return append([]byte(nil), o.key...)
}

// NonAtomicBatch saves all ops and applies them in order on Write. It
// provides no atomicity guarantee beyond what the output store provides,
// which is fine when the output is an in-memory cache layer.
type NonAtomicBatch struct {
	out iou.SetDeleter
	ops []Op
}

var _ iou.Batch = (*NonAtomicBatch)(nil)

// NewNonAtomicBatch creates a batch that writes to the given output on
// Write.
func NewNonAtomicBatch(out iou.SetDeleter) *NonAtomicBatch {
	return &NonAtomicBatch{
		out: out,
	}
}

// Set adds a set operation to the batch.
func (b *NonAtomicBatch) Set(key, value []byte) error {
	b.ops = append(b.ops, SetOp(key, value))
	return nil
}

// Delete adds a delete operation to the batch.
func (b *NonAtomicBatch) Delete(key []byte) error {
	b.ops = append(b.ops, DelOp(key))
	return nil
}

// Write applies all stored operations to the output store in order.
func (b *NonAtomicBatch) Write() error {
	for _, op := range b.ops {
		if err := op.Apply(b.out); err != nil {
			return err
		}
	}
	b.ops = nil
	return nil
}

// ShowOps returns a copy of all ops recorded so far, mainly for tests and
// debugging.
func (b *NonAtomicBatch) ShowOps() []Op {
	ops := make([]Op, len(b.ops))
	copy(ops, b.ops)
	return ops
}

// EmptyKVStore never holds any data. Writes are accepted and dropped.
// It serves as the bottom layer below a fully in-memory cache.
type EmptyKVStore struct{}

var _ iou.KVStore = EmptyKVStore{}

// Get always returns nil.
func (EmptyKVStore) Get(key []byte) ([]byte, error) { return nil, nil }

// Has always returns false.
func (EmptyKVStore) Has(key []byte) (bool, error) { return false, nil }

// Set is a noop.
func (EmptyKVStore) Set(key, value []byte) error { return nil }

// Delete is a noop.
func (EmptyKVStore) Delete(key []byte) error { return nil }

// Iterator is always empty.
func (EmptyKVStore) Iterator(start, end []byte) (iou.Iterator, error) {
	return newSliceIterator(nil), nil
}

// ReverseIterator is always empty.
func (EmptyKVStore) ReverseIterator(start, end []byte) (iou.Iterator, error) {
	return newSliceIterator(nil), nil
}

// NewBatch returns a batch that drops everything on Write.
func (e EmptyKVStore) NewBatch() iou.Batch { return NewNonAtomicBatch(e) }
