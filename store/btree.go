package store

import (
	"bytes"
	"sort"

	"github.com/google/btree"
	"github.com/iov-one/iou"
)

const (
	// DefaultFreeListSize is the size we hold for free nodes in the
	// btree.
	DefaultFreeListSize = btree.DefaultFreeListSize
)

// BTreeCacheable adds a simple btree-based CacheWrap
// strategy to a KVStore.
type BTreeCacheable struct {
	iou.KVStore
}

var _ iou.CacheableKVStore = BTreeCacheable{}

// CacheWrap returns a BTreeCacheWrap that can be later
// written to this store, or rolled back.
func (b BTreeCacheable) CacheWrap() iou.KVCacheWrap {
	return NewBTreeCacheWrap(b.KVStore, b.NewBatch(), nil)
}

// MemStore returns a simple implementation useful for tests.
// There is no persistence here.
func MemStore() iou.CacheableKVStore {
	e := EmptyKVStore{}
	return NewBTreeCacheWrap(e, e.NewBatch(), nil)
}

// BTreeCacheWrap places a btree cache over a KVStore.
type BTreeCacheWrap struct {
	bt    *btree.BTree
	free  *btree.FreeList
	back  iou.ReadOnlyKVStore
	batch iou.Batch
}

var _ iou.KVCacheWrap = BTreeCacheWrap{}

// NewBTreeCacheWrap initializes a BTree to cache around this kv store. Use
// ReadOnlyKVStore to emphasize that all writes must go through the Batch.
//
// free may be nil, but set to an existing list to reuse it
// for memory savings.
func NewBTreeCacheWrap(kv iou.ReadOnlyKVStore, batch iou.Batch, free *btree.FreeList) BTreeCacheWrap {
	if free == nil {
		free = btree.NewFreeList(DefaultFreeListSize)
	}
	return BTreeCacheWrap{
		bt:    btree.NewWithFreeList(2, free),
		free:  free,
		back:  kv,
		batch: batch,
	}
}

// CacheWrap layers another BTree on top of this one.
// Don't change horses in mid-stream....
//
// Uses NonAtomicBatch as it is only backed by another in-memory batch.
func (b BTreeCacheWrap) CacheWrap() iou.KVCacheWrap {
	return NewBTreeCacheWrap(b, b.NewBatch(), b.free)
}

// NewBatch returns a non-atomic batch that eventually may write to
// our cachewrap.
func (b BTreeCacheWrap) NewBatch() iou.Batch {
	return NewNonAtomicBatch(b)
}

// Write syncs with the underlying store.
func (b BTreeCacheWrap) Write() error {
	return b.batch.Write()
}

// Discard invalidates this CacheWrap and releases all data.
func (b BTreeCacheWrap) Discard() {
	b.bt.Clear(true)
}

// Set writes to the BTree and adds to the batch.
func (b BTreeCacheWrap) Set(key, value []byte) error {
	b.bt.ReplaceOrInsert(setItem{key: key, value: value})
	return b.batch.Set(key, value)
}

// Delete deletes from the BTree and adds to the batch.
func (b BTreeCacheWrap) Delete(key []byte) error {
	b.bt.ReplaceOrInsert(deleteItem{key: key})
	return b.batch.Delete(key)
}

// Get reads from the BTree if there is a cached value,
// else it falls back to the backing store.
func (b BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	res := b.bt.Get(lookupItem{key: key})
	switch t := res.(type) {
	case setItem:
		return t.value, nil
	case deleteItem:
		return nil, nil
	case nil:
		return b.back.Get(key)
	}
	panic("unexpected item in btree")
}

// Has reads from the BTree if there is a cached value,
// else it falls back to the backing store.
func (b BTreeCacheWrap) Has(key []byte) (bool, error) {
	res := b.bt.Get(lookupItem{key: key})
	switch res.(type) {
	case setItem:
		return true, nil
	case deleteItem:
		return false, nil
	case nil:
		return b.back.Has(key)
	}
	panic("unexpected item in btree")
}

// Iterator over a domain of keys in ascending order.
//
// The cached writes are merged with the backing store content. The merged
// view is materialized up front; cache wraps live for a single transaction
// and hold few entries, so this is plenty fast for dispatch use.
func (b BTreeCacheWrap) Iterator(start, end []byte) (iou.Iterator, error) {
	data, err := b.mergedRange(start, end)
	if err != nil {
		return nil, err
	}
	return newSliceIterator(data), nil
}

// ReverseIterator over a domain of keys in descending order.
func (b BTreeCacheWrap) ReverseIterator(start, end []byte) (iou.Iterator, error) {
	data, err := b.mergedRange(start, end)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(data)-1; i < j; i, j = i+1, j-1 {
		data[i], data[j] = data[j], data[i]
	}
	return newSliceIterator(data), nil
}

func (b BTreeCacheWrap) mergedRange(start, end []byte) ([]keyValue, error) {
	backing, err := b.back.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	parent, err := consume(backing)
	if err != nil {
		return nil, err
	}

	merged := make(map[string][]byte, len(parent))
	for _, kv := range parent {
		merged[string(kv.key)] = kv.value
	}

	walk := func(i btree.Item) bool {
		switch t := i.(type) {
		case setItem:
			merged[string(t.key)] = t.value
		case deleteItem:
			delete(merged, string(t.key))
		}
		return true
	}
	switch {
	case start == nil && end == nil:
		b.bt.Ascend(walk)
	case start == nil:
		b.bt.AscendLessThan(lookupItem{key: end}, walk)
	case end == nil:
		b.bt.AscendGreaterOrEqual(lookupItem{key: start}, walk)
	default:
		b.bt.AscendRange(lookupItem{key: start}, lookupItem{key: end}, walk)
	}

	keys := make([]string, 0, len(merged))
	for key := range merged {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	data := make([]keyValue, len(keys))
	for i, key := range keys {
		data[i] = keyValue{key: []byte(key), value: merged[key]}
	}
	return data, nil
}

// bkey returns the ordering key of any btree item we store.
func bkey(i btree.Item) []byte {
	switch t := i.(type) {
	case setItem:
		return t.key
	case deleteItem:
		return t.key
	case lookupItem:
		return t.key
	}
	panic("unexpected item in btree")
}

// setItem is a cached write.
type setItem struct {
	key   []byte
	value []byte
}

func (i setItem) Less(than btree.Item) bool {
	return bytes.Compare(i.key, bkey(than)) < 0
}

// deleteItem is a cached delete, shadowing any value in the backing store.
type deleteItem struct {
	key []byte
}

func (i deleteItem) Less(than btree.Item) bool {
	return bytes.Compare(i.key, bkey(than)) < 0
}

// lookupItem is only used for searching the btree, never stored.
type lookupItem struct {
	key []byte
}

func (i lookupItem) Less(than btree.Item) bool {
	return bytes.Compare(i.key, bkey(than)) < 0
}
