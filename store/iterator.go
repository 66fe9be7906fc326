package store

import (
	"github.com/iov-one/iou"
	"github.com/iov-one/iou/errors"
)

type keyValue struct {
	key   []byte
	value []byte
}

// sliceIterator wraps an in-memory, already ordered set of key-value pairs.
type sliceIterator struct {
	data []keyValue
	idx  int
}

var _ iou.Iterator = (*sliceIterator)(nil)

func newSliceIterator(data []keyValue) *sliceIterator {
	return &sliceIterator{
		data: data,
	}
}

// Next returns the next key-value pair, or ErrIteratorDone when exhausted.
func (s *sliceIterator) Next() ([]byte, []byte, error) {
	if s.idx >= len(s.data) {
		return nil, nil, errors.ErrIteratorDone
	}
	kv := s.data[s.idx]
	s.idx++
	return kv.key, kv.value, nil
}

// Release frees the iterator. Any further Next call returns done.
func (s *sliceIterator) Release() {
	s.idx = len(s.data)
}

// consume drains the given iterator into a slice and releases it.
func consume(it iou.Iterator) ([]keyValue, error) {
	defer it.Release()

	var data []keyValue
	for {
		key, value, err := it.Next()
		switch {
		case err == nil:
			data = append(data, keyValue{key: key, value: value})
		case errors.ErrIteratorDone.Is(err):
			return data, nil
		default:
			return nil, err
		}
	}
}
