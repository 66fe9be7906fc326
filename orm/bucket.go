/*
Package orm provides an easy to use db wrapper.

Break state space into prefixed sections called Buckets.
* Each bucket contains only one type of object.
* It has a primary index, which may be a deterministically derived address.
* Easy queries for one object by key.
*/
package orm

import (
	"fmt"
	"regexp"

	"github.com/iov-one/iou"
	"github.com/iov-one/iou/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Bucket is a generic holder that stores data as well
// as references to the proto model of that data.
//
// This is a generic building block that should generally
// be embedded in a type-safe wrapper to ensure all data
// is the same type.
// Bucket is a prefixed subspace of the DB.
type Bucket struct {
	name   string
	prefix []byte
	proto  Object
}

// NewBucket creates a bucket to store data.
func NewBucket(name string, proto Object) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("Illegal bucket: %s", name))
	}

	return Bucket{
		name:   name,
		prefix: append([]byte(name), ':'),
		proto:  proto,
	}
}

// Name returns the name of the bucket.
func (b Bucket) Name() string {
	return b.name
}

// DBKey is the full key we store in the db, including prefix.
// We copy into a new array rather than use append, as we don't
// want consecutive calls to overwrite the same byte array.
func (b Bucket) DBKey(key []byte) []byte {
	l := len(b.prefix)
	out := make([]byte, l+len(key))
	copy(out, b.prefix)
	copy(out[l:], key)
	return out
}

// Get one element, or nil if no element is present for that key.
func (b Bucket) Get(db iou.ReadOnlyKVStore, key []byte) (Object, error) {
	bz, err := db.Get(b.DBKey(key))
	if err != nil {
		return nil, errors.Wrap(err, "cannot load from the store")
	}
	if bz == nil {
		return nil, nil
	}
	return b.Parse(key, bz)
}

// Has returns true if an element is stored under given key.
func (b Bucket) Has(db iou.ReadOnlyKVStore, key []byte) (bool, error) {
	return db.Has(b.DBKey(key))
}

// Parse takes a key and value data and
// reconstructs the data this Bucket would return.
//
// Used internally as part of Get.
// It is exposed mainly as a test helper, but can work for
// any code that wants to parse.
func (b Bucket) Parse(key, value []byte) (Object, error) {
	obj := b.proto.Clone()
	if err := obj.Value().Unmarshal(value); err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "parsing %s: %s", b.name, err)
	}
	if keyed, ok := obj.(keyer); ok {
		keyed.SetKey(key)
	}
	return obj, nil
}

// keyer is implemented by objects that learn their key when
// loaded from the store.
type keyer interface {
	SetKey([]byte)
}

// Save will write a model, it must be of the same type as proto.
func (b Bucket) Save(db iou.KVStore, model Object) error {
	if err := model.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}

	bz, err := model.Value().Marshal()
	if err != nil {
		return errors.Wrap(err, "cannot serialize")
	}
	return db.Set(b.DBKey(model.Key()), bz)
}

// Delete will remove the value at a key.
func (b Bucket) Delete(db iou.KVStore, key []byte) error {
	return db.Delete(b.DBKey(key))
}
