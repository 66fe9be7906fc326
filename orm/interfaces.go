package orm

import (
	"github.com/iov-one/iou"
)

// Object is what is stored in the bucket.
// Key is joined with the prefix to set the full key.
// Value is the data stored.
//
// This can be light wrapper around a protobuf-defined type.
type Object interface {
	// Validate returns error if the object is not in a valid
	// state to save to the db (eg. field missing, out of range, ...)
	Validate() error

	Key() []byte
	Value() iou.Persistent

	// Clone returns an independent copy of this object.
	Clone() Object
}

// CloneableData is an intelligent Value that can be embedded
// in a simple object to handle much of the details.
type CloneableData interface {
	iou.Persistent

	Validate() error
	Copy() CloneableData
}
