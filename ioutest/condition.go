package ioutest

import (
	"crypto/rand"

	"github.com/iov-one/iou"
)

// NewCondition returns a random condition. Each call returns a different
// value. Conditions generated here carry random data instead of a public
// key, because signature verification is outside of this state machine.
func NewCondition() iou.Condition {
	data := make([]byte, 32)
	if _, err := rand.Read(data); err != nil {
		panic(err)
	}
	return iou.NewCondition("test", "random", data)
}

// NewAddress returns an address of a random condition.
func NewAddress() iou.Address {
	return NewCondition().Address()
}
