package vault

import (
	"math/bits"

	"github.com/iov-one/iou/errors"
)

// RateScale is the fixed-point scale of exchange rates. A rate
// equal to RateScale converts 1:1 between deposit and share units.
const RateScale uint64 = 1000000

// sharesFor converts a deposit amount into share units at the
// given rate, rounding down. The multiplication is widened to
// 128 bits so it cannot overflow before the division.
func sharesFor(amount uint64, rate uint64) (uint64, error) {
	if rate == 0 {
		return 0, errors.Wrap(ErrInvalidRate, "zero rate")
	}
	return mulDiv(amount, RateScale, rate)
}

// depositFor converts a share amount back into deposit units at
// the given rate, rounding down.
func depositFor(shares uint64, rate uint64) (uint64, error) {
	if rate == 0 {
		return 0, errors.Wrap(ErrInvalidRate, "zero rate")
	}
	return mulDiv(shares, rate, RateScale)
}

// mulDiv returns floor(a*b/div) with a 128 bit intermediate.
func mulDiv(a uint64, b uint64, div uint64) (uint64, error) {
	hi, lo := bits.Mul64(a, b)
	// the quotient fits 64 bits only when hi < div
	if hi >= div {
		return 0, errors.Wrapf(errors.ErrOverflow, "%d * %d / %d", a, b, div)
	}
	quo, _ := bits.Div64(hi, lo, div)
	return quo, nil
}
