package vault

import (
	"math"
	"testing"

	"github.com/iov-one/iou/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSharesFor(t *testing.T) {
	cases := map[string]struct {
		amount  uint64
		rate    uint64
		want    uint64
		wantErr *errors.Error
	}{
		"one to one":          {amount: 100, rate: RateScale, want: 100},
		"rate above one":      {amount: 100, rate: 2 * RateScale, want: 50},
		"rate below one":      {amount: 100, rate: RateScale / 2, want: 200},
		"floor division":      {amount: 100, rate: 1100000, want: 90},
		"zero amount":         {amount: 0, rate: RateScale, want: 0},
		"dust rounds to zero": {amount: 1, rate: 2 * RateScale, want: 0},
		"zero rate":           {amount: 100, rate: 0, wantErr: ErrInvalidRate},
		"tiny rate widens":    {amount: math.MaxUint64 / RateScale * 2, rate: 2 * RateScale, want: math.MaxUint64 / RateScale},
		"overflow":            {amount: math.MaxUint64, rate: 1, wantErr: errors.ErrOverflow},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := sharesFor(tc.amount, tc.rate)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "unexpected error: %+v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDepositFor(t *testing.T) {
	cases := map[string]struct {
		shares  uint64
		rate    uint64
		want    uint64
		wantErr *errors.Error
	}{
		"one to one":       {shares: 100, rate: RateScale, want: 100},
		"rate above one":   {shares: 50, rate: 1100000, want: 55},
		"floor division":   {shares: 3, rate: 1500000, want: 4},
		"zero shares":      {shares: 0, rate: RateScale, want: 0},
		"zero rate":        {shares: 100, rate: 0, wantErr: ErrInvalidRate},
		"widened multiply": {shares: math.MaxUint64 / 2, rate: 2 * RateScale, want: math.MaxUint64 - 1},
		"overflow":         {shares: math.MaxUint64, rate: 2 * RateScale, wantErr: errors.ErrOverflow},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := depositFor(tc.shares, tc.rate)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "unexpected error: %+v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

// Round trips must never pay out more than went in, whatever the
// rate. Both conversions round down.
func TestRoundTripNeverOvershoots(t *testing.T) {
	amounts := []uint64{1, 2, 3, 9, 10, 99, 100, 101, 999999, 1000000, 1000001, 123456789}
	rates := []uint64{1, 3, RateScale / 2, RateScale - 1, RateScale, RateScale + 1, 1100000, 7 * RateScale}

	for _, amount := range amounts {
		for _, rate := range rates {
			shares, err := sharesFor(amount, rate)
			require.NoError(t, err)
			back, err := depositFor(shares, rate)
			require.NoError(t, err)
			if back > amount {
				t.Fatalf("round trip minted value: %d -> %d shares -> %d at rate %d", amount, shares, back, rate)
			}
		}
	}
}
