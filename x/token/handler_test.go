package token

import (
	"context"
	"testing"

	"github.com/iov-one/iou/errors"
	"github.com/iov-one/iou/ioutest"
	"github.com/iov-one/iou/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendHandler(t *testing.T) {
	source := ioutest.NewCondition()
	dest := ioutest.NewAddress()
	asset := ioutest.NewAddress()

	cases := map[string]struct {
		signer  *ioutest.Auth
		msg     *SendMsg
		wantErr *errors.Error
	}{
		"happy path": {
			signer: &ioutest.Auth{Signer: source},
			msg: &SendMsg{
				Source:      source.Address(),
				Destination: dest,
				Asset:       asset,
				Amount:      20,
			},
		},
		"missing signature": {
			signer: &ioutest.Auth{},
			msg: &SendMsg{
				Source:      source.Address(),
				Destination: dest,
				Asset:       asset,
				Amount:      20,
			},
			wantErr: errors.ErrUnauthorized,
		},
		"insufficient funds": {
			signer: &ioutest.Auth{Signer: source},
			msg: &SendMsg{
				Source:      source.Address(),
				Destination: dest,
				Asset:       asset,
				Amount:      1000,
			},
			wantErr: errors.ErrInsufficientAmount,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			control := NewController(NewBucket())
			require.NoError(t, control.Issue(db, source.Address(), asset, 100))

			h := NewSendHandler(tc.signer, control)
			ctx := context.Background()
			tx := &ioutest.Tx{Msg: tc.msg}

			_, err := h.Check(ctx, db, tx)
			if tc.wantErr != nil && errors.ErrUnauthorized.Is(err) {
				// authorization failures surface in Check already
				assert.True(t, tc.wantErr.Is(err))
				return
			}
			require.NoError(t, err)

			_, err = h.Deliver(ctx, db, tx)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "unexpected error: %+v", err)
				return
			}
			require.NoError(t, err)

			got, err := control.Balance(db, tc.msg.Destination, asset)
			require.NoError(t, err)
			assert.Equal(t, tc.msg.Amount, got)
		})
	}
}
