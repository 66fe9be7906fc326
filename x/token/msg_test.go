package token

import (
	"testing"

	"github.com/iov-one/iou"
	"github.com/iov-one/iou/errors"
	"github.com/iov-one/iou/ioutest"
	"github.com/stretchr/testify/assert"
)

func TestSendMsgValidate(t *testing.T) {
	source := ioutest.NewAddress()
	dest := ioutest.NewAddress()
	asset := ioutest.NewAddress()

	cases := map[string]struct {
		msg     *SendMsg
		wantErr *errors.Error
	}{
		"valid": {
			msg: &SendMsg{Source: source, Destination: dest, Asset: asset, Amount: 1},
		},
		"missing source": {
			msg:     &SendMsg{Destination: dest, Asset: asset, Amount: 1},
			wantErr: errors.ErrEmpty,
		},
		"truncated destination": {
			msg:     &SendMsg{Source: source, Destination: dest[:5], Asset: asset, Amount: 1},
			wantErr: errors.ErrInput,
		},
		"missing asset": {
			msg:     &SendMsg{Source: source, Destination: dest, Amount: 1},
			wantErr: errors.ErrEmpty,
		},
		"zero amount": {
			msg:     &SendMsg{Source: source, Destination: dest, Asset: asset},
			wantErr: errors.ErrAmount,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.msg.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.True(t, tc.wantErr.Is(err), "unexpected error: %+v", err)
			}
		})
	}
}

func TestSendMsgPath(t *testing.T) {
	var _ iou.Msg = (*SendMsg)(nil)
	assert.Equal(t, "token/send", (&SendMsg{}).Path())
}
