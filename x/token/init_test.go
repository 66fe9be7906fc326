package token

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/iov-one/iou"
	"github.com/iov-one/iou/ioutest"
	"github.com/iov-one/iou/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenesisInitializer(t *testing.T) {
	acct := ioutest.NewAddress()
	asset := ioutest.NewAddress()

	genesis := fmt.Sprintf(`[
		{"address": %q, "tokens": [{"asset": %q, "amount": 1234}]}
	]`, acct.String(), asset.String())
	opts := iou.Options{"tokens": json.RawMessage(genesis)}

	db := store.MemStore()
	var ini Initializer
	require.NoError(t, ini.FromGenesis(opts, db))

	got, err := NewController(NewBucket()).Balance(db, acct, asset)
	require.NoError(t, err)
	assert.Equal(t, uint64(1234), got)
}
