package iou

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestContextHeight(t *testing.T) {
	ctx := context.Background()

	_, ok := GetHeight(ctx)
	assert.False(t, ok)

	ctx = WithHeight(ctx, 123)
	height, ok := GetHeight(ctx)
	assert.True(t, ok)
	assert.Equal(t, int64(123), height)

	assert.Panics(t, func() { WithHeight(ctx, 456) })
}

func TestContextChainID(t *testing.T) {
	ctx := context.Background()

	assert.Panics(t, func() { GetChainID(ctx) })
	// too short and invalid characters are rejected
	assert.Panics(t, func() { WithChainID(ctx, "foo") })
	assert.Panics(t, func() { WithChainID(ctx, "no spaces allowed") })

	ctx = WithChainID(ctx, "test-chain-1")
	assert.Equal(t, "test-chain-1", GetChainID(ctx))

	assert.Panics(t, func() { WithChainID(ctx, "other-chain-2") })
}

func TestContextLogger(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, DefaultLogger, GetLogger(ctx))

	logger := log.NewTMLogger(os.Stdout)
	ctx = WithLogger(ctx, logger)
	assert.Equal(t, logger, GetLogger(ctx))

	// last one set wins
	ctx = WithLogger(ctx, DefaultLogger)
	assert.Equal(t, DefaultLogger, GetLogger(ctx))
}
