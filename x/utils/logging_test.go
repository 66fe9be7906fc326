package utils

import (
	"context"
	"testing"

	"github.com/iov-one/iou"
	"github.com/iov-one/iou/errors"
	"github.com/iov-one/iou/ioutest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Logging must report results and errors without altering them.
func TestLoggingPassesThrough(t *testing.T) {
	l := NewLogging()
	ctx := context.Background()
	tx := &ioutest.Tx{Msg: &ioutest.Msg{RoutePath: "test/demo"}}

	h := &ioutest.Handler{
		CheckResult:   iou.CheckResult{Log: "all good", GasAllocated: 100},
		DeliverResult: iou.DeliverResult{Log: "done"},
	}
	res, err := l.Check(ctx, nil, tx, h)
	require.NoError(t, err)
	assert.Equal(t, int64(100), res.GasAllocated)

	dres, err := l.Deliver(ctx, nil, tx, h)
	require.NoError(t, err)
	assert.Equal(t, "done", dres.Log)
	assert.Equal(t, 2, h.CallCount())
}

func TestLoggingKeepsErrors(t *testing.T) {
	l := NewLogging()
	ctx := context.Background()
	tx := &ioutest.Tx{Msg: &ioutest.Msg{RoutePath: "test/demo"}}

	h := &ioutest.Handler{
		CheckErr:   errors.ErrUnauthorized.New("nope"),
		DeliverErr: errors.ErrState.New("broken"),
	}
	_, err := l.Check(ctx, nil, tx, h)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	_, err = l.Deliver(ctx, nil, tx, h)
	assert.True(t, errors.ErrState.Is(err))
}
