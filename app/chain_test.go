package app

import (
	"context"
	"testing"

	"github.com/iov-one/iou/errors"
	"github.com/iov-one/iou/ioutest"
	"github.com/stretchr/testify/assert"
)

func TestChain(t *testing.T) {
	h := &ioutest.Handler{}
	d1 := &ioutest.Decorator{}
	d2 := &ioutest.Decorator{}
	d3 := &ioutest.Decorator{}

	stack := ChainDecorators(d1, d2).Chain(d3).WithHandler(h)

	ctx := context.Background()
	if _, err := stack.Check(ctx, nil, nil); err != nil {
		t.Fatalf("unexpected check error: %+v", err)
	}
	if _, err := stack.Deliver(ctx, nil, nil); err != nil {
		t.Fatalf("unexpected deliver error: %+v", err)
	}

	assert.Equal(t, 2, d1.CallCount())
	assert.Equal(t, 2, d2.CallCount())
	assert.Equal(t, 2, d3.CallCount())
	assert.Equal(t, 2, h.CallCount())
}

func TestChainAbort(t *testing.T) {
	h := &ioutest.Handler{}
	d1 := &ioutest.Decorator{}
	d2 := &ioutest.Decorator{
		CheckErr:   errors.ErrUnauthorized.New("no signature"),
		DeliverErr: errors.ErrUnauthorized.New("no signature"),
	}

	stack := ChainDecorators(d1, d2).WithHandler(h)

	ctx := context.Background()
	_, err := stack.Check(ctx, nil, nil)
	assert.True(t, errors.ErrUnauthorized.Is(err))
	_, err = stack.Deliver(ctx, nil, nil)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	// The second decorator failed, so the handler was never reached.
	assert.Equal(t, 2, d1.CallCount())
	assert.Equal(t, 2, d2.CallCount())
	assert.Equal(t, 0, h.CallCount())
}
