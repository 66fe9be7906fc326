package app

import (
	"github.com/iov-one/iou"
)

// Decorators holds a chain of decorators, not yet bound to a handler.
type Decorators struct {
	chain []iou.Decorator
}

// ChainDecorators takes a chain of decorators, and upon adding a final
// Handler, wraps them all into one Handler that will execute the given
// decorators in order before the business logic.
func ChainDecorators(chain ...iou.Decorator) Decorators {
	return Decorators{chain: chain}
}

// Chain appends more decorators to the current chain.
func (d Decorators) Chain(chain ...iou.Decorator) Decorators {
	return Decorators{chain: append(d.chain, chain...)}
}

// WithHandler binds the final handler and returns the complete stack.
func (d Decorators) WithHandler(h iou.Handler) iou.Handler {
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = decoratedHandler{
			decorator: d.chain[i],
			next:      h,
		}
	}
	return h
}

// decoratedHandler passes every call through its decorator before the next
// handler in the stack gets it.
type decoratedHandler struct {
	decorator iou.Decorator
	next      iou.Handler
}

var _ iou.Handler = decoratedHandler{}

func (h decoratedHandler) Check(ctx iou.Context, store iou.KVStore, tx iou.Tx) (*iou.CheckResult, error) {
	return h.decorator.Check(ctx, store, tx, h.next)
}

func (h decoratedHandler) Deliver(ctx iou.Context, store iou.KVStore, tx iou.Tx) (*iou.DeliverResult, error) {
	return h.decorator.Deliver(ctx, store, tx, h.next)
}
