/*
Package iouapp wires the components of this repository into one
transaction processing stack: the message router with the vault and
token handlers, wrapped in the standard decorator chain.

The host provides the backing store, the authenticator and the
dispatch context. Everything below that line is assembled here.
*/
package iouapp

import (
	"github.com/iov-one/iou"
	"github.com/iov-one/iou/app"
	"github.com/iov-one/iou/x"
	"github.com/iov-one/iou/x/token"
	"github.com/iov-one/iou/x/utils"
	"github.com/iov-one/iou/x/vault"
)

// TokenControl returns a controller for custody functions.
func TokenControl() token.Controller {
	return token.NewController(token.NewBucket())
}

// Chain returns the standard decorator chain: recovery, logging
// and a savepoint. The savepoint runs every operation against a
// cache of the store, so a failing handler leaves no partial
// writes behind.
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewRecovery(),
		utils.NewLogging(),
		utils.NewSavepoint().OnCheck().OnDeliver(),
	)
}

// Router returns a router dispatching to all handlers of this
// application.
func Router(authFn x.Authenticator, control token.Controller) *app.Router {
	r := app.NewRouter()
	token.RegisterRoutes(r, authFn, control)
	vault.RegisterRoutes(r, authFn, control)
	return r
}

// Stack wires up the standard router with the standard decorator
// chain. The result processes one transaction per call, committing
// all of its writes or none of them.
func Stack(authFn x.Authenticator) iou.Handler {
	return Chain().WithHandler(Router(authFn, TokenControl()))
}

// Initializers returns the genesis initializers of all extensions,
// in the order they should be applied.
func Initializers() []iou.Initializer {
	return []iou.Initializer{
		token.Initializer{},
		vault.Initializer{},
	}
}
