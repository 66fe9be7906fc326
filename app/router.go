package app

import (
	"regexp"

	"github.com/iov-one/iou"
	"github.com/iov-one/iou/errors"
)

// isPath ensures path is in the form of <extension>/<action>.
var isPath = regexp.MustCompile(`^[a-z_]{3,10}/[a-z_]{3,20}$`).MatchString

// Router allows us to register many handlers with different
// paths and then direct each message to the registered handler.
type Router struct {
	routes map[string]iou.Handler
}

var _ iou.Registry = (*Router)(nil)
var _ iou.Handler = (*Router)(nil)

// NewRouter initializes a router with no routes.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]iou.Handler),
	}
}

// Handle assigns given handler to handle processing of every message of the
// type of given message. Path must be unique, registering a path twice or
// registering an invalid path results in a panic as this is a programmer
// error during the application setup.
func (r *Router) Handle(m iou.Msg, h iou.Handler) {
	path := m.Path()
	if !isPath(path) {
		panic(errors.Wrapf(errors.ErrHuman, "invalid path %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(errors.Wrapf(errors.ErrHuman, "path %q already registered", path))
	}
	r.routes[path] = h
}

// handler returns the registered Handler for this path.
// If no path is found, it returns a noSuchPathHandler.
// This method always returns a non-nil Handler.
func (r *Router) handler(m iou.Msg) iou.Handler {
	path := m.Path()
	if h, ok := r.routes[path]; ok {
		return h
	}
	return noSuchPathHandler{path: path}
}

// Check dispatches to the proper handler based on the message path.
func (r *Router) Check(ctx iou.Context, store iou.KVStore, tx iou.Tx) (*iou.CheckResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot get message")
	}
	return r.handler(msg).Check(ctx, store, tx)
}

// Deliver dispatches to the proper handler based on the message path.
func (r *Router) Deliver(ctx iou.Context, store iou.KVStore, tx iou.Tx) (*iou.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot get message")
	}
	return r.handler(msg).Deliver(ctx, store, tx)
}

// noSuchPathHandler always returns ErrNotFound with the path that could not
// be routed.
type noSuchPathHandler struct {
	path string
}

var _ iou.Handler = noSuchPathHandler{}

func (h noSuchPathHandler) Check(iou.Context, iou.KVStore, iou.Tx) (*iou.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", h.path)
}

func (h noSuchPathHandler) Deliver(iou.Context, iou.KVStore, iou.Tx) (*iou.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", h.path)
}
