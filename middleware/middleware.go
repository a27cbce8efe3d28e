package middleware

import (
	"context"

	"github.com/xraph/autoload"
)

// Chain composes multiple middleware into a single Middleware.
// Middleware are applied right-to-left: the first middleware in the
// list is the outermost wrapper.
//
// Example: Chain(logging, recover, ratelimit) executes as:
//
//	logging → recover → ratelimit → handler
func Chain(mws ...autoload.Middleware) autoload.Middleware {
	return func(ctx context.Context, c *autoload.Call, next autoload.Handler) (any, error) {
		// Build the chain from the end backwards.
		h := next
		for i := len(mws) - 1; i >= 0; i-- {
			mw := mws[i]
			prev := h
			h = func(ctx context.Context, args []any, arity autoload.Arity) (any, error) {
				return mw(ctx, c, prev)
			}
		}
		return h(ctx, c.Args, c.Arity)
	}
}
