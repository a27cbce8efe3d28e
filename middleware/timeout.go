package middleware

import (
	"context"
	"time"

	"github.com/xraph/autoload"
)

// Timeout returns middleware that enforces a per-call execution deadline.
// When the deadline is exceeded the call context is cancelled and the
// handler should return context.DeadlineExceeded. A non-positive duration
// makes the middleware a pass-through.
func Timeout(d time.Duration) autoload.Middleware {
	return func(ctx context.Context, c *autoload.Call, next autoload.Handler) (any, error) {
		if d > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, d)
			defer cancel()
		}
		return next(ctx, c.Args, c.Arity)
	}
}
