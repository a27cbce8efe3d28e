package middleware

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/xraph/autoload"
)

// RateLimit returns middleware that blocks until the limiter grants a
// token before invoking the handler. It guards dynamic dispatch storms —
// a resolver that generates handlers freely can otherwise amplify caller
// load onto a delegation target.
//
// The wait honors the call context; on cancellation or deadline the call
// fails without invoking the handler.
func RateLimit(limiter *rate.Limiter) autoload.Middleware {
	return func(ctx context.Context, c *autoload.Call, next autoload.Handler) (any, error) {
		if err := limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("autoload: rate limit %q: %w", c.Name, err)
		}
		return next(ctx, c.Args, c.Arity)
	}
}
