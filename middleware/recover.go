package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/xraph/autoload"
)

// Recover returns middleware that recovers from panics in the handler
// chain. Panics are converted to errors and logged with a stack trace.
func Recover(logger *slog.Logger) autoload.Middleware {
	return func(ctx context.Context, c *autoload.Call, next autoload.Handler) (v any, retErr error) {
		defer func() {
			if r := recover(); r != nil {
				stack := string(debug.Stack())
				logger.Error("handler panicked",
					slog.String("name", c.Name),
					slog.String("call_id", c.ID.String()),
					slog.Any("panic", r),
					slog.String("stack", stack),
				)
				v = nil
				retErr = fmt.Errorf("panic in handler %s: %v", c.Name, r)
			}
		}()
		return next(ctx, c.Args, c.Arity)
	}
}
