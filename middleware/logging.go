package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/xraph/autoload"
)

// Logging returns middleware that logs call start and completion.
func Logging(logger *slog.Logger) autoload.Middleware {
	return func(ctx context.Context, c *autoload.Call, next autoload.Handler) (any, error) {
		logger.Debug("call started",
			slog.String("name", c.Name),
			slog.String("call_id", c.ID.String()),
			slog.String("arity", c.Arity.String()),
		)

		start := time.Now()
		v, err := next(ctx, c.Args, c.Arity)
		elapsed := time.Since(start)

		if err != nil {
			logger.Error("call failed",
				slog.String("name", c.Name),
				slog.String("call_id", c.ID.String()),
				slog.Duration("elapsed", elapsed),
				slog.String("error", err.Error()),
			)
		} else {
			logger.Info("call completed",
				slog.String("name", c.Name),
				slog.String("call_id", c.ID.String()),
				slog.Duration("elapsed", elapsed),
			)
		}

		return v, err
	}
}
