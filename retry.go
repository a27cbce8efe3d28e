package autoload

import (
	"context"
	"time"

	"github.com/xraph/autoload/backoff"
)

// RetryResolver decorates a resolver with bounded retries for transient
// resolution errors (a flaky delegation target, a registry still warming
// up). Only Resolve errors are retried; generations, answers, and
// declines pass through on the first verdict — a decline is a definitive
// answer, not a failure.
type RetryResolver struct {
	inner    Resolver
	attempts int
	strategy backoff.Strategy
}

// Compile-time interface checks.
var (
	_ Resolver         = (*RetryResolver)(nil)
	_ CapabilityProber = (*RetryResolver)(nil)
)

// NewRetryResolver wraps inner with up to attempts total tries, delayed
// by the given strategy. A nil strategy uses backoff.Default().
func NewRetryResolver(inner Resolver, attempts int, strategy backoff.Strategy) *RetryResolver {
	if attempts < 1 {
		attempts = 1
	}
	if strategy == nil {
		strategy = backoff.Default()
	}
	return &RetryResolver{
		inner:    inner,
		attempts: attempts,
		strategy: strategy,
	}
}

// Resolve implements Resolver.
func (r *RetryResolver) Resolve(ctx context.Context, c *Call) (Resolution, error) {
	var lastErr error
	for attempt := 1; attempt <= r.attempts; attempt++ {
		resolution, err := r.inner.Resolve(ctx, c)
		if err == nil {
			return resolution, nil
		}
		lastErr = err

		if attempt == r.attempts {
			break
		}
		timer := time.NewTimer(r.strategy.Delay(attempt))
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return Resolution{}, ctx.Err()
		}
	}
	return Resolution{}, lastErr
}

// CanResolve implements CapabilityProber when the wrapped resolver does;
// otherwise it conservatively reports false.
func (r *RetryResolver) CanResolve(ctx context.Context, name string) bool {
	if p, ok := r.inner.(CapabilityProber); ok {
		return p.CanResolve(ctx, name)
	}
	return false
}
