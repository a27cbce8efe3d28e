// Package backoff provides pluggable delay strategies for retrying
// fallback resolution. All strategies are stateless and safe for
// concurrent use.
package backoff

import (
	"math"
	"math/rand/v2"
	"time"
)

// Strategy computes the delay before a retry attempt.
type Strategy interface {
	// Delay returns how long to wait before retry attempt n (1-indexed).
	// Attempt 1 is the first retry after the initial failure.
	Delay(attempt int) time.Duration
}

// Constant always returns the same delay regardless of attempt number.
type Constant struct {
	Interval time.Duration
}

// Delay returns the fixed interval.
func (c Constant) Delay(_ int) time.Duration {
	return c.Interval
}

// Exponential doubles the delay each attempt, capped at Max. With Jitter
// set, the delay is drawn uniformly from [0, capped base], which prevents
// a thundering herd when many callers retry a shared resolver at once.
type Exponential struct {
	Initial time.Duration
	Max     time.Duration
	Jitter  bool
}

// Delay returns min(Initial * 2^(attempt-1), Max), randomized when
// Jitter is set.
func (e Exponential) Delay(attempt int) time.Duration {
	base := float64(e.Initial) * math.Pow(2, float64(attempt-1))
	if e.Max > 0 && base > float64(e.Max) {
		base = float64(e.Max)
	}
	if e.Jitter {
		return time.Duration(rand.Float64() * base) //nolint:gosec // jitter intentionally uses non-crypto rand
	}
	return time.Duration(base)
}

// Default returns the strategy used when none is configured: exponential
// with full jitter, 100ms initial and 5s max. Resolution retries are
// in-band with the original call, so the ceiling stays low.
func Default() Strategy {
	return Exponential{Initial: 100 * time.Millisecond, Max: 5 * time.Second, Jitter: true}
}
