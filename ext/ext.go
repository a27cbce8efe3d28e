// Package ext defines the extension system for autoload domains.
// Extensions are notified of dispatch lifecycle events (misses, handler
// generation, declines, depth-guard trips, etc.) and can react to them —
// audit trails, metrics, alerting.
//
// Each lifecycle hook is a separate interface so extensions opt in only
// to the events they care about.
package ext

import (
	"context"
	"time"

	"github.com/xraph/autoload"
)

// Extension is the base interface all extensions must implement.
type Extension interface {
	// Name returns a unique human-readable name for the extension.
	Name() string
}

// ──────────────────────────────────────────────────
// Resolution lifecycle hooks
// ──────────────────────────────────────────────────

// DispatchMiss is called when a lookup misses, before any reserved-name
// or resolver handling.
type DispatchMiss interface {
	OnDispatchMiss(ctx context.Context, c *autoload.Call) error
}

// HandlerGenerated is called after a resolver-generated handler is
// installed. elapsed covers the resolver invocation.
type HandlerGenerated interface {
	OnHandlerGenerated(ctx context.Context, c *autoload.Call, elapsed time.Duration) error
}

// ResolverAnswered is called when the resolver answered a call directly
// without installing a handler.
type ResolverAnswered interface {
	OnResolverAnswered(ctx context.Context, c *autoload.Call) error
}

// ResolverDeclined is called when the resolver declined a name.
type ResolverDeclined interface {
	OnResolverDeclined(ctx context.Context, c *autoload.Call) error
}

// ReservedSkipped is called when a miss on a reserved name bypassed
// resolution and resolved to the no-op outcome.
type ReservedSkipped interface {
	OnReservedSkipped(ctx context.Context, c *autoload.Call) error
}

// RecursionBlocked is called when the depth guard stopped a recursive
// fallback chain.
type RecursionBlocked interface {
	OnRecursionBlocked(ctx context.Context, c *autoload.Call, depth int) error
}

// GenerationTimedOut is called when a waiter's bounded wait on an
// in-progress generation expired.
type GenerationTimedOut interface {
	OnGenerationTimedOut(ctx context.Context, name string) error
}

// ──────────────────────────────────────────────────
// Call completion hook
// ──────────────────────────────────────────────────

// DispatchDone is called once per dispatch with the terminal outcome.
// err is nil on success; outcome is meaningful only then.
type DispatchDone interface {
	OnDispatchDone(ctx context.Context, c *autoload.Call, outcome autoload.Outcome, err error, elapsed time.Duration) error
}
