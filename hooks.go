package autoload

import (
	"context"
	"time"
)

// Hooks receives lifecycle events from a Domain. The ext package provides
// the standard fan-out implementation (ext.Registry); the interface is
// defined here so the engine does not import its own extension layer.
//
// Hook implementations must be safe for concurrent use and must not
// dispatch back into the emitting Domain.
type Hooks interface {
	// EmitDispatchMiss fires when a lookup misses, before any reserved
	// or resolver handling.
	EmitDispatchMiss(ctx context.Context, c *Call)

	// EmitHandlerGenerated fires after a resolver-generated handler is
	// installed. elapsed covers the resolver invocation.
	EmitHandlerGenerated(ctx context.Context, c *Call, elapsed time.Duration)

	// EmitResolverAnswered fires when the resolver answered directly
	// without installing a handler.
	EmitResolverAnswered(ctx context.Context, c *Call)

	// EmitResolverDeclined fires when the resolver declined the name.
	EmitResolverDeclined(ctx context.Context, c *Call)

	// EmitReservedSkipped fires when a miss on a reserved name bypassed
	// resolution and resolved to the no-op outcome.
	EmitReservedSkipped(ctx context.Context, c *Call)

	// EmitRecursionBlocked fires when the depth guard stopped a
	// recursive fallback chain.
	EmitRecursionBlocked(ctx context.Context, c *Call, depth int)

	// EmitGenerationTimedOut fires when a waiter's bounded wait on an
	// in-progress generation expired.
	EmitGenerationTimedOut(ctx context.Context, name string)

	// EmitDispatchDone fires once per Dispatch call with the terminal
	// outcome. err is nil on success; outcome is meaningful only then.
	EmitDispatchDone(ctx context.Context, c *Call, outcome Outcome, err error, elapsed time.Duration)
}

// nopHooks is the default Hooks when none are configured.
type nopHooks struct{}

func (nopHooks) EmitDispatchMiss(context.Context, *Call)                       {}
func (nopHooks) EmitHandlerGenerated(context.Context, *Call, time.Duration)    {}
func (nopHooks) EmitResolverAnswered(context.Context, *Call)                   {}
func (nopHooks) EmitResolverDeclined(context.Context, *Call)                   {}
func (nopHooks) EmitReservedSkipped(context.Context, *Call)                    {}
func (nopHooks) EmitRecursionBlocked(context.Context, *Call, int)              {}
func (nopHooks) EmitGenerationTimedOut(context.Context, string)                {}
func (nopHooks) EmitDispatchDone(context.Context, *Call, Outcome, error, time.Duration) {
}
