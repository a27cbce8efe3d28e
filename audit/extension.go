// Package audit bridges dispatch lifecycle events to an audit record
// store. Register the Extension on an ext.Registry to persist one record
// per resolution event: generations, answers, declines, reserved no-ops,
// depth-guard trips, and generation timeouts.
package audit

import (
	"context"
	"time"

	"github.com/xraph/autoload"
	"github.com/xraph/autoload/ext"
	"github.com/xraph/autoload/id"
	"github.com/xraph/autoload/store"
)

// Compile-time interface checks.
var (
	_ ext.Extension          = (*Extension)(nil)
	_ ext.HandlerGenerated   = (*Extension)(nil)
	_ ext.ResolverAnswered   = (*Extension)(nil)
	_ ext.ResolverDeclined   = (*Extension)(nil)
	_ ext.ReservedSkipped    = (*Extension)(nil)
	_ ext.RecursionBlocked   = (*Extension)(nil)
	_ ext.GenerationTimedOut = (*Extension)(nil)
)

// Extension writes one audit record per resolution event. Failures
// surface as hook errors, which the ext.Registry logs without affecting
// the dispatching caller.
type Extension struct {
	store  store.Store
	domain string
}

// Option configures an Extension.
type Option func(*Extension)

// WithDomainLabel sets the domain label stamped on every record.
// Typically the owning Domain's ID string.
func WithDomainLabel(label string) Option {
	return func(e *Extension) { e.domain = label }
}

// New creates an audit Extension persisting to the given store.
func New(s store.Store, opts ...Option) *Extension {
	e := &Extension{store: s}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name implements ext.Extension.
func (e *Extension) Name() string { return "audit-trail" }

func (e *Extension) record(ctx context.Context, name, event, errMsg string, elapsed time.Duration) error {
	return e.store.Append(ctx, &store.Record{
		ID:        id.NewRecordID(),
		Domain:    e.domain,
		Name:      name,
		Event:     event,
		Error:     errMsg,
		Elapsed:   elapsed,
		CreatedAt: time.Now().UTC(),
	})
}

// OnHandlerGenerated implements ext.HandlerGenerated.
func (e *Extension) OnHandlerGenerated(ctx context.Context, c *autoload.Call, elapsed time.Duration) error {
	return e.record(ctx, c.Name, store.EventGenerated, "", elapsed)
}

// OnResolverAnswered implements ext.ResolverAnswered.
func (e *Extension) OnResolverAnswered(ctx context.Context, c *autoload.Call) error {
	return e.record(ctx, c.Name, store.EventAnswered, "", 0)
}

// OnResolverDeclined implements ext.ResolverDeclined.
func (e *Extension) OnResolverDeclined(ctx context.Context, c *autoload.Call) error {
	return e.record(ctx, c.Name, store.EventDeclined, "", 0)
}

// OnReservedSkipped implements ext.ReservedSkipped.
func (e *Extension) OnReservedSkipped(ctx context.Context, c *autoload.Call) error {
	return e.record(ctx, c.Name, store.EventReserved, "", 0)
}

// OnRecursionBlocked implements ext.RecursionBlocked.
func (e *Extension) OnRecursionBlocked(ctx context.Context, c *autoload.Call, _ int) error {
	return e.record(ctx, c.Name, store.EventRecursion, autoload.ErrRecursiveFallback.Error(), 0)
}

// OnGenerationTimedOut implements ext.GenerationTimedOut.
func (e *Extension) OnGenerationTimedOut(ctx context.Context, name string) error {
	return e.record(ctx, name, store.EventTimeout, autoload.ErrGenerationTimeout.Error(), 0)
}
