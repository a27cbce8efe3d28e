package ext

import (
	"context"
	"log/slog"
	"time"

	"github.com/xraph/autoload"
)

// Named entry types pair a hook implementation with the extension name
// captured at registration time. This avoids type-asserting back to
// Extension inside the emit methods.
type dispatchMissEntry struct {
	name string
	hook DispatchMiss
}

type handlerGeneratedEntry struct {
	name string
	hook HandlerGenerated
}

type resolverAnsweredEntry struct {
	name string
	hook ResolverAnswered
}

type resolverDeclinedEntry struct {
	name string
	hook ResolverDeclined
}

type reservedSkippedEntry struct {
	name string
	hook ReservedSkipped
}

type recursionBlockedEntry struct {
	name string
	hook RecursionBlocked
}

type generationTimedOutEntry struct {
	name string
	hook GenerationTimedOut
}

type dispatchDoneEntry struct {
	name string
	hook DispatchDone
}

// Registry holds registered extensions and fans dispatch lifecycle
// events out to them. It type-caches extensions at registration time so
// emit calls iterate only over extensions that implement the relevant
// hook. Register all extensions before handing the Registry to a domain;
// registration is not synchronized with emits.
//
// Registry implements autoload.Hooks: pass it to autoload.WithHooks.
type Registry struct {
	extensions []Extension
	logger     *slog.Logger

	// Type-cached slices for each lifecycle hook.
	dispatchMiss       []dispatchMissEntry
	handlerGenerated   []handlerGeneratedEntry
	resolverAnswered   []resolverAnsweredEntry
	resolverDeclined   []resolverDeclinedEntry
	reservedSkipped    []reservedSkippedEntry
	recursionBlocked   []recursionBlockedEntry
	generationTimedOut []generationTimedOutEntry
	dispatchDone       []dispatchDoneEntry
}

// Compile-time interface check.
var _ autoload.Hooks = (*Registry)(nil)

// NewRegistry creates an extension registry with the given logger.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{logger: logger}
}

// Register adds an extension and type-asserts it into all applicable
// hook caches. Extensions are notified in registration order.
func (r *Registry) Register(e Extension) {
	r.extensions = append(r.extensions, e)
	name := e.Name()

	if h, ok := e.(DispatchMiss); ok {
		r.dispatchMiss = append(r.dispatchMiss, dispatchMissEntry{name, h})
	}
	if h, ok := e.(HandlerGenerated); ok {
		r.handlerGenerated = append(r.handlerGenerated, handlerGeneratedEntry{name, h})
	}
	if h, ok := e.(ResolverAnswered); ok {
		r.resolverAnswered = append(r.resolverAnswered, resolverAnsweredEntry{name, h})
	}
	if h, ok := e.(ResolverDeclined); ok {
		r.resolverDeclined = append(r.resolverDeclined, resolverDeclinedEntry{name, h})
	}
	if h, ok := e.(ReservedSkipped); ok {
		r.reservedSkipped = append(r.reservedSkipped, reservedSkippedEntry{name, h})
	}
	if h, ok := e.(RecursionBlocked); ok {
		r.recursionBlocked = append(r.recursionBlocked, recursionBlockedEntry{name, h})
	}
	if h, ok := e.(GenerationTimedOut); ok {
		r.generationTimedOut = append(r.generationTimedOut, generationTimedOutEntry{name, h})
	}
	if h, ok := e.(DispatchDone); ok {
		r.dispatchDone = append(r.dispatchDone, dispatchDoneEntry{name, h})
	}
}

// Extensions returns all registered extensions.
func (r *Registry) Extensions() []Extension { return r.extensions }

// EmitDispatchMiss notifies all extensions that implement DispatchMiss.
func (r *Registry) EmitDispatchMiss(ctx context.Context, c *autoload.Call) {
	for _, e := range r.dispatchMiss {
		if err := e.hook.OnDispatchMiss(ctx, c); err != nil {
			r.logHookError("OnDispatchMiss", e.name, err)
		}
	}
}

// EmitHandlerGenerated notifies all extensions that implement HandlerGenerated.
func (r *Registry) EmitHandlerGenerated(ctx context.Context, c *autoload.Call, elapsed time.Duration) {
	for _, e := range r.handlerGenerated {
		if err := e.hook.OnHandlerGenerated(ctx, c, elapsed); err != nil {
			r.logHookError("OnHandlerGenerated", e.name, err)
		}
	}
}

// EmitResolverAnswered notifies all extensions that implement ResolverAnswered.
func (r *Registry) EmitResolverAnswered(ctx context.Context, c *autoload.Call) {
	for _, e := range r.resolverAnswered {
		if err := e.hook.OnResolverAnswered(ctx, c); err != nil {
			r.logHookError("OnResolverAnswered", e.name, err)
		}
	}
}

// EmitResolverDeclined notifies all extensions that implement ResolverDeclined.
func (r *Registry) EmitResolverDeclined(ctx context.Context, c *autoload.Call) {
	for _, e := range r.resolverDeclined {
		if err := e.hook.OnResolverDeclined(ctx, c); err != nil {
			r.logHookError("OnResolverDeclined", e.name, err)
		}
	}
}

// EmitReservedSkipped notifies all extensions that implement ReservedSkipped.
func (r *Registry) EmitReservedSkipped(ctx context.Context, c *autoload.Call) {
	for _, e := range r.reservedSkipped {
		if err := e.hook.OnReservedSkipped(ctx, c); err != nil {
			r.logHookError("OnReservedSkipped", e.name, err)
		}
	}
}

// EmitRecursionBlocked notifies all extensions that implement RecursionBlocked.
func (r *Registry) EmitRecursionBlocked(ctx context.Context, c *autoload.Call, depth int) {
	for _, e := range r.recursionBlocked {
		if err := e.hook.OnRecursionBlocked(ctx, c, depth); err != nil {
			r.logHookError("OnRecursionBlocked", e.name, err)
		}
	}
}

// EmitGenerationTimedOut notifies all extensions that implement GenerationTimedOut.
func (r *Registry) EmitGenerationTimedOut(ctx context.Context, name string) {
	for _, e := range r.generationTimedOut {
		if err := e.hook.OnGenerationTimedOut(ctx, name); err != nil {
			r.logHookError("OnGenerationTimedOut", e.name, err)
		}
	}
}

// EmitDispatchDone notifies all extensions that implement DispatchDone.
func (r *Registry) EmitDispatchDone(ctx context.Context, c *autoload.Call, outcome autoload.Outcome, callErr error, elapsed time.Duration) {
	for _, e := range r.dispatchDone {
		if err := e.hook.OnDispatchDone(ctx, c, outcome, callErr, elapsed); err != nil {
			r.logHookError("OnDispatchDone", e.name, err)
		}
	}
}

// logHookError logs a hook failure. Hook errors never propagate to the
// dispatching caller.
func (r *Registry) logHookError(hook, extension string, err error) {
	r.logger.Error("extension hook failed",
		slog.String("hook", hook),
		slog.String("extension", extension),
		slog.String("error", err.Error()),
	)
}
