package autoload

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/xraph/autoload/id"
)

// Middleware wraps handler invocation with cross-cutting logic (logging,
// recovery, tracing, rate limiting). Middleware run around installed and
// freshly generated handlers alike, never around resolver execution.
// They MUST call next to continue the chain unless short-circuiting.
//
// The middleware package provides the standard implementations.
type Middleware func(ctx context.Context, c *Call, next Handler) (any, error)

// resolverBox wraps a Resolver so it can sit behind an atomic.Pointer
// (interfaces cannot be stored in one directly).
type resolverBox struct {
	r Resolver
}

// Domain is one scoped instance of the dispatch engine: a dispatch table,
// a generation coordinator, and at most one active fallback resolver.
// Construct one per object, class, or proxy with New; there is no ambient
// process-wide fallback.
//
// A Domain is safe for use by unlimited concurrent callers.
type Domain struct {
	id       id.DomainID
	config   Config
	logger   *slog.Logger
	table    *Table
	gen      *coordinator
	reserved map[string]struct{}
	hooks    Hooks
	mws      []Middleware

	resolver atomic.Pointer[resolverBox]
	counters counters
}

// New creates a dispatch Domain with the given options.
func New(opts ...Option) (*Domain, error) {
	d := &Domain{
		id:       id.NewDomainID(),
		config:   DefaultConfig(),
		logger:   slog.Default(),
		table:    NewTable(),
		gen:      newCoordinator(),
		reserved: make(map[string]struct{}),
		hooks:    nopHooks{},
	}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	for _, name := range d.config.ReservedNames {
		d.reserved[name] = struct{}{}
	}
	return d, nil
}

// ID returns the domain's unique identifier.
func (d *Domain) ID() id.DomainID { return d.id }

// Logger returns the domain's logger.
func (d *Domain) Logger() *slog.Logger { return d.logger }

// Table returns the domain's dispatch table.
func (d *Domain) Table() *Table { return d.table }

// Config returns a copy of the domain's configuration.
func (d *Domain) Config() Config { return d.config }

// Stats returns a snapshot of the domain's dispatch counters.
func (d *Domain) Stats() Stats { return d.counters.snapshot() }

// SetFallback installs the resolver consulted on every miss. At most one
// resolver is active at a time; the last writer wins. The new resolver
// takes effect for calls issued after SetFallback returns. A nil resolver
// removes fallback resolution entirely.
func (d *Domain) SetFallback(r Resolver) {
	if r == nil {
		d.resolver.Store(nil)
		return
	}
	d.resolver.Store(&resolverBox{r: r})
}

func (d *Domain) fallback() Resolver {
	box := d.resolver.Load()
	if box == nil {
		return nil
	}
	return box.r
}

// Can reports whether a dispatch of name would currently run a handler,
// without side effects: nothing is resolved or installed. A table hit
// reports true; otherwise the resolver's dry-run predicate
// (CapabilityProber) is consulted if it offers one, and false is reported
// conservatively if it does not. A reserved name with no installed
// handler reports false — dispatching it would no-op, not run a handler.
//
// If Can reports true, a subsequent Dispatch of the same name does not
// fail with ErrNameNotFound (best effort: resolvers whose availability
// only grows keep this exact).
func (d *Domain) Can(ctx context.Context, name string) bool {
	if name == "" {
		return false
	}
	if _, ok := d.table.Lookup(name); ok {
		return true
	}
	if _, ok := d.reserved[name]; ok {
		return false
	}
	r := d.fallback()
	if r == nil {
		return false
	}
	if p, ok := r.(CapabilityProber); ok {
		return p.CanResolve(ctx, name)
	}
	return false
}

// Dispatch routes a call: table hit invokes the installed handler
// directly; a miss on a reserved name yields OutcomeNoop; any other miss
// drives the fallback resolver through the generation coordinator.
//
// Errors: ErrEmptyName, ErrNameNotFound (resolver declined or none
// configured), ErrRecursiveFallback (depth guard), ErrGenerationTimeout
// (bounded wait on a stuck generation), plus handler and resolver errors
// propagated as-is.
func (d *Domain) Dispatch(ctx context.Context, c *Call) (*Result, error) {
	if c == nil || c.Name == "" {
		return nil, ErrEmptyName
	}

	start := time.Now()
	res, err := d.dispatch(ctx, c)

	outcome := OutcomeHandled
	if res != nil {
		outcome = res.Outcome
	}
	d.hooks.EmitDispatchDone(ctx, c, outcome, err, time.Since(start))

	return res, err
}

func (d *Domain) dispatch(ctx context.Context, c *Call) (*Result, error) {
	chain := chainFrom(ctx)
	c.depth = len(chain)

	for {
		if h, ok := d.table.Lookup(c.Name); ok {
			d.counters.hits.Add(1)
			return d.invoke(ctx, c, h)
		}

		d.counters.misses.Add(1)
		d.hooks.EmitDispatchMiss(ctx, c)

		if _, ok := d.reserved[c.Name]; ok {
			d.counters.noops.Add(1)
			d.hooks.EmitReservedSkipped(ctx, c)
			return &Result{Outcome: OutcomeNoop}, nil
		}

		resolver := d.fallback()
		if resolver == nil {
			d.counters.declines.Add(1)
			return nil, fmt.Errorf("%w: %q (no resolver configured)", ErrNameNotFound, c.Name)
		}

		// Guard before engaging the coordinator: a re-entrant dispatch
		// for a name already being resolved on this call path would
		// wait on its own generation slot forever.
		if chain.contains(c.Name) {
			d.counters.recursionBlocks.Add(1)
			d.hooks.EmitRecursionBlocked(ctx, c, len(chain))
			return nil, fmt.Errorf("%w: %q re-entered during its own resolution", ErrRecursiveFallback, c.Name)
		}
		if len(chain) >= d.config.MaxDepth {
			d.counters.recursionBlocks.Add(1)
			d.hooks.EmitRecursionBlocked(ctx, c, len(chain))
			return nil, fmt.Errorf("%w: unresolved chain depth %d reached limit %d at %q",
				ErrRecursiveFallback, len(chain), d.config.MaxDepth, c.Name)
		}

		s, owned := d.gen.acquire(c.Name)
		if !owned {
			if err := d.gen.wait(ctx, s, d.config.GenerationTimeout); err != nil {
				if errors.Is(err, ErrGenerationTimeout) {
					d.counters.timeouts.Add(1)
					d.hooks.EmitGenerationTimedOut(ctx, c.Name)
				}
				return nil, err
			}
			// Retry the lookup; the now-installed handler should
			// satisfy it. If the owner declined or answered, this
			// caller resolves for itself on the next iteration.
			continue
		}

		return d.resolve(ctx, chain, c, resolver, s)
	}
}

// resolve runs the fallback resolver while holding the generation slot
// for c.Name. The caller must own the slot.
func (d *Domain) resolve(ctx context.Context, chain resolutionChain, c *Call, r Resolver, s *slot) (*Result, error) {
	released := false
	release := func() {
		if !released {
			released = true
			d.gen.release(c.Name, s)
		}
	}
	defer release()

	// Double-check under the slot: another owner may have installed
	// between this caller's miss and its acquire.
	if h, ok := d.table.Lookup(c.Name); ok {
		release()
		d.counters.hits.Add(1)
		return d.invoke(ctx, c, h)
	}

	start := time.Now()
	resolution, err := r.Resolve(chain.push(ctx, c.Name), c)
	elapsed := time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("autoload: resolve %q: %w", c.Name, err)
	}

	switch resolution.kind {
	case kindGenerate:
		if resolution.handler == nil {
			return nil, fmt.Errorf("autoload: resolver generated nil handler for %q", c.Name)
		}
		if d.table.Install(c.Name, resolution.handler) == Installed {
			d.counters.installs.Add(1)
		}
		release()
		d.hooks.EmitHandlerGenerated(ctx, c, elapsed)
		d.logger.Debug("handler generated",
			slog.String("name", c.Name),
			slog.String("call_id", c.ID.String()),
			slog.Duration("elapsed", elapsed),
		)
		// Invoke through the table so the effective handler runs even
		// if this install lost a race, and so the handler is called
		// directly by the dispatcher rather than through a resolver
		// frame.
		h, _ := d.table.Lookup(c.Name)
		return d.invoke(ctx, c, h)

	case kindAnswer:
		release()
		d.counters.answers.Add(1)
		d.hooks.EmitResolverAnswered(ctx, c)
		return &Result{Outcome: OutcomeAnswered, Value: resolution.value}, nil

	default: // decline; never cached, a later call re-resolves
		release()
		d.counters.declines.Add(1)
		d.hooks.EmitResolverDeclined(ctx, c)
		return nil, fmt.Errorf("%w: %q", ErrNameNotFound, c.Name)
	}
}

// invoke runs the handler through the domain's middleware chain and
// shapes the result for the call's arity.
func (d *Domain) invoke(ctx context.Context, c *Call, h Handler) (*Result, error) {
	next := h
	for i := len(d.mws) - 1; i >= 0; i-- {
		mw := d.mws[i]
		inner := next
		next = func(ctx context.Context, _ []any, _ Arity) (any, error) {
			return mw(ctx, c, inner)
		}
	}

	v, err := next(ctx, c.Args, c.Arity)
	if err != nil {
		return nil, err
	}
	if c.Arity == ArityNone {
		v = nil
	}
	return &Result{Outcome: OutcomeHandled, Value: v}, nil
}
