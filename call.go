package autoload

import (
	"context"

	"github.com/xraph/autoload/id"
)

// Arity is the caller's expected result cardinality for a call.
type Arity int

const (
	// ArityNone means the caller discards the result (void context).
	ArityNone Arity = iota
	// AritySingle means the caller expects a single value.
	AritySingle
	// ArityMulti means the caller expects a sequence of values.
	ArityMulti
)

// String returns the arity name for logging.
func (a Arity) String() string {
	switch a {
	case ArityNone:
		return "none"
	case AritySingle:
		return "single"
	case ArityMulti:
		return "multi"
	default:
		return "unknown"
	}
}

// Handler is an installed, directly callable implementation for a name.
// Once installed into a Domain's dispatch table a handler may be invoked
// by unlimited concurrent callers; it must not assume exclusive access to
// shared state it closes over.
type Handler func(ctx context.Context, args []any, arity Arity) (any, error)

// Call describes one invocation attempt. It is immutable once constructed
// and owned by the call that created it; the engine fills in the dispatch
// depth when the call enters a resolution chain.
type Call struct {
	// ID is a unique identifier for this invocation attempt, used for
	// logging and audit correlation.
	ID id.CallID

	// Name is the member being called. Must be non-empty.
	Name string

	// Args is the ordered argument sequence, already flattened by the
	// caller's convention.
	Args []any

	// Arity is the caller's expected result cardinality.
	Arity Arity

	// depth is the position of this call in an unresolved fallback
	// chain. Zero for calls issued outside any resolver.
	depth int
}

// NewCall constructs a call for the given name, arguments, and expected
// result arity.
func NewCall(name string, args []any, arity Arity) *Call {
	return &Call{
		ID:    id.NewCallID(),
		Name:  name,
		Args:  args,
		Arity: arity,
	}
}

// Depth returns the call's position in the unresolved fallback chain.
// A resolver that issues further dispatches sees increasing depths; the
// engine fails the call with ErrRecursiveFallback once the configured
// maximum is exceeded.
func (c *Call) Depth() int { return c.depth }

// Outcome classifies how a dispatch concluded without error.
type Outcome int

const (
	// OutcomeHandled means an installed or freshly generated handler ran.
	OutcomeHandled Outcome = iota
	// OutcomeAnswered means the resolver answered directly; nothing was
	// installed and future calls to the same name resolve again.
	OutcomeAnswered
	// OutcomeNoop means a reserved name had no handler installed; the
	// call did nothing, which is distinct from both success and failure.
	OutcomeNoop
)

// String returns the outcome name for logging.
func (o Outcome) String() string {
	switch o {
	case OutcomeHandled:
		return "handled"
	case OutcomeAnswered:
		return "answered"
	case OutcomeNoop:
		return "noop"
	default:
		return "unknown"
	}
}

// Result is the successful outcome of a dispatch. Value is nil for
// OutcomeNoop and for handlers invoked with ArityNone.
type Result struct {
	Outcome Outcome
	Value   any
}
