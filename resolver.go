package autoload

import "context"

// resolutionKind discriminates Resolution values.
type resolutionKind int

const (
	kindDecline resolutionKind = iota
	kindGenerate
	kindAnswer
)

// Resolution is a resolver's verdict on a dispatch miss. Construct one
// with Generate, Answer, or Decline.
type Resolution struct {
	kind    resolutionKind
	handler Handler
	value   any
}

// Generate resolves the miss by producing a handler. The engine installs
// it into the dispatch table and then invokes it with the original call;
// future calls to the same name hit the table directly.
func Generate(h Handler) Resolution {
	return Resolution{kind: kindGenerate, handler: h}
}

// Answer resolves the miss with a one-shot result. Nothing is installed;
// future calls to the same name invoke the resolver again.
func Answer(value any) Resolution {
	return Resolution{kind: kindAnswer, value: value}
}

// Decline signals that the resolver cannot handle the name. The call
// fails with ErrNameNotFound. Declines are never cached: a later call may
// resolve if the resolver has since become capable.
func Decline() Resolution {
	return Resolution{kind: kindDecline}
}

// Declined reports whether the resolution is a decline.
func (r Resolution) Declined() bool { return r.kind == kindDecline }

// Answered returns the one-shot value and whether the resolution is an
// answer.
func (r Resolution) Answered() (any, bool) { return r.value, r.kind == kindAnswer }

// Resolver is the pluggable strategy consulted on a dispatch miss.
// Resolve receives the full call, including its expected result arity,
// so it can shape behavior for the caller's expected cardinality.
//
// The engine guarantees Resolve runs at most once per name per race
// window; concurrent first-calls to the same name block until the single
// in-flight resolution completes.
type Resolver interface {
	Resolve(ctx context.Context, c *Call) (Resolution, error)
}

// ResolverFunc adapts a plain function to a Resolver.
type ResolverFunc func(ctx context.Context, c *Call) (Resolution, error)

// Resolve implements Resolver.
func (f ResolverFunc) Resolve(ctx context.Context, c *Call) (Resolution, error) {
	return f(ctx, c)
}

// CapabilityProber is an optional resolver extension: a side-effect-free
// dry-run predicate answering "would you resolve this name?". Domains use
// it to implement Can without triggering generation. Resolvers that do
// not implement it make Can conservatively report false for names not
// already installed.
type CapabilityProber interface {
	CanResolve(ctx context.Context, name string) bool
}
