// Package autoload provides a dynamic dispatch and fallback-resolution
// engine for Go. Calls to names absent from the dispatch table are
// intercepted, resolved through a pluggable fallback resolver, optionally
// materialized into a cached handler, and optionally delegated to a
// wrapped target.
//
// Autoload is designed as a library, not a service. Construct a Domain,
// configure a resolver, and dispatch calls against it.
//
// # Quick Start
//
//	d, err := autoload.New(
//	    autoload.WithResolver(autoload.NewDelegate(autoload.ReflectTarget(svc))),
//	)
//	res, err := d.Dispatch(ctx, autoload.NewCall("greet", nil, autoload.AritySingle))
//
// # Architecture
//
// A Domain owns a dispatch table (name → handler), a generation
// coordinator that serializes first resolution per name, and at most one
// active resolver. Lookup hits invoke the installed handler directly;
// misses drive the resolver, which may generate a handler (installed,
// then invoked), answer once without caching, or decline. Concurrent
// first-calls to the same name observe exactly one effective resolver
// invocation; calls to unrelated names never block on it.
//
// All entity IDs use TypeID — type-prefixed, K-sortable, UUIDv7-based
// identifiers.
package autoload
