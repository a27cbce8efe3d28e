// Package middleware provides composable middleware for dispatch
// execution.
//
// An [autoload.Middleware] is a function that wraps a handler invocation.
// Middleware are composed with [Chain] or registered on a domain with
// autoload.WithMiddleware, and run around installed and freshly generated
// handlers alike — never around resolver execution. They are applied
// right-to-left: the first middleware in the slice is the outermost
// wrapper.
//
//	// logging → recover → handler
//	d, _ := autoload.New(autoload.WithMiddleware(
//	    middleware.Logging(logger),
//	    middleware.Recover(logger),
//	))
//
// # Built-in Middleware
//
//   - [Logging] — logs call name, arity, duration, and outcome
//   - [Recover] — catches handler panics and converts them to errors
//   - [Timeout] — cancels the call context after a configured duration
//   - [Tracing] — wraps invocation in an OpenTelemetry span
//   - [Metrics] — records per-call duration and outcome counters
//   - [RateLimit] — applies a token-bucket limit before invocation
//
// # Writing Custom Middleware
//
//	func MyMiddleware() autoload.Middleware {
//	    return func(ctx context.Context, c *autoload.Call, next autoload.Handler) (any, error) {
//	        // pre-processing
//	        v, err := next(ctx, c.Args, c.Arity)
//	        // post-processing
//	        return v, err
//	    }
//	}
//
// Middleware MUST call next to continue the chain unless intentionally
// short-circuiting (rate limiting, circuit breaking).
package middleware
