package middleware

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/xraph/autoload"
)

// tracerName is the instrumentation scope name for autoload tracing.
const tracerName = "github.com/xraph/autoload"

// Tracing returns middleware that wraps handler invocation in an
// OpenTelemetry span. If no TracerProvider is configured globally, the
// default noop tracer is used and this middleware becomes a pass-through
// with zero overhead.
//
// Span attributes include: autoload.call.id, autoload.call.name,
// autoload.call.arity, autoload.call.depth. On error, the span status is
// set to codes.Error with the error message.
func Tracing() autoload.Middleware {
	tracer := otel.Tracer(tracerName)
	return TracingWithTracer(tracer)
}

// TracingWithTracer returns tracing middleware using the provided tracer.
// This variant allows injecting a specific TracerProvider for testing or
// when multiple providers are in use.
func TracingWithTracer(tracer trace.Tracer) autoload.Middleware {
	return func(ctx context.Context, c *autoload.Call, next autoload.Handler) (any, error) {
		ctx, span := tracer.Start(ctx, "autoload.dispatch",
			trace.WithAttributes(
				attribute.String("autoload.call.id", c.ID.String()),
				attribute.String("autoload.call.name", c.Name),
				attribute.String("autoload.call.arity", c.Arity.String()),
				attribute.Int("autoload.call.depth", c.Depth()),
			),
			trace.WithSpanKind(trace.SpanKindInternal),
		)
		defer span.End()

		v, err := next(ctx, c.Args, c.Arity)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}

		return v, err
	}
}
