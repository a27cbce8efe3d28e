package middleware

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/xraph/autoload"
)

// meterName is the instrumentation scope name for autoload metrics.
const meterName = "github.com/xraph/autoload"

// Metrics returns middleware that records per-call execution metrics
// using the global OTel MeterProvider. If no MeterProvider is configured,
// noop instruments are used and this middleware becomes a pass-through.
//
// Instruments:
//   - autoload.dispatch.duration (Float64Histogram): invocation time in
//     seconds, with attributes: name, arity, status ("ok" or "error")
//   - autoload.dispatch.calls (Int64Counter): total invocations,
//     with attributes: name, arity, status ("ok" or "error")
func Metrics() autoload.Middleware {
	meter := otel.Meter(meterName)
	return MetricsWithMeter(meter)
}

// MetricsWithMeter returns metrics middleware using the provided meter.
// This variant allows injecting a specific MeterProvider for testing.
func MetricsWithMeter(meter metric.Meter) autoload.Middleware {
	// Create instruments once at middleware construction time.
	// OTel instruments are safe for concurrent use. On error, the API
	// returns noop instruments so the middleware degrades gracefully.
	duration, dErr := meter.Float64Histogram(
		"autoload.dispatch.duration",
		metric.WithDescription("Duration of handler invocation in seconds"),
		metric.WithUnit("s"),
	)
	_ = dErr // noop fallback guaranteed by OTel API contract

	calls, cErr := meter.Int64Counter(
		"autoload.dispatch.calls",
		metric.WithDescription("Total number of handler invocations"),
		metric.WithUnit("{call}"),
	)
	_ = cErr // noop fallback guaranteed by OTel API contract

	return func(ctx context.Context, c *autoload.Call, next autoload.Handler) (any, error) {
		start := time.Now()
		v, err := next(ctx, c.Args, c.Arity)
		elapsed := time.Since(start).Seconds()

		status := "ok"
		if err != nil {
			status = "error"
		}

		attrs := metric.WithAttributes(
			attribute.String("name", c.Name),
			attribute.String("arity", c.Arity.String()),
			attribute.String("status", status),
		)

		duration.Record(ctx, elapsed, attrs)
		calls.Add(ctx, 1, attrs)

		return v, err
	}
}
