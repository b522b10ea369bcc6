package metrics

import (
	"context"
	"time"

	"taskboard/go-backend/internal/application/mediator"
)

// TelemetryMiddleware opens a timed span per dispatched request: in-flight
// gauge up on entry, duration and outcome observed on exit. The span always
// closes, including on panic or short-circuit, so it sits innermost-but-one
// in the chain and measures handler-only latency. Validation rejections
// happen before this middleware and never open a span.
func TelemetryMiddleware(collector *RequestMetricsCollector) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		// Skip metrics if collector is nil (metrics disabled)
		if collector == nil {
			return next(ctx, request)
		}

		requestName := mediator.RequestName(request)
		collector.RecordRequestStart(requestName)

		start := time.Now()
		success := false
		defer func() {
			collector.RecordRequestEnd(requestName, time.Since(start).Seconds(), success)
		}()

		response, err := next(ctx, request)
		success = err == nil
		return response, err
	}
}
