package mediator

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// ThrottleMiddleware applies admission control ahead of the handler using a
// shared token bucket. It is opt-in and not part of the canonical chain;
// callers that need backpressure insert it between telemetry and the handler.
func ThrottleMiddleware(limiter *rate.Limiter) Middleware {
	return func(ctx context.Context, request Request, next HandlerFunc) (Response, error) {
		if limiter == nil {
			return next(ctx, request)
		}

		if err := limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("request %s throttled: %w", RequestName(request), err)
		}

		return next(ctx, request)
	}
}
