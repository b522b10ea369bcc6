package mediator

import (
	"context"
	"time"

	"taskboard/go-backend/internal/application/logging"
)

// LoggingMiddleware records start, end, elapsed duration and terminal failure
// for every dispatched request, then rethrows. It is the outermost middleware
// so total latency and failures are always recorded exactly once, regardless
// of which layer ultimately handles the error.
func LoggingMiddleware(logger logging.Logger) Middleware {
	return func(ctx context.Context, request Request, next HandlerFunc) (Response, error) {
		log := logger
		if log == nil {
			log = logging.FromContext(ctx)
		}

		name := RequestName(request)
		log.Debug("dispatching request", map[string]interface{}{
			"request": name,
		})

		start := time.Now()
		response, err := next(ctx, request)
		elapsed := time.Since(start)

		if err != nil {
			log.Error("request failed", map[string]interface{}{
				"request":  name,
				"duration": elapsed.String(),
				"error":    err.Error(),
			})
			return nil, err
		}

		log.Info("request completed", map[string]interface{}{
			"request":  name,
			"duration": elapsed.String(),
		})
		return response, nil
	}
}
