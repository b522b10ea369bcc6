package mediator

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"taskboard/go-backend/internal/application/logging"
)

// Sender dispatches requests to their single registered handler
type Sender interface {
	Send(ctx context.Context, request Request) (Response, error)
}

// Publisher broadcasts notifications to all registered listeners
type Publisher interface {
	Publish(ctx context.Context, notification Notification)
}

// Mediator is the in-process dispatch pipeline: request → middleware chain →
// handler, and notification → concurrent fan-out.
type Mediator interface {
	Sender
	Publisher
}

// mediator is the concrete implementation
type mediator struct {
	registry   *Registry
	middleware []Middleware
	logger     logging.Logger
}

// New creates a mediator over a populated registry. Middleware runs in the
// given order, first entry outermost. The canonical chain for requests is
// Logging → Validation → Telemetry → handler.
func New(registry *Registry, logger logging.Logger, middleware ...Middleware) Mediator {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &mediator{
		registry:   registry,
		middleware: middleware,
		logger:     logger,
	}
}

// Send dispatches a request to its registered handler through the middleware chain.
// Exactly one handler runs per call; the handler's result or error is returned
// unchanged once the chain has unwound.
func (m *mediator) Send(ctx context.Context, request Request) (Response, error) {
	if request == nil {
		return nil, fmt.Errorf("request cannot be nil")
	}

	handler, ok := m.registry.ResolveHandler(reflect.TypeOf(request))
	if !ok {
		return nil, &NotFoundError{Descriptor: RequestName(request)}
	}

	return Chain(handler.Handle, m.middleware...)(ctx, request)
}

// Publish delivers a notification to every registered listener concurrently
// and returns after all of them have settled. Listener failures (errors and
// panics alike) are logged and isolated: one failing subscriber never blocks
// its siblings, fails the publish, or rolls back the triggering write.
func (m *mediator) Publish(ctx context.Context, notification Notification) {
	if notification == nil {
		return
	}

	name := RequestName(notification)
	listeners := m.registry.ResolveListeners(reflect.TypeOf(notification))
	if len(listeners) == 0 {
		m.logger.Warn("notification has no listeners", map[string]interface{}{
			"notification": name,
		})
		return
	}

	var wg sync.WaitGroup
	for _, listener := range listeners {
		wg.Add(1)
		go func(h NotificationHandler) {
			defer wg.Done()
			m.deliver(ctx, name, notification, h)
		}(listener)
	}
	wg.Wait()
}

// deliver invokes one listener, converting panics into logged failures so a
// crashing subscriber cannot take down the fan-out.
func (m *mediator) deliver(ctx context.Context, name string, notification Notification, h NotificationHandler) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("notification handler panicked", map[string]interface{}{
				"notification": name,
				"panic":        fmt.Sprintf("%v", r),
			})
		}
	}()

	if err := h.Notify(ctx, notification); err != nil {
		m.logger.Error("notification handler failed", map[string]interface{}{
			"notification": name,
			"error":        err.Error(),
		})
	}
}

// Chain composes middleware around a handler function so that the first
// middleware listed is outermost. Each middleware may short-circuit by not
// calling next.
func Chain(handler HandlerFunc, middleware ...Middleware) HandlerFunc {
	invoke := handler
	for i := len(middleware) - 1; i >= 0; i-- {
		mw := middleware[i]
		next := invoke
		invoke = func(ctx context.Context, request Request) (Response, error) {
			return mw(ctx, request, next)
		}
	}
	return invoke
}
