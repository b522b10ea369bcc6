package mediator

import (
	"fmt"
	"reflect"
)

// Registry holds the startup-time lookup tables for dispatch: request type →
// handler, request type → validator, notification type → handler list.
// It is populated once during wiring and read-only afterward, so lookups
// need no synchronization.
type Registry struct {
	handlers   map[reflect.Type]RequestHandler
	validators map[reflect.Type]Validator
	listeners  map[reflect.Type][]NotificationHandler
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		handlers:   make(map[reflect.Type]RequestHandler),
		validators: make(map[reflect.Type]Validator),
		listeners:  make(map[reflect.Type][]NotificationHandler),
	}
}

// RegisterHandler binds a handler to a request type. Registering a second
// handler for the same type is an error (ambiguous dispatch).
func (r *Registry) RegisterHandler(requestType reflect.Type, handler RequestHandler) error {
	if requestType == nil {
		return fmt.Errorf("request type cannot be nil")
	}
	if handler == nil {
		return fmt.Errorf("handler cannot be nil")
	}
	if _, exists := r.handlers[requestType]; exists {
		return fmt.Errorf("handler already registered for type %s", requestType)
	}

	r.handlers[requestType] = handler
	return nil
}

// RegisterValidator binds a validator to a request type, 1:1.
func (r *Registry) RegisterValidator(requestType reflect.Type, v Validator) error {
	if requestType == nil {
		return fmt.Errorf("request type cannot be nil")
	}
	if v == nil {
		return fmt.Errorf("validator cannot be nil")
	}
	if _, exists := r.validators[requestType]; exists {
		return fmt.Errorf("validator already registered for type %s", requestType)
	}

	r.validators[requestType] = v
	return nil
}

// RegisterListener appends a notification handler for an event type.
// Any number of listeners may share one type.
func (r *Registry) RegisterListener(notificationType reflect.Type, handler NotificationHandler) error {
	if notificationType == nil {
		return fmt.Errorf("notification type cannot be nil")
	}
	if handler == nil {
		return fmt.Errorf("notification handler cannot be nil")
	}

	r.listeners[notificationType] = append(r.listeners[notificationType], handler)
	return nil
}

// ResolveHandler returns the handler for a request type, or false if none registered
func (r *Registry) ResolveHandler(requestType reflect.Type) (RequestHandler, bool) {
	h, ok := r.handlers[requestType]
	return h, ok
}

// ResolveValidator returns the validator for a request type, or nil if none registered
func (r *Registry) ResolveValidator(requestType reflect.Type) Validator {
	return r.validators[requestType]
}

// ResolveListeners returns all notification handlers for an event type.
// An empty slice is a valid result: broadcasts with no listeners are not an error.
func (r *Registry) ResolveListeners(notificationType reflect.Type) []NotificationHandler {
	return r.listeners[notificationType]
}

// Helper functions to register bindings with type inference.
// Example: mediator.RegisterHandler[*CreateTaskCommand](registry, handler)

func RegisterHandler[T Request](r *Registry, handler RequestHandler) error {
	var zero T
	return r.RegisterHandler(reflect.TypeOf(zero), handler)
}

func RegisterValidator[T Request](r *Registry, v Validator) error {
	var zero T
	return r.RegisterValidator(reflect.TypeOf(zero), v)
}

func RegisterListener[T Notification](r *Registry, handler NotificationHandler) error {
	var zero T
	return r.RegisterListener(reflect.TypeOf(zero), handler)
}
