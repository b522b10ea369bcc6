package mediator

import (
	"context"
	"reflect"
	"strings"
)

// Request represents a command or query
type Request interface{}

// Response represents the result of handling a request
type Response interface{}

// Notification represents a broadcast event with zero-or-many subscribers
type Notification interface{}

// RequestHandler handles a specific request type
type RequestHandler interface {
	Handle(ctx context.Context, request Request) (Response, error)
}

// NotificationHandler handles a broadcast notification. Failures are logged
// and isolated per handler; they never reach the publisher.
type NotificationHandler interface {
	Notify(ctx context.Context, notification Notification) error
}

// HandlerFunc is a function that handles a request
type HandlerFunc func(ctx context.Context, request Request) (Response, error)

// Middleware is a function that wraps handler execution with cross-cutting concerns
// Examples: logging, validation, telemetry, throttling.
// A middleware must call next at most once; it may short-circuit by not calling it.
type Middleware func(ctx context.Context, request Request, next HandlerFunc) (Response, error)

// FieldFailure describes one rejected field from request validation
type FieldFailure struct {
	Field    string
	Message  string
	Rejected interface{}
}

// Validator checks a request before its handler runs. An empty slice means valid.
type Validator interface {
	Validate(ctx context.Context, request Request) []FieldFailure
}

// RequestName extracts a clean descriptor name from a request or notification
// Examples:
//   - "*commands.CreateTaskCommand" → "CreateTaskCommand"
//   - "*tasks.TaskCreatedNotification" → "TaskCreatedNotification"
func RequestName(request interface{}) string {
	if request == nil {
		return "UnknownRequest"
	}

	fullName := reflect.TypeOf(request).String()
	fullName = strings.TrimPrefix(fullName, "*")

	parts := strings.Split(fullName, ".")
	if len(parts) > 0 {
		return parts[len(parts)-1]
	}

	return fullName
}
