package mediator

import (
	"fmt"
	"strings"
)

// NotFoundError indicates no handler is registered for a request descriptor.
// It is a configuration error: it is never retried and always surfaces to the caller.
type NotFoundError struct {
	Descriptor string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no handler registered for request %s", e.Descriptor)
}

// ValidationError carries the full list of field failures for a rejected request.
// The handler never runs when validation fails.
type ValidationError struct {
	Descriptor string
	Failures   []FieldFailure
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		msgs[i] = fmt.Sprintf("field '%s': %s (value: '%v')", f.Field, f.Message, f.Rejected)
	}
	return fmt.Sprintf("validation failed for %s: %s", e.Descriptor, strings.Join(msgs, "; "))
}
