package mediator

import (
	"context"
	"reflect"

	"github.com/go-playground/validator/v10"
)

// ValidationMiddleware resolves the validator bound to the request's type.
// No validator means pass-through. Any failure short-circuits the chain with
// a *ValidationError carrying the full failure list; the handler never sees
// an invalid request, so re-sending invalid input has no side effects.
func ValidationMiddleware(registry *Registry) Middleware {
	return func(ctx context.Context, request Request, next HandlerFunc) (Response, error) {
		v := registry.ResolveValidator(reflect.TypeOf(request))
		if v == nil {
			return next(ctx, request)
		}

		if failures := v.Validate(ctx, request); len(failures) > 0 {
			return nil, &ValidationError{
				Descriptor: RequestName(request),
				Failures:   failures,
			}
		}

		return next(ctx, request)
	}
}

// ValidatorFunc adapts a plain function to the Validator interface
type ValidatorFunc func(ctx context.Context, request Request) []FieldFailure

func (f ValidatorFunc) Validate(ctx context.Context, request Request) []FieldFailure {
	return f(ctx, request)
}

// StructValidator validates requests through go-playground/validator struct
// tags. It is the stock validator bound to command types during wiring;
// bespoke validators can implement Validator directly instead.
type StructValidator struct {
	validate *validator.Validate
}

// NewStructValidator creates a tag-driven validator
func NewStructValidator() *StructValidator {
	return &StructValidator{validate: validator.New()}
}

// Validate runs struct-tag validation and converts the outcome to field failures
func (s *StructValidator) Validate(ctx context.Context, request Request) []FieldFailure {
	err := s.validate.StructCtx(ctx, request)
	if err == nil {
		return nil
	}

	if verrs, ok := err.(validator.ValidationErrors); ok {
		failures := make([]FieldFailure, len(verrs))
		for i, e := range verrs {
			failures[i] = FieldFailure{
				Field:    e.Field(),
				Message:  "failed validation rule '" + e.Tag() + "'",
				Rejected: e.Value(),
			}
		}
		return failures
	}

	// Non-field errors (e.g. validating a non-struct) still reject the request
	return []FieldFailure{{Field: "", Message: err.Error()}}
}
