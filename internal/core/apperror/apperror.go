// Package apperror holds the caller-side and response-shape error types shared by every feature.
package apperror

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("validation failed")
	// ErrUnrecognizedShape is matched by every *NormalizationError.
	ErrUnrecognizedShape = errors.New("unrecognized response shape")
)

// ValidationError rejects caller input before any network call is made.
type ValidationError struct {
	Field   string
	Message string
}

// Validation builds a *ValidationError.
func Validation(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Is makes errors.Is(err, ErrValidation) hold.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NormalizationError reports an upstream payload that matches none of the known shapes.
type NormalizationError struct {
	// Kind names the payload being normalized, e.g. "tracking" or "cost".
	Kind   string
	Reason string
	Err    error
}

// Unrecognized builds a *NormalizationError.
func Unrecognized(kind, reason string, err error) *NormalizationError {
	return &NormalizationError{Kind: kind, Reason: reason, Err: err}
}

func (e *NormalizationError) Error() string {
	msg := fmt.Sprintf("unrecognized %s response shape: %s", e.Kind, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is makes errors.Is(err, ErrUnrecognizedShape) hold.
func (e *NormalizationError) Is(target error) bool {
	return target == ErrUnrecognizedShape
}

func (e *NormalizationError) Unwrap() error {
	return e.Err
}
