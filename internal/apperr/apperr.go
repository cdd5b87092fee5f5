// Package apperr holds the error kinds shared by the console services.
// Services return these (wrapped with fmt.Errorf where useful) and the HTTP
// layer maps them to statuses with errors.Is / errors.As.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation error")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccessDenied       = errors.New("access denied")
	ErrProtectedRole      = errors.New("role is one of the system roles")
	ErrMalformedRequest   = errors.New("malformed update request")
	ErrNotFound           = errors.New("not found")
	ErrBackend            = errors.New("backend error")
	ErrTransport          = errors.New("transport error")
)

// ValidationError is a client-side failure; it never reaches the network.
type ValidationError struct {
	Field   string
	Message string
}

func Validation(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Message: msg}
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// BackendError is a non-2xx answer or an ok:false envelope. Message is the
// backend's text and is shown to the caller verbatim.
type BackendError struct {
	Status  int
	Message string
}

func (e *BackendError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend responded with status %d", e.Status)
	}
	return e.Message
}

func (e *BackendError) Is(target error) bool { return target == ErrBackend }

// TransportError wraps network failures and timeouts.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// Malformed reports a submitted-info string that does not parse.
func Malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedRequest, fmt.Sprintf(format, args...))
}
