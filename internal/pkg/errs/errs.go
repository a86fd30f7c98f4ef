/*
Package errs provides the application's unified error type.

This file defines the Error struct, which implements the standard Go error interface
and carries an error kind, a user-friendly message, the matching HTTP status code,
and optional diagnostic details from the backing store. Every handler normalizes
failures into this one shape at its boundary instead of branching on ad hoc error values.
*/
package errs

import (
	"fmt"
)

// Error is the single error structure used throughout the application.
// It wraps the Go error interface, adding a machine-readable kind, an HTTP
// status code, and optional upstream diagnostic text.
type Error struct {
	// Kind classifies the failure (see kinds.go).
	Kind Kind

	// Message is the user-friendly error description.
	Message string

	// Status is the HTTP status code corresponding to this error.
	Status int

	// Details optionally carries the upstream store's own error text.
	// It is surfaced to callers for debuggability but never replaces Message.
	Details string

	// Cause is the underlying error, if any. It is kept for logging and
	// errors.Is/As chains and is never serialized to clients.
	Cause error
}

// Error implements the standard Go error interface.
func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s (HTTP %d): %s: %s", e.Kind, e.Status, e.Message, e.Details)
	}
	return fmt.Sprintf("%s (HTTP %d): %s", e.Kind, e.Status, e.Message)
}

// Unwrap exposes the underlying cause to errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New constructs an *Error of the given kind with a formatted message.
// The HTTP status is derived from the kind.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Status:  statusFor(kind),
	}
}

// Validation returns a client-fault error for missing or malformed input.
// Validation errors are produced before any store call is attempted.
func Validation(format string, args ...any) *Error {
	return New(KindValidation, format, args...)
}

// NotFound returns an error indicating the requested key is absent.
func NotFound(format string, args ...any) *Error {
	return New(KindNotFound, format, args...)
}

// Unauthorized returns an authorization failure. The message must never
// include the expected secret.
func Unauthorized(format string, args ...any) *Error {
	return New(KindUnauthorized, format, args...)
}

// UnsupportedMedia returns an error for an unacceptable request Content-Type.
func UnsupportedMedia(format string, args ...any) *Error {
	return New(KindUnsupportedMedia, format, args...)
}

// RateLimited returns an error for a request rejected by the rate limiter.
func RateLimited() *Error {
	return New(KindRateLimited, "Too many requests. Please try again later.")
}

// Upstream wraps a failure from the backing store. The caller-facing message
// stays generic while the store's own error text is attached as Details.
func Upstream(cause error, format string, args ...any) *Error {
	e := New(KindUpstreamStore, format, args...)
	e.Cause = cause
	if cause != nil {
		e.Details = cause.Error()
	}
	return e
}

// Transport wraps a client-side network failure during a transfer.
func Transport(cause error, format string, args ...any) *Error {
	e := New(KindTransport, format, args...)
	e.Cause = cause
	if cause != nil {
		e.Details = cause.Error()
	}
	return e
}
