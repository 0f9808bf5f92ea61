// Package errors provides the structured error type shared by the API
// client and the state stores.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorCode classifies an error for callers that branch on failure kind.
type ErrorCode string

const (
	ErrCodeNotFound           ErrorCode = "NOT_FOUND"
	ErrCodeValidationFailed   ErrorCode = "VALIDATION_FAILED"
	ErrCodeAPIError           ErrorCode = "API_ERROR"
	ErrCodeNetworkError       ErrorCode = "NETWORK_ERROR"
	ErrCodePreconditionFailed ErrorCode = "PRECONDITION_FAILED"
)

// Error is the structured error surfaced by this module. Message is always
// human-readable; StatusCode is set only for API_ERROR and NOT_FOUND
// responses that carried an HTTP status.
type Error struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Details    string    `json:"details,omitempty"`
	StatusCode int       `json:"statusCode,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	cause      error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// NewNotFound creates an error for a missing entity.
func NewNotFound(resource, id string) *Error {
	return &Error{
		Code:      ErrCodeNotFound,
		Message:   fmt.Sprintf("%s not found", resource),
		Details:   fmt.Sprintf("id: %s", id),
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationFailed creates an error for bad input detected before any
// network call.
func NewValidationFailed(details string) *Error {
	return &Error{
		Code:      ErrCodeValidationFailed,
		Message:   "validation failed",
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

// NewAPIError creates an error for a non-2xx response. message comes from
// the server's error body when present, otherwise the generic fallback.
func NewAPIError(statusCode int, message string) *Error {
	if message == "" {
		message = fmt.Sprintf("API error: %d", statusCode)
	}
	code := ErrCodeAPIError
	if statusCode == 404 {
		code = ErrCodeNotFound
	}
	return &Error{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Timestamp:  time.Now().UTC(),
	}
}

// NewNetworkError wraps a transport-level failure.
func NewNetworkError(err error) *Error {
	return &Error{
		Code:      ErrCodeNetworkError,
		Message:   "request failed",
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewPreconditionFailed creates an error for client-side state that makes
// the requested mutation impossible (e.g. no profile loaded yet).
func NewPreconditionFailed(message string) *Error {
	return &Error{
		Code:      ErrCodePreconditionFailed,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

// CodeOf returns the ErrorCode carried by err, or empty when err is not a
// structured Error.
func CodeOf(err error) ErrorCode {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsNotFound reports whether err represents a missing entity.
func IsNotFound(err error) bool {
	return CodeOf(err) == ErrCodeNotFound
}

// IsValidation reports whether err represents rejected input.
func IsValidation(err error) bool {
	return CodeOf(err) == ErrCodeValidationFailed
}
