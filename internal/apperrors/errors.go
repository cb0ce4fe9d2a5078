package apperrors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeMalformedToken indicates the bearer token could not be decoded.
	// Callers treat a malformed token the same as an expired one.
	ErrCodeMalformedToken ErrorCode = "malformed_token"
	// ErrCodeStaleToken indicates the token decodes but its expiry is in the past.
	ErrCodeStaleToken ErrorCode = "stale_token"
	// ErrCodeRequestFailed indicates a network or server failure during login,
	// registration, or profile fetch.
	ErrCodeRequestFailed ErrorCode = "request_failed"
	// ErrCodeConflict indicates a conflict with existing data, e.g. registering
	// an email that is already taken.
	ErrCodeConflict ErrorCode = "conflict"
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound ErrorCode = "not_found"
	// ErrCodeValidation indicates invalid input data.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeInternal indicates an internal client error.
	ErrCodeInternal ErrorCode = "internal"
)

// AppError is a structured application error with a code, message, and
// optional cause. It supports errors.Is and errors.As through Unwrap.
type AppError struct {
	// Code categorizes the error type.
	Code ErrorCode
	// Message is a human-readable error message. For request failures this
	// carries the server-provided message when one was supplied.
	Message string
	// Cause is the underlying error, if any.
	Cause error
	// Field names the input field at fault, for validation errors.
	Field string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// MalformedToken creates a new malformed-token error.
func MalformedToken(message string) *AppError {
	return &AppError{Code: ErrCodeMalformedToken, Message: message}
}

// StaleToken creates a new stale-token error.
func StaleToken(message string) *AppError {
	return &AppError{Code: ErrCodeStaleToken, Message: message}
}

// RequestFailed creates a new request-failed error.
func RequestFailed(message string) *AppError {
	return &AppError{Code: ErrCodeRequestFailed, Message: message}
}

// RequestFailedf creates a new request-failed error with a formatted message.
func RequestFailedf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeRequestFailed, Message: fmt.Sprintf(format, args...)}
}

// Conflict creates a new conflict error.
func Conflict(message string) *AppError {
	return &AppError{Code: ErrCodeConflict, Message: message}
}

// NotFound creates a new not-found error.
func NotFound(message string) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: message}
}

// NotFoundf creates a new not-found error with a formatted message.
func NotFoundf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// Validation creates a new validation error.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message}
}

// ValidationField creates a new validation error for a specific field.
func ValidationField(field, message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message, Field: field}
}

// Internal creates a new internal error.
func Internal(message string) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: message}
}

// Wrap wraps an existing error with an AppError, preserving the cause.
// Returns nil when err is nil.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: message, Cause: err}
}

// Wrapf wraps an existing error with an AppError and a formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...any) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...), Cause: err}
}

// isCode checks whether an error carries a specific error code.
func isCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsMalformedToken checks for a malformed-token error.
func IsMalformedToken(err error) bool { return isCode(err, ErrCodeMalformedToken) }

// IsStaleToken checks for a stale-token error.
func IsStaleToken(err error) bool { return isCode(err, ErrCodeStaleToken) }

// IsRequestFailed checks for a request-failed error.
func IsRequestFailed(err error) bool { return isCode(err, ErrCodeRequestFailed) }

// IsConflict checks for a conflict error.
func IsConflict(err error) bool { return isCode(err, ErrCodeConflict) }

// IsNotFound checks for a not-found error.
func IsNotFound(err error) bool { return isCode(err, ErrCodeNotFound) }

// IsValidation checks for a validation error.
func IsValidation(err error) bool { return isCode(err, ErrCodeValidation) }

// GetCode returns the ErrorCode from an error, or empty string if the error
// is not an AppError.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// GetField returns the Field from an error, or empty string when absent.
func GetField(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Field
	}
	return ""
}
