// Package errors provides structured error types for the refgraph library.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library, CLI, and server
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The serialization core uses four codes, all of which are fail-fast: they
// indicate malformed data or misuse of the export/import protocol, never a
// transient condition worth retrying.
//
//   - TYPE_MISMATCH: a wire value was read through the wrong variant accessor
//   - INVALID_STATE: a protocol invariant was violated (e.g. resolving a live
//     reference from a definition body)
//   - CORRUPT_DATA: the wire form references a (type, id) pair that was never
//     defined
//   - UNKNOWN_TYPE: a type name does not resolve against the registry
//
// The remaining codes serve the outer layers (stores, config, CLI).
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownType, "type %q is not registered", name)
//	if errors.Is(err, errors.ErrCodeUnknownType) {
//	    // Handle resolution failure
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInternal, origErr, "decode snapshot %s", id)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Serialization protocol errors
	ErrCodeTypeMismatch Code = "TYPE_MISMATCH"
	ErrCodeInvalidState Code = "INVALID_STATE"
	ErrCodeCorruptData  Code = "CORRUPT_DATA"
	ErrCodeUnknownType  Code = "UNKNOWN_TYPE"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Resource errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
