// Package errors provides structured error types for layercanvas.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library, CLI and HTTP server
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Fragment-level failures abort a single insertion and leave the canvas
// untouched (MISSING_ROOT, INVALID_FRAGMENT). Element-level problems are
// recovered locally and surface as warnings carrying the same codes
// (DANGLING_EDGE, DUPLICATE_IDENTITY).
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMissingRoot, "fragment %s has no root", prefix)
//	if errors.Is(err, errors.ErrCodeMissingRoot) {
//	    // Canvas was not modified
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidFragment, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Fragment errors
	ErrCodeMissingRoot       Code = "MISSING_ROOT"
	ErrCodeDanglingEdge      Code = "DANGLING_EDGE"
	ErrCodeDuplicateIdentity Code = "DUPLICATE_IDENTITY"
	ErrCodeInvalidFragment   Code = "INVALID_FRAGMENT"
	ErrCodeChildConflict     Code = "CHILD_CONFLICT"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidPath   Code = "INVALID_PATH"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	// Resource errors
	ErrCodeNotFound       Code = "NOT_FOUND"
	ErrCodeCanvasNotFound Code = "CANVAS_NOT_FOUND"

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

// Warning is a recovered, element-local problem reported alongside a
// successful operation. Subject names the offending element or edge.
type Warning struct {
	Code    Code   `json:"code"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Warn builds a Warning with a formatted message.
func Warn(code Code, subject, format string, args ...any) Warning {
	return Warning{Code: code, Subject: subject, Message: fmt.Sprintf(format, args...)}
}

// String formats the warning as "CODE subject: message".
func (w Warning) String() string {
	return fmt.Sprintf("%s %s: %s", w.Code, w.Subject, w.Message)
}
