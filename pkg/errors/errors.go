// Package errors provides structured error types for graphar.
//
// Every fallible operation in the info model, the path resolver, the chunk
// readers and the storage backends returns an [*Error] carrying a
// machine-readable [Code]. Callers branch on the code rather than on message
// text:
//
//	v2, err := v1.AddPropertyGroup(g)
//	if errors.Is(err, errors.ErrCodeSchemaConflict) {
//	    // property already registered on v1; v1 is unchanged
//	}
//
// # Error Codes
//
//   - INVALID_VERSION: unparseable or unsupported version tag
//   - SCHEMA_CONFLICT: duplicate property name, adjacency type or entity key
//   - NOT_FOUND: unknown label, property, group or adjacency type
//   - INVALID_ARGUMENT: negative id, non-positive chunk size, bad seek side
//   - OUT_OF_RANGE: advancing or seeking a cursor past the last chunk
//   - SERIALIZATION_ERROR: malformed persisted schema
//   - IO_ERROR: filesystem failure during Save/Load
//
// Wrap existing errors to keep the cause available to errors.Unwrap:
//
//	err := errors.Wrap(errors.ErrCodeIO, origErr, "write %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidVersion  Code = "INVALID_VERSION"
	ErrCodeInvalidArgument Code = "INVALID_ARGUMENT"
	ErrCodeInvalidPath     Code = "INVALID_PATH"

	// Schema errors
	ErrCodeSchemaConflict Code = "SCHEMA_CONFLICT"
	ErrCodeSerialization  Code = "SERIALIZATION_ERROR"

	// Lookup and cursor errors
	ErrCodeNotFound   Code = "NOT_FOUND"
	ErrCodeOutOfRange Code = "OUT_OF_RANGE"

	// Storage errors
	ErrCodeIO Code = "IO_ERROR"

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
// Only the outermost *Error in the chain is consulted, so a NOT_FOUND
// wrapped into an IO_ERROR reports IO_ERROR.
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

// Join combines several errors into one, dropping nils.
// It returns nil when every argument is nil and the sole error when only one
// remains, so a single failure keeps its code visible to [Is].
func Join(errs ...error) error {
	var kept []error
	for _, err := range errs {
		if err != nil {
			kept = append(kept, err)
		}
	}
	switch len(kept) {
	case 0:
		return nil
	case 1:
		return kept[0]
	}
	return errors.Join(kept...)
}
