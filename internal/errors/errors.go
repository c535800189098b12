// Package errors provides error handling utilities.
package errors

import (
	stderrors "errors"
	"fmt"

	"go.uber.org/multierr"
)

// Type identifies the category of error
type Type string

const (
	// TypeInput indicates an input validation error
	TypeInput Type = "INPUT_ERROR"

	// TypeParsing indicates a parsing error
	TypeParsing Type = "PARSING_ERROR"

	// TypeConfig indicates a configuration error
	TypeConfig Type = "CONFIG_ERROR"

	// TypeInternal indicates an internal error
	TypeInternal Type = "INTERNAL_ERROR"
)

// Error represents a domain error
type Error struct {
	Type    Type   `json:"type"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Cause   error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, msg, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, msg)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error is of a specific type
func (e *Error) Is(t Type) bool {
	return e.Type == t
}

// New creates a new error
func New(errType Type, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
	}
}

// Newf creates a new formatted error
func Newf(errType Type, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with context
func Wrap(errType Type, message string, cause error) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(errType Type, cause error, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// IsType checks if an error, or any error it wraps or combines, is of a specific type
func IsType(err error, t Type) bool {
	for _, e := range multierr.Errors(err) {
		var de *Error
		if stderrors.As(e, &de) && de.Is(t) {
			return true
		}
	}
	return false
}

// InvalidInput creates an input error for a single named field.
// It is the error every rejected building parameter produces.
func InvalidInput(field, format string, args ...interface{}) *Error {
	return &Error{
		Type:    TypeInput,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

// IsInvalidInput reports whether err carries at least one input error
func IsInvalidInput(err error) bool {
	return IsType(err, TypeInput)
}

// FieldError is one offending field with a human-readable reason
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Fields flattens a (possibly combined) input error into its field errors,
// in the order they were reported.
func Fields(err error) []FieldError {
	var out []FieldError
	for _, e := range multierr.Errors(err) {
		var de *Error
		if stderrors.As(e, &de) && de.Type == TypeInput {
			out = append(out, FieldError{Field: de.Field, Message: de.Message})
		}
	}
	return out
}

// Input creates an input error
func Input(message string) *Error {
	return New(TypeInput, message)
}

// Parsing creates a parsing error
func Parsing(message string, cause error) *Error {
	return Wrap(TypeParsing, message, cause)
}

// Config creates a configuration error
func Config(message string, cause error) *Error {
	return Wrap(TypeConfig, message, cause)
}

// Internal creates an internal error
func Internal(message string, cause error) *Error {
	return Wrap(TypeInternal, message, cause)
}
