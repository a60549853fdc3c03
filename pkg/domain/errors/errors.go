// Package errors provides the solver's error taxonomy.
package errors

import (
	"fmt"
)

// Type identifies the category of error
type Type string

const (
	// TypeConfiguration indicates the base model is missing data the solver
	// contractually requires (capacity, cost) or the edge set is empty
	TypeConfiguration Type = "CONFIGURATION_ERROR"

	// TypeSolve indicates the LP backend terminated non-optimally
	TypeSolve Type = "SOLVE_ERROR"

	// TypeValidation indicates a solution failed advisory validation
	TypeValidation Type = "VALIDATION_ERROR"

	// TypeInternal indicates an internal error
	TypeInternal Type = "INTERNAL_ERROR"
)

// Error represents a domain error with context
type Error struct {
	Type    Type
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// Status returns the backend termination status attached to a solve error,
// or the empty string when none was recorded.
func (e *Error) Status() string {
	if s, ok := e.Context["status"].(string); ok {
		return s
	}
	return ""
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

// IsType checks if an error is of a specific type
func IsType(err error, t Type) bool {
	if e, ok := err.(*Error); ok {
		return e.Type == t
	}
	return false
}

// Configuration creates a configuration error
func Configuration(message string) *Error {
	return New(TypeConfiguration, message)
}

// Configurationf creates a formatted configuration error
func Configurationf(format string, args ...interface{}) *Error {
	return Newf(TypeConfiguration, format, args...)
}

// Solve creates a solve error carrying the backend termination status
func Solve(message, status string, cause error) *Error {
	return Wrap(TypeSolve, message, cause).WithContext("status", status)
}

// Validation creates a validation error
func Validation(message string) *Error {
	return New(TypeValidation, message)
}

// Internal creates an internal error
func Internal(message string, cause error) *Error {
	return Wrap(TypeInternal, message, cause)
}
