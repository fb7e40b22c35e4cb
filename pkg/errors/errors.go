package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType classifies why a remote lookup failed
type ErrorType string

const (
	ErrorTypeNetwork  ErrorType = "network"
	ErrorTypeStatus   ErrorType = "status"
	ErrorTypeParsing  ErrorType = "parsing"
	ErrorTypeGraphQL  ErrorType = "graphql"
	ErrorTypeNotFound ErrorType = "not_found"
	ErrorTypeUnknown  ErrorType = "unknown"
)

// Error represents a LeetCode API error with type information
type Error struct {
	Type    ErrorType
	Message string
	Code    int
	Err     error
}

func (e *Error) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s error (code %d): %s", e.Type, e.Code, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause, if any
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a typed error
func New(errType ErrorType, code int, message string) *Error {
	return &Error{Type: errType, Code: code, Message: message}
}

// Wrap creates a typed error around an underlying cause
func Wrap(errType ErrorType, err error, message string) *Error {
	return &Error{Type: errType, Message: fmt.Sprintf("%s: %v", message, err), Err: err}
}

// TypeOf returns the ErrorType carried by err, or ErrorTypeUnknown
func TypeOf(err error) ErrorType {
	var apiErr *Error
	if stderrors.As(err, &apiErr) {
		return apiErr.Type
	}
	return ErrorTypeUnknown
}

// IsNotFound reports whether err means the user does not exist
func IsNotFound(err error) bool {
	return err != nil && TypeOf(err) == ErrorTypeNotFound
}
