// Package errors defines the structured error type kiosk commands print.
// Every user-facing failure carries a category code, a one-line summary,
// and where possible a suggestion for fixing it.
package errors

import (
	"errors"
	"strings"
)

// Code categorizes an error by the subsystem it came from.
type Code string

const (
	ErrConfig Code = "CONFIG"
	ErrFetch  Code = "FETCH"
	ErrSignal Code = "SIGNAL"
	ErrLayout Code = "LAYOUT"
	ErrRender Code = "RENDER"
)

// Error is a structured error. Its string form reads as three short
// blocks: what failed, why it failed, and how to fix it.
type Error struct {
	Code       Code
	Message    string
	Suggestion string
	Cause      error
}

// New creates an error with the given code, summary, and suggestion.
func New(code Code, message, suggestion string) *Error {
	return &Error{Code: code, Message: message, Suggestion: suggestion}
}

// Wrap attaches a summary to an underlying error. Most wrapped errors
// come out of source fetches, so the code defaults to ErrFetch.
func Wrap(err error, message string) *Error {
	return WrapWithCode(err, ErrFetch, message, "")
}

// WrapWithCode attaches a code, summary, and suggestion to an
// underlying error.
func WrapWithCode(err error, code Code, message, suggestion string) *Error {
	return &Error{Code: code, Message: message, Suggestion: suggestion, Cause: err}
}

// Error renders the what/why/how blocks. The cause and suggestion lines
// are indented under the summary and omitted when empty.
func (e *Error) Error() string {
	lines := []string{"✗ " + e.Message}
	if e.Cause != nil {
		lines = append(lines, "", "  "+e.Cause.Error())
	}
	if e.Suggestion != "" {
		lines = append(lines, "", "  "+e.Suggestion)
	}
	return strings.Join(lines, "\n") + "\n"
}

// Unwrap exposes the cause to errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsCode reports whether err is (or wraps) a structured Error with the
// given code.
func IsCode(err error, code Code) bool {
	var se *Error
	return errors.As(err, &se) && se.Code == code
}
