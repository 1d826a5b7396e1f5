package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/tend/internal/logger"
)

// Kind classifies an error for the request-handling boundary, which maps it
// onto an HTTP status.
type Kind int

const (
	KindInternal Kind = iota
	// KindInvalid marks a precondition violation: malformed date, inverted
	// range, bad payload shape. These are caller errors.
	KindInvalid
	KindNotFound
	KindUnauthorized
	KindConflict
)

// Error is a classified error with a client-safe message.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Invalid creates a precondition-violation error.
func Invalid(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalid, Msg: fmt.Sprintf(format, args...)}
}

// InvalidWrap wraps an underlying error as a precondition violation.
func InvalidWrap(err error, msg string) *Error {
	return &Error{Kind: KindInvalid, Msg: msg, Err: err}
}

// NotFound creates a missing-resource error.
func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

// Unauthorized creates an authentication/ownership error.
func Unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Msg: msg}
}

// Conflict creates a uniqueness-violation error.
func Conflict(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}

// KindOf extracts the classification of an error, defaulting to KindInternal
// for unclassified errors anywhere in the chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}
