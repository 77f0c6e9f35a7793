// Package apierror provides the structured error kinds used across the library.
package apierror

import (
	"errors"
	"fmt"
)

// Kind categorizes an error so callers can tell programmer mistakes apart
// from remote failures.
type Kind string

const (
	// KindInvalidUsage indicates a client-side precondition violation. The
	// request was never sent.
	KindInvalidUsage Kind = "invalid_usage"
	// KindRemote indicates a transport-level or API-level failure.
	KindRemote Kind = "remote"
	// KindFetch indicates a failed materialization of a remote resource.
	KindFetch Kind = "fetch"
)

// Error is a structured error with a kind, message, and optional cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error

	// StatusCode holds the HTTP status of a failed API call, or 0 when the
	// failure happened before a response was received.
	StatusCode int
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// InvalidUsage creates a precondition-violation error.
func InvalidUsage(message string) *Error {
	return &Error{Kind: KindInvalidUsage, Message: message}
}

// Remote creates a transport/API failure error.
func Remote(message string, cause error) *Error {
	return &Error{Kind: KindRemote, Message: message, Cause: cause}
}

// RemoteStatus creates a transport/API failure error carrying the HTTP status.
func RemoteStatus(message string, statusCode int) *Error {
	return &Error{Kind: KindRemote, Message: message, StatusCode: statusCode}
}

// Fetch creates a resource-materialization error.
func Fetch(message string, cause error) *Error {
	return &Error{Kind: KindFetch, Message: message, Cause: cause}
}

// IsInvalidUsage reports whether err is an invalid-usage error.
func IsInvalidUsage(err error) bool { return isKind(err, KindInvalidUsage) }

// IsRemote reports whether err is a transport/API failure.
func IsRemote(err error) bool { return isKind(err, KindRemote) }

// IsFetch reports whether err is a resource-materialization failure.
func IsFetch(err error) bool { return isKind(err, KindFetch) }

func isKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
