// Package errors defines typed errors with categories for user-friendly reporting.
// A Kind is machine-readable and stable; Message is what a person reads.
// Underlying errors stay reachable through Unwrap so callers can still use
// errors.Is and errors.As on the cause.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// InvalidCredentials indicates the server rejected the username or password (HTTP 403).
	InvalidCredentials Kind = "invalid_credentials"
	// ServerUnreachable indicates every login candidate failed for a reason other than 403.
	ServerUnreachable Kind = "server_unreachable"
	// StorageUnavailable indicates the persistent storage backend could not be opened or used.
	StorageUnavailable Kind = "storage_unavailable"
	// ConfigInvalid indicates the configuration file or environment could not be parsed.
	ConfigInvalid Kind = "config_invalid"
)

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// KindOf returns the Kind of the first *E in err's chain, or "" when there is none.
func KindOf(err error) Kind {
	var e *E
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}
