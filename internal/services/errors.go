package services

import (
	"errors"
	"fmt"

	"TRAVELBUDDY_BACK-END/internal/repository"
)

// Kind classifies a rule-engine failure
type Kind string

const (
	KindNotFound         Kind = "NOT_FOUND"
	KindForbidden        Kind = "FORBIDDEN"
	KindInvalidInput     Kind = "INVALID_INPUT"
	KindInvalidState     Kind = "INVALID_STATE"
	KindConflict         Kind = "CONFLICT"
	KindQuotaExceeded    Kind = "QUOTA_EXCEEDED"
	KindUnauthenticated  Kind = "UNAUTHENTICATED"
	KindInvalidSignature Kind = "INVALID_SIGNATURE"
	KindInternal         Kind = "INTERNAL"
)

// Error is returned by every service operation that fails for a
// business reason. Message is safe to show to end users; Err is not.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// internal wraps a storage or gateway failure without leaking its text
func internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// KindOf returns the kind carried by err, or KindInternal
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries kind
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// fromStore maps repository sentinels onto kinds, using msg for the
// user-facing text
func fromStore(err error, msg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return &Error{Kind: KindNotFound, Message: msg, Err: err}
	case errors.Is(err, repository.ErrConflict):
		return &Error{Kind: KindConflict, Message: msg, Err: err}
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return internal(msg, err)
}
