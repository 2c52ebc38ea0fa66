// Package apperror defines the typed errors surfaced by the service layer.
package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies an error for callers and for HTTP mapping
type Kind int

const (
	KindInternal Kind = iota
	KindInvalidArgument
	KindNotFound
	KindInsufficientFunds
	KindInsufficientHoldings
	KindConflict
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid_argument"
	case KindNotFound:
		return "not_found"
	case KindInsufficientFunds:
		return "insufficient_funds"
	case KindInsufficientHoldings:
		return "insufficient_holdings"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "internal"
	}
}

// Error is a classified error with a user-facing message
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Kind sentinels, usable with errors.Is
var (
	ErrInvalidArgument      = &Error{Kind: KindInvalidArgument}
	ErrNotFound             = &Error{Kind: KindNotFound}
	ErrInsufficientFunds    = &Error{Kind: KindInsufficientFunds}
	ErrInsufficientHoldings = &Error{Kind: KindInsufficientHoldings}
	ErrConflict             = &Error{Kind: KindConflict}
	ErrUnauthorized         = &Error{Kind: KindUnauthorized}
	ErrInternal             = &Error{Kind: KindInternal}
)

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return e.Message + ": " + e.Err.Error()
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind when the target is a bare sentinel
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Message == "" && t.Err == nil {
		return t.Kind == e.Kind
	}
	return e == t
}

// PublicMessage returns the message safe to show to API clients.
// Internal errors never expose their cause.
func (e *Error) PublicMessage() string {
	if e.Kind == KindInternal {
		if e.Message != "" {
			return e.Message
		}
		return "internal server error"
	}
	if e.Message != "" {
		return e.Message
	}
	return e.Kind.String()
}

func newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// InvalidArgument builds a KindInvalidArgument error
func InvalidArgument(format string, args ...interface{}) *Error {
	return newf(KindInvalidArgument, format, args...)
}

// NotFound builds a KindNotFound error
func NotFound(format string, args ...interface{}) *Error {
	return newf(KindNotFound, format, args...)
}

// Conflict builds a KindConflict error
func Conflict(format string, args ...interface{}) *Error {
	return newf(KindConflict, format, args...)
}

// Unauthorized builds a KindUnauthorized error
func Unauthorized(format string, args ...interface{}) *Error {
	return newf(KindUnauthorized, format, args...)
}

// InsufficientFunds reports the required and available amounts
func InsufficientFunds(required, available string) *Error {
	return newf(KindInsufficientFunds, "insufficient balance: required %s, available %s", required, available)
}

// InsufficientHoldings reports the owned and requested quantities
func InsufficientHoldings(owned, requested int64) *Error {
	return newf(KindInsufficientHoldings, "insufficient holdings: you own %d shares, trying to sell %d", owned, requested)
}

// Internal wraps an unexpected failure
func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf returns the kind of err, KindInternal for unclassified errors
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}
