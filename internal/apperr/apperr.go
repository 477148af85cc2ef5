// Package apperr defines the error taxonomy shared across services: every
// failure surfaced out of a service is classified as one of the kinds below so
// that callers (and the HTTP layer) can react without string matching.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// KindInternal is the default for unclassified failures.
	KindInternal Kind = iota
	// KindNotFound signals an absent cart, product, order, payment or user.
	KindNotFound
	// KindInvalidArgument signals a rejected request: insufficient stock,
	// non-positive quantity, empty order, amount mismatch, illegal transition.
	KindInvalidArgument
	// KindConflict signals a lost race: duplicate payment for an order or an
	// exhausted stock compare-and-swap.
	KindConflict
	// KindUnavailable signals a failed or timed-out document-store call and is
	// the only retryable kind.
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalidArgument:
		return "invalid_argument"
	case KindConflict:
		return "conflict"
	case KindUnavailable:
		return "unavailable"
	default:
		return "internal"
	}
}

// Error carries a kind alongside the usual message and wrapped cause.
type Error struct {
	kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.err }

func (e *Error) Kind() Kind { return e.kind }

func New(kind Kind, format string, args ...any) error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind to an underlying error without losing the chain.
func Wrap(kind Kind, err error, format string, args ...any) error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...), err: err}
}

func NotFound(format string, args ...any) error {
	return New(KindNotFound, format, args...)
}

func InvalidArgument(format string, args ...any) error {
	return New(KindInvalidArgument, format, args...)
}

func Conflict(format string, args ...any) error {
	return New(KindConflict, format, args...)
}

func Unavailable(err error, format string, args ...any) error {
	return Wrap(KindUnavailable, err, format, args...)
}

func Internal(err error, format string, args ...any) error {
	return Wrap(KindInternal, err, format, args...)
}

// KindOf reports the kind of the first *Error in the chain, or KindInternal
// when the error was never classified.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.kind
	}
	return KindInternal
}

func IsNotFound(err error) bool        { return KindOf(err) == KindNotFound }
func IsInvalidArgument(err error) bool { return KindOf(err) == KindInvalidArgument }
func IsConflict(err error) bool        { return KindOf(err) == KindConflict }
func IsUnavailable(err error) bool     { return KindOf(err) == KindUnavailable }
