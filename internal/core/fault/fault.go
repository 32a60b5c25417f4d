// Package fault defines the typed error kinds surfaced by the application
// services. Callers branch on the kind, not on error strings.
package fault

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind string

const (
	// KindValidation indicates missing or malformed input. Recoverable:
	// the caller corrects the input and resubmits.
	KindValidation Kind = "validation"
	// KindNotFound indicates a referenced profile, mission, or message
	// does not exist.
	KindNotFound Kind = "not_found"
	// KindForbidden indicates the caller is not an authorized party for
	// the requested operation.
	KindForbidden Kind = "forbidden"
	// KindInvalidTransition indicates the operation is not valid for the
	// mission's current status.
	KindInvalidTransition Kind = "invalid_transition"
)

// Error is a classified application error.
type Error struct {
	Kind Kind
	Msg  string
	Err  error // optional wrapped cause
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

// New creates an error of the given kind.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap creates an error of the given kind around a cause.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// Validation creates a validation error.
func Validation(format string, args ...any) *Error {
	return New(KindValidation, format, args...)
}

// NotFound creates a not-found error.
func NotFound(format string, args ...any) *Error {
	return New(KindNotFound, format, args...)
}

// Forbidden creates a forbidden error.
func Forbidden(format string, args ...any) *Error {
	return New(KindForbidden, format, args...)
}

// InvalidTransition creates an invalid-state-transition error.
func InvalidTransition(format string, args ...any) *Error {
	return New(KindInvalidTransition, format, args...)
}

// KindOf returns the kind of err, or the empty Kind for unclassified errors.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool { return KindOf(err) == KindValidation }

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsForbidden reports whether err is a forbidden error.
func IsForbidden(err error) bool { return KindOf(err) == KindForbidden }

// IsInvalidTransition reports whether err is an invalid-transition error.
func IsInvalidTransition(err error) bool { return KindOf(err) == KindInvalidTransition }
