package apperrors

import (
	"github.com/pkg/errors"
)

// Kind classifies an error for the HTTP boundary.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindPreconditionFailed
	KindConflict
)

// Error is a domain error carrying a user-facing message. The message is
// final: it propagates unchanged to the boundary, where the kind decides the
// status code.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Validation reports malformed input.
func Validation(message string) error {
	return &Error{Kind: KindValidation, Message: message}
}

// NotFound reports a missing referenced entity.
func NotFound(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

// PreconditionFailed reports a status transition requested before its
// required clinical data exists.
func PreconditionFailed(message string) error {
	return &Error{Kind: KindPreconditionFailed, Message: message}
}

// Conflict reports a unique-constraint violation. The caller may retry the
// whole operation.
func Conflict(message string) error {
	return &Error{Kind: KindConflict, Message: message}
}

// Internal wraps an unexpected error with a stack trace. The message shown to
// the caller is generic; the cause stays in the logs.
func Internal(err error, context string) error {
	return &Error{Kind: KindInternal, Message: "internal server error", cause: errors.Wrap(err, context)}
}

// KindOf extracts the kind from err, defaulting to KindInternal for errors
// that did not originate in this package.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
