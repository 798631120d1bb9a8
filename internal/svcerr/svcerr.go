// Package svcerr defines the error kinds services return so the HTTP
// boundary can translate failures to status codes in exactly one place.
package svcerr

import "errors"

// Kind classifies a service failure.
type Kind int

const (
	// Unknown covers unexpected failures with no more specific kind.
	Unknown Kind = iota
	// Validation means a required field was missing or empty.
	Validation
	// NotFound means a referenced entity id does not exist.
	NotFound
	// Conflict means a storage-level uniqueness violation.
	Conflict
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case NotFound:
		return "not_found"
	case Conflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// Error is a tagged service error.
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

// NewValidation reports a missing/empty required field.
func NewValidation(message string) *Error {
	return &Error{Kind: Validation, Message: message}
}

// NewNotFound reports a missing entity.
func NewNotFound(message string) *Error {
	return &Error{Kind: NotFound, Message: message}
}

// NewConflict reports a uniqueness violation.
func NewConflict(message string) *Error {
	return &Error{Kind: Conflict, Message: message}
}

// Wrap attaches a kind to an underlying error.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// KindOf extracts the kind from an error chain; plain errors are Unknown.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return Unknown
}

// IsNotFound reports whether the error chain carries the NotFound kind.
func IsNotFound(err error) bool {
	return KindOf(err) == NotFound
}
