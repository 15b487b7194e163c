package authz

import (
	"errors"
	"net/http"
)

// Class partitions gate failures so transports can answer with the
// right semantics: re-login for Unauthenticated, "no access" for
// Forbidden, "no such organization" for NotFound.
type Class int

const (
	ClassUnauthenticated Class = iota + 1
	ClassForbidden
	ClassNotFound
	ClassInternal
)

// String names the class for logs and JSON payloads.
func (c Class) String() string {
	switch c {
	case ClassUnauthenticated:
		return "unauthenticated"
	case ClassForbidden:
		return "forbidden"
	case ClassNotFound:
		return "not_found"
	case ClassInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// HTTPStatus maps the class to its transport status code.
func (c Class) HTTPStatus() int {
	switch c {
	case ClassUnauthenticated:
		return http.StatusUnauthorized
	case ClassForbidden:
		return http.StatusForbidden
	case ClassNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified gate failure. It travels as a value; nothing in
// this package panics or aborts the transport itself.
type Error struct {
	Class   Class
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func newError(class Class, message string, err error) *Error {
	return &Error{Class: class, Message: message, Err: err}
}

// ClassOf extracts the failure class from err, treating anything
// unclassified as Internal. Returns 0 for a nil error.
func ClassOf(err error) Class {
	if err == nil {
		return 0
	}
	var authErr *Error
	if errors.As(err, &authErr) {
		return authErr.Class
	}
	return ClassInternal
}

// ErrNoPrincipal is reported by Request implementations when the
// inbound credential is missing or fails verification. The gate turns
// it into an Unauthenticated failure; any other principal error is
// treated as a collaborator fault.
var ErrNoPrincipal = errors.New("no authenticated principal")
