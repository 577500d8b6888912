package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a failure. The HTTP boundary maps every kind to exactly one
// status code and error code.
type Kind int

const (
	// KindInternal is any failure that is not one of the kinds below.
	KindInternal Kind = iota
	// KindValidation is returned when a decoded payload breaks a field rule.
	KindValidation
	// KindNotFound is returned when the addressed record does not exist.
	KindNotFound
	// KindBadRequest is returned when a payload parses but has the wrong shape
	// or cannot be bound to the expected projection.
	KindBadRequest
	// KindUnreadable is returned when the request body is not valid JSON.
	KindUnreadable
	// KindAuth is returned when authentication or authorization fails.
	KindAuth
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindBadRequest:
		return "bad_request"
	case KindUnreadable:
		return "unreadable"
	case KindAuth:
		return "auth"
	default:
		return "internal"
	}
}

// Common messages surfaced to clients.
const (
	MsgValidationFailed  = "Validation failed"
	MsgEmptyBatch        = "Request body must contain at least one employee"
	MsgInvalidShape      = "Request body must be an object or array"
	MsgInvalidPayload    = "Invalid request payload"
	MsgMalformedJSON     = "Malformed JSON request"
	MsgInsufficientScope = "Insufficient scope"
	MsgAuthRequired      = "Authentication required"
	MsgRouteNotFound     = "Resource not found"
	MsgMethodNotAllowed  = "Method not allowed"
)

// ErrEmployeeNotFound is the cause wrapped by not-found errors for employees.
var ErrEmployeeNotFound = errors.New("employee not found")

// Error is a classified failure. Message and Details are safe to show to
// clients; Err carries the underlying cause for logs only.
type Error struct {
	Kind    Kind
	Message string
	Details []string
	// Forbidden distinguishes an authenticated caller lacking a scope from an
	// unauthenticated one. Only meaningful for KindAuth.
	Forbidden bool
	Err       error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	b.WriteString(": ")
	b.WriteString(e.Message)
	if len(e.Details) > 0 {
		b.WriteString(" [")
		b.WriteString(strings.Join(e.Details, "; "))
		b.WriteString("]")
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewValidationError creates a validation failure carrying one
// "field: message" entry per violation.
func NewValidationError(details []string) *Error {
	return &Error{Kind: KindValidation, Message: MsgValidationFailed, Details: details}
}

// NewNotFoundError reports a missing employee.
func NewNotFoundError(id int64) *Error {
	return &Error{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("Employee not found: %d", id),
		Err:     ErrEmployeeNotFound,
	}
}

// NewBadRequestError reports a payload that parses but cannot be used.
func NewBadRequestError(message string, err error) *Error {
	return &Error{Kind: KindBadRequest, Message: message, Err: err}
}

// NewUnreadableError reports a request body that is not valid JSON.
func NewUnreadableError(err error) *Error {
	return &Error{Kind: KindUnreadable, Message: MsgMalformedJSON, Err: err}
}

// NewUnauthenticatedError reports a missing or unusable credential.
func NewUnauthenticatedError(message string, err error) *Error {
	return &Error{Kind: KindAuth, Message: message, Err: err}
}

// NewForbiddenError reports a verified caller without the required scope.
func NewForbiddenError(message string) *Error {
	return &Error{Kind: KindAuth, Message: message, Forbidden: true}
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}
