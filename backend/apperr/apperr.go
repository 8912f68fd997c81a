// Package apperr defines the error kinds every layer of the service reports.
package apperr

import (
	"errors"
	"net/http"
)

type Kind string

const (
	KindValidation      Kind = "validation"
	KindUnauthorized    Kind = "unauthorized"
	KindForbidden       Kind = "forbidden"
	KindNotFound        Kind = "not_found"
	KindInvalidReorder  Kind = "invalid_reorder"
	KindReorderPartial  Kind = "reorder_partial_failure"
	KindReorderConflict Kind = "reorder_conflict"
	KindPersistence     Kind = "persistence"
)

// Error carries a kind, a message safe to show to the caller and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches sentinel values by kind, so errors.Is(err, ErrNotFound) holds for
// any not-found error regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil {
		return false
	}
	return t.Message == "" && t.Err == nil && t.Fields == nil && t.Kind == e.Kind
}

var (
	ErrValidation      = &Error{Kind: KindValidation}
	ErrUnauthorized    = &Error{Kind: KindUnauthorized}
	ErrForbidden       = &Error{Kind: KindForbidden}
	ErrNotFound        = &Error{Kind: KindNotFound}
	ErrInvalidReorder  = &Error{Kind: KindInvalidReorder}
	ErrReorderPartial  = &Error{Kind: KindReorderPartial}
	ErrReorderConflict = &Error{Kind: KindReorderConflict}
	ErrPersistence     = &Error{Kind: KindPersistence}
)

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Validation(message string) *Error { return New(KindValidation, message) }

// ValidationFields reports per-field problems; message summarises them.
func ValidationFields(message string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

func Unauthorized(message string) *Error { return New(KindUnauthorized, message) }

func Forbidden(message string) *Error { return New(KindForbidden, message) }

func NotFound(message string) *Error { return New(KindNotFound, message) }

func InvalidReorder(message string) *Error { return New(KindInvalidReorder, message) }

func Persistence(message string, err error) *Error { return Wrap(KindPersistence, message, err) }

// KindOf returns the kind of the first *Error in err's chain, or "" when none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// HTTPStatus maps an error to the status code the HTTP layer answers with.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidReorder:
		return http.StatusBadRequest
	case KindReorderPartial, KindReorderConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage is the text returned to clients. Persistence and unknown
// errors never leak their cause.
func PublicMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) || e.Kind == KindPersistence {
		return "operation failed"
	}
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}
