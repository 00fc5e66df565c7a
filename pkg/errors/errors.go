package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error so callers can branch on it.
type Kind string

const (
	KindValidation        Kind = "validation_error"
	KindNotFound          Kind = "not_found"
	KindInvalidTransition Kind = "invalid_transition"
	KindConflict          Kind = "conflict"
	KindInternal          Kind = "internal"
)

// AppError represents an application error
type AppError struct {
	Kind    Kind   `json:"kind"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode maps the error kind to an HTTP status. Used by the error
// middleware; services never deal in HTTP status codes directly.
func (e *AppError) StatusCode() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidTransition, KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error constructors
func Validation(field, message string) *AppError {
	return &AppError{
		Kind:    KindValidation,
		Field:   field,
		Message: message,
	}
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s %s not found", resource, id),
	}
}

func InvalidTransition(resource, from, to string) *AppError {
	return &AppError{
		Kind:    KindInvalidTransition,
		Message: fmt.Sprintf("%s cannot transition from %s to %s", resource, from, to),
	}
}

func Conflict(message string) *AppError {
	return &AppError{
		Kind:    KindConflict,
		Message: message,
	}
}

func Internal(err error) *AppError {
	return &AppError{
		Kind:    KindInternal,
		Message: "internal server error",
		Err:     err,
	}
}

// KindOf returns the kind of err, or KindInternal for non-application errors.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
