// Package apperr defines the error taxonomy shared by all layers.
//
// Repositories return the sentinel values (ErrNotFound, ErrDuplicate) and
// wrap everything else; services translate sentinels into typed *Error
// values that carry a machine-readable code and optional structured
// metadata. Callers match sentinels with errors.Is and typed errors with
// errors.As.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Repository-level sentinels.
var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate")
)

// Code identifies the failure class surfaced to callers.
type Code string

const (
	CodeInvalidInput  Code = "invalid_input"
	CodeUnauthorized  Code = "unauthorized"
	CodeForbidden     Code = "forbidden"
	CodeNotFound      Code = "not_found"
	CodeConflict      Code = "conflict"
	CodeInternalError Code = "internal_error"
)

// HTTPStatus maps a code to its HTTP-equivalent status.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeInvalidInput:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error is a typed service failure. Message is safe to show to clients;
// Meta carries structured detail (violation lists, conflicting values).
type Error struct {
	Code    Code
	Message string
	Meta    map[string]any
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newError(code Code, message string, meta map[string]any) *Error {
	return &Error{Code: code, Message: message, Meta: meta}
}

func InvalidInput(message string) *Error {
	return newError(CodeInvalidInput, message, nil)
}

func InvalidInputMeta(message string, meta map[string]any) *Error {
	return newError(CodeInvalidInput, message, meta)
}

func Unauthorized(message string) *Error {
	return newError(CodeUnauthorized, message, nil)
}

func Forbidden(message string) *Error {
	return newError(CodeForbidden, message, nil)
}

func ForbiddenMeta(message string, meta map[string]any) *Error {
	return newError(CodeForbidden, message, meta)
}

func NotFound(message string) *Error {
	return newError(CodeNotFound, message, nil)
}

func ConflictMeta(message string, meta map[string]any) *Error {
	return newError(CodeConflict, message, meta)
}

func Internal(message string) *Error {
	return newError(CodeInternalError, message, nil)
}

// CodeOf extracts the failure class from err. Anything that is not a typed
// *Error is reported as internal_error so raw storage failures never leak
// uncategorized.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternalError
}

// As is a convenience wrapper around errors.As for typed errors.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
