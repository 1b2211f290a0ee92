package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Failure kinds. Services classify every error with one of these so that
// handlers can map it to a status code and tests can match with errors.Is.
var (
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
	ErrInvalidInterval = errors.New("invalid interval")
	ErrUnavailable     = errors.New("unavailable")
	ErrSlotsExhausted  = errors.New("slots exhausted")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrInternal        = errors.New("internal error")
)

// HTTPError carries a human-readable message together with the failure kind
// it belongs to. Error() returns only the message; the kind is reachable
// through errors.Is via Unwrap.
type HTTPError struct {
	Kind    error
	Message string
}

func (e *HTTPError) Error() string { return e.Message }

func (e *HTTPError) Unwrap() error { return e.Kind }

func newError(kind error, format string, args ...interface{}) error {
	return &HTTPError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) error {
	return newError(ErrNotFound, format, args...)
}

func Validation(format string, args ...interface{}) error {
	return newError(ErrValidation, format, args...)
}

func InvalidInterval(format string, args ...interface{}) error {
	return newError(ErrInvalidInterval, format, args...)
}

func Unavailable(format string, args ...interface{}) error {
	return newError(ErrUnavailable, format, args...)
}

func SlotsExhausted(format string, args ...interface{}) error {
	return newError(ErrSlotsExhausted, format, args...)
}

func Unauthorized(format string, args ...interface{}) error {
	return newError(ErrUnauthorized, format, args...)
}

func Forbidden(format string, args ...interface{}) error {
	return newError(ErrForbidden, format, args...)
}

func Internal(format string, args ...interface{}) error {
	return newError(ErrInternal, format, args...)
}

// StatusCode maps a failure kind to its HTTP status. Unclassified errors are
// treated as internal.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrInvalidInterval),
		errors.Is(err, ErrUnavailable),
		errors.Is(err, ErrSlotsExhausted):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
