package failure

import (
	"errors"
	"fmt"
	"net/http"
)

// Failure is an error that carries the HTTP status it should be answered with.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}

func (e *Failure) Error() string {
	return e.Message
}

// Is matches any Failure with the same code, so errors.Is(err, &Failure{Code: 409}) works.
func (e *Failure) Is(target error) bool {
	var other *Failure
	if !errors.As(target, &other) {
		return false
	}

	return other.Code == e.Code && (other.Message == "" || other.Message == e.Message)
}

func newf(code int, format string, args ...any) error {
	return &Failure{Code: code, Message: fmt.Sprintf(format, args...)}
}

// BadRequest converts a validation error into a 400. A nil error stays nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return &Failure{Code: http.StatusBadRequest, Message: err.Error()}
}

func BadRequestFromString(msg string) error {
	return &Failure{Code: http.StatusBadRequest, Message: msg}
}

func Unauthorized(msg string) error {
	return &Failure{Code: http.StatusUnauthorized, Message: msg}
}

func Forbidden(msg string) error {
	return &Failure{Code: http.StatusForbidden, Message: msg}
}

// NotFound returns a 404 with msg, e.g. "room not found".
func NotFound(msg string) error {
	return &Failure{Code: http.StatusNotFound, Message: msg}
}

func Conflict(msg string) error {
	return &Failure{Code: http.StatusConflict, Message: msg}
}

func Conflictf(format string, args ...any) error {
	return newf(http.StatusConflict, format, args...)
}

// GetCode returns the status carried by err, or 500 for anything else.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}
