package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a domain failure that carries the HTTP status it maps to.
// Anything that is not an AppError is reported to clients as a 500.
type AppError struct {
	Status  int
	Message string
	Err     error
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

func NewValidationError(format string, args ...interface{}) *AppError {
	return &AppError{Status: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

// NewAuthError builds an authentication (401) or authorization (403) failure.
func NewAuthError(status int, message string) *AppError {
	return &AppError{Status: status, Message: message}
}

func NewNotFoundError(entity string) *AppError {
	return &AppError{Status: http.StatusNotFound, Message: entity + " not found"}
}

func NewConflictError(format string, args ...interface{}) *AppError {
	return &AppError{Status: http.StatusConflict, Message: fmt.Sprintf(format, args...)}
}

// AsAppError unwraps err to an *AppError if there is one in the chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsStatus reports whether err is an AppError with the given status.
func IsStatus(err error, status int) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Status == status
}
