package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Standard error types
var (
	ErrNotFound      = errors.New("resource not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrBadRequest    = errors.New("bad request")
	ErrConflict      = errors.New("resource conflict")
	ErrInternal      = errors.New("internal server error")
	ErrValidation    = errors.New("validation error")
	ErrTokenExpired  = errors.New("token expired")
	ErrTokenInvalid  = errors.New("invalid token")
	ErrMalformedTime = errors.New("malformed timestamp")
)

// AppError represents an application error with context
type AppError struct {
	Err        error             `json:"-"`
	Message    string            `json:"message"`
	Code       string            `json:"code"`
	StatusCode int               `json:"status_code"`
	Details    map[string]string `json:"details,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError
func New(code string, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, code string, message string, statusCode int) *AppError {
	return &AppError{
		Err:        err,
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// WithDetails adds details to an AppError
func (e *AppError) WithDetails(details map[string]string) *AppError {
	e.Details = details
	return e
}

func sentinel(err error, code, message string, statusCode int) *AppError {
	return &AppError{Err: err, Code: code, Message: message, StatusCode: statusCode}
}

// NotFound reports a missing resource
func NotFound(resource string) *AppError {
	return sentinel(ErrNotFound, "NOT_FOUND", resource+" not found", http.StatusNotFound)
}

func Unauthorized(message string) *AppError {
	return sentinel(ErrUnauthorized, "UNAUTHORIZED", message, http.StatusUnauthorized)
}

func BadRequest(message string) *AppError {
	return sentinel(ErrBadRequest, "BAD_REQUEST", message, http.StatusBadRequest)
}

// Conflict reports a write that clashes with stored state
func Conflict(message string) *AppError {
	return sentinel(ErrConflict, "CONFLICT", message, http.StatusConflict)
}

func Internal(message string) *AppError {
	return sentinel(ErrInternal, "INTERNAL_ERROR", message, http.StatusInternalServerError)
}

// Validation carries per-field messages keyed by field path
func Validation(details map[string]string) *AppError {
	return sentinel(ErrValidation, "VALIDATION_ERROR", "validation failed", http.StatusBadRequest).WithDetails(details)
}

func TokenExpired() *AppError {
	return sentinel(ErrTokenExpired, "TOKEN_EXPIRED", "token has expired", http.StatusUnauthorized)
}

func TokenInvalid() *AppError {
	return sentinel(ErrTokenInvalid, "TOKEN_INVALID", "invalid token", http.StatusUnauthorized)
}

// Labour batch errors

// UnknownEmployee is returned when a clock record references an employee
// that is not in the employee list.
func UnknownEmployee(index int, employeeID string) *AppError {
	return &AppError{
		Err:        ErrNotFound,
		Code:       "UNKNOWN_EMPLOYEE",
		Message:    fmt.Sprintf("clock %d references unknown employee %s", index, employeeID),
		StatusCode: http.StatusUnprocessableEntity,
		Details:    map[string]string{"employee_id": employeeID, "clock_index": fmt.Sprint(index)},
	}
}

// MalformedTimestamp is returned when a clock record carries a datetime
// that does not match the expected layout.
func MalformedTimestamp(index int, field, value string, cause error) *AppError {
	return &AppError{
		Err:        fmt.Errorf("%w: %v", ErrMalformedTime, cause),
		Code:       "VALIDATION_ERROR",
		Message:    fmt.Sprintf("clock %d has malformed %s %q", index, field, value),
		StatusCode: http.StatusBadRequest,
		Details:    map[string]string{field: "must match YYYY-MM-DD HH:MM:SS", "clock_index": fmt.Sprint(index)},
	}
}

// Is checks if the error matches a target error
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As attempts to convert an error to a specific type
func As(err error, target any) bool {
	return errors.As(err, target)
}
