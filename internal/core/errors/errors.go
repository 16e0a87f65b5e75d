package errors

import (
	"errors"
	"fmt"
)

// Domain errors. Malformed upstream fields are deliberately NOT errors —
// they resolve to absent values and are excluded from computations — so the
// taxonomy here covers only request problems and upstream availability.
var (
	ErrBadRequest      = errors.New("bad request")
	ErrNotFound        = errors.New("resource not found")
	ErrRateLimited     = errors.New("rate limit exceeded")
	ErrDataUnavailable = errors.New("upstream ticket data unavailable")
	ErrInternal        = errors.New("internal server error")
)

// AppError wraps errors with additional context for HTTP responses
type AppError struct {
	Err        error  // The underlying error
	Message    string // User-friendly message
	Code       string // Machine-readable error code
	StatusCode int    // HTTP status code
	Details    map[string]interface{}
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Error constructors for common cases
func NewBadRequestError(err error, message string) *AppError {
	return &AppError{
		Err:        err,
		Message:    message,
		Code:       "BAD_REQUEST",
		StatusCode: 400,
	}
}

func NewNotFoundError(err error, message string) *AppError {
	return &AppError{
		Err:        err,
		Message:    message,
		Code:       "NOT_FOUND",
		StatusCode: 404,
	}
}

func NewValidationError(err error, message string, details map[string]interface{}) *AppError {
	return &AppError{
		Err:        err,
		Message:    message,
		Code:       "VALIDATION_ERROR",
		StatusCode: 422,
		Details:    details,
	}
}

func NewRateLimitError() *AppError {
	return &AppError{
		Err:        ErrRateLimited,
		Message:    "Too many requests. Please try again later.",
		Code:       "RATE_LIMITED",
		StatusCode: 429,
	}
}

// NewUnavailableError signals that the upstream fetch failed after retries.
// The aggregation core is never run against a partial fetch; the caller
// gets this single condition instead.
func NewUnavailableError(err error) *AppError {
	return &AppError{
		Err:        fmt.Errorf("%w: %w", ErrDataUnavailable, err),
		Message:    "Ticket data is temporarily unavailable",
		Code:       "DATA_UNAVAILABLE",
		StatusCode: 503,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Err:        err,
		Message:    "An unexpected error occurred",
		Code:       "INTERNAL_ERROR",
		StatusCode: 500,
	}
}

// ValidationErrors holds multiple field validation errors
type ValidationErrors struct {
	Errors map[string][]string `json:"errors"`
}

func NewValidationErrors() *ValidationErrors {
	return &ValidationErrors{
		Errors: make(map[string][]string),
	}
}

func (v *ValidationErrors) Add(field, message string) {
	v.Errors[field] = append(v.Errors[field], message)
}

func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

func (v *ValidationErrors) Error() string {
	return fmt.Sprintf("validation failed: %d field(s) have errors", len(v.Errors))
}
