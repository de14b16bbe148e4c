package apperr

import (
	"errors"
	"net/http"
)

var (
	// Request validation errors
	ErrMissingMessageText = errors.New("message_text is required")
	ErrMissingEmailText   = errors.New("email_text is required")
	ErrMissingSenderEmail = errors.New("sender_email is required")
	ErrInvalidSenderEmail = errors.New("sender_email is not a valid email address")
	ErrMissingURL         = errors.New("url is required")
	ErrInvalidURL         = errors.New("url is not a valid http or https URL")
	ErrMissingHTML        = errors.New("html is required")

	// Content errors
	ErrNotText = errors.New("content is not analyzable text")

	// Link channel errors
	ErrFetchFailed = errors.New("could not retrieve the target URL")
)

// AppError carries an error plus the HTTP status it should map to.
type AppError struct {
	Err        error
	Message    string
	StatusCode int
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

// Validation wraps a missing/malformed-field error (HTTP 400).
func Validation(err error) *AppError {
	return &AppError{Err: err, StatusCode: http.StatusBadRequest}
}

// Unprocessable wraps a present-but-unanalyzable-content error (HTTP 422).
func Unprocessable(err error) *AppError {
	return &AppError{Err: err, StatusCode: http.StatusUnprocessableEntity}
}

// FetchFailure wraps a link-channel retrieval error (HTTP 503).
func FetchFailure(err error) *AppError {
	return &AppError{
		Err:        err,
		Message:    "could not retrieve the target URL: " + err.Error(),
		StatusCode: http.StatusServiceUnavailable,
	}
}

// StatusCode returns the HTTP status for err, defaulting to 500.
func StatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
