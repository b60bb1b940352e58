package domain

import (
	"errors"
	"net/http"
)

// Common error sentinels.
var (
	ErrNotFound      = errors.New("resource not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrInternalError = errors.New("internal error")
	ErrUnavailable   = errors.New("moderation service unavailable")
	ErrUpstream      = errors.New("moderation service error")
)

// AppError carries an HTTP status and a user-facing message.
// For upstream failures Message is the text the moderation service sent, if any.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	switch {
	case e.Err != nil && e.Message != "":
		return e.Message + ": " + e.Err.Error()
	case e.Err != nil:
		return e.Err.Error()
	default:
		return e.Message
	}
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewNotFoundError(msg string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: msg, Err: ErrNotFound}
}

func NewBadRequestError(msg string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: msg, Err: ErrInvalidInput}
}

func NewInternalError(msg string, err error) *AppError {
	return &AppError{Code: http.StatusInternalServerError, Message: msg, Err: errors.Join(ErrInternalError, err)}
}

// NewUnavailableError wraps a transport failure talking to the moderation service.
func NewUnavailableError(err error) *AppError {
	return &AppError{Code: http.StatusBadGateway, Err: errors.Join(ErrUnavailable, err)}
}

// NewUpstreamError maps a non-success status from the moderation service.
func NewUpstreamError(code int, msg string) *AppError {
	var sentinel error
	switch code {
	case http.StatusUnauthorized:
		sentinel = ErrUnauthorized
	case http.StatusForbidden:
		sentinel = ErrForbidden
	case http.StatusNotFound:
		sentinel = ErrNotFound
	default:
		sentinel = ErrUpstream
	}
	return &AppError{Code: code, Message: msg, Err: sentinel}
}

// ServerMessage returns the message the moderation service attached to a
// failed response, or "" when there is none.
func ServerMessage(err error) string {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return ""
	}
	if errors.Is(appErr.Err, ErrUnavailable) || errors.Is(appErr.Err, ErrInternalError) {
		return ""
	}
	return appErr.Message
}

// StatusCode returns the HTTP status carried by err, 500 when unknown.
func StatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != 0 {
		return appErr.Code
	}
	return http.StatusInternalServerError
}
