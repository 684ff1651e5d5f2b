package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnauthenticated   = errors.New("unauthenticated")
	ErrStoreUnavailable  = errors.New("store unavailable")
	ErrMalformedRecord   = errors.New("malformed record")
	ErrInvalidGameResult = errors.New("invalid game result")
)

type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
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

// StoreError wraps a failure talking to the remote store.
func StoreError(message string, err error) *AppError {
	return NewAppError(http.StatusServiceUnavailable, message, fmt.Errorf("%w: %v", ErrStoreUnavailable, err))
}

// StatusCode returns the HTTP status carried by err, or 500 when err is not an AppError.
func StatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != 0 {
		return appErr.Code
	}
	if errors.Is(err, ErrUnauthenticated) {
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}
