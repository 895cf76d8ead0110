package api

import (
	"errors"
	"net/http"
)

var (
	ErrUnavailable = errors.New("donation service unavailable")
)

// Error is a non-2xx API response. Message is suitable for display.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// IsUnauthorized reports whether err means the credential token was
// rejected. The API answers 401 for missing or expired tokens and 422 for
// ones it cannot parse.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusUnprocessableEntity
}

func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// Message renders err for a page. API messages pass through; anything else
// gets fallback.
func Message(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if errors.Is(err, ErrUnavailable) {
		return "The donation service is unavailable. Please try again shortly."
	}
	return fallback
}
