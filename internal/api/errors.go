package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a non-2xx answer from the service.
type Error struct {
	StatusCode int
	// Message is the server's "error" text, empty when it sent none.
	Message string
	// Fields holds per-field validation messages on a 400.
	Fields map[string]string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("http status %d", e.StatusCode)
	}
	return fmt.Sprintf("http status %d: %s", e.StatusCode, e.Message)
}

// Message returns the text to show the user for err: the server's message
// when it gave one, fallback otherwise.
func Message(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// IsUnauthorized reports whether err is a 401 from the service.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}
