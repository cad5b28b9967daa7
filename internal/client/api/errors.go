package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable means the backend could not be reached at all.
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized means the token was missing, expired, or rejected.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound means the backend has no record for the identifier.
	ErrNotFound = errors.New("not found")
)

// APIError carries a non-2xx backend response: the HTTP status and the
// server-provided message, surfaced to the user verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// Message extracts the user-facing text for an operation failure: the
// backend's own message when present, otherwise the provided fallback.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
