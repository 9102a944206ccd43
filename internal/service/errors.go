package service

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-2xx response from the service. The body excerpt is kept
// for test-failure diagnostics.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: HTTP %d: %s", e.Method, e.Path, e.StatusCode, truncate(e.Body, 200))
}

// IsNotFound reports whether err is an APIError for a missing resource,
// typically an operation against a deregistered or never-created infra-env.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
