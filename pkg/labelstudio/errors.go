package labelstudio

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound     = errors.New("label studio: not found")
	ErrUnauthorized = errors.New("label studio: unauthorized")
	ErrServerError  = errors.New("label studio: server error")
	ErrMissingToken = errors.New("label studio: access token is required")
	ErrMissingURL   = errors.New("label studio: base URL is required")
)

// APIError is returned for any non-2xx response.
type APIError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("label studio API %s error %d: %s", e.Op, e.StatusCode, e.Body)
}

// Unwrap classifies the status code so callers can use errors.Is.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	default:
		return ErrServerError
	}
}
