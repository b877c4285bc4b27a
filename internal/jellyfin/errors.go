package jellyfin

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized indicates rejected credentials or an expired token.
	ErrUnauthorized = errors.New("jellyfin: unauthorized")

	// ErrUnavailable indicates the circuit breaker is rejecting requests.
	ErrUnavailable = errors.New("jellyfin: unavailable")

	// ErrInvalidSession indicates a session without user ID or token.
	ErrInvalidSession = errors.New("jellyfin: session missing user id or token")
)

// APIError is returned for unexpected HTTP statuses.
type APIError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("jellyfin %s returned status %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("jellyfin %s returned status %d: %s", e.Endpoint, e.StatusCode, e.Body)
}
