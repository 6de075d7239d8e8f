package jira

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/custodia-labs/jiri/internal/core/domain"
)

// Jira-specific errors.
var (
	// ErrSiteRequired indicates no site URL was configured.
	ErrSiteRequired = errors.New("jira: site is required")

	// ErrTokenRequired indicates no API token was configured.
	ErrTokenRequired = errors.New("jira: token is required")
)

// RateLimitError represents a rate limit exceeded error with reset time.
type RateLimitError struct {
	ResetAt   time.Time
	Remaining int
	Limit     int
}

func (e *RateLimitError) Error() string {
	if e.ResetAt.IsZero() {
		return "jira: rate limit exceeded"
	}
	return fmt.Sprintf("jira: rate limit exceeded, resets at %s", e.ResetAt.Format(time.RFC3339))
}

// Is reports the error as domain.ErrRateLimited.
func (e *RateLimitError) Is(target error) bool {
	return target == domain.ErrRateLimited
}

// statusOf returns the HTTP status of an upstream error, or 0.
func statusOf(err error) int {
	var upErr *domain.UpstreamError
	if errors.As(err, &upErr) {
		return upErr.StatusCode
	}
	return 0
}

// IsNotFound checks if the error indicates a resource was not found.
func IsNotFound(err error) bool {
	return statusOf(err) == http.StatusNotFound
}

// IsRateLimited checks if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	var rateLimitErr *RateLimitError
	return errors.As(err, &rateLimitErr)
}

// IsUnauthorized checks if the error indicates an authentication failure.
func IsUnauthorized(err error) bool {
	return statusOf(err) == http.StatusUnauthorized
}

// IsForbidden checks if the error indicates a forbidden resource.
func IsForbidden(err error) bool {
	return statusOf(err) == http.StatusForbidden
}
