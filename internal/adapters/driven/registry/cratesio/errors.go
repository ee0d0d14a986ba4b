package cratesio

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/custodia-labs/seek/internal/core/domain"
)

// RateLimitError reports that crates.io answered 429 Too Many Requests.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("crates.io: rate limit exceeded, retry after %s", e.RetryAfter)
	}
	return "crates.io: rate limit exceeded"
}

// Is makes errors.Is(err, domain.ErrRateLimited) true.
func (e *RateLimitError) Is(target error) bool {
	return target == domain.ErrRateLimited
}

// APIError represents a non-success crates.io response.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("crates.io: API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// Is makes errors.Is(err, domain.ErrNotFound) true for 404 responses.
func (e *APIError) Is(target error) bool {
	return target == domain.ErrNotFound && e.StatusCode == http.StatusNotFound
}

// errorBody is the crates.io error envelope.
type errorBody struct {
	Errors []struct {
		Detail string `json:"detail"`
	} `json:"errors"`
}

// IsNotFound checks if the error indicates the crate does not exist.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return errors.Is(err, domain.ErrNotFound)
}

// IsRateLimited checks if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	var rateLimitErr *RateLimitError
	return errors.As(err, &rateLimitErr)
}

// IsServerError checks if the error is a 5xx response.
func IsServerError(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500
	}
	return false
}
