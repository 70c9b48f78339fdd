package spider

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrMissingAPIKey indicates no API key is configured.
var ErrMissingAPIKey = errors.New("spider: API key is not configured")

// APIError represents a non-success response from the crawl API.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("spider: %s (URL: %s)", e.Message, e.URL)
}

// IsUnauthorized checks if the error indicates a rejected API key.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
	}
	return false
}

// IsRateLimited checks if the API refused the crawl because of rate limits.
func IsRateLimited(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusTooManyRequests
	}
	return false
}
