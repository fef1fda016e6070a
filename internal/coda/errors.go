package coda

import (
	"errors"
	"fmt"
	"time"
)

// AuthenticationError indicates missing or rejected credentials. It is not
// recoverable without new credentials and must never be retried automatically.
type AuthenticationError struct {
	// Message is a human-readable description of the failure.
	Message string
}

func (e *AuthenticationError) Error() string {
	if e.Message == "" {
		return "authentication failed"
	}
	return e.Message
}

// RateLimitError indicates the upstream API rejected the request with HTTP 429.
type RateLimitError struct {
	// RetryAfter is the upstream's retry hint. Defaults to 60 seconds when the
	// response carried no usable Retry-After header.
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded, retry after %s", e.RetryAfter)
}

// APIError is any other upstream rejection. The status code and upstream
// message are preserved verbatim where available.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("coda api error (status %d): %s", e.StatusCode, e.Message)
}

// Retryable reports whether the failure is a server-side (5xx) condition that
// a caller may reasonably retry.
func (e *APIError) Retryable() bool {
	return e.StatusCode >= 500
}

// Retryable reports whether err represents a transient condition. Rate limits
// and 5xx upstream failures are retryable; authentication failures and 4xx
// rejections are not.
func Retryable(err error) bool {
	var rateLimit *RateLimitError
	if errors.As(err, &rateLimit) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Retryable()
	}
	return false
}

// IsAuthenticationError reports whether err is a credential failure.
func IsAuthenticationError(err error) bool {
	var authErr *AuthenticationError
	return errors.As(err, &authErr)
}
