package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrRateLimit means the provider answered 429.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrAuth means the provider refused the configured API key.
type ErrAuth struct {
	Status int
	Err    error
}

func (e *ErrAuth) Error() string {
	return fmt.Sprintf("authentication failed (HTTP %d): %v", e.Status, e.Err)
}

func (e *ErrAuth) Unwrap() error { return e.Err }

// ErrInvalidResponse means the output did not match the requested schema.
// Content holds what the model actually returned.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable covers outages, 5xx answers and an empty mock
// script.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err == nil {
		return "LLM provider unavailable"
	}
	return "LLM provider unavailable: " + e.Err.Error()
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded means the output stopped at MaxTokens, usually
// because too many questions were requested for the token budget.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "LLM response truncated: max tokens exceeded"
}

// classifyStatus maps the HTTP status carried by an SDK error.
func classifyStatus(status int, err error) error {
	switch status {
	case http.StatusTooManyRequests:
		return &ErrRateLimit{Err: err}
	case http.StatusUnauthorized, http.StatusForbidden:
		return &ErrAuth{Status: status, Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}

// Retryable reports whether repeating the same request may succeed.
// Unknown errors, such as connection resets, count as transient.
func Retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var (
		maxTok *ErrMaxTokensExceeded
		auth   *ErrAuth
	)
	return !errors.As(err, &maxTok) && !errors.As(err, &auth)
}

// Reason returns a short explanation of err for people generating a
// quiz, or "" when err is not a provider error.
func Reason(err error) string {
	var (
		auth    *ErrAuth
		rate    *ErrRateLimit
		maxTok  *ErrMaxTokensExceeded
		invalid *ErrInvalidResponse
		down    *ErrProviderUnavailable
	)
	switch {
	case errors.As(err, &auth):
		return "the AI provider rejected the API key"
	case errors.As(err, &rate):
		return "the AI provider is rate limiting requests"
	case errors.As(err, &maxTok):
		return "the AI response was cut off"
	case errors.As(err, &invalid):
		return "the AI returned questions in an unexpected format"
	case errors.Is(err, context.DeadlineExceeded):
		return "the AI provider took too long to answer"
	case errors.As(err, &down):
		return "the AI provider could not be reached"
	}
	return ""
}
