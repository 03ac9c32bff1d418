package models

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"google.golang.org/genai"
)

// ErrNotConfigured is returned when no generative provider is available.
var ErrNotConfigured = errors.New("generative model not configured")

// RateLimitError indicates the provider rejected the call with a quota or rate limit response.
// Callers can use errors.As to detect it and back off.
type RateLimitError struct {
	Provider   string
	RetryAfter time.Duration
	Err        error
}

// Error implements the error interface.
func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("%s rate limit exceeded, retry after %v", e.Provider, e.RetryAfter)
	}
	return fmt.Sprintf("%s rate limit exceeded", e.Provider)
}

func (e *RateLimitError) Unwrap() error {
	return e.Err
}

// ErrorKind classifies a failed generation call.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindRateLimited
	KindTimeout
	KindCanceled
	KindProvider
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindRateLimited:
		return "rate_limited"
	case KindTimeout:
		return "timeout"
	case KindCanceled:
		return "canceled"
	default:
		return "provider"
	}
}

// Classify returns the ErrorKind of err.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	if IsRateLimit(err) {
		return KindRateLimited
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	if errors.Is(err, context.Canceled) {
		return KindCanceled
	}
	return KindProvider
}

// IsRateLimit reports whether err is a rate limit rejection from any supported provider.
func IsRateLimit(err error) bool {
	if err == nil {
		return false
	}
	var rl *RateLimitError
	if errors.As(err, &rl) {
		return true
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code == 429 {
		return true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil && apiErrPtr.Code == 429 {
		return true
	}
	var oaErr *openai.Error
	if errors.As(err, &oaErr) && oaErr != nil && oaErr.StatusCode == 429 {
		return true
	}
	return isRateLimitMessage(err.Error())
}

func isRateLimitMessage(msg string) bool {
	lower := strings.ToLower(msg)
	return strings.Contains(lower, "429") ||
		strings.Contains(lower, "too many requests") ||
		strings.Contains(lower, "resource_exhausted") ||
		strings.Contains(lower, "rate limit")
}
