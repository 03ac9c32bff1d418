package models

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{name: "nil", err: nil, want: KindNone},
		{name: "typed", err: &RateLimitError{Provider: "gemini"}, want: KindRateLimited},
		{name: "genai value", err: fmt.Errorf("call: %w", genai.APIError{Code: 429, Message: "quota"}), want: KindRateLimited},
		{name: "genai pointer", err: fmt.Errorf("call: %w", &genai.APIError{Code: 429}), want: KindRateLimited},
		{name: "genai other", err: genai.APIError{Code: 500, Message: "internal"}, want: KindProvider},
		{name: "message", err: errors.New("Error 429: RESOURCE_EXHAUSTED"), want: KindRateLimited},
		{name: "too many requests", err: errors.New("Too Many Requests"), want: KindRateLimited},
		{name: "deadline", err: fmt.Errorf("wait: %w", context.DeadlineExceeded), want: KindTimeout},
		{name: "canceled", err: context.Canceled, want: KindCanceled},
		{name: "other", err: errors.New("bad gateway"), want: KindProvider},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestRateLimitErrorUnwrap(t *testing.T) {
	base := errors.New("quota")
	err := &RateLimitError{Provider: "openai", Err: base}
	assert.ErrorIs(t, err, base)
	assert.Equal(t, "openai rate limit exceeded", err.Error())
}
