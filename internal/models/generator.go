package models

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/adk/model"
	"google.golang.org/genai"

	"github.com/easeaico/aura/internal/utils"
)

// Generator asks a model for a single JSON document.
type Generator struct {
	model model.LLM
}

// NewGenerator returns a Generator backed by m.
func NewGenerator(m model.LLM) *Generator {
	return &Generator{model: m}
}

// Name returns the underlying model name.
func (g *Generator) Name() string {
	if g == nil || g.model == nil {
		return ""
	}
	return g.model.Name()
}

// GenerateJSON sends prompt as a user turn and returns the raw text of the reply.
// schema, when set, is passed as the response JSON schema.
func (g *Generator) GenerateJSON(ctx context.Context, prompt string, schema any) (string, error) {
	if g == nil || g.model == nil {
		return "", ErrNotConfigured
	}
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	req := &model.LLMRequest{
		Contents: []*genai.Content{
			genai.NewContentFromText(prompt, genai.RoleUser),
		},
		Config: &genai.GenerateContentConfig{
			ResponseMIMEType:   "application/json",
			ResponseJsonSchema: schema,
		},
	}

	var resp *model.LLMResponse
	var err error
	g.model.GenerateContent(ctx, req, false)(func(r *model.LLMResponse, e error) bool {
		resp = r
		err = e
		return false
	})
	if err != nil {
		if IsRateLimit(err) {
			return "", &RateLimitError{Provider: g.model.Name(), Err: err}
		}
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if resp == nil {
		return "", fmt.Errorf("empty model response")
	}
	if resp.ErrorCode != "" {
		return "", fmt.Errorf("model returned %s: %s", resp.ErrorCode, resp.ErrorMessage)
	}
	return utils.ExtractContentText(resp.Content), nil
}
