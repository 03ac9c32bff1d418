package models

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/adk/model"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/genai"

	"github.com/easeaico/aura/internal/config"
)

// NewGeminiModel returns the ADK Gemini model.
func NewGeminiModel(ctx context.Context, modelName, apiKey string) (model.LLM, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("API key is required")
	}
	m, err := gemini.NewModel(ctx, modelName, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini model: %w", err)
	}
	return m, nil
}

// NewLLM builds the generative model selected by cfg.
// It returns ErrNotConfigured when the provider is disabled or has no credentials.
func NewLLM(ctx context.Context, cfg config.Config) (model.LLM, error) {
	switch cfg.LLMProvider {
	case config.ProviderGemini:
		if cfg.GoogleAPIKey == "" {
			slog.Warn("generative augmentation disabled", "reason", "GOOGLE_API_KEY not set")
			return nil, ErrNotConfigured
		}
		return NewGeminiModel(ctx, cfg.LLMModel, cfg.GoogleAPIKey)
	case config.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			slog.Warn("generative augmentation disabled", "reason", "OPENAI_API_KEY not set")
			return nil, ErrNotConfigured
		}
		return NewOpenAIModel(ctx, cfg.LLMModel, cfg.OpenAIAPIKey, cfg.OpenAIBaseURL)
	default:
		return nil, ErrNotConfigured
	}
}
