package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"visapath/visa-advisor/internal/models"
)

// TextGenerator performs exactly one call to a hosted text-generation API.
type TextGenerator interface {
	Generate(ctx context.Context, req models.CompletionRequest) (string, error)
}

// NewTextGenerator returns the backend for provider ("anthropic" or "gemini").
func NewTextGenerator(ctx context.Context, provider, apiKey string, logger *zap.Logger) (TextGenerator, error) {
	switch provider {
	case "anthropic":
		return NewAnthropicGenerator(apiKey, logger)
	case "gemini":
		return NewGeminiGenerator(ctx, apiKey, logger)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", provider)
	}
}
