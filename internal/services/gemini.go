package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"visapath/visa-advisor/internal/models"
)

type geminiGenerator struct {
	client *genai.Client
	logger *zap.Logger
}

func NewGeminiGenerator(ctx context.Context, apiKey string, logger *zap.Logger) (TextGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiGenerator{
		client: client,
		logger: logger.Named("gemini"),
	}, nil
}

// Generate implements TextGenerator.
func (g *geminiGenerator) Generate(ctx context.Context, req models.CompletionRequest) (string, error) {
	temperature := req.Temperature
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: int32(req.MaxOutputTokens),
	}

	resp, err := g.client.Models.GenerateContent(ctx, req.Model, genai.Text(req.Prompt), config)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	if resp == nil {
		return "", fmt.Errorf("no response generated (nil response)")
	}

	text := resp.Text()
	if text == "" {
		if len(resp.Candidates) > 0 {
			g.logger.Warn("empty text in gemini response",
				zap.String("finish_reason", string(resp.Candidates[0].FinishReason)))
		}
		return "", fmt.Errorf("no text content in response")
	}

	return text, nil
}
