package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"

	"visapath/visa-advisor/internal/models"
)

type anthropicGenerator struct {
	client anthropic.Client
	logger *zap.Logger
}

// NewAnthropicGenerator builds a Claude backed generator. SDK level retries
// are disabled; CompletionClient owns the retry policy.
func NewAnthropicGenerator(apiKey string, logger *zap.Logger) (TextGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic API key is empty")
	}

	client := anthropic.NewClient(
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	)

	return &anthropicGenerator{
		client: client,
		logger: logger.Named("anthropic"),
	}, nil
}

// Generate implements TextGenerator.
func (a *anthropicGenerator) Generate(ctx context.Context, req models.CompletionRequest) (string, error) {
	message, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(req.Model),
		MaxTokens:   int64(req.MaxOutputTokens),
		Temperature: anthropic.Float(float64(req.Temperature)),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic create message: %w", err)
	}

	var sb strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	if sb.Len() == 0 {
		a.logger.Warn("empty text in anthropic response",
			zap.String("stop_reason", string(message.StopReason)))
		return "", fmt.Errorf("no text content in response")
	}

	return sb.String(), nil
}
