package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"visapath/visa-advisor/internal/models"
)

type AdvisorService interface {
	ParseResume(ctx context.Context, data []byte, filename string) (map[string]any, error)
	AnalyzeProfile(ctx context.Context, profile models.ProfileFields) (map[string]any, error)
}

// SamplingParams are the per-flow generation settings.
type SamplingParams struct {
	MaxTokens   int
	Temperature float32
}

type AdvisorOptions struct {
	Model    string
	Resume   SamplingParams
	Analysis SamplingParams
}

type advisorService struct {
	parser        DocumentParserService
	completion    CompletionClient
	normalizer    *ResponseNormalizer
	schemas       *ResponseSchemas
	promptBuilder *PromptBuilder
	opts          AdvisorOptions
	logger        *zap.Logger
}

func NewAdvisorService(
	parser DocumentParserService,
	completion CompletionClient,
	schemas *ResponseSchemas,
	opts AdvisorOptions,
	logger *zap.Logger,
) AdvisorService {
	return &advisorService{
		parser:        parser,
		completion:    completion,
		normalizer:    NewResponseNormalizer(),
		schemas:       schemas,
		promptBuilder: NewPromptBuilder(),
		opts:          opts,
		logger:        logger.Named("advisor"),
	}
}

// ParseResume extracts the document text and asks the model for the
// structured resume fields.
func (a *advisorService) ParseResume(ctx context.Context, data []byte, filename string) (map[string]any, error) {
	log := a.logger.With(zap.String("request_id", uuid.NewString()), zap.String("flow", "parse_resume"))

	content, err := a.parser.ExtractText(data, filename)
	if err != nil {
		log.Error("resume extraction failed", zap.String("filename", filename), zap.Error(err))
		return nil, err
	}

	text := CleanText(content.Text)
	log.Info("resume text extracted",
		zap.Int("pages", content.PageCount),
		zap.Int("characters", len(text)),
	)

	prompt := a.promptBuilder.BuildResumeExtractionPrompt(text)

	response, err := a.completion.Complete(ctx, models.CompletionRequest{
		Model:           a.opts.Model,
		Prompt:          prompt,
		MaxOutputTokens: a.opts.Resume.MaxTokens,
		Temperature:     a.opts.Resume.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate resume fields: %w", err)
	}

	fields, err := a.normalizer.NormalizeWith(response, a.schemas.ResumeFields, func(m map[string]any) {
		if dropped := KeepKeys(m, models.ResumeFieldKeys); len(dropped) > 0 {
			log.Warn("dropped unexpected resume keys", zap.Strings("keys", dropped))
		}
	})
	if err != nil {
		a.logMalformed(log, err)
		return nil, err
	}

	log.Info("resume parsed")
	return fields, nil
}

// AnalyzeProfile asks the model for a visa eligibility analysis of profile.
func (a *advisorService) AnalyzeProfile(ctx context.Context, profile models.ProfileFields) (map[string]any, error) {
	log := a.logger.With(zap.String("request_id", uuid.NewString()), zap.String("flow", "analyze"))

	prompt := a.promptBuilder.BuildVisaAnalysisPrompt(profile)
	log.Debug("visa analysis prompt built", zap.Int("prompt_length", len(prompt)))

	response, err := a.completion.Complete(ctx, models.CompletionRequest{
		Model:           a.opts.Model,
		Prompt:          prompt,
		MaxOutputTokens: a.opts.Analysis.MaxTokens,
		Temperature:     a.opts.Analysis.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate visa analysis: %w", err)
	}

	analysis, err := a.normalizer.Normalize(response, a.schemas.VisaAnalysis)
	if err != nil {
		a.logMalformed(log, err)
		return nil, err
	}

	log.Info("visa analysis completed", zap.Any("recommended_path", analysis["recommended_path"]))
	return analysis, nil
}

func (a *advisorService) logMalformed(log *zap.Logger, err error) {
	var malformed *MalformedResponseError
	if errors.As(err, &malformed) {
		log.Error("JSON parse error",
			zap.Error(malformed.Err),
			zap.String("raw_response", malformed.Preview),
		)
		return
	}
	log.Error("response normalization failed", zap.Error(err))
}
