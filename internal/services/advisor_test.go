package services_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"visapath/visa-advisor/internal/models"
	"visapath/visa-advisor/internal/services"
	"visapath/visa-advisor/mocks"
)

const resumeJSON = `{
  "education": "Master's Degree",
  "field": "Software Engineering",
  "experience_years": 6,
  "current_status": "H-4",
  "country": "India",
  "achievements": "2 patents",
  "has_offer": "yes",
  "job_details": "Staff Engineer at Acme"
}`

const analysisJSON = `{
  "visas": {
    "H1B": {"eligible": "yes", "confidence": 8, "reasoning": "Specialty occupation with a job offer."},
    "O1A": {"eligible": "maybe", "confidence": 5, "reasoning": "Patents may support extraordinary ability."}
  },
  "recommended_path": "H1B",
  "overall_assessment": "Strong H-1B candidate.",
  "risk_factors": ["H-1B lottery"]
}`

var advisorOpts = services.AdvisorOptions{
	Model:    "test-model",
	Resume:   services.SamplingParams{MaxTokens: 1000, Temperature: 0.2},
	Analysis: services.SamplingParams{MaxTokens: 4000, Temperature: 0.3},
}

func newAdvisor(t *testing.T, parser services.DocumentParserService, completion services.CompletionClient) services.AdvisorService {
	t.Helper()

	schemas, err := services.NewResponseSchemas()
	require.NoError(t, err)

	return services.NewAdvisorService(parser, completion, schemas, advisorOpts, zap.NewNop())
}

func TestParseResume_Success(t *testing.T) {
	parser := new(mocks.MockDocumentParser)
	completion := new(mocks.MockCompletionClient)

	data := []byte("%PDF-1.4 fake")
	parser.On("ExtractText", data, "jane.pdf").Return(&services.DocumentContent{
		Text:      "Jane Doe, Staff Engineer",
		PageCount: 1,
		Format:    services.FormatPDF,
	}, nil)

	withExtra := strings.Replace(resumeJSON, `"education"`, `"visa_hint": "none", "education"`, 1)
	completion.On("Complete", mock.Anything, mock.MatchedBy(func(req models.CompletionRequest) bool {
		return req.MaxOutputTokens == 1000 &&
			req.Temperature == 0.2 &&
			req.Model == "test-model" &&
			strings.Contains(req.Prompt, "Jane Doe, Staff Engineer")
	})).Return("```json\n"+withExtra+"\n```", nil)

	fields, err := newAdvisor(t, parser, completion).ParseResume(context.Background(), data, "jane.pdf")

	require.NoError(t, err)
	assert.Len(t, fields, len(models.ResumeFieldKeys))
	for _, key := range models.ResumeFieldKeys {
		assert.Contains(t, fields, key)
	}
	assert.Equal(t, "Master's Degree", fields["education"])
	parser.AssertExpectations(t)
	completion.AssertExpectations(t)
}

func TestParseResume_ExtractionFailed(t *testing.T) {
	parser := new(mocks.MockDocumentParser)
	completion := new(mocks.MockCompletionClient)

	parser.On("ExtractText", mock.Anything, "scan.pdf").
		Return(nil, fmt.Errorf("%w: %w", services.ErrExtractionFailed, services.ErrNoExtractableText))

	_, err := newAdvisor(t, parser, completion).ParseResume(context.Background(), []byte("x"), "scan.pdf")

	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrExtractionFailed))
	completion.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestParseResume_PromptUsesCleanedText(t *testing.T) {
	parser := new(mocks.MockDocumentParser)
	completion := new(mocks.MockCompletionClient)

	parser.On("ExtractText", mock.Anything, "cv.pdf").Return(&services.DocumentContent{
		Text:      "  Jane   Doe \n\n\n\tStaff Engineer\n   \n",
		PageCount: 2,
		Format:    services.FormatPDF,
	}, nil)

	var captured models.CompletionRequest
	completion.On("Complete", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(models.CompletionRequest)
		}).
		Return(resumeJSON, nil)

	_, err := newAdvisor(t, parser, completion).ParseResume(context.Background(), []byte("x"), "cv.pdf")

	require.NoError(t, err)
	assert.Contains(t, captured.Prompt, "Resume text:\nJane Doe\nStaff Engineer\n\nExtract:")
}

func TestParseResume_MissingKey(t *testing.T) {
	parser := new(mocks.MockDocumentParser)
	completion := new(mocks.MockCompletionClient)

	parser.On("ExtractText", mock.Anything, mock.Anything).Return(&services.DocumentContent{Text: "resume"}, nil)
	completion.On("Complete", mock.Anything, mock.Anything).Return(`{"education": "PhD"}`, nil)

	_, err := newAdvisor(t, parser, completion).ParseResume(context.Background(), []byte("x"), "cv.pdf")

	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrMalformedResponse))
}

func TestAnalyzeProfile_Success(t *testing.T) {
	completion := new(mocks.MockCompletionClient)

	var captured models.CompletionRequest
	completion.On("Complete", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(models.CompletionRequest)
		}).
		Return(analysisJSON, nil)

	profile := models.ProfileFields{
		Education:  models.Ptr("Master's Degree"),
		Experience: models.Ptr("6"),
		Field:      models.Ptr("Software Engineering"),
	}

	analysis, err := newAdvisor(t, new(mocks.MockDocumentParser), completion).AnalyzeProfile(context.Background(), profile)

	require.NoError(t, err)
	assert.Equal(t, "H1B", analysis["recommended_path"])
	assert.Contains(t, analysis["visas"], "O1A")

	assert.Equal(t, 4000, captured.MaxOutputTokens)
	assert.InDelta(t, 0.3, captured.Temperature, 1e-6)
	assert.Contains(t, captured.Prompt, "- Work Experience: 6 years in Software Engineering")
	assert.Contains(t, captured.Prompt, "- Has Job Offer: No")
	assert.Contains(t, captured.Prompt, "- Job Details: N/A")
	assert.Contains(t, captured.Prompt, "- Special Achievements: None")
}

func TestAnalyzeProfile_Exhausted(t *testing.T) {
	completion := new(mocks.MockCompletionClient)
	completion.On("Complete", mock.Anything, mock.Anything).
		Return("", &services.ExhaustedError{Attempts: 3, Last: errors.New("overloaded_error")})

	_, err := newAdvisor(t, new(mocks.MockDocumentParser), completion).AnalyzeProfile(context.Background(), models.ProfileFields{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrServiceExhausted))
	assert.False(t, errors.Is(err, services.ErrMalformedResponse))
}

func TestAnalyzeProfile_Malformed(t *testing.T) {
	completion := new(mocks.MockCompletionClient)
	completion.On("Complete", mock.Anything, mock.Anything).
		Return("I am unable to provide legal advice.", nil)

	_, err := newAdvisor(t, new(mocks.MockDocumentParser), completion).AnalyzeProfile(context.Background(), models.ProfileFields{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrMalformedResponse))

	var malformed *services.MalformedResponseError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, "I am unable to provide legal advice.", malformed.Preview)
}
