package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"visapath/visa-advisor/internal/models"
)

var placeholders = []string{
	"{education}", "{experience}", "{field}", "{current_status}",
	"{has_offer}", "{job_details}", "{achievements}", "{country}",
}

func TestBuildVisaAnalysisPrompt_Defaults(t *testing.T) {
	prompt := NewPromptBuilder().BuildVisaAnalysisPrompt(models.ProfileFields{})

	for _, p := range placeholders {
		assert.NotContains(t, prompt, p)
	}

	assert.Contains(t, prompt, "- Education: \n")
	assert.Contains(t, prompt, "- Work Experience:  years in \n")
	assert.Contains(t, prompt, "- Has Job Offer: No\n")
	assert.Contains(t, prompt, "- Job Details: N/A\n")
	assert.Contains(t, prompt, "- Special Achievements: None\n")
	assert.Contains(t, prompt, "- Country of Origin: \n")
}

func TestBuildVisaAnalysisPrompt_PartialProfile(t *testing.T) {
	profile := models.ProfileFields{
		Education:  models.Ptr("PhD"),
		Experience: models.Ptr("7"),
		Field:      models.Ptr("Machine Learning"),
		HasOffer:   models.Ptr(""),
		Country:    models.Ptr("Brazil"),
	}

	prompt := NewPromptBuilder().BuildVisaAnalysisPrompt(profile)

	assert.Contains(t, prompt, "- Education: PhD\n")
	assert.Contains(t, prompt, "- Work Experience: 7 years in Machine Learning\n")
	// An explicit empty value is kept, only absent fields get defaults.
	assert.Contains(t, prompt, "- Has Job Offer: \n")
	assert.Contains(t, prompt, "- Job Details: N/A\n")
	assert.Contains(t, prompt, "- Special Achievements: None\n")
	assert.Contains(t, prompt, "- Country of Origin: Brazil\n")
}

func TestBuildVisaAnalysisPrompt_NoReexpansion(t *testing.T) {
	profile := models.ProfileFields{
		Achievements: models.Ptr("wrote about {country} templates"),
		Country:      models.Ptr("Kenya"),
	}

	prompt := NewPromptBuilder().BuildVisaAnalysisPrompt(profile)

	assert.Contains(t, prompt, "- Special Achievements: wrote about {country} templates\n")
	assert.Contains(t, prompt, "- Country of Origin: Kenya\n")
}

func TestBuildVisaAnalysisPrompt_AsksForJSONOnly(t *testing.T) {
	prompt := NewPromptBuilder().BuildVisaAnalysisPrompt(models.ProfileFields{})

	assert.Contains(t, prompt, "Respond with ONLY valid JSON. No markdown, no backticks, no additional text.")
	assert.Contains(t, prompt, `"recommended_path"`)
}

func TestBuildResumeExtractionPrompt(t *testing.T) {
	text := "Jane Doe\nSenior Engineer at Acme"

	prompt := NewPromptBuilder().BuildResumeExtractionPrompt(text)

	assert.Contains(t, prompt, "Resume text:\n"+text+"\n")
	assert.NotContains(t, prompt, "{resume_text}")
	for _, key := range models.ResumeFieldKeys {
		assert.True(t, strings.Contains(prompt, `"`+key+`"`), "prompt should mention %s", key)
	}
	assert.Contains(t, prompt, "no code fences")
}
