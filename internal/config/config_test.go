package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "ENV", "LLM_PROVIDER", "LLM_MODEL", "RETRY_MAX_ATTEMPTS",
		"RETRY_DELAY", "RESUME_MAX_TOKENS", "ANALYSIS_MAX_TOKENS",
		"RESUME_TEMPERATURE", "ANALYSIS_TEMPERATURE", "LLM_RATE_LIMIT",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, ProviderAnthropic, cfg.LLM.Provider)
	assert.Equal(t, "claude-sonnet-4-20250514", cfg.LLM.Model)
	assert.Equal(t, 3, cfg.LLM.RetryMaxAttempts)
	assert.Equal(t, 2*time.Second, cfg.LLM.RetryDelay)
	assert.Equal(t, 1000, cfg.Resume.MaxTokens)
	assert.InDelta(t, 0.2, cfg.Resume.Temperature, 1e-6)
	assert.Equal(t, 4000, cfg.Analysis.MaxTokens)
	assert.InDelta(t, 0.3, cfg.Analysis.Temperature, 1e-6)
	assert.Zero(t, cfg.LLM.RateLimit)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_GeminiProvider(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "Gemini")
	t.Setenv("LLM_MODEL", "")
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("ANTHROPIC_API_KEY", "a-key")

	cfg := Load()

	assert.Equal(t, ProviderGemini, cfg.LLM.Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.LLM.Model)
	assert.Equal(t, "g-key", cfg.LLM.APIKey())
}

func TestGetEnvAsDuration_InvalidFallsBack(t *testing.T) {
	t.Setenv("RETRY_DELAY", "soon")

	assert.Equal(t, 2*time.Second, getEnvAsDuration("RETRY_DELAY", "2s"))
}

func TestLoad_RetryAttemptsAtLeastOne(t *testing.T) {
	for _, value := range []string{"0", "-2"} {
		t.Run(value, func(t *testing.T) {
			t.Setenv("RETRY_MAX_ATTEMPTS", value)

			assert.Equal(t, 1, Load().LLM.RetryMaxAttempts)
		})
	}
}
