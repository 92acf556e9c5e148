package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

type Config struct {
	Server   ServerConfig
	LLM      LLMConfig
	Resume   CompletionConfig
	Analysis CompletionConfig
	Storage  StorageConfig
}

type ServerConfig struct {
	Port      string
	Env       string
	StaticDir string
}

type LLMConfig struct {
	Provider         string
	AnthropicAPIKey  string
	GeminiAPIKey     string
	Model            string
	RetryMaxAttempts int
	RetryDelay       time.Duration
	RequestTimeout   time.Duration
	// RateLimit is the outbound request rate per second; 0 disables the limiter.
	RateLimit float64
}

// CompletionConfig holds the sampling parameters of one prompt flavour.
type CompletionConfig struct {
	MaxTokens   int
	Temperature float32
}

type StorageConfig struct {
	MaxFileSize int64
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	provider := strings.ToLower(getEnv("LLM_PROVIDER", ProviderAnthropic))

	// At least one attempt is always made.
	attempts := max(getEnvAsInt("RETRY_MAX_ATTEMPTS", 3), 1)

	return &Config{
		Server: ServerConfig{
			Port:      getEnv("PORT", "5000"),
			Env:       getEnv("ENV", "development"),
			StaticDir: getEnv("STATIC_DIR", "./static"),
		},
		LLM: LLMConfig{
			Provider:         provider,
			AnthropicAPIKey:  getEnv("ANTHROPIC_API_KEY", ""),
			GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
			Model:            getEnv("LLM_MODEL", DefaultModel(provider)),
			RetryMaxAttempts: attempts,
			RetryDelay:       getEnvAsDuration("RETRY_DELAY", "2s"),
			RequestTimeout:   getEnvAsDuration("LLM_REQUEST_TIMEOUT", "60s"),
			RateLimit:        getEnvAsFloat("LLM_RATE_LIMIT", 0),
		},
		Resume: CompletionConfig{
			MaxTokens:   getEnvAsInt("RESUME_MAX_TOKENS", 1000),
			Temperature: float32(getEnvAsFloat("RESUME_TEMPERATURE", 0.2)),
		},
		Analysis: CompletionConfig{
			MaxTokens:   getEnvAsInt("ANALYSIS_MAX_TOKENS", 4000),
			Temperature: float32(getEnvAsFloat("ANALYSIS_TEMPERATURE", 0.3)),
		},
		Storage: StorageConfig{
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
	}
}

// DefaultModel returns the model used for a provider when LLM_MODEL is unset.
func DefaultModel(provider string) string {
	switch provider {
	case ProviderGemini:
		return "gemini-2.5-flash"
	default:
		return "claude-sonnet-4-20250514"
	}
}

// APIKey returns the credential of the selected provider.
func (c *LLMConfig) APIKey() string {
	if c.Provider == ProviderGemini {
		return c.GeminiAPIKey
	}
	return c.AnthropicAPIKey
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
