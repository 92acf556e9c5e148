package models

// CompletionRequest is a single text-generation call.
type CompletionRequest struct {
	Model           string
	Prompt          string
	MaxOutputTokens int
	Temperature     float32
}
