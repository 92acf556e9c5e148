package services

import (
	"errors"
	"fmt"
)

var (
	ErrExtractionFailed    = errors.New("document text extraction failed")
	ErrNoExtractableText   = errors.New("no text content found in document")
	ErrUnsupportedDocument = errors.New("unsupported document type")
	ErrServiceExhausted    = errors.New("language model service unavailable after retries")
	ErrMalformedResponse   = errors.New("malformed AI response")
)

// ExhaustedError is returned once every completion attempt has failed.
type ExhaustedError struct {
	Attempts int
	Last     error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("failed after %d attempts: %v", e.Attempts, e.Last)
}

func (e *ExhaustedError) Unwrap() []error {
	return []error{ErrServiceExhausted, e.Last}
}

// MalformedResponseError carries a bounded preview of the raw model text.
// Preview is for server logs only and must never reach a caller.
type MalformedResponseError struct {
	Preview string
	Err     error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed AI response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() []error {
	return []error{ErrMalformedResponse, e.Err}
}
