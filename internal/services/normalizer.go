package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const previewLimit = 500

type ResponseNormalizer struct{}

func NewResponseNormalizer() *ResponseNormalizer {
	return &ResponseNormalizer{}
}

// StripCodeFence removes a leading ``` marker (with or without a language
// tag) and a trailing ``` marker, then trims whitespace.
func StripCodeFence(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = text[fenceTagLen(text):]
	}

	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, "```")

	return strings.TrimSpace(text)
}

// fenceTagLen returns the length of the language tag that opens text, or 0
// when text does not start with one. A tag ends at whitespace, '{', '[' or
// the end of text.
func fenceTagLen(text string) int {
	end := strings.IndexFunc(text, func(r rune) bool {
		return !isTagRune(r)
	})
	if end < 0 {
		return len(text)
	}

	switch text[end] {
	case ' ', '\t', '\r', '\n', '{', '[':
		return end
	}
	return 0
}

func isTagRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	}
	return r == '_' || r == '+' || r == '-'
}

// Normalize parses raw model output into a JSON object and validates it
// against schema when one is given.
func (n *ResponseNormalizer) Normalize(raw string, schema *jsonschema.Schema) (map[string]any, error) {
	return n.NormalizeWith(raw, schema, nil)
}

// NormalizeWith is Normalize with a hook that may rewrite the parsed object
// before validation.
func (n *ResponseNormalizer) NormalizeWith(raw string, schema *jsonschema.Schema, prepare func(map[string]any)) (map[string]any, error) {
	result, err := decodeObject(StripCodeFence(raw))
	if err != nil {
		return nil, &MalformedResponseError{Preview: Preview(raw), Err: err}
	}

	if prepare != nil {
		prepare(result)
	}

	if schema != nil {
		if err := schema.Validate(result); err != nil {
			return nil, &MalformedResponseError{Preview: Preview(raw), Err: fmt.Errorf("unexpected response shape: %w", err)}
		}
	}

	return result, nil
}

func decodeObject(text string) (map[string]any, error) {
	if text == "" {
		return nil, errors.New("empty response")
	}

	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON value")
	}

	obj, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected a JSON object, got %s", jsonKind(value))
	}
	return obj, nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case []any:
		return "array"
	case string:
		return "string"
	case json.Number:
		return "number"
	case bool:
		return "boolean"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// KeepKeys drops every key of m not listed in allowed and returns the
// dropped keys in sorted order.
func KeepKeys(m map[string]any, allowed []string) []string {
	keep := make(map[string]struct{}, len(allowed))
	for _, k := range allowed {
		keep[k] = struct{}{}
	}

	var dropped []string
	for k := range m {
		if _, ok := keep[k]; !ok {
			delete(m, k)
			dropped = append(dropped, k)
		}
	}
	sort.Strings(dropped)
	return dropped
}

// Preview returns at most the first 500 runes of text.
func Preview(text string) string {
	runes := []rune(text)
	if len(runes) <= previewLimit {
		return text
	}
	return string(runes[:previewLimit])
}
