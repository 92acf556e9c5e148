package services

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"visapath/visa-advisor/internal/models"
)

var visaAnalysisSchema = map[string]any{
	"type":     "object",
	"required": []string{"visas", "recommended_path", "overall_assessment", "risk_factors"},
	"properties": map[string]any{
		"visas": map[string]any{
			"type":          "object",
			"minProperties": 1,
			"additionalProperties": map[string]any{
				"type":     "object",
				"required": []string{"eligible"},
				"properties": map[string]any{
					"eligible":   map[string]any{"type": "string"},
					"confidence": map[string]any{"type": []string{"number", "string"}},
					"reasoning":  map[string]any{"type": "string"},
				},
			},
		},
		"recommended_path":   map[string]any{"type": "string"},
		"overall_assessment": map[string]any{"type": "string"},
		"risk_factors":       map[string]any{"type": "array"},
	},
}

func resumeFieldsSchema() map[string]any {
	properties := make(map[string]any, len(models.ResumeFieldKeys))
	for _, key := range models.ResumeFieldKeys {
		properties[key] = map[string]any{"type": []string{"string", "number", "array", "boolean", "null"}}
	}
	properties["experience_years"] = map[string]any{"type": []string{"number", "string", "null"}}

	return map[string]any{
		"type":                 "object",
		"required":             models.ResumeFieldKeys,
		"properties":           properties,
		"additionalProperties": false,
	}
}

// CompileSchema compiles a schema document held as a Go map.
func CompileSchema(name string, schemaMap map[string]any) (*jsonschema.Schema, error) {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}

	schema, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
}

// ResponseSchemas holds the compiled shapes expected from the model.
type ResponseSchemas struct {
	ResumeFields *jsonschema.Schema
	VisaAnalysis *jsonschema.Schema
}

func NewResponseSchemas() (*ResponseSchemas, error) {
	resume, err := CompileSchema("resume_fields.json", resumeFieldsSchema())
	if err != nil {
		return nil, fmt.Errorf("resume fields schema: %w", err)
	}

	analysis, err := CompileSchema("visa_analysis.json", visaAnalysisSchema)
	if err != nil {
		return nil, fmt.Errorf("visa analysis schema: %w", err)
	}

	return &ResponseSchemas{
		ResumeFields: resume,
		VisaAnalysis: analysis,
	}, nil
}
