package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// outputSchema pairs a generation schema with its compiled local validator.
type outputSchema struct {
	name     string
	genai    *genai.Schema
	document map[string]any
	compiled *jsonschema.Schema
}

func mustOutputSchema(name string, s *genai.Schema) outputSchema {
	out, err := newOutputSchema(name, s)
	if err != nil {
		panic(err)
	}
	return out
}

func newOutputSchema(name string, s *genai.Schema) (outputSchema, error) {
	doc := toJSONSchema(s)
	raw, err := json.Marshal(doc)
	if err != nil {
		return outputSchema{}, fmt.Errorf("failed to serialize %s schema: %w", name, err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name+".json", bytes.NewReader(raw)); err != nil {
		return outputSchema{}, fmt.Errorf("failed to load %s schema: %w", name, err)
	}
	compiled, err := compiler.Compile(name + ".json")
	if err != nil {
		return outputSchema{}, fmt.Errorf("failed to compile %s schema: %w", name, err)
	}
	return outputSchema{name: name, genai: s, document: doc, compiled: compiled}, nil
}

var (
	suggestionListOutput = mustOutputSchema("book_suggestions", suggestionListSchema)
	suggestionOutput     = mustOutputSchema("book_suggestion", suggestionSchema)
	summaryOutput        = mustOutputSchema("reading_log_summary", summarySchema)
)

// decode parses model text, validates it against the schema and unmarshals
// it into dst.
func (s outputSchema) decode(content string, dst any) error {
	parsed, err := parseStructuredJSON(content)
	if err != nil {
		return err
	}

	var doc any
	if err := json.Unmarshal(parsed, &doc); err != nil {
		return fmt.Errorf("failed to decode structured JSON for validation: %w", err)
	}
	if err := s.compiled.Validate(doc); err != nil {
		return fmt.Errorf("structured output does not match schema: %w", err)
	}

	if err := json.Unmarshal(parsed, dst); err != nil {
		return fmt.Errorf("failed to decode structured output: %w", err)
	}
	return nil
}

// parseStructuredJSON parses JSON from model output, with lightweight recovery
// for markdown code fences and surrounding text.
func parseStructuredJSON(content string) (json.RawMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errEmptyResponse
	}

	candidates := []string{content}
	if stripped := stripCodeFences(content); stripped != "" && stripped != content {
		candidates = append(candidates, stripped)
	}
	if extracted := extractJSONObject(content); extracted != "" && extracted != content {
		candidates = append(candidates, extracted)
	}

	for _, candidate := range candidates {
		if json.Valid([]byte(candidate)) {
			return json.RawMessage(candidate), nil
		}
	}
	return nil, fmt.Errorf("failed to parse structured JSON")
}

func stripCodeFences(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return ""
	}

	lines := strings.Split(trimmed, "\n")
	if len(lines) < 2 {
		return ""
	}
	lines = lines[1:]
	if strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// Every schema this package requests is rooted at an object.
func extractJSONObject(content string) string {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end < start {
		return ""
	}
	return strings.TrimSpace(content[start : end+1])
}
