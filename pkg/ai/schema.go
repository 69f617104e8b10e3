package ai

import "github.com/google/generative-ai-go/genai"

var suggestionSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"title":       {Type: genai.TypeString, Description: "The title of the suggested book."},
		"author":      {Type: genai.TypeString, Description: "The author of the suggested book."},
		"description": {Type: genai.TypeString, Description: "A short description of the book."},
		"ageRange":    {Type: genai.TypeString, Description: "The age range the book is appropriate for."},
	},
	Required: []string{"title", "author", "description", "ageRange"},
}

// suggestions is optional and nullable: a reply without it means "no matches".
var suggestionListSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"suggestions": {
			Type:        genai.TypeArray,
			Description: "An array of book suggestions based on the user input.",
			Nullable:    true,
			Items:       suggestionSchema,
		},
	},
}

var summarySchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"summary": {
			Type:        genai.TypeString,
			Description: "A summary of the student reading log, highlighting key reading habits and preferences.",
		},
	},
	Required: []string{"summary"},
}

// toJSONSchema renders a genai schema as a JSON Schema document so the same
// definition drives Gemini, OpenAI and local validation.
func toJSONSchema(s *genai.Schema) map[string]any {
	out := map[string]any{}
	if s == nil {
		return out
	}
	switch s.Type {
	case genai.TypeString:
		out["type"] = "string"
	case genai.TypeNumber:
		out["type"] = "number"
	case genai.TypeInteger:
		out["type"] = "integer"
	case genai.TypeBoolean:
		out["type"] = "boolean"
	case genai.TypeArray:
		out["type"] = "array"
	case genai.TypeObject:
		out["type"] = "object"
	}
	if s.Nullable {
		if t, ok := out["type"].(string); ok {
			out["type"] = []any{t, "null"}
		}
	}
	if s.Description != "" {
		out["description"] = s.Description
	}
	if len(s.Enum) > 0 {
		enum := make([]any, len(s.Enum))
		for i, v := range s.Enum {
			enum[i] = v
		}
		out["enum"] = enum
	}
	if s.Items != nil {
		out["items"] = toJSONSchema(s.Items)
	}
	if len(s.Properties) > 0 {
		props := make(map[string]any, len(s.Properties))
		for name, p := range s.Properties {
			props[name] = toJSONSchema(p)
		}
		out["properties"] = props
	}
	if len(s.Required) > 0 {
		req := make([]any, len(s.Required))
		for i, v := range s.Required {
			req[i] = v
		}
		out["required"] = req
	}
	return out
}
