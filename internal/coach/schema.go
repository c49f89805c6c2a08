package coach

import "github.com/abhisek/afmlab/internal/llm"

// ExplanationSchema defines the JSON shape of a coach explanation.
var ExplanationSchema = &llm.Schema{
	Name:        "afm-explanation",
	Description: "Plain-language explanation of an AFM success prediction",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{
				"type":        "string",
				"description": "2-3 sentences on why the model predicts this probability",
				"minLength":   1,
			},
			"suggestion": map[string]any{
				"type":        "string",
				"description": "One sentence on what would move the prediction toward the ZPD",
			},
		},
		"required":             []any{"summary", "suggestion"},
		"additionalProperties": false,
	},
}
