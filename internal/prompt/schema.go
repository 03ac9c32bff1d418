package prompt

import "github.com/google/jsonschema-go/jsonschema"

var (
	minSentiment = -1.0
	maxSentiment = 1.0
)

// ResponseSchema describes the JSON object the reflection prompt asks for.
func ResponseSchema() *jsonschema.Schema {
	text := func(desc string) *jsonschema.Schema {
		return &jsonschema.Schema{Type: "string", Description: desc}
	}
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"sentiment": {
				Type:    "number",
				Minimum: &minSentiment,
				Maximum: &maxSentiment,
			},
			"emotion": {
				Type: "string",
				Enum: []any{"stress", "anxiety", "sad", "happy", "calm", "focus"},
			},
			"suggestion":         text("2-3 empathetic paragraphs separated by newlines"),
			"breathing_exercise": text("step-by-step breathing technique"),
			"focus_music":        text("justified music choice"),
			"counselor_info":     text("guidance on next steps"),
			"quote":              text("quote matching the struggle"),
			"counselor_tips": {
				Type:  "array",
				Items: &jsonschema.Schema{Type: "string"},
			},
		},
		Required: []string{"sentiment", "emotion", "suggestion", "breathing_exercise", "focus_music", "counselor_info", "quote", "counselor_tips"},
	}
}
