// Package prompt assembles the reflection prompt and its response schema.
package prompt

import (
	"bytes"
	"fmt"

	"github.com/easeaico/aura/internal/types"
)

// Builder renders the reflection prompt for a submission.
type Builder struct{}

// NewBuilder creates a prompt Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Build renders the prompt text for sub.
func (b *Builder) Build(sub types.JournalSubmission) (string, error) {
	data := struct {
		UserAge          int
		UserGender       string
		TemplateName     string
		OverallMood      string
		SpecificEmotions []string
		Intensity        int
		Combined         string
	}{
		UserAge:          sub.UserAge,
		UserGender:       sub.UserGender,
		TemplateName:     sub.TemplateName,
		OverallMood:      sub.OverallMood,
		SpecificEmotions: sub.SpecificEmotions,
		Intensity:        sub.Intensity,
		Combined: fmt.Sprintf("Template: %s. Triggers: %s. Strategies: %s. Lessons: %s",
			sub.TemplateName, sub.Triggers, sub.Strategies, sub.Lessons),
	}

	var buf bytes.Buffer
	if err := reflectionTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to build prompt: %w", err)
	}
	return buf.String(), nil
}
