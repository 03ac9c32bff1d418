package journal

import (
	"fmt"
	"sort"
	"strings"

	"github.com/easeaico/aura/internal/types"
)

// Submission defaults.
const (
	DefaultTemplateName = "General"
	DefaultUserAge      = 18
	DefaultUserGender   = "Female"

	minIntensity = 1
	maxIntensity = 10
	maxUserAge   = 120
)

// ValidationError lists rejected submission fields.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "invalid submission: " + strings.Join(parts, "; ")
}

// Normalize validates sub, fills defaults and clamps numeric fields into range.
func Normalize(sub types.JournalSubmission) (types.JournalSubmission, error) {
	fields := map[string]string{}

	sub.ReflectionDate = strings.TrimSpace(sub.ReflectionDate)
	sub.OverallMood = strings.TrimSpace(sub.OverallMood)
	if sub.ReflectionDate == "" {
		fields["reflection_date"] = "is required"
	}
	if sub.OverallMood == "" {
		fields["overall_mood"] = "is required"
	}
	if strings.TrimSpace(sub.Triggers) == "" &&
		strings.TrimSpace(sub.Strategies) == "" &&
		strings.TrimSpace(sub.Lessons) == "" {
		fields["triggers"] = "at least one of triggers, strategies or lessons is required"
	}
	if len(fields) > 0 {
		return types.JournalSubmission{}, &ValidationError{Fields: fields}
	}

	emotions := make([]string, 0, len(sub.SpecificEmotions))
	for _, e := range sub.SpecificEmotions {
		if e = strings.TrimSpace(e); e != "" {
			emotions = append(emotions, e)
		}
	}
	sub.SpecificEmotions = emotions

	sub.Intensity = clamp(sub.Intensity, minIntensity, maxIntensity)
	if sub.UserAge == 0 {
		sub.UserAge = DefaultUserAge
	}
	sub.UserAge = clamp(sub.UserAge, 0, maxUserAge)
	if strings.TrimSpace(sub.TemplateName) == "" {
		sub.TemplateName = DefaultTemplateName
	}
	if strings.TrimSpace(sub.UserGender) == "" {
		sub.UserGender = DefaultUserGender
	}
	sub.UserPhone = strings.TrimSpace(sub.UserPhone)
	return sub, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
