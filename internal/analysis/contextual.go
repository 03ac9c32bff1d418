package analysis

import (
	"fmt"
	"strings"

	"github.com/easeaico/aura/internal/types"
)

var (
	academicKeywords   = []string{"exam", "test", "study", "project", "assignment"}
	lonelinessKeywords = []string{"alone", "lonely", "argument", "fight"}

	// Moods the academic rule leaves alone.
	positiveMoods = map[string]bool{MoodHappy: true, MoodCalm: true, MoodFocus: true}
)

const (
	academicBreathing   = "Tactical Focus: Inhale 4s, Hold 2s, Exhale 6s."
	lonelinessBreathing = "Heart-Centered Sigh: Inhale joy, exhale the weight."
	lonelinessMessage   = "Social interactions and feelings of isolation can be deeply challenging. Your need for connection is valid, and it's okay to feel this way."
)

// applyContext runs the academic and loneliness rules in order. Both may fire; the second wins on shared fields.
func applyContext(rec types.AnalysisRecord, moodKey, text string) types.AnalysisRecord {
	if !positiveMoods[moodKey] {
		if term, ok := firstMatch(text, academicKeywords); ok {
			rec.Suggestion = fmt.Sprintf("Academic pressure can definitely weigh on you. Remember that your worth is not defined by grades or %s. You have the tools to handle this.", term)
			rec.Emotion = "stress"
			rec.BreathingExercise = academicBreathing
		}
	}
	if moodKey != MoodHappy {
		if _, ok := firstMatch(text, lonelinessKeywords); ok {
			rec.Suggestion = lonelinessMessage
			rec.Emotion = "sad"
			rec.BreathingExercise = lonelinessBreathing
		}
	}
	return rec
}

// firstMatch returns the first keyword, in list order, contained in text.
func firstMatch(text string, keywords []string) (string, bool) {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return k, true
		}
	}
	return "", false
}
