package analysis

import (
	"strings"

	"github.com/easeaico/aura/internal/types"
)

// criticalKeywords are matched as plain substrings of the lower-cased text.
// Broad terms like "death" are kept on purpose: a false positive only shows crisis resources.
var criticalKeywords = []string{
	"suicide",
	"death",
	"kill myself",
	"end my life",
	"harm myself",
	"want to die",
	"commit suicide",
	"hanging",
	"overdose",
}

var emergencyContacts = []types.EmergencyContact{
	{Name: "National Crisis Hotline", Phone: "988", Desc: "24/7 confidential support for people in distress."},
	{Name: "Emergency Services", Phone: "100", Desc: "Immediate police or ambulance intervention."},
	{Name: "Vandrevala Foundation", Phone: "9999666555", Desc: "Mental health support and crisis counseling."},
	{Name: "AASRA", Phone: "9820466726", Desc: "24/7 Suicide Prevention Helpline."},
}

const (
	crisisSentiment  = -1.0
	crisisSuggestion = "I hear how much pain you are in, and I want you to know that you are not alone. Your life has immense value, and there is support available right now to help you through this peak moment of darkness. Please reach out to one of the professionals below immediately. They are trained to listen and help you find a way forward safely."
	crisisBreathing  = "The Anchor Breath (Immediate Grounding): Feel your feet flat on the floor. Inhale for 5 seconds, hold for 2, and exhale for 7. Focus purely on the sensation of your feet on the ground. Repeat and reach for help."
	crisisQuote      = "Your story isn't over yet; the world still needs the light that only you can bring."
)

var crisisTips = []string{
	"Call an emergency contact immediately",
	"Distance yourself from any harmful objects",
	"Stay on the phone with a trusted person until help arrives",
}

// DetectCrisis reports whether text contains a self-harm indicator. Matching is case-insensitive.
func DetectCrisis(text string) bool {
	lower := strings.ToLower(text)
	for _, k := range criticalKeywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// EmergencyContacts returns a copy of the crisis lines.
func EmergencyContacts() []types.EmergencyContact {
	return append([]types.EmergencyContact(nil), emergencyContacts...)
}

// applyShield overwrites rec with the crisis response.
func applyShield(rec types.AnalysisRecord) types.AnalysisRecord {
	rec.Sentiment = crisisSentiment
	rec.IsCritical = true
	rec.EmergencyContacts = EmergencyContacts()
	rec.Suggestion = crisisSuggestion
	rec.BreathingExercise = crisisBreathing
	rec.Quote = crisisQuote
	rec.CounselorTips = append([]string(nil), crisisTips...)
	return rec
}

// preserveCrisisFields copies the shield-owned fields of before into after.
func preserveCrisisFields(before, after types.AnalysisRecord) types.AnalysisRecord {
	after.Sentiment = before.Sentiment
	after.Suggestion = before.Suggestion
	after.BreathingExercise = before.BreathingExercise
	after.Quote = before.Quote
	after.CounselorTips = append([]string(nil), before.CounselorTips...)
	return after
}
