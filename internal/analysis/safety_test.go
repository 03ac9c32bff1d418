package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/easeaico/aura/internal/types"
)

func TestDetectCrisis(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{text: "I want to END MY LIFE", want: true},
		{text: "thinking about suicide", want: true},
		{text: "read about the death of a star", want: true},
		{text: "I might overdose on coffee", want: true},
		{text: "a calm walk in the park", want: false},
		{text: "", want: false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectCrisis(tt.text), tt.text)
	}
}

func TestApplyShield(t *testing.T) {
	rec := applyShield(Default(MoodHappy, "happy"))
	assert.True(t, rec.IsCritical)
	assert.Equal(t, -1.0, rec.Sentiment)
	assert.Len(t, rec.EmergencyContacts, 4)
	assert.Equal(t, "988", rec.EmergencyContacts[0].Phone)
	assert.Equal(t, crisisSuggestion, rec.Suggestion)
	assert.Equal(t, crisisBreathing, rec.BreathingExercise)
	assert.Equal(t, crisisQuote, rec.Quote)
	assert.Equal(t, crisisTips, rec.CounselorTips)
	// The shield leaves the mood-specific emotion alone.
	assert.Equal(t, "happy", rec.Emotion)
}

func TestEmergencyContactsCopy(t *testing.T) {
	contacts := EmergencyContacts()
	contacts[0] = types.EmergencyContact{}
	assert.Equal(t, "National Crisis Hotline", EmergencyContacts()[0].Name)
}
