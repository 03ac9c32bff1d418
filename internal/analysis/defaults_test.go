package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultTableComplete(t *testing.T) {
	valence := map[string]float64{
		MoodHappy:    0.8,
		MoodSad:      -0.5,
		MoodAnxious:  -0.4,
		MoodStressed: -0.3,
		MoodFocus:    0.4,
		MoodCalm:     0.5,
	}
	for _, mood := range KnownMoods() {
		t.Run(mood, func(t *testing.T) {
			rec := Default(mood, mood)
			assert.True(t, rec.Complete(), "default for %s has empty fields", mood)
			assert.InDelta(t, valence[mood], rec.Sentiment, 1e-9)
			assert.False(t, rec.IsCritical)
			assert.Empty(t, rec.EmergencyContacts)
		})
	}
}

func TestDefaultUnknownMood(t *testing.T) {
	rec := Default("grateful", "Grateful")
	assert.True(t, rec.Complete())
	assert.Equal(t, "neutral", rec.Emotion)
	assert.Zero(t, rec.Sentiment)
	assert.Contains(t, rec.Suggestion, "feeling Grateful")
}

func TestDefaultReturnsCopy(t *testing.T) {
	rec := Default(MoodHappy, "happy")
	rec.CounselorTips[0] = "changed"
	assert.NotEqual(t, "changed", Default(MoodHappy, "happy").CounselorTips[0])
}
