package mood

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapVisual(t *testing.T) {
	cases := map[string]Label{
		"happy":    Happy,
		"Sad":      Sad,
		"neutral":  Neutral,
		"angry":    Frustrated,
		"fear":     Stress,
		"surprise": Happy,
		"disgust":  Frustrated,
		"contempt": Neutral,
		"":         Neutral,
	}
	for raw, want := range cases {
		assert.Equal(t, want, MapVisual(raw), raw)
	}
}

func TestClassifyAudio(t *testing.T) {
	assert.Equal(t, AudioExcited, ClassifyAudio(0.06, Happy))
	assert.Equal(t, AudioStressed, ClassifyAudio(0.06, Sad))
	assert.Equal(t, AudioStressed, ClassifyAudio(0.06, Neutral))
	assert.Equal(t, AudioMelancholy, ClassifyAudio(0.005, Sad))
	assert.Equal(t, Calm, ClassifyAudio(0.005, Happy))
	assert.Equal(t, Neutral, ClassifyAudio(0.03, Sad))
	assert.Equal(t, Neutral, ClassifyAudio(0.05, Happy))
	assert.Equal(t, Neutral, ClassifyAudio(0.01, Sad))
}

func TestSynergy(t *testing.T) {
	assert.Equal(t, Sad, Synergy(Neutral, AudioMelancholy))
	assert.Equal(t, Stress, Synergy(Neutral, AudioStressed))
	assert.Equal(t, Happy, Synergy(Happy, AudioStressed))
	assert.Equal(t, Neutral, Synergy(Neutral, Calm))
	assert.Equal(t, Frustrated, Synergy(Frustrated, AudioMelancholy))
}
