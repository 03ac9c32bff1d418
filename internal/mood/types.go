// Package mood maps perceptual signals to mood labels and picks encouraging quotes for them.
package mood

// Label is a mood label.
type Label string

const (
	Happy      Label = "happy"
	Sad        Label = "sad"
	Neutral    Label = "neutral"
	Stress     Label = "stress"
	Frustrated Label = "frustrated"
	Calm       Label = "calm"
	Anxiety    Label = "anxiety"
	Focus      Label = "focus"
)

// Audio-only labels produced by the energy heuristic.
const (
	AudioExcited    Label = "excited"
	AudioStressed   Label = "stressed"
	AudioMelancholy Label = "melancholy"
)

// Energy thresholds on mean frame RMS.
const (
	HighEnergyRMS = 0.05
	LowEnergyRMS  = 0.01
)

var visualMapping = map[string]Label{
	"happy":    Happy,
	"sad":      Sad,
	"neutral":  Neutral,
	"angry":    Frustrated,
	"fear":     Stress,
	"surprise": Happy,
	"disgust":  Frustrated,
}

// MapVisual maps a classifier's dominant emotion to a Label. Unknown values map to Neutral.
func MapVisual(raw string) Label {
	if label, ok := visualMapping[normalize(raw)]; ok {
		return label
	}
	return Neutral
}

// ClassifyAudio applies the energy heuristic given the visual mood.
func ClassifyAudio(meanRMS float64, visual Label) Label {
	switch {
	case meanRMS > HighEnergyRMS:
		if visual == Happy {
			return AudioExcited
		}
		return AudioStressed
	case meanRMS < LowEnergyRMS:
		if visual != Sad {
			return Calm
		}
		return AudioMelancholy
	default:
		return Neutral
	}
}

// Synergy combines the visual and audio moods. Audio only wins over a neutral face.
func Synergy(visual, audio Label) Label {
	if visual != Neutral {
		return visual
	}
	switch audio {
	case AudioStressed:
		return Stress
	case AudioMelancholy:
		return Sad
	default:
		return visual
	}
}
