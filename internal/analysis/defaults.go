// Package analysis turns a journal submission into a safety-checked AnalysisRecord.
package analysis

import (
	"fmt"

	"github.com/easeaico/aura/internal/types"
)

// Mood keys with a hand-authored default.
const (
	MoodHappy    = "happy"
	MoodSad      = "sad"
	MoodAnxious  = "anxious"
	MoodStressed = "stressed"
	MoodFocus    = "focus"
	MoodCalm     = "calm"
)

var defaultTable = map[string]types.AnalysisRecord{
	MoodHappy: {
		Sentiment:         0.8,
		Emotion:           "happy",
		Suggestion:        "Your positivity is radiant! These moments of joy are essential for resilience. Let's amplify this feeling and perhaps set an intention to carry this light into the rest of your week.",
		BreathingExercise: "The Joyful Expansion: Take 3 quick, deep 'sip' inhales through your nose, then one long, audible 'Ahhh' exhale through your mouth.",
		FocusMusic:        "Sunny Acoustic Vibes or Tropical Upbeat Instrumentals.",
		CounselorInfo:     "Savoring joy is a vital mental health skill. You're doing great!",
		Quote:             "Joy is the simplest form of gratitude.",
		CounselorTips:     []string{"Write down the exact trigger of this joy", "Share a compliment with someone", "Take a celebratory 5-minute dance break"},
	},
	MoodSad: {
		Sentiment:         -0.5,
		Emotion:           "sad",
		Suggestion:        "I'm so sorry you're feeling this weight. It's completely valid to have low energy and feel blue. Be gentle with yourself tonight; you don't have to 'fix' this immediately.",
		BreathingExercise: "Heart-Centered Sighing: Place a hand on your heart. Inhale deeply, and let out a long, heavy sigh. Repeat until your shoulders drop.",
		FocusMusic:        "Compassionate Cello or Soft Piano Melodies for processing.",
		CounselorInfo:     "Gentleness is your strength right now. You are allowed to take up space with your sadness.",
		Quote:             "The soul would have no rainbow had the eyes no tears.",
		CounselorTips:     []string{"Wrap yourself in a warm blanket", "Drink a glass of water slowly", "Listen to one song that validates your feelings"},
	},
	MoodAnxious: {
		Sentiment:         -0.4,
		Emotion:           "anxiety",
		Suggestion:        "When the mind races, we must anchor the body. You are safe in this moment. The future hasn't happened yet, and you have survived 100% of your hardest days.",
		BreathingExercise: "4-7-8 Internal Anchor: Inhale for 4s, Hold for 7s (the reset), Exhale slowly for 8s through pursed lips.",
		FocusMusic:        "Weightless Ambient (Marconi Union style) or 528Hz Solfeggio frequencies.",
		CounselorInfo:     "Anxiety is often just a smoke detector that's a bit too sensitive. You are safe.",
		Quote:             "No amount of anxiety makes any difference to anything that is going to happen.",
		CounselorTips:     []string{"5-4-3-2-1 Sensory Grounding", "Splash cold water on your face", "Limit caffeine for the next few hours"},
	},
	MoodStressed: {
		Sentiment:         -0.3,
		Emotion:           "stress",
		Suggestion:        "The load feels heavy because you're doing important work. Let's move from 'overwhelmed' to 'one small step'. What is the absolute simplest thing you can do next?",
		BreathingExercise: "Tactical Box Breathing: Inhale 4, Hold 4, Exhale 4, Hold 4. This is used by professionals to regain clarity under pressure.",
		FocusMusic:        "Lo-fi Study Beats (60 BPM) or Alpha Wave Binaural Beats.",
		CounselorInfo:     "Stress is energy. Let's redirect it into manageable micro-tasks.",
		Quote:             "It's not the load that breaks you, it's the way you carry it.",
		CounselorTips:     []string{"Clear your immediate workspace", "Write a 3-item To-Do list", "Take 2 minutes to stretch your neck and back"},
	},
	MoodFocus: {
		Sentiment:         0.4,
		Emotion:           "focus",
		Suggestion:        "You're in the zone! This state of flow is where your best version emerges. Let's protect this clarity and ensure you have everything you need to keep going.",
		BreathingExercise: "Cognitive Clarity Breath: Quick, sharp inhales through the nose followed by powerful, focused exhales to oxygenate your brain.",
		FocusMusic:        "40Hz Gamma Binaural Beats or Deep Focus Techno (Minimal).",
		CounselorInfo:     "Flow is a peak human experience. Guard your focus from distractions.",
		Quote:             "Focus is a matter of deciding what things you're not going to do.",
		CounselorTips:     []string{"Put your phone in another room", "Set a 25-minute Pomodoro timer", "Clear any open tabs you don't need"},
	},
	MoodCalm: {
		Sentiment:         0.5,
		Emotion:           "calm",
		Suggestion:        "This serenity is your natural state. Carry this peace with you; it is a reservoir you can return to whenever the world feels chaotic.",
		BreathingExercise: "Ocean Breath (Ujjayi): Constrict the back of your throat slightly, making a soft 'ocean' sound as you breathe in and out slowly.",
		FocusMusic:        "Zen Garden Ambience or Nature Sounds (Birds and Streams).",
		CounselorInfo:     "Peace is not the absence of trouble, but the presence of stillness.",
		Quote:             "Within you, there is a stillness and a sanctuary.",
		CounselorTips:     []string{"Observe your breath for 10 cycles", "Note one thing that brought you peace", "Walk slowly and feel your feet on the ground"},
	},
}

// Default returns the seed analysis for moodKey. Unknown keys get a neutral record
// whose suggestion echoes rawMood as the user wrote it.
func Default(moodKey, rawMood string) types.AnalysisRecord {
	if rec, ok := defaultTable[moodKey]; ok {
		return rec.Clone()
	}
	return types.AnalysisRecord{
		Sentiment:         0.0,
		Emotion:           "neutral",
		Suggestion:        fmt.Sprintf("I'm listening closely to your reflection on feeling %s. Let's explore these feelings together and find a path forward.", rawMood),
		BreathingExercise: "Simple Mindful Breathing: Just notice the inhale and notice the exhale.",
		FocusMusic:        "Neutral lo-fi piano.",
		CounselorInfo:     "Your reflections are the first step to understanding.",
		Quote:             "To know thyself is the beginning of wisdom.",
		CounselorTips:     []string{"Close your eyes for 30s", "Lower your gaze", "Take a slow sip of tea"},
	}
}

// KnownMoods lists the mood keys with a dedicated default.
func KnownMoods() []string {
	return []string{MoodHappy, MoodSad, MoodAnxious, MoodStressed, MoodFocus, MoodCalm}
}
