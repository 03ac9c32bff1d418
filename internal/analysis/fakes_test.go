package analysis

import (
	"context"
	"sync"
	"time"
)

type reply struct {
	text string
	err  error
}

type fakeGenerator struct {
	mu      sync.Mutex
	replies []reply
	block   bool
	calls   int
	prompts []string
}

func (f *fakeGenerator) GenerateJSON(ctx context.Context, prompt string, schema any) (string, error) {
	f.mu.Lock()
	idx := f.calls
	f.calls++
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()

	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if len(f.replies) == 0 {
		return "", nil
	}
	if idx >= len(f.replies) {
		idx = len(f.replies) - 1
	}
	return f.replies[idx].text, f.replies[idx].err
}

type fakeRecorder struct {
	mu       sync.Mutex
	outcomes []string
	crises   int
}

func (r *fakeRecorder) ObserveAugmentation(outcome string, elapsed time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, outcome)
}

func (r *fakeRecorder) ObserveCrisis() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.crises++
}

// newTestAugmenter returns an Augmenter whose backoff sleeps are recorded instead of waited.
func newTestAugmenter(gen Generator, attempts int) (*Augmenter, *[]time.Duration) {
	a := NewAugmenter(gen, AugmenterConfig{Attempts: attempts, Backoff: 2 * time.Second, Timeout: time.Second})
	var slept []time.Duration
	a.sleep = func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}
	return a, &slept
}

const goodPayload = "```json\n" + `{
  "sentiment": 0.9,
  "emotion": "calm",
  "suggestion": "You mentioned the exam and the late nights. Both matter, and both can be handled one step at a time.",
  "breathing_exercise": "Slow 4-6 breathing for two minutes.",
  "focus_music": "Soft piano at 60 BPM.",
  "counselor_info": "Plan one small task for tomorrow morning.",
  "quote": "Small steps every day.",
  "counselor_tips": ["Sleep before midnight", "Review one chapter", "Call a friend"]
}` + "\n```"
