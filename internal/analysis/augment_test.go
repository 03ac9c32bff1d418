package analysis

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/easeaico/aura/internal/models"
	"github.com/easeaico/aura/internal/types"
)

var testSubmission = types.JournalSubmission{
	ReflectionDate:   "2026-10-01",
	OverallMood:      "stressed",
	SpecificEmotions: []string{"tense"},
	Triggers:         "exam tomorrow",
	Strategies:       "made a plan",
	Lessons:          "start earlier",
	Intensity:        6,
	TemplateName:     "General",
	UserAge:          18,
	UserGender:       "Female",
}

func TestAugmentMerges(t *testing.T) {
	gen := &fakeGenerator{replies: []reply{{text: goodPayload}}}
	a, _ := newTestAugmenter(gen, 2)

	before := Default(MoodStressed, "stressed")
	rec, outcome := a.Augment(context.Background(), testSubmission, before)
	assert.Equal(t, OutcomeMerged, outcome)
	assert.Equal(t, 0.9, rec.Sentiment)
	assert.Equal(t, "calm", rec.Emotion)
	assert.Equal(t, []string{"Sleep before midnight", "Review one chapter", "Call a friend"}, rec.CounselorTips)
	assert.True(t, rec.Complete())
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "Triggers: exam tomorrow")
}

func TestAugmentMergesOnlyPresentKeys(t *testing.T) {
	gen := &fakeGenerator{replies: []reply{{text: `{"suggestion": "A tailored and long enough suggestion.", "quote": "", "sentiment": 4}`}}}
	a, _ := newTestAugmenter(gen, 1)

	before := Default(MoodStressed, "stressed")
	rec, outcome := a.Augment(context.Background(), testSubmission, before)
	assert.Equal(t, OutcomeMerged, outcome)
	assert.Equal(t, "A tailored and long enough suggestion.", rec.Suggestion)
	assert.Equal(t, 1.0, rec.Sentiment)
	assert.Equal(t, before.Quote, rec.Quote)
	assert.Equal(t, before.BreathingExercise, rec.BreathingExercise)
	assert.Equal(t, before.CounselorTips, rec.CounselorTips)
}

func TestAugmentMalformedLeavesRecord(t *testing.T) {
	gen := &fakeGenerator{replies: []reply{{text: "Sorry, I cannot help with that."}}}
	a, slept := newTestAugmenter(gen, 2)

	before := Default(MoodSad, "sad")
	rec, outcome := a.Augment(context.Background(), testSubmission, before)
	assert.Equal(t, OutcomeMalformed, outcome)
	assert.Equal(t, before, rec)
	assert.Equal(t, 2, gen.calls)
	assert.Empty(t, *slept)
}

func TestAugmentMalformedThenGoodMerges(t *testing.T) {
	gen := &fakeGenerator{replies: []reply{{text: "not json"}, {text: goodPayload}}}
	a, slept := newTestAugmenter(gen, 2)

	rec, outcome := a.Augment(context.Background(), testSubmission, Default(MoodStressed, "stressed"))
	assert.Equal(t, OutcomeMerged, outcome)
	assert.Equal(t, "calm", rec.Emotion)
	assert.Equal(t, 2, gen.calls)
	assert.Empty(t, *slept)
}

func TestAugmentShortSuggestionRejected(t *testing.T) {
	gen := &fakeGenerator{replies: []reply{{text: `{"suggestion": "Be calm.", "emotion": "calm"}`}}}
	a, _ := newTestAugmenter(gen, 2)

	before := Default(MoodSad, "sad")
	rec, outcome := a.Augment(context.Background(), testSubmission, before)
	assert.Equal(t, OutcomeRejected, outcome)
	assert.Equal(t, before, rec)
	assert.Equal(t, 1, gen.calls)
}

func TestAugmentRetriesRateLimit(t *testing.T) {
	gen := &fakeGenerator{replies: []reply{
		{err: &models.RateLimitError{Provider: "gemini"}},
		{text: goodPayload},
	}}
	a, slept := newTestAugmenter(gen, 2)

	rec, outcome := a.Augment(context.Background(), testSubmission, Default(MoodStressed, "stressed"))
	assert.Equal(t, OutcomeMerged, outcome)
	assert.Equal(t, "calm", rec.Emotion)
	assert.Equal(t, 2, gen.calls)
	assert.Equal(t, []time.Duration{2 * time.Second}, *slept)
}

func TestAugmentRateLimitExhausted(t *testing.T) {
	gen := &fakeGenerator{replies: []reply{{err: errors.New("googleapi: Error 429: Too Many Requests")}}}
	a, slept := newTestAugmenter(gen, 2)

	before := Default(MoodStressed, "stressed")
	rec, outcome := a.Augment(context.Background(), testSubmission, before)
	assert.Equal(t, OutcomeRateLimited, outcome)
	assert.Equal(t, before, rec)
	assert.Equal(t, 2, gen.calls)
	assert.Len(t, *slept, 1)
}

func TestAugmentTransientFailureRetried(t *testing.T) {
	gen := &fakeGenerator{replies: []reply{
		{err: errors.New("connection reset by peer")},
		{text: goodPayload},
	}}
	a, slept := newTestAugmenter(gen, 2)

	rec, outcome := a.Augment(context.Background(), testSubmission, Default(MoodStressed, "stressed"))
	assert.Equal(t, OutcomeMerged, outcome)
	assert.Equal(t, "calm", rec.Emotion)
	assert.Equal(t, 2, gen.calls)
	assert.Empty(t, *slept)
}

func TestAugmentProviderFailureExhausted(t *testing.T) {
	gen := &fakeGenerator{replies: []reply{{err: genai.APIError{Code: 500, Message: "internal"}}}}
	a, slept := newTestAugmenter(gen, 2)

	before := Default(MoodStressed, "stressed")
	rec, outcome := a.Augment(context.Background(), testSubmission, before)
	assert.Equal(t, OutcomeFailed, outcome)
	assert.Equal(t, before, rec)
	assert.Equal(t, 2, gen.calls)
	assert.Empty(t, *slept)
}

func TestAugmentTimeout(t *testing.T) {
	gen := &fakeGenerator{block: true}
	a := NewAugmenter(gen, AugmenterConfig{Attempts: 2, Timeout: 20 * time.Millisecond})

	before := Default(MoodCalm, "calm")
	rec, outcome := a.Augment(context.Background(), testSubmission, before)
	assert.Equal(t, OutcomeTimeout, outcome)
	assert.Equal(t, before, rec)
	assert.Equal(t, 2, gen.calls)
}

func TestAugmentCanceledContextStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	gen := &fakeGenerator{block: true}
	a, _ := newTestAugmenter(gen, 3)

	_, outcome := a.Augment(ctx, testSubmission, Default(MoodCalm, "calm"))
	assert.Equal(t, OutcomeTimeout, outcome)
	assert.Equal(t, 1, gen.calls)
}

func TestAugmentDisabled(t *testing.T) {
	before := Default(MoodCalm, "calm")
	rec, outcome := NewAugmenter(nil, AugmenterConfig{}).Augment(context.Background(), testSubmission, before)
	assert.Equal(t, OutcomeDisabled, outcome)
	assert.Equal(t, before, rec)

	var a *Augmenter
	_, outcome = a.Augment(context.Background(), testSubmission, before)
	assert.Equal(t, OutcomeDisabled, outcome)
}

func TestAugmentWritesErrorLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ai_error.log")
	logger, closer, err := OpenErrorLog(path)
	require.NoError(t, err)

	gen := &fakeGenerator{replies: []reply{{err: errors.New("connection refused")}}}
	a := NewAugmenter(gen, AugmenterConfig{Attempts: 1, ErrorLog: logger})
	a.Augment(context.Background(), testSubmission, Default(MoodSad, "sad"))
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"AI error"`)
	assert.Contains(t, string(data), `"attempt":1`)
	assert.Contains(t, string(data), "connection refused")
	assert.NotContains(t, string(data), "exam tomorrow")
}

func TestAugmentErrorLogSkipsAbsorbedRateLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ai_error.log")
	logger, closer, err := OpenErrorLog(path)
	require.NoError(t, err)

	gen := &fakeGenerator{replies: []reply{
		{err: &models.RateLimitError{Provider: "gemini", Err: errors.New("quota hit")}},
		{err: errors.New("connection refused")},
	}}
	a := NewAugmenter(gen, AugmenterConfig{Attempts: 2, ErrorLog: logger})
	a.sleep = func(ctx context.Context, d time.Duration) error { return nil }
	a.Augment(context.Background(), testSubmission, Default(MoodSad, "sad"))
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "\n"))
	assert.Contains(t, string(data), `"attempt":2`)
	assert.NotContains(t, string(data), "rate limit exceeded")
}

func TestAugmentErrorLogKeepsFinalRateLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ai_error.log")
	logger, closer, err := OpenErrorLog(path)
	require.NoError(t, err)

	gen := &fakeGenerator{replies: []reply{{err: &models.RateLimitError{Provider: "gemini", Err: errors.New("quota hit")}}}}
	a := NewAugmenter(gen, AugmenterConfig{Attempts: 2, ErrorLog: logger})
	a.sleep = func(ctx context.Context, d time.Duration) error { return nil }
	_, outcome := a.Augment(context.Background(), testSubmission, Default(MoodSad, "sad"))
	require.NoError(t, closer.Close())
	assert.Equal(t, OutcomeRateLimited, outcome)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "\n"))
	assert.Contains(t, string(data), `"outcome":"rate_limited"`)
}

func TestSleepContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleepContext(ctx, time.Hour), context.Canceled)
	assert.NoError(t, sleepContext(context.Background(), 0))
}
