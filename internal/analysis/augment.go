package analysis

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/easeaico/aura/internal/models"
	"github.com/easeaico/aura/internal/prompt"
	"github.com/easeaico/aura/internal/types"
	"github.com/easeaico/aura/internal/utils"
)

// minSuggestionLength is the suggestion length a payload must exceed to be merged.
const minSuggestionLength = 10

// Generator returns the raw text of a JSON reply to prompt.
type Generator interface {
	GenerateJSON(ctx context.Context, prompt string, schema any) (string, error)
}

// Outcome is the result of one augmentation run.
type Outcome int

const (
	OutcomeMerged Outcome = iota
	OutcomeDisabled
	OutcomeRejected
	OutcomeMalformed
	OutcomeRateLimited
	OutcomeTimeout
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMerged:
		return "merged"
	case OutcomeDisabled:
		return "disabled"
	case OutcomeRejected:
		return "rejected"
	case OutcomeMalformed:
		return "malformed"
	case OutcomeRateLimited:
		return "rate_limited"
	case OutcomeTimeout:
		return "timeout"
	default:
		return "failed"
	}
}

// payload is the model reply. Pointer fields distinguish absent keys from zero values.
type payload struct {
	Sentiment         *float64 `json:"sentiment"`
	Emotion           *string  `json:"emotion"`
	Suggestion        *string  `json:"suggestion"`
	BreathingExercise *string  `json:"breathing_exercise"`
	FocusMusic        *string  `json:"focus_music"`
	CounselorInfo     *string  `json:"counselor_info"`
	Quote             *string  `json:"quote"`
	CounselorTips     []string `json:"counselor_tips"`
}

// AugmenterConfig configures an Augmenter.
type AugmenterConfig struct {
	Attempts int
	Backoff  time.Duration
	Timeout  time.Duration
	// ErrorLog receives one record per failed attempt. Nil discards them.
	ErrorLog *slog.Logger
}

// Augmenter asks the generative model for a personalised analysis and merges it over the record.
type Augmenter struct {
	gen      Generator
	builder  *prompt.Builder
	schema   any
	attempts int
	backoff  time.Duration
	timeout  time.Duration
	errLog   *slog.Logger
	sleep    func(ctx context.Context, d time.Duration) error
}

// NewAugmenter returns an Augmenter. A nil gen disables augmentation.
func NewAugmenter(gen Generator, cfg AugmenterConfig) *Augmenter {
	if cfg.Attempts <= 0 {
		cfg.Attempts = 1
	}
	return &Augmenter{
		gen:      gen,
		builder:  prompt.NewBuilder(),
		schema:   prompt.ResponseSchema(),
		attempts: cfg.Attempts,
		backoff:  cfg.Backoff,
		timeout:  cfg.Timeout,
		errLog:   cfg.ErrorLog,
		sleep:    sleepContext,
	}
}

// Augment returns the merged record and the outcome. On any outcome other than
// OutcomeMerged the returned record equals rec.
func (a *Augmenter) Augment(ctx context.Context, sub types.JournalSubmission, rec types.AnalysisRecord) (types.AnalysisRecord, Outcome) {
	if a == nil || a.gen == nil {
		return rec, OutcomeDisabled
	}

	text, err := a.builder.Build(sub)
	if err != nil {
		slog.Error("failed to build reflection prompt", "error", err.Error())
		return rec, OutcomeFailed
	}

	outcome := OutcomeFailed
	for attempt := 1; attempt <= a.attempts; attempt++ {
		var p payload
		p, outcome, err = a.try(ctx, text)
		switch outcome {
		case OutcomeMerged:
			return merge(rec, p), OutcomeMerged
		case OutcomeRejected:
			slog.Info("generative analysis discarded", "reason", "suggestion too short", "attempt", attempt)
			return rec, OutcomeRejected
		}

		last := attempt == a.attempts
		if outcome == OutcomeRateLimited {
			// A rate limit that the next attempt absorbs only goes to slog.
			a.logFailure(attempt, outcome, err, last)
			if last {
				break
			}
			if sleepErr := a.sleep(ctx, a.backoff); sleepErr != nil {
				return rec, OutcomeTimeout
			}
			continue
		}

		a.logFailure(attempt, outcome, err, true)
		if ctx.Err() != nil {
			return rec, OutcomeTimeout
		}
	}
	return rec, outcome
}

func (a *Augmenter) try(ctx context.Context, text string) (payload, Outcome, error) {
	callCtx := ctx
	if a.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	raw, err := a.gen.GenerateJSON(callCtx, text, a.schema)
	if err != nil {
		switch models.Classify(err) {
		case models.KindRateLimited:
			return payload{}, OutcomeRateLimited, err
		case models.KindTimeout, models.KindCanceled:
			return payload{}, OutcomeTimeout, err
		default:
			return payload{}, OutcomeFailed, err
		}
	}

	var p payload
	if err := utils.ParseJSONObject(raw, &p); err != nil {
		return payload{}, OutcomeMalformed, err
	}
	if p.Suggestion == nil || utf8.RuneCountInString(*p.Suggestion) <= minSuggestionLength {
		return payload{}, OutcomeRejected, nil
	}
	return p, OutcomeMerged, nil
}

// logFailure writes the attempt to slog, and to the error log when persist is set.
func (a *Augmenter) logFailure(attempt int, outcome Outcome, err error, persist bool) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	slog.Warn("generative analysis failed", "attempt", attempt, "outcome", outcome.String(), "error", msg)
	if persist && a.errLog != nil {
		a.errLog.Error("AI error", "attempt", attempt, "outcome", outcome.String(), "error", msg)
	}
}

// merge overwrites rec with every non-empty field present in p.
func merge(rec types.AnalysisRecord, p payload) types.AnalysisRecord {
	out := rec.Clone()
	if p.Sentiment != nil {
		out.Sentiment = clampSentiment(*p.Sentiment)
	}
	setText(&out.Emotion, p.Emotion)
	setText(&out.Suggestion, p.Suggestion)
	setText(&out.BreathingExercise, p.BreathingExercise)
	setText(&out.FocusMusic, p.FocusMusic)
	setText(&out.CounselorInfo, p.CounselorInfo)
	setText(&out.Quote, p.Quote)

	var tips []string
	for _, tip := range p.CounselorTips {
		if tip = strings.TrimSpace(tip); tip != "" {
			tips = append(tips, tip)
		}
	}
	if len(tips) > 0 {
		out.CounselorTips = tips
	}
	return out
}

func setText(dst *string, src *string) {
	if src == nil {
		return
	}
	if v := strings.TrimSpace(*src); v != "" {
		*dst = v
	}
}

func clampSentiment(v float64) float64 {
	switch {
	case v < -1:
		return -1
	case v > 1:
		return 1
	default:
		return v
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
