package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/easeaico/aura/internal/types"
)

// Recorder observes pipeline events. Implementations must be safe for concurrent use.
type Recorder interface {
	ObserveAugmentation(outcome string, elapsed time.Duration)
	ObserveCrisis()
}

// State is the value passed between stages.
type State struct {
	Submission types.JournalSubmission
	MoodKey    string
	Text       string
	Critical   bool
	Record     types.AnalysisRecord
}

// Stage is one step of the pipeline.
type Stage struct {
	Name string
	// Guarded stages may not rewrite shield-owned fields of a critical record when crisis fields are locked.
	Guarded bool
	Apply   func(ctx context.Context, s State) State
}

// Stage names in execution order.
const (
	StageSeed       = "seed"
	StageShield     = "shield"
	StageContextual = "contextual"
	StageAugment    = "augment"
	StageCrisisPin  = "crisis_pin"
)

// PipelineConfig configures a Pipeline.
type PipelineConfig struct {
	// Augmenter may be nil, in which case the augment stage keeps the prior record.
	Augmenter *Augmenter
	// LockCrisisFields stops contextual and generative stages from rewriting crisis text.
	LockCrisisFields bool
	Recorder         Recorder
}

// Pipeline runs the fixed stage list.
type Pipeline struct {
	stages     []Stage
	lockCrisis bool
	recorder   Recorder
}

// NewPipeline builds the seed, shield, contextual, augment and crisis-pin stages.
func NewPipeline(cfg PipelineConfig) *Pipeline {
	p := &Pipeline{lockCrisis: cfg.LockCrisisFields, recorder: cfg.Recorder}
	p.stages = []Stage{
		{Name: StageSeed, Apply: seedStage},
		{Name: StageShield, Apply: shieldStage},
		{Name: StageContextual, Guarded: true, Apply: contextualStage},
		{Name: StageAugment, Guarded: true, Apply: p.augmentStage(cfg.Augmenter)},
		{Name: StageCrisisPin, Apply: crisisPinStage},
	}
	return p
}

// StageNames returns the stage order.
func (p *Pipeline) StageNames() []string {
	names := make([]string, len(p.stages))
	for i, st := range p.stages {
		names[i] = st.Name
	}
	return names
}

// Run analyses sub. It never fails: every stage falls back to its input.
func (p *Pipeline) Run(ctx context.Context, sub types.JournalSubmission) types.AnalysisRecord {
	state := State{
		Submission: sub,
		MoodKey:    sub.MoodKey(),
		Text:       sub.CombinedText(),
	}
	state.Critical = DetectCrisis(state.Text)
	if state.Critical && p.recorder != nil {
		p.recorder.ObserveCrisis()
	}

	for _, st := range p.stages {
		before := state.Record.Clone()
		state = p.apply(ctx, st, state)
		if st.Guarded && p.lockCrisis && before.IsCritical {
			state.Record = preserveCrisisFields(before, state.Record)
		}
	}

	slog.Info("reflection analysed",
		"mood", state.MoodKey,
		"emotion", state.Record.Emotion,
		"critical", state.Record.IsCritical,
		"text_length", len(state.Text))
	return state.Record
}

func (p *Pipeline) apply(ctx context.Context, st Stage, in State) (out State) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("analysis stage panicked", "stage", st.Name, "panic", fmt.Sprint(r))
			out = in
		}
	}()
	in.Record = in.Record.Clone()
	return st.Apply(ctx, in)
}

func seedStage(ctx context.Context, s State) State {
	s.Record = Default(s.MoodKey, s.Submission.OverallMood)
	return s
}

func shieldStage(ctx context.Context, s State) State {
	if s.Critical {
		s.Record = applyShield(s.Record)
	}
	return s
}

func contextualStage(ctx context.Context, s State) State {
	s.Record = applyContext(s.Record, s.MoodKey, s.Text)
	return s
}

func (p *Pipeline) augmentStage(a *Augmenter) func(ctx context.Context, s State) State {
	return func(ctx context.Context, s State) State {
		start := time.Now()
		rec, outcome := a.Augment(ctx, s.Submission, s.Record)
		if p.recorder != nil {
			p.recorder.ObserveAugmentation(outcome.String(), time.Since(start))
		}
		s.Record = rec
		return s
	}
}

// crisisPinStage re-asserts the crisis invariants after every other stage.
func crisisPinStage(ctx context.Context, s State) State {
	if !s.Critical {
		return s
	}
	s.Record.Sentiment = crisisSentiment
	s.Record.IsCritical = true
	s.Record.EmergencyContacts = EmergencyContacts()
	return s
}
