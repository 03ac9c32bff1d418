package mood

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"

	"github.com/easeaico/aura/internal/audio"
)

// FaceClassifier returns the dominant facial emotion in an image, or "" when no face could be analyzed.
type FaceClassifier interface {
	DominantEmotion(ctx context.Context, image []byte, mimeType string) (string, error)
}

// FeatureExtractor computes energy and pitch features from an audio clip.
type FeatureExtractor interface {
	Extract(data []byte) (audio.Features, error)
}

// Result is the mood returned to the client.
type Result struct {
	Mood       Label  `json:"mood"`
	VisualMood Label  `json:"visual_mood,omitempty"`
	AudioMood  Label  `json:"audio_mood,omitempty"`
	Quote      string `json:"quote"`
	Desc       string `json:"desc"`
}

// Canned responses for the perceptual endpoints.
var (
	fusionFallback = Result{Mood: Neutral, Quote: "I'm here for you.", Desc: "Technical glitch, but your peace remains."}
	visualOffline  = Result{Mood: Neutral, Quote: "I'm here to support you whenever you're ready.", Desc: "The visual engine is warming up."}
	visualFailure  = Result{Mood: Neutral, Quote: "Technical glitches happen, but your peace remains.", Desc: "I'm still here for you."}
	visualMissing  = Result{Mood: Neutral, Quote: "I couldn't catch that expression.", Desc: "Try adjusting your lighting or position."}
	visualNoFace   = Result{Mood: Neutral, Quote: "Steady and focused.", Desc: "You're in a neutral state, perfect for building a balanced drive."}
)

// Engine fuses facial and vocal signals into one mood.
type Engine struct {
	faces  FaceClassifier
	audio  FeatureExtractor
	quotes *QuoteBank
}

// NewEngine returns an Engine. faces may be nil when no classifier is configured.
func NewEngine(faces FaceClassifier, extractor FeatureExtractor, quotes *QuoteBank) *Engine {
	if quotes == nil {
		quotes = DefaultQuoteBank()
	}
	return &Engine{faces: faces, audio: extractor, quotes: quotes}
}

// AnalyzeVisual classifies a single frame.
func (e *Engine) AnalyzeVisual(ctx context.Context, img []byte, mimeType string) (res Result) {
	if e.faces == nil {
		return visualOffline
	}
	if len(img) == 0 {
		return visualMissing
	}
	defer func() {
		if r := recover(); r != nil {
			slog.Error("visual analysis panicked", "panic", fmt.Sprint(r))
			res = visualFailure
		}
	}()

	raw, err := e.classify(ctx, img, mimeType)
	if err != nil {
		slog.Warn("visual analysis failed", "error", err.Error())
		return visualFailure
	}
	if raw == "" {
		return visualNoFace
	}
	label := MapVisual(raw)
	return e.withQuote(Result{Mood: label}, label)
}

// Fuse classifies a frame and an optional audio clip and combines them.
func (e *Engine) Fuse(ctx context.Context, img []byte, mimeType string, clip []byte) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("multi-modal analysis panicked", "panic", fmt.Sprint(r))
			res = fusionFallback
		}
	}()

	if e.faces == nil {
		slog.Warn("multi-modal analysis skipped", "reason", "no face classifier configured")
		return fusionFallback
	}
	raw, err := e.classify(ctx, img, mimeType)
	if err != nil {
		slog.Warn("multi-modal analysis failed", "error", err.Error())
		return fusionFallback
	}
	visual := MapVisual(raw)

	audioMood := Neutral
	if len(clip) > 0 && e.audio != nil {
		audioMood = e.audioMood(clip, visual)
	}

	final := Synergy(visual, audioMood)
	return e.withQuote(Result{Mood: final, VisualMood: visual, AudioMood: audioMood}, final)
}

func (e *Engine) audioMood(clip []byte, visual Label) Label {
	features, err := e.audio.Extract(clip)
	if err != nil {
		slog.Warn("audio analysis failed", "container", audio.Container(clip), "bytes", len(clip), "error", err.Error())
		return Neutral
	}
	slog.Debug("audio features extracted",
		"mean_rms", features.MeanRMS,
		"mean_pitch", features.MeanPitch,
		"duration", features.Duration)
	return ClassifyAudio(features.MeanRMS, visual)
}

func (e *Engine) classify(ctx context.Context, img []byte, mimeType string) (string, error) {
	if _, _, err := image.DecodeConfig(bytes.NewReader(img)); err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}
	return e.faces.DominantEmotion(ctx, img, mimeType)
}

func (e *Engine) withQuote(res Result, label Label) Result {
	q := e.quotes.Pick(label)
	res.Quote = q.Formatted()
	res.Desc = q.Desc
	return res
}
