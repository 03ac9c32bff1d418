package vision

import (
	"context"
	"net/http"

	"github.com/easeaico/aura/internal/config"
	"github.com/easeaico/aura/internal/mood"
)

// New returns the classifier selected by cfg, or nil when vision is disabled.
func New(ctx context.Context, cfg config.Config) (mood.FaceClassifier, error) {
	switch cfg.VisionProvider {
	case config.ProviderDeepFace:
		return NewDeepFaceClient(cfg.DeepFaceURL, cfg.VisionTimeout, nil), nil
	case config.ProviderGemini:
		classifier, err := NewGeminiClassifier(ctx, cfg.GoogleAPIKey, cfg.VisionModel, &http.Client{Timeout: cfg.VisionTimeout})
		if err != nil {
			return nil, err
		}
		return classifier, nil
	default:
		return nil, nil
	}
}
