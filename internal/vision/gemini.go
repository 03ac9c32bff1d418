package vision

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/easeaico/aura/internal/utils"
)

// Emotions a facial classifier may report.
var faceEmotions = []string{"happy", "sad", "neutral", "angry", "fear", "surprise", "disgust", "none"}

const faceInstruction = `Classify the dominant facial expression of the person in this image.
Answer with exactly one of: happy, sad, neutral, angry, fear, surprise, disgust.
Answer none if no face is visible.`

// GeminiClassifier asks a Gemini model for the dominant facial expression.
type GeminiClassifier struct {
	client *genai.Client
	model  string
}

// NewGeminiClassifier returns a GeminiClassifier. httpClient may be nil.
func NewGeminiClassifier(ctx context.Context, apiKey, model string, httpClient *http.Client) (*GeminiClassifier, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("API key is required")
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &GeminiClassifier{
		client: client,
		model:  strings.TrimSpace(model),
	}, nil
}

// DominantEmotion sends the image inline with an enum-constrained answer.
func (g *GeminiClassifier) DominantEmotion(ctx context.Context, img []byte, mimeType string) (string, error) {
	if g == nil || g.client == nil {
		return "", fmt.Errorf("gemini classifier not configured")
	}
	if mimeType == "" {
		mimeType = http.DetectContentType(img)
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(img, mimeType),
			genai.NewPartFromText(faceInstruction),
		}, genai.RoleUser),
	}
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "text/x.enum",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeString,
			Enum: faceEmotions,
		},
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("failed to classify image: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return "", fmt.Errorf("empty classification response")
	}

	label := strings.ToLower(strings.TrimSpace(utils.ExtractContentText(resp.Candidates[0].Content)))
	if label == "none" {
		return "", nil
	}
	return label, nil
}
