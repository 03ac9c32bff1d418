// Package vision provides facial-emotion classifiers.
package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DeepFaceClient calls a DeepFace REST service (`deepface api`).
type DeepFaceClient struct {
	baseURL string
	client  *http.Client
}

type deepFaceRequest struct {
	Img              string   `json:"img"`
	Actions          []string `json:"actions"`
	EnforceDetection bool     `json:"enforce_detection"`
}

type deepFaceResponse struct {
	Results []struct {
		DominantEmotion string `json:"dominant_emotion"`
	} `json:"results"`
	Error string `json:"error"`
}

// NewDeepFaceClient returns a client for the service at baseURL. A nil client uses a new http.Client with timeout.
func NewDeepFaceClient(baseURL string, timeout time.Duration, client *http.Client) *DeepFaceClient {
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &DeepFaceClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// DominantEmotion posts the image to /analyze with face detection enforcement disabled.
func (c *DeepFaceClient) DominantEmotion(ctx context.Context, img []byte, mimeType string) (string, error) {
	if mimeType == "" {
		mimeType = http.DetectContentType(img)
	}
	payload, err := json.Marshal(deepFaceRequest{
		Img:              fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(img)),
		Actions:          []string{"emotion"},
		EnforceDetection: false,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode deepface request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build deepface request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call deepface: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read deepface response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("deepface returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out deepFaceResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("failed to decode deepface response: %w", err)
	}
	if out.Error != "" {
		return "", fmt.Errorf("deepface error: %s", out.Error)
	}
	if len(out.Results) == 0 {
		return "", nil
	}
	return strings.ToLower(strings.TrimSpace(out.Results[0].DominantEmotion)), nil
}
