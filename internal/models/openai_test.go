package models

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/openai/openai-go/v3/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "https://llm.test/v1"

func newMockedOpenAI(t *testing.T) (*Generator, *http.Client) {
	t.Helper()
	client := &http.Client{}
	httpmock.ActivateNonDefault(client)
	t.Cleanup(httpmock.DeactivateAndReset)

	llm, err := NewOpenAIModel(context.Background(), "gpt-4o-mini", "sk-test", testBaseURL,
		option.WithHTTPClient(client), option.WithMaxRetries(0))
	require.NoError(t, err)
	return NewGenerator(llm), client
}

func TestOpenAIGenerateJSON(t *testing.T) {
	gen, _ := newMockedOpenAI(t)

	var body map[string]any
	httpmock.RegisterResponder(http.MethodPost, testBaseURL+"/chat/completions",
		func(req *http.Request) (*http.Response, error) {
			raw, err := io.ReadAll(req.Body)
			if err != nil {
				return nil, err
			}
			if err := json.Unmarshal(raw, &body); err != nil {
				return nil, err
			}
			return httpmock.NewJsonResponse(http.StatusOK, map[string]any{
				"id":      "chatcmpl-1",
				"object":  "chat.completion",
				"created": 1,
				"model":   "gpt-4o-mini",
				"choices": []map[string]any{{
					"index":         0,
					"finish_reason": "stop",
					"message":       map[string]any{"role": "assistant", "content": `{"suggestion":"Take a walk outside."}`},
				}},
			})
		})

	out, err := gen.GenerateJSON(context.Background(), "Return ONLY a JSON object.", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"suggestion":"Take a walk outside."}`, out)

	assert.Equal(t, "gpt-4o-mini", body["model"])
	format, ok := body["response_format"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "json_object", format["type"])
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestOpenAIRateLimit(t *testing.T) {
	gen, _ := newMockedOpenAI(t)

	httpmock.RegisterResponder(http.MethodPost, testBaseURL+"/chat/completions",
		httpmock.NewJsonResponderOrPanic(http.StatusTooManyRequests, map[string]any{
			"error": map[string]any{"message": "slow down", "type": "requests"},
		}))

	_, err := gen.GenerateJSON(context.Background(), "Return ONLY a JSON object.", nil)
	require.Error(t, err)
	assert.True(t, IsRateLimit(err))
	assert.Equal(t, KindRateLimited, Classify(err))
}

func TestNewOpenAIModelValidation(t *testing.T) {
	_, err := NewOpenAIModel(context.Background(), "gpt-4o-mini", "", "")
	assert.Error(t, err)
	_, err = NewOpenAIModel(context.Background(), "", "sk", "")
	assert.Error(t, err)
}
