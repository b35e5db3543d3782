package genai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, timeout time.Duration) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(context.Background(), &Config{
		BaseURL: server.URL + "/",
		APIKey:  "secret",
		Model:   "test-model",
		Timeout: timeout,
	})
	require.NoError(t, err)
	return client
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient(context.Background(), &Config{Model: "m"})
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = Unavailable{}.Generate(context.Background(), Request{Prompt: "p"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestGenerate(t *testing.T) {
	schema := Object("greeting",
		Field{Name: "message", Schema: String("the greeting")},
		Field{Name: "score", Schema: Number("confidence"), Optional: true},
	)

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/test-model:generateContent", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("x-goog-api-key"))

		var req struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
			GenerationConfig struct {
				ResponseMimeType string `json:"responseMimeType"`
				ResponseSchema   struct {
					Required         []string `json:"required"`
					PropertyOrdering []string `json:"propertyOrdering"`
				} `json:"responseSchema"`
			} `json:"generationConfig"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		assert.Equal(t, "say hi", req.Contents[0].Parts[0].Text)
		assert.Equal(t, "application/json", req.GenerationConfig.ResponseMimeType)
		assert.Equal(t, []string{"message"}, req.GenerationConfig.ResponseSchema.Required)
		assert.Equal(t, []string{"message", "score"}, req.GenerationConfig.ResponseSchema.PropertyOrdering)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"finishReason": "STOP",
				"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": `{"message":`}, {"text": `"hi"}`}},
				},
			}},
		})
	}, 0)

	raw, err := client.Generate(context.Background(), Request{Prompt: "say hi", Schema: schema})
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"hi"}`, string(raw))
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		checkFn func(t *testing.T, err error)
	}{
		{
			name:   "api error envelope",
			status: http.StatusBadRequest,
			body:   `{"error":{"code":400,"message":"bad schema","status":"INVALID_ARGUMENT"}}`,
			checkFn: func(t *testing.T, err error) {
				var apiErr APIError
				require.True(t, errors.As(err, &apiErr))
				assert.Equal(t, http.StatusBadRequest, apiErr.Code)
				assert.Equal(t, "INVALID_ARGUMENT", apiErr.Status)
				assert.Equal(t, "bad schema", apiErr.Message)
			},
		},
		{
			name:   "no candidates",
			status: http.StatusOK,
			body:   `{"candidates":[]}`,
			checkFn: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrEmptyResponse)
			},
		},
		{
			name:   "blocked prompt",
			status: http.StatusOK,
			body:   `{"promptFeedback":{"blockReason":"SAFETY"}}`,
			checkFn: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrEmptyResponse)
				assert.Contains(t, err.Error(), "SAFETY")
			},
		},
		{
			name:   "invalid json text",
			status: http.StatusOK,
			body:   `{"candidates":[{"finishReason":"MAX_TOKENS","content":{"parts":[{"text":"{\"message\":"}]}}]}`,
			checkFn: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "invalid JSON")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}, 0)

			raw, err := client.Generate(context.Background(), Request{Prompt: "p"})
			require.Error(t, err)
			assert.Nil(t, raw)
			tt.checkFn(t, err)
		})
	}
}

func TestGenerateTimeout(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}, 50*time.Millisecond)

	_, err := client.Generate(context.Background(), Request{Prompt: "p"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGenerateRejectsEmptyPrompt(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for an empty prompt")
	}, 0)

	_, err := client.Generate(context.Background(), Request{Prompt: "  "})
	assert.Error(t, err)
}
