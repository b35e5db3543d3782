package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	gemini "google.golang.org/genai"
)

// Config represents the configuration for the generation client
type Config struct {
	// BaseURL overrides the generative language endpoint
	BaseURL string
	// APIKey authenticates every request
	APIKey string
	// Model is the model name, without the "models/" prefix
	Model string
	// HTTPClient is an optional custom HTTP client
	HTTPClient *http.Client
	// Timeout bounds a single generation call
	Timeout time.Duration
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Model:   "gemini-1.5-pro",
		Timeout: 60 * time.Second,
	}
}

// APIVersion is the generative language API version the client targets.
const APIVersion = "v1beta"

// Client generates schema-constrained JSON with the Gemini API.
type Client struct {
	config *Config
	models *gemini.Models
}

// NewClient creates a new generation client with the given configuration
func NewClient(ctx context.Context, config *Config) (*Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.APIKey == "" {
		return nil, ErrNotConfigured
	}

	client, err := gemini.NewClient(ctx, &gemini.ClientConfig{
		APIKey:     config.APIKey,
		Backend:    gemini.BackendGeminiAPI,
		HTTPClient: config.HTTPClient,
		HTTPOptions: gemini.HTTPOptions{
			BaseURL:    config.BaseURL,
			APIVersion: APIVersion,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &Client{config: config, models: client.Models}, nil
}

var (
	// ErrEmptyResponse is returned when the model produced no usable candidate.
	ErrEmptyResponse = errors.New("model returned no content")
	// ErrNotConfigured is returned when no API key is available.
	ErrNotConfigured = errors.New("generation is not configured")
)

// APIError is the error the provider returns for non-2xx responses.
type APIError = gemini.APIError

// Generate sends the prompt with the response schema and returns the JSON
// object from the first candidate.
func (c *Client) Generate(ctx context.Context, req Request) (json.RawMessage, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, errors.New("prompt cannot be empty")
	}

	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	resp, err := c.models.GenerateContent(ctx, c.config.Model, gemini.Text(req.Prompt), &gemini.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   req.Schema,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return nil, fmt.Errorf("prompt blocked (%s): %w", resp.PromptFeedback.BlockReason, ErrEmptyResponse)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, ErrEmptyResponse
	}

	first := resp.Candidates[0]
	var text strings.Builder
	for _, p := range first.Content.Parts {
		if p != nil {
			text.WriteString(p.Text)
		}
	}

	raw := bytes.TrimSpace([]byte(text.String()))
	if len(raw) == 0 {
		return nil, fmt.Errorf("finish reason %q: %w", first.FinishReason, ErrEmptyResponse)
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("model returned invalid JSON (finish reason %q)", first.FinishReason)
	}

	return json.RawMessage(raw), nil
}

// Unavailable is the Generator used when no API key is configured. Every call
// fails with ErrNotConfigured.
type Unavailable struct{}

func (Unavailable) Generate(context.Context, Request) (json.RawMessage, error) {
	return nil, ErrNotConfigured
}
