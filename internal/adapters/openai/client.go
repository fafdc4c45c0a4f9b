// Package openai is a completion provider backed by the OpenAI Responses API.
package openai

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/oauth2"

	"github.com/shantanugsharp/chatbot-be/internal/adapters/httpretry"
	"github.com/shantanugsharp/chatbot-be/internal/core/domain"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "o3-2025-04-16"
	jsonSuffix     = ". Output should be valid JSON only, no markdown or commentary."
)

// ErrMissingAPIKey is returned by NewClient without credentials.
var ErrMissingAPIKey = errors.New("openai: api key is required")

type Config struct {
	BaseURL           string
	APIKey            string
	Model             string
	Timeout           time.Duration
	MaxRetries        int
	RetryBackoff      time.Duration
	RequestsPerSecond float64
}

type Client struct {
	baseURL string
	model   string
	http    *httpretry.Client
}

type responsesRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type contentItem struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type outputItem struct {
	Type    string        `json:"type"`
	Content []contentItem `json:"content"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

type responsesResponse struct {
	Output     []outputItem `json:"output"`
	OutputText string       `json:"output_text"`
	Error      *apiError    `json:"error"`
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.APIKey, TokenType: "Bearer"})
	hc := oauth2.NewClient(context.Background(), ts)
	hc.Timeout = timeout

	return &Client{
		baseURL: baseURL,
		model:   model,
		http: &httpretry.Client{
			HTTP:       hc,
			Name:       "openai",
			MaxRetries: cfg.MaxRetries,
			Backoff:    cfg.RetryBackoff,
			Limiter:    httpretry.NewLimiter(cfg.RequestsPerSecond),
		},
	}, nil
}

func (c *Client) Name() string { return "openai" }

// Complete sends req.Prompt as the Responses API input.
func (c *Client) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	input := req.Prompt
	if req.JSON {
		input += jsonSuffix
	}

	body, err := json.Marshal(responsesRequest{Model: c.model, Input: input})
	if err != nil {
		return "", fmt.Errorf("openai: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/responses", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("openai: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("openai: read response: %w", err)
	}

	var parsed responsesResponse
	decodeErr := json.Unmarshal(raw, &parsed)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if decodeErr == nil && parsed.Error != nil && parsed.Error.Message != "" {
			return "", fmt.Errorf("openai: status %d: %s", resp.StatusCode, parsed.Error.Message)
		}
		return "", fmt.Errorf("openai: unexpected status %d", resp.StatusCode)
	}
	if decodeErr != nil {
		return "", fmt.Errorf("openai: decode response: %w", decodeErr)
	}

	text := parsed.text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("openai: empty response")
	}
	return text, nil
}

// text joins every output_text item, falling back to the top-level
// convenience field.
func (r responsesResponse) text() string {
	var b strings.Builder
	for _, item := range r.Output {
		for _, c := range item.Content {
			if c.Type == "output_text" {
				b.WriteString(c.Text)
			}
		}
	}
	if b.Len() > 0 {
		return b.String()
	}
	return r.OutputText
}
