package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Options configures an OpenAIClient. Zero values fall back to the
// defaults below.
type Options struct {
	// BaseURL is the provider root, e.g. "https://api.openai.com" or a
	// compatible proxy. The client appends /v1/chat/completions.
	BaseURL string

	// APIKey is sent as a bearer token.
	APIKey string

	// Model is the provider model identifier.
	Model string

	// TurnMaxTokens and ReflectionMaxTokens are the per-class output
	// budgets.
	TurnMaxTokens       int
	ReflectionMaxTokens int

	// Temperature is shared across both request classes.
	Temperature float64

	// HTTPClient overrides the default client (used in tests).
	HTTPClient *http.Client
}

const (
	defaultBaseURL             = "https://api.openai.com"
	defaultModel               = "gpt-4o-mini"
	defaultTurnMaxTokens       = 200
	defaultReflectionMaxTokens = 4000
	defaultTemperature         = 0.7
)

// OpenAIClient implements Completer against an OpenAI-compatible
// chat-completions endpoint.
type OpenAIClient struct {
	opts Options
	http *http.Client
}

// NewOpenAIClient creates a client, filling unset options with defaults.
func NewOpenAIClient(opts Options) *OpenAIClient {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	if opts.Model == "" {
		opts.Model = defaultModel
	}
	if opts.TurnMaxTokens <= 0 {
		opts.TurnMaxTokens = defaultTurnMaxTokens
	}
	if opts.ReflectionMaxTokens <= 0 {
		opts.ReflectionMaxTokens = defaultReflectionMaxTokens
	}
	if opts.Temperature == 0 {
		opts.Temperature = defaultTemperature
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 120 * time.Second}
	}

	return &OpenAIClient{opts: opts, http: httpClient}
}

// maxTokens returns the output budget for a request class.
func (c *OpenAIClient) maxTokens(class RequestClass) int {
	if class == ClassReflection {
		return c.opts.ReflectionMaxTokens
	}
	return c.opts.TurnMaxTokens
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends one chat-completion request. No retries; transient
// failures surface as errors for the caller's policy to handle.
func (c *OpenAIClient) Complete(ctx context.Context, msgs []Message, class RequestClass) (string, error) {
	budget := c.maxTokens(class)
	slog.Debug("sending completion request",
		"class", class, "model", c.opts.Model, "maxTokens", budget, "messages", len(msgs))

	body, err := json.Marshal(chatRequest{
		Model:       c.opts.Model,
		Messages:    msgs,
		Temperature: c.opts.Temperature,
		MaxTokens:   budget,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling completion request: %w", err)
	}

	u := c.opts.BaseURL + "/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building completion request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.opts.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return "", fmt.Errorf("reading completion response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("completion failed: status=%d body=%s",
			resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("parsing completion response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("completion failed: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return "", ErrEmptyCompletion
	}

	return parsed.Choices[0].Message.Content, nil
}

// Ensure OpenAIClient satisfies Completer.
var _ Completer = (*OpenAIClient)(nil)
