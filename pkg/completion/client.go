package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Message is a chat message in the provider wire format.
type Message struct {
	Role    string `json:"role"` // "system", "user", "assistant"
	Content string `json:"content"`
}

// Option allows optional parameters like Temperature or a model override.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string
}

func WithTemperature(temp float64) Option {
	return func(o *Options) { o.Temperature = temp }
}

func WithModel(model string) Option {
	return func(o *Options) { o.Model = model }
}

func WithMaxTokens(n int) Option {
	return func(o *Options) { o.MaxTokens = n }
}

// UpstreamError carries a non-2xx completion API response through to the
// caller, preserving the upstream body for the user-facing message.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("completion api: status %d, body: %s", e.StatusCode, e.Body)
}

// Client talks to an OpenAI-compatible chat-completions API.
type Client struct {
	BaseURL   string
	APIKey    string
	ModelName string
	Client    *http.Client
}

func NewClient(baseURL, apiKey, modelName string) *Client {
	return &Client{
		BaseURL:   baseURL,
		APIKey:    apiKey,
		ModelName: modelName,
		Client: &http.Client{
			// Streaming completions can legitimately take minutes.
			Timeout: 180 * time.Second,
		},
	}
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Stream      bool      `json:"stream"`
	Temperature float64   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Chat sends a non-streaming completion request and returns the full content.
func (c *Client) Chat(ctx context.Context, messages []Message, opts ...Option) (string, error) {
	body, err := c.do(ctx, messages, false, opts...)
	if err != nil {
		return "", err
	}
	defer body.Close()

	resBytes, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var res chatResponse
	if err := json.Unmarshal(resBytes, &res); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if len(res.Choices) == 0 {
		return "", fmt.Errorf("completion api returned no choices")
	}
	return res.Choices[0].Message.Content, nil
}

// StreamChat sends a streaming completion request and returns the raw
// response body. The caller owns the reader and must Close it; cancellation
// of ctx aborts the underlying transport mid-stream.
func (c *Client) StreamChat(ctx context.Context, messages []Message, opts ...Option) (io.ReadCloser, error) {
	return c.do(ctx, messages, true, opts...)
}

func (c *Client) do(ctx context.Context, messages []Message, stream bool, opts ...Option) (io.ReadCloser, error) {
	options := &Options{Temperature: 0.7}
	for _, opt := range opts {
		opt(options)
	}

	model := c.ModelName
	if options.Model != "" {
		model = options.Model
	}

	payload := chatRequest{
		Model:       model,
		Messages:    messages,
		Stream:      stream,
		Temperature: options.Temperature,
		MaxTokens:   options.MaxTokens,
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := c.BaseURL + "/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	res, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("completion request failed: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		resBody, _ := io.ReadAll(res.Body)
		res.Body.Close()
		return nil, &UpstreamError{StatusCode: res.StatusCode, Body: string(resBody)}
	}

	return res.Body, nil
}
