package transcription

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// ErrNotConfigured means the speech service credentials are missing; the
// operation is refused before any network call.
var ErrNotConfigured = errors.New("transcription service not configured")

// Result is the transcribed text for one uploaded audio file.
type Result struct {
	Text     string `json:"text"`
	Language string `json:"language,omitempty"`
}

// Client proxies audio files to an OpenAI-compatible transcription endpoint.
type Client struct {
	BaseURL string
	APIKey  string
	Model   string
	Client  *http.Client
}

func NewClient(baseURL, apiKey, model string) *Client {
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   model,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// Transcribe uploads audio as multipart form data with an optional language
// hint and returns the recognized text.
func (c *Client) Transcribe(ctx context.Context, filename string, audio io.Reader, language string) (*Result, error) {
	if c.APIKey == "" {
		return nil, ErrNotConfigured
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, audio); err != nil {
		return nil, fmt.Errorf("copy audio: %w", err)
	}
	if err := writer.WriteField("model", c.Model); err != nil {
		return nil, fmt.Errorf("write model field: %w", err)
	}
	if language != "" {
		if err := writer.WriteField("language", language); err != nil {
			return nil, fmt.Errorf("write language field: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finalize form: %w", err)
	}

	url := c.BaseURL + "/v1/audio/transcriptions"
	req, err := http.NewRequestWithContext(ctx, "POST", url, &body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	res, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("transcription request failed: %w", err)
	}
	defer res.Body.Close()

	resBytes, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("transcription api: status %d, body: %s", res.StatusCode, string(resBytes))
	}

	var result Result
	if err := json.Unmarshal(resBytes, &result); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	return &result, nil
}
