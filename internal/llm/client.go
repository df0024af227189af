// Package llm is the chat-completion client for the generation provider.
// One request, one response, no retries: retry policy belongs to callers
// that can decide whether a degraded result is acceptable.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.openai.com/v1"

// ErrNoAPIKey is returned before any network call when the client was
// built without a credential.
var ErrNoAPIKey = errors.New("llm: api key is not configured")

// GenerationError is a failed or empty provider response. It aborts the
// run that issued the primary generation call; enhancement stages treat it
// as a skippable stage failure.
type GenerationError struct {
	StatusCode int
	Message    string
}

func (e *GenerationError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("llm: generation failed with status %d: %s", e.StatusCode, e.Message)
	}
	return "llm: generation failed: " + e.Message
}

type Client struct {
	apiKey      string
	model       string
	temperature float64
	baseURL     string
	client      *http.Client
}

func NewClient(apiKey, model string, temperature float64) *Client {
	return &Client{
		apiKey:      apiKey,
		model:       model,
		temperature: temperature,
		baseURL:     defaultBaseURL,
		client:      &http.Client{Timeout: 90 * time.Second},
	}
}

// SetTestTransport points the client at a test server.
func (c *Client) SetTestTransport(baseURL string) {
	c.baseURL = baseURL
}

// WithOverrides returns a copy of the client using a per-request credential
// and/or model, as supplied inline on the generate API.
func (c *Client) WithOverrides(apiKey, model string) *Client {
	out := *c
	if apiKey != "" {
		out.apiKey = apiKey
	}
	if model != "" {
		out.model = model
	}
	return &out
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type errorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends a single-user-message chat completion and returns the raw
// text content. The response is expected to contain JSON somewhere in the
// text; extracting it is the repair package's job, not the client's.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", ErrNoAPIKey
	}

	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    []message{{Role: "user", Content: prompt}},
		Temperature: c.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &GenerationError{Message: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &GenerationError{Message: "read response: " + err.Error()}
	}

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error.Message != "" {
			return "", &GenerationError{StatusCode: resp.StatusCode, Message: errResp.Error.Message}
		}
		return "", &GenerationError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	var chat chatResponse
	if err := json.Unmarshal(respBody, &chat); err != nil {
		return "", &GenerationError{Message: "unmarshal response: " + err.Error()}
	}

	if len(chat.Choices) == 0 {
		return "", &GenerationError{Message: "empty choice list"}
	}
	content := chat.Choices[0].Message.Content
	if content == "" {
		return "", &GenerationError{Message: "empty content"}
	}

	return content, nil
}
