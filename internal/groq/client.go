package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/earlysvahn/chatlpu/internal/chat"
)

const DefaultBaseURL = "https://api.groq.com/openai/v1"

// DefaultInstructions is sent whenever the configured instruction text is
// empty or whitespace-only.
const DefaultInstructions = "You are a helpful AI assistant."

// Fixed request parameters for every model call.
const (
	temperature    = 0.7
	maxTokens      = 1024
	requestTimeout = 60 * time.Second
	maxRetries     = 2
	retryBaseDelay = 500 * time.Millisecond
)

// Client talks to the Groq OpenAI-compatible chat completions API.
type Client struct {
	APIKey  string
	BaseURL string
	HTTP    *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		APIKey:  apiKey,
		BaseURL: DefaultBaseURL,
		HTTP:    &http.Client{Timeout: requestTimeout},
	}
}

type chatRequest struct {
	Model       string         `json:"model"`
	Messages    []chat.Message `json:"messages"`
	Temperature float64        `json:"temperature"`
	MaxTokens   int            `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chat.Message `json:"message"`
	} `json:"choices"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends the instruction text and the latest user prompt to the given
// model and returns the assistant reply. Whitespace-only instructions are
// replaced by DefaultInstructions. Transient failures (connection errors,
// 429, 5xx) are retried up to maxRetries times with a short backoff.
func (c *Client) Complete(ctx context.Context, modelID, instructions, prompt string) (string, error) {
	if c.APIKey == "" {
		return "", fmt.Errorf("missing GROQ_API_KEY (set in env or .env)")
	}
	if strings.TrimSpace(instructions) == "" {
		instructions = DefaultInstructions
	}

	body, err := json.Marshal(chatRequest{
		Model:       modelID,
		Messages:    chat.BuildMessages(instructions, prompt),
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			delay := retryBaseDelay << (attempt - 1)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		reply, retryable, err := c.complete(ctx, modelID, body)
		if err == nil {
			return reply, nil
		}
		if !retryable {
			return "", err
		}
		lastErr = err
	}
	return "", fmt.Errorf("%s: %w (after %d retries)", modelID, lastErr, maxRetries)
}

func (c *Client) complete(ctx context.Context, modelID string, body []byte) (reply string, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.httpClient().Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", false, ctx.Err()
		}
		return "", true, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return "", true, fmt.Errorf("%s: status %d", modelID, resp.StatusCode)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", false, fmt.Errorf("decode response: %w", err)
	}
	if out.Error.Message != "" {
		return "", false, fmt.Errorf("%s: %s", modelID, out.Error.Message)
	}
	if len(out.Choices) == 0 {
		return "", false, fmt.Errorf("%s: no choices in response", modelID)
	}
	return out.Choices[0].Message.Content, false, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}
