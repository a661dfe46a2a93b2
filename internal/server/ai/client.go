// Package ai talks to an OpenAI-compatible chat completions endpoint such as
// OpenRouter.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/moodjournal/internal/common"
	"github.com/dmitrijs2005/moodjournal/internal/logging"
)

// maxBodySize bounds how much of a provider response is buffered.
const maxBodySize = 4 << 20

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type ChatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// Completion is a successful provider reply. Raw is the body exactly as the
// provider sent it; Content is choices[0].message.content when present.
type Completion struct {
	Raw     json.RawMessage
	Content string
}

type Client struct {
	url    string
	apiKey string
	model  string
	http   *http.Client
	logger logging.Logger
}

// NewClient builds a client for url. A nil httpClient means
// http.DefaultClient.
func NewClient(url, apiKey, model string, httpClient *http.Client, logger logging.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		url:    url,
		apiKey: apiKey,
		model:  model,
		http:   httpClient,
		logger: logger.With("module", "ai_client"),
	}
}

func (c *Client) Model() string {
	return c.model
}

// Complete sends messages to the provider. Transport failures, non-2xx
// statuses and bodies that are not JSON all yield common.ErrorUpstream; the
// raw body is logged but kept out of the returned error.
func (c *Client) Complete(ctx context.Context, messages []Message) (*Completion, error) {
	payload, err := json.Marshal(ChatRequest{Model: c.model, Messages: messages})
	if err != nil {
		return nil, fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug(ctx, "sending chat request", "model", c.model, "messages", len(messages))

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error(ctx, "chat request failed", "error", err)
		return nil, fmt.Errorf("%w: request failed", common.ErrorUpstream)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		c.logger.Error(ctx, "reading chat response failed", "status", resp.StatusCode, "error", err)
		return nil, fmt.Errorf("%w: unreadable response", common.ErrorUpstream)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error(ctx, "provider returned error status", "status", resp.StatusCode, "raw", string(body))
		return nil, fmt.Errorf("%w: provider status %d", common.ErrorUpstream, resp.StatusCode)
	}

	if !json.Valid(body) {
		c.logger.Error(ctx, "failed to parse provider response", "status", resp.StatusCode, "raw", string(body))
		return nil, fmt.Errorf("%w: invalid response from provider", common.ErrorUpstream)
	}

	completion := &Completion{Raw: json.RawMessage(body)}

	var parsed ChatResponse
	if err := json.Unmarshal(body, &parsed); err == nil && len(parsed.Choices) > 0 {
		completion.Content = parsed.Choices[0].Message.Content
	}

	return completion, nil
}
