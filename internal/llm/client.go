// Package llm wraps the Anthropic messages endpoint behind a small
// Completer interface so callers can be handed a fake in tests.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"prospect-pipeline/internal/common/config"
	"prospect-pipeline/internal/common/httpclient"
	"prospect-pipeline/internal/common/logger"
)

const anthropicVersion = "2023-06-01"

var (
	ErrLLMUnavailable = errors.New("LLM_UNAVAILABLE")
	ErrEmptyReply     = errors.New("LLM_EMPTY_REPLY")
)

// Completer produces a single completion for a system + user message pair.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

type Client struct {
	apiKey    string
	model     string
	maxTokens int
	baseURL   string
	client    *httpclient.Client
	logger    logger.Logger
}

func NewClient(cfg config.LLMConfig, log logger.Logger) *Client {
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = "claude-3-haiku-20240307"
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.anthropic.com"
	}
	return &Client{
		apiKey:    cfg.APIKey,
		model:     model,
		maxTokens: cfg.MaxTokens,
		baseURL:   baseURL,
		client:    httpclient.NewClient(cfg.TimeoutDuration()),
		logger:    log.WithFields(map[string]interface{}{"component": "llm"}),
	}
}

type messageRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messageResponse struct {
	Content []contentBlock `json:"content"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Complete sends one user message and returns the first text content
// block of the reply.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return "", fmt.Errorf("%w: api key not configured", ErrLLMUnavailable)
	}

	reqBody := messageRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		System:    system,
		Messages: []message{
			{Role: "user", Content: user},
		},
	}

	headers := map[string]string{
		"x-api-key":         c.apiKey,
		"anthropic-version": anthropicVersion,
	}

	var resp messageResponse
	if err := c.client.DoJSON(ctx, "POST", c.baseURL+"/v1/messages", headers, reqBody, &resp); err != nil {
		c.logger.Warn("completion request failed", map[string]interface{}{
			"model": c.model,
			"error": err.Error(),
		})
		return "", fmt.Errorf("%w: %v", ErrLLMUnavailable, err)
	}

	for _, block := range resp.Content {
		if block.Type == "text" && strings.TrimSpace(block.Text) != "" {
			return block.Text, nil
		}
	}
	return "", ErrEmptyReply
}
