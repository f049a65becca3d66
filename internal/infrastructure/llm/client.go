// Package llm issues chat completions against an OpenAI-compatible endpoint.
package llm

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/rajshekhar/folio/internal/domain/chat"
	"github.com/rajshekhar/folio/internal/infrastructure/logging"
	"github.com/rajshekhar/folio/internal/ports"
	folioerrors "github.com/rajshekhar/folio/pkg/errors"
)

// ErrMissingCredential is returned by Complete when no API key is configured.
// No request is made in that case.
var ErrMissingCredential = errors.New("llm api key is not configured")

// ErrEmptyCompletion is returned when the endpoint answers without choices.
var ErrEmptyCompletion = errors.New("completion returned no choices")

const op = "chat completion"

// Options configures a Client.
type Options struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float32
	Timeout     time.Duration
	Logger      ports.Logger
	HTTPClient  *http.Client
}

// Client implements chat.Completer.
type Client struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
	hasKey      bool
	logger      ports.Logger
}

// New builds a Client. A missing key is not an error here; it is logged once
// and every completion then fails with ErrMissingCredential.
func New(opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNoOpLogger()
	}
	logger = logger.With("component", "llm", "layer", "infrastructure")

	key := strings.TrimSpace(opts.APIKey)
	if key == "" {
		logger.Warn(context.Background(), "llm api key is missing; chat replies will use the fallback message")
	}

	cfg := openai.DefaultConfig(key)
	if opts.BaseURL != "" {
		cfg.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	}
	switch {
	case opts.HTTPClient != nil:
		cfg.HTTPClient = opts.HTTPClient
	case opts.Timeout > 0:
		cfg.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}

	return &Client{
		client:      openai.NewClientWithConfig(cfg),
		model:       opts.Model,
		maxTokens:   opts.MaxTokens,
		temperature: opts.Temperature,
		hasKey:      key != "",
		logger:      logger,
	}
}

// Complete sends the system prompt and the single user message.
func (c *Client) Complete(ctx context.Context, req chat.CompletionRequest) (string, error) {
	if !c.hasKey {
		return "", ErrMissingCredential
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.User},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	})
	elapsed := time.Since(start).Milliseconds()
	if err != nil {
		c.logger.Error(ctx, "completion request failed", "model", c.model, "duration_ms", elapsed, "error", err)
		return "", folioerrors.NewTransportError(op, statusOf(err), err)
	}
	if len(resp.Choices) == 0 {
		c.logger.Warn(ctx, "completion returned no choices", "model", c.model)
		return "", folioerrors.NewTransportError(op, 0, ErrEmptyCompletion)
	}

	c.logger.Debug(ctx, "completion received",
		"model", c.model,
		"duration_ms", elapsed,
		"total_tokens", resp.Usage.TotalTokens)
	return resp.Choices[0].Message.Content, nil
}

func statusOf(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}

var _ chat.Completer = (*Client)(nil)
