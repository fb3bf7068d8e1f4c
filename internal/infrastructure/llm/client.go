// Package llm implements the reasoning-service collaborator on top of the
// OpenAI chat completion API.
package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/cleanbite/backend/internal/domain"
	"github.com/cleanbite/backend/internal/logger"
)

// maxCompletionTokens bounds the verdict payload size
const maxCompletionTokens = 1000

// Config holds settings for the reasoning client
type Config struct {
	APIKey      string
	BaseURL     string // override for testing; empty uses the OpenAI default
	Model       string
	Temperature float32
	Timeout     time.Duration
}

// Client calls the OpenAI chat completion API. Each analysis makes exactly
// one attempt: a failure here is recovered by the deterministic rule engine,
// so retrying would only add latency.
type Client struct {
	api         *openai.Client
	model       string
	temperature float32
	timeout     time.Duration
	rateLimiter *rate.Limiter
	log         zerolog.Logger
}

// NewClient creates a reasoning client
func NewClient(config Config) *Client {
	apiConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		apiConfig.BaseURL = config.BaseURL
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}

	// Keep a lid on concurrent scan bursts; the API quota is shared with
	// other consumers of the key.
	limiter := rate.NewLimiter(rate.Limit(5), 10)

	return &Client{
		api:         openai.NewClientWithConfig(apiConfig),
		model:       config.Model,
		temperature: config.Temperature,
		timeout:     timeout,
		rateLimiter: limiter,
		log:         logger.WithComponent("llm"),
	}
}

// Complete sends one chat completion request and returns the raw model
// output. The call is bounded by the configured timeout so a stalled
// upstream cannot block the pipeline; timeouts and transport errors are
// reported as domain.ErrReasoningUnavailable.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: rate limiter: %v", domain.ErrReasoningUnavailable, err)
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		MaxTokens:   maxCompletionTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrReasoningUnavailable, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no response choices", domain.ErrReasoningUnavailable)
	}

	content := resp.Choices[0].Message.Content
	c.log.Debug().
		Str("model", c.model).
		Int("response_length", len(content)).
		Msg("Received completion")

	return content, nil
}
