package ai

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
	"go.uber.org/zap"
)

const (
	// DefaultModel is the chat model used when none is configured
	DefaultModel = "gpt-4o-mini"
	// DefaultBaseURL is the OpenAI API endpoint
	DefaultBaseURL = "https://api.openai.com/v1"
	// DefaultTimeout bounds a single completion call
	DefaultTimeout = 30 * time.Second
)

// ErrNoChoices is returned when the API answers without any completion
var ErrNoChoices = errors.New("no choices in completion response")

// OpenAIClient is a thin wrapper around the OpenAI chat completions API
type OpenAIClient struct {
	client openai.Client
	model  string
	logger *zap.Logger
}

// NewOpenAIClient creates a new OpenAI client. Empty baseURL and model fall
// back to the defaults.
func NewOpenAIClient(apiKey, baseURL, model string, logger *zap.Logger) *OpenAIClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
		option.WithHTTPClient(&http.Client{Timeout: DefaultTimeout}),
	)

	return &OpenAIClient{
		client: client,
		model:  model,
		logger: logger,
	}
}

// Complete sends one system+user exchange and returns the assistant content
func (c *OpenAIClient) Complete(ctx context.Context, system, user string, maxTokens int64, temperature float64) (string, error) {
	req := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		MaxTokens:   openai.Int(maxTokens),
		Temperature: openai.Float(temperature),
	}

	start := time.Now()
	resp, err := c.client.Chat.Completions.New(ctx, req)
	if err != nil {
		c.logger.Error("completion request failed",
			zap.String("model", c.model),
			zap.Duration("latency", time.Since(start)),
			zap.Error(err),
		)
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}

	c.logger.Debug("completion succeeded",
		zap.String("model", c.model),
		zap.Int("prompt_length", len(user)),
		zap.Int("response_length", len(resp.Choices[0].Message.Content)),
		zap.Duration("latency", time.Since(start)),
	)

	return resp.Choices[0].Message.Content, nil
}
