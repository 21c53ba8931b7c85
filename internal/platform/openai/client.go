package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"resty.dev/v3"

	"github.com/todaku-reader/todaku-api/internal/generation"
)

const (
	providerName = "openai"

	// DefaultBaseURL is the public OpenAI API endpoint.
	DefaultBaseURL = "https://api.openai.com/v1"

	// DefaultModel is the chat model used when none is configured.
	DefaultModel = "gpt-4-turbo-preview"

	// DefaultTimeout bounds a single completion request.
	DefaultTimeout = 3 * time.Minute

	jsonObjectFormat = "json_object"

	maxTemperature float32 = 2
)

// Config configures a Client.
type Config struct {
	APIKey      string
	Model       string
	BaseURL     string
	// Temperature is sent as given, so 0 requests greedy decoding.
	Temperature float32
	Timeout     time.Duration
}

// Client is a generation.Generator backed by the Chat Completions API.
type Client struct {
	httpClient  *resty.Client
	model       string
	temperature float32
	logger      *slog.Logger
}

var _ generation.Generator = (*Client)(nil)

// NewClient validates cfg and creates a Client.
func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%w: openai API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Temperature < 0 || cfg.Temperature > maxTemperature {
		return nil, fmt.Errorf("%w: openai temperature %v outside [0, %v]",
			generation.ErrInvalidConfig, cfg.Temperature, maxTemperature)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.Timeout)

	return &Client{
		httpClient:  httpClient,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		logger:      logger.With("component", "openai_generator", "model", cfg.Model),
	}, nil
}

// Close releases the underlying HTTP client.
func (c *Client) Close() error {
	return c.httpClient.Close()
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// Generate sends the prompt and returns the reply text.
func (c *Client) Generate(ctx context.Context, prompt generation.Prompt) (string, error) {
	request := ChatCompletionRequest{
		Model: c.model,
		Messages: []Message{
			{Role: RoleSystem, Content: prompt.System},
			{Role: RoleUser, Content: prompt.User},
		},
		Temperature:    c.temperature,
		ResponseFormat: &ResponseFormat{Type: jsonObjectFormat},
	}

	start := time.Now()
	response, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(request).
		SetResult(&ChatCompletionResponse{}).
		SetError(&ErrorResponse{}).
		Post("/chat/completions")
	if err != nil {
		c.logger.WarnContext(ctx, "chat completion request failed",
			"error", err,
			"duration", time.Since(start))
		return "", generation.NewInvocationError(providerName, 0, err)
	}

	if response.IsError() {
		message := response.Status()
		if apiErr, ok := response.Error().(*ErrorResponse); ok && apiErr.Error.Message != "" {
			message = apiErr.Error.Message
		}
		c.logger.WarnContext(ctx, "chat completion returned an error status",
			"status_code", response.StatusCode(),
			"duration", time.Since(start))
		return "", generation.NewInvocationError(providerName, response.StatusCode(), errors.New(message))
	}

	body, ok := response.Result().(*ChatCompletionResponse)
	if !ok || body == nil || len(body.Choices) == 0 {
		return "", generation.NewInvocationError(providerName, response.StatusCode(), generation.ErrEmptyResponse)
	}

	choice := body.Choices[0]
	if choice.FinishReason == "content_filter" {
		return "", generation.NewInvocationError(providerName, response.StatusCode(), generation.ErrContentBlocked)
	}
	if strings.TrimSpace(choice.Message.Content) == "" {
		return "", generation.NewInvocationError(providerName, response.StatusCode(), generation.ErrEmptyResponse)
	}

	c.logger.DebugContext(ctx, "chat completion received",
		"duration", time.Since(start),
		"finish_reason", choice.FinishReason,
		"prompt_tokens", body.Usage.PromptTokens,
		"completion_tokens", body.Usage.CompletionTokens)

	return choice.Message.Content, nil
}
