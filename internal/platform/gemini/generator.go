package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/todaku-reader/todaku-api/internal/generation"
)

const (
	providerName = "gemini"

	// DefaultModel is the Gemini model used when none is configured.
	DefaultModel = "gemini-2.0-flash"

	jsonMIMEType = "application/json"

	maxTemperature float32 = 2
)

// Config configures a Generator.
type Config struct {
	APIKey      string
	Model       string
	// Temperature is sent as given, so 0 requests greedy decoding.
	Temperature float32
	Timeout     time.Duration
}

// contentGenerator is the slice of the genai client the generator uses.
// *genai.Models satisfies it.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Generator is a generation.Generator backed by the Gemini API.
type Generator struct {
	models      contentGenerator
	model       string
	temperature float32
	timeout     time.Duration
	logger      *slog.Logger
}

var _ generation.Generator = (*Generator)(nil)

// NewGenerator validates cfg and creates a Generator with its own genai
// client. The client is created once and reused for every request.
func NewGenerator(ctx context.Context, cfg Config, logger *slog.Logger) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.Temperature < 0 || cfg.Temperature > maxTemperature {
		return nil, fmt.Errorf("%w: gemini temperature %v outside [0, %v]",
			generation.ErrInvalidConfig, cfg.Temperature, maxTemperature)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return newGenerator(client.Models, cfg, logger), nil
}

func newGenerator(models contentGenerator, cfg Config, logger *slog.Logger) *Generator {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	return &Generator{
		models:      models,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		timeout:     cfg.Timeout,
		logger:      logger.With("component", "gemini_generator", "model", cfg.Model),
	}
}

// Model returns the configured model name.
func (g *Generator) Model() string {
	return g.model
}

// Generate sends the prompt and returns the reply text.
func (g *Generator) Generate(ctx context.Context, prompt generation.Prompt) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	temperature := g.temperature
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: prompt.System}}},
		Temperature:       &temperature,
		ResponseMIMEType:  jsonMIMEType,
	}
	contents := []*genai.Content{{
		Role:  "user",
		Parts: []*genai.Part{{Text: prompt.User}},
	}}

	start := time.Now()
	resp, err := g.models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		g.logger.WarnContext(ctx, "gemini request failed",
			"error", err,
			"duration", time.Since(start))
		return "", generation.NewInvocationError(providerName, statusCode(err), err)
	}

	text, err := replyText(resp)
	if err != nil {
		g.logger.WarnContext(ctx, "gemini returned no usable reply",
			"error", err,
			"duration", time.Since(start))
		return "", generation.NewInvocationError(providerName, 0, err)
	}

	g.logger.DebugContext(ctx, "gemini reply received",
		"duration", time.Since(start),
		"reply_length", len(text))
	return text, nil
}

// replyText concatenates the text parts of the first candidate.
func replyText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", generation.ErrEmptyResponse
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: prompt blocked (%s)", generation.ErrContentBlocked, resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return "", generation.ErrEmptyResponse
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", generation.ErrContentBlocked
	}
	if candidate.Content == nil {
		return "", generation.ErrEmptyResponse
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", generation.ErrEmptyResponse
	}
	return b.String(), nil
}

// statusCode extracts the HTTP status from a genai API error.
func statusCode(err error) int {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return 0
}
