package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/todaku-reader/todaku-api/internal/config"
	"github.com/todaku-reader/todaku-api/internal/generation"
	"github.com/todaku-reader/todaku-api/internal/platform/gemini"
	"github.com/todaku-reader/todaku-api/internal/platform/kagome"
	"github.com/todaku-reader/todaku-api/internal/platform/openai"
)

// loadConfig loads and validates configuration.
func loadConfig(configFile string) (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// newGenerator builds the model adapter for the configured provider.
func newGenerator(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) (generation.Generator, error) {
	switch cfg.Provider {
	case "openai":
		return openai.NewClient(openai.Config{
			APIKey:      cfg.OpenAIAPIKey,
			Model:       cfg.Model,
			BaseURL:     cfg.BaseURL,
			Temperature: cfg.Temperature,
			Timeout:     cfg.Timeout,
		}, logger)
	case "gemini":
		return gemini.NewGenerator(ctx, gemini.Config{
			APIKey:      cfg.GeminiAPIKey,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			Timeout:     cfg.Timeout,
		}, logger)
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", generation.ErrInvalidConfig, cfg.Provider)
	}
}

// newOrchestrator wires the retry loop around generator. hook may be nil.
func newOrchestrator(
	generator generation.Generator,
	cfg *config.Config,
	logger *slog.Logger,
	hook generation.AttemptHook,
) (*generation.Orchestrator, error) {
	opts := []generation.Option{
		generation.WithLogger(logger),
		generation.WithRetryPolicy(generation.RetryPolicy{
			MaxAttempts: cfg.Generation.MaxAttempts,
			Backoff:     generation.FixedBackoff(cfg.Generation.RetryDelay),
		}),
	}
	if hook != nil {
		opts = append(opts, generation.WithAttemptHook(hook))
	}
	if cfg.Analysis.FillReadings {
		annotator, err := kagome.NewAnnotator()
		if err != nil {
			return nil, fmt.Errorf("failed to load reading dictionary: %w", err)
		}
		opts = append(opts, generation.WithReadingAnnotator(annotator))
	}
	return generation.NewOrchestrator(generator, opts...)
}
