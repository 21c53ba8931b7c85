package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/todaku-reader/todaku-api/internal/api"
	apimiddleware "github.com/todaku-reader/todaku-api/internal/api/middleware"
	"github.com/todaku-reader/todaku-api/internal/config"
	"github.com/todaku-reader/todaku-api/internal/observability"
	"github.com/todaku-reader/todaku-api/internal/platform/logger"
	"github.com/todaku-reader/todaku-api/internal/platform/sqlstore"
	"github.com/todaku-reader/todaku-api/internal/service"
)

func newServeCommand(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*configFile)
			if err != nil {
				return err
			}
			if cfg.Auth.JWTSecret == "" {
				return errors.New("auth.jwt_secret is required to serve the API")
			}
			log, err := logger.Setup(cfg.Server)
			if err != nil {
				return fmt.Errorf("failed to set up logger: %w", err)
			}
			return serve(cmd.Context(), cfg, log)
		},
	}
}

// serve wires every dependency and blocks until ctx ends, then shuts the
// server down gracefully.
func serve(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	log.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database_driver", cfg.Database.Driver,
		"llm_provider", cfg.LLM.Provider)

	shutdownTracing, err := observability.InitTracing(ctx, cfg.Tracing, version, log)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.Warn("tracer shutdown failed", "error", err)
		}
	}()

	db, err := openMigratedDatabase(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("failed to close database", "error", err)
		}
	}()

	generator, err := newGenerator(ctx, cfg.LLM, log)
	if err != nil {
		return fmt.Errorf("failed to initialize LLM generator: %w", err)
	}
	if closer, ok := generator.(io.Closer); ok {
		defer closer.Close()
	}
	orchestrator, err := newOrchestrator(generator, cfg, log, nil)
	if err != nil {
		return err
	}

	lessonStore := sqlstore.NewLessonStore(db.db, db.dialect, log)
	upvoteStore := sqlstore.NewUpvoteStore(db.db, db.dialect, log)

	lessonService, err := service.NewLessonService(orchestrator, lessonStore, log)
	if err != nil {
		return err
	}
	upvoteService, err := service.NewUpvoteService(upvoteStore, log)
	if err != nil {
		return err
	}
	verifier, err := apimiddleware.NewHMACVerifier(cfg.Auth.JWTSecret)
	if err != nil {
		return err
	}

	router := api.NewRouter(api.RouterDeps{
		Lessons:           lessonService,
		Upvoter:           upvoteService,
		Verifier:          verifier,
		GenerationTimeout: cfg.Generation.Timeout,
		Logger:            log,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Generation.Timeout + 30*time.Second,
	}
	return runServer(ctx, server, cfg.Server.ShutdownTimeout, log)
}

// runServer serves until ctx ends or the listener fails.
func runServer(ctx context.Context, server *http.Server, shutdownTimeout time.Duration, log *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Info("server shutdown completed")
	return nil
}
