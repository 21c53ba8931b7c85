package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/todaku-reader/todaku-api/internal/api/shared"
	"github.com/todaku-reader/todaku-api/internal/platform/logger"
	"github.com/todaku-reader/todaku-api/internal/redact"
	"github.com/todaku-reader/todaku-api/internal/service"
)

// LessonHandler serves lesson generation and the lesson feeds.
type LessonHandler struct {
	lessons           service.LessonService
	generationTimeout time.Duration
	logger            *slog.Logger
}

// NewLessonHandler creates a LessonHandler. A positive generationTimeout
// bounds each generate request on the server side.
func NewLessonHandler(
	lessons service.LessonService,
	generationTimeout time.Duration,
	logger *slog.Logger,
) *LessonHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &LessonHandler{
		lessons:           lessons,
		generationTimeout: generationTimeout,
		logger:            logger.With(slog.String("component", "lesson_handler")),
	}
}

// GenerateLesson handles POST /api/lessons/generate.
//
// 201 when the lesson was generated and stored, 200 with saved=false when
// only the save failed, 400 for a bad profile, 502 when every attempt failed
// and 504 on timeout or cancellation.
func (h *LessonHandler) GenerateLesson(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req GenerateLessonRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}
	profile, err := req.Profile()
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	ctx := r.Context()
	if h.generationTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.generationTimeout)
		defer cancel()
	}

	started := time.Now()
	result, err := h.lessons.GenerateAndSave(ctx, userID, profile)
	if err != nil {
		HandleAPIError(w, r, err, "Lesson generation failed")
		return
	}

	warnings := result.Lesson.Warnings
	if warnings == nil {
		warnings = []string{}
	}

	if !result.Saved() {
		log.Warn("lesson generated but not saved",
			slog.String("error", redact.Error(result.SaveErr)),
			slog.Duration("elapsed", time.Since(started)))
		shared.RespondWithJSON(w, r, http.StatusOK, GenerateLessonResponse{
			Saved:     false,
			Lesson:    result.Lesson,
			Warnings:  warnings,
			SaveError: "Lesson could not be saved",
		})
		return
	}

	log.Info("lesson generated",
		slog.String("lesson_id", result.Persisted.ID.String()),
		slog.Int("warnings", len(warnings)),
		slog.Duration("elapsed", time.Since(started)))
	shared.RespondWithJSON(w, r, http.StatusCreated, GenerateLessonResponse{
		Saved:    true,
		Lesson:   result.Persisted,
		Warnings: warnings,
	})
}

// GetLesson handles GET /api/lessons/{id}.
func (h *LessonHandler) GetLesson(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	lesson, err := h.lessons.GetLesson(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load lesson")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, lesson)
}

// ListRecent handles GET /api/lessons/recent?limit=.
func (h *LessonHandler) ListRecent(w http.ResponseWriter, r *http.Request) {
	limit, err := shared.QueryInt(r, "limit")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid limit")
		return
	}
	lessons, err := h.lessons.ListRecent(r.Context(), limit)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list lessons")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, nonNil(lessons))
}

// ListMine handles GET /api/lessons/mine?limit=.
func (h *LessonHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	limit, err := shared.QueryInt(r, "limit")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid limit")
		return
	}
	lessons, err := h.lessons.ListByUser(r.Context(), userID, limit)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list lessons")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, nonNil(lessons))
}

// Vocabulary handles GET /api/vocabulary.
func (h *LessonHandler) Vocabulary(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	entries, err := h.lessons.VocabularyForUser(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load vocabulary")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, nonNil(entries))
}

// Grammar handles GET /api/grammar.
func (h *LessonHandler) Grammar(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	entries, err := h.lessons.GrammarForUser(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load grammar")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, nonNil(entries))
}

// Quizzes handles GET /api/quizzes.
func (h *LessonHandler) Quizzes(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	entries, err := h.lessons.QuizzesForUser(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load quizzes")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, nonNil(entries))
}

// nonNil makes empty results encode as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

