package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/todaku-reader/todaku-api/internal/api/shared"
	"github.com/todaku-reader/todaku-api/internal/platform/logger"
)

// Upvoter records a user's upvote and returns the lesson's new count.
// *service.UpvoteService satisfies it.
type Upvoter interface {
	Upvote(ctx context.Context, userID, lessonID uuid.UUID) (int, error)
	HasUpvoted(ctx context.Context, userID, lessonID uuid.UUID) (bool, error)
}

// UpvoteHandler serves POST and GET /api/lessons/{id}/upvote.
type UpvoteHandler struct {
	upvoter Upvoter
	logger  *slog.Logger
}

// NewUpvoteHandler creates an UpvoteHandler.
func NewUpvoteHandler(upvoter Upvoter, logger *slog.Logger) *UpvoteHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UpvoteHandler{
		upvoter: upvoter,
		logger:  logger.With(slog.String("component", "upvote_handler")),
	}
}

// Upvote handles POST /api/lessons/{id}/upvote: 200 with the new count, 409
// for a repeat upvote and 404 for an unknown lesson.
func (h *UpvoteHandler) Upvote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	lessonID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	count, err := h.upvoter.Upvote(r.Context(), userID, lessonID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to upvote lesson")
		return
	}

	log.Debug("upvote recorded", slog.String("lesson_id", lessonID.String()), slog.Int("upvotes", count))
	shared.RespondWithJSON(w, r, http.StatusOK, UpvoteResponse{Upvoted: true, Upvotes: count})
}

// Status handles GET /api/lessons/{id}/upvote: whether the caller has
// upvoted the lesson, so a reader can disable the upvote button.
func (h *UpvoteHandler) Status(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	lessonID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	upvoted, err := h.upvoter.HasUpvoted(r.Context(), userID, lessonID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load upvote status")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, UpvoteStatusResponse{Upvoted: upvoted})
}
