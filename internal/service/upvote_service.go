package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/todaku-reader/todaku-api/internal/domain"
	"github.com/todaku-reader/todaku-api/internal/platform/logger"
	"github.com/todaku-reader/todaku-api/internal/store"
)

// UpvoteService records upvotes at most once per user and lesson.
type UpvoteService struct {
	upvotes store.UpvoteStore
	logger  *slog.Logger
}

// NewUpvoteService creates an UpvoteService.
func NewUpvoteService(upvotes store.UpvoteStore, logger *slog.Logger) (*UpvoteService, error) {
	if upvotes == nil {
		return nil, errors.New("upvote store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UpvoteService{
		upvotes: upvotes,
		logger:  logger.With(slog.String("component", "upvote_service")),
	}, nil
}

// Upvote records userID's upvote on lessonID and returns the lesson's new
// count. It returns ErrAlreadyUpvoted for a repeat and ErrLessonNotFound for
// an unknown lesson; in both cases nothing changes.
func (s *UpvoteService) Upvote(ctx context.Context, userID, lessonID uuid.UUID) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	upvote, err := domain.NewUpvote(userID, lessonID)
	if err != nil {
		return 0, err
	}

	count, err := s.upvotes.Upvote(ctx, upvote)
	switch {
	case err == nil:
		log.Debug("lesson upvoted",
			slog.String("lesson_id", lessonID.String()),
			slog.Int("upvotes", count))
		return count, nil
	case errors.Is(err, store.ErrAlreadyUpvoted):
		return 0, ErrAlreadyUpvoted
	case errors.Is(err, store.ErrLessonNotFound):
		return 0, ErrLessonNotFound
	default:
		return 0, fmt.Errorf("failed to record upvote: %w", err)
	}
}

// HasUpvoted reports whether userID has upvoted lessonID. An unknown lesson
// has no upvotes, so it reports false.
func (s *UpvoteService) HasUpvoted(ctx context.Context, userID, lessonID uuid.UUID) (bool, error) {
	upvoted, err := s.upvotes.HasUpvoted(ctx, userID, lessonID)
	if err != nil {
		return false, fmt.Errorf("failed to check upvote: %w", err)
	}
	return upvoted, nil
}
