package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/todaku-reader/todaku-api/internal/domain"
	"github.com/todaku-reader/todaku-api/internal/platform/logger"
	"github.com/todaku-reader/todaku-api/internal/store"
)

// LessonPersister is the single write path for generated lessons.
type LessonPersister struct {
	lessons store.LessonStore
	logger  *slog.Logger
}

// NewLessonPersister creates a LessonPersister.
func NewLessonPersister(lessons store.LessonStore, logger *slog.Logger) (*LessonPersister, error) {
	if lessons == nil {
		return nil, errors.New("lesson store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LessonPersister{
		lessons: lessons,
		logger:  logger.With(slog.String("component", "lesson_persister")),
	}, nil
}

// Save stores lesson for userID with the profile it was generated for. Any
// failure is returned as a *PersistenceError carrying the unsaved lesson.
func (p *LessonPersister) Save(
	ctx context.Context,
	lesson *domain.Lesson,
	userID uuid.UUID,
	profile domain.DifficultyProfile,
) (*domain.PersistedLesson, error) {
	log := logger.FromContextOrDefault(ctx, p.logger)

	persisted, err := p.lessons.Create(ctx, userID, profile.WithDefaults(), lesson)
	if err != nil {
		log.Error("failed to save lesson",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, &PersistenceError{Lesson: lesson, Err: err}
	}

	log.Info("lesson saved",
		slog.String("lesson_id", persisted.ID.String()),
		slog.String("user_id", userID.String()))
	return persisted, nil
}
