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

// Feed limits.
const (
	DefaultRecentLimit = 6
	MaxRecentLimit     = 50
	DefaultUserLimit   = 20
	MaxUserLimit       = 100
)

// LessonGenerator produces a validated lesson for a profile.
// *generation.Orchestrator satisfies it.
type LessonGenerator interface {
	GenerateLesson(ctx context.Context, profile domain.DifficultyProfile) (*domain.Lesson, error)
}

// GenerationResult is the outcome of GenerateAndSave. Lesson is always set.
// Persisted is set when the save succeeded; otherwise SaveErr holds the
// *PersistenceError.
type GenerationResult struct {
	Lesson    *domain.Lesson
	Persisted *domain.PersistedLesson
	SaveErr   error
}

// Saved reports whether the lesson was stored.
func (r *GenerationResult) Saved() bool {
	return r.Persisted != nil
}

// LessonService provides lesson generation and retrieval.
type LessonService interface {
	// GenerateAndSave runs the generation pipeline for profile and saves the
	// result for userID. Generation errors are returned as-is; a failed save
	// is reported through GenerationResult.SaveErr with a nil error.
	GenerateAndSave(
		ctx context.Context,
		userID uuid.UUID,
		profile domain.DifficultyProfile,
	) (*GenerationResult, error)

	// GetLesson returns ErrLessonNotFound for unknown IDs.
	GetLesson(ctx context.Context, id uuid.UUID) (*domain.PersistedLesson, error)

	// ListRecent returns the newest lessons across all users.
	ListRecent(ctx context.Context, limit int) ([]*domain.PersistedLesson, error)

	// ListByUser returns the newest lessons owned by userID.
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.PersistedLesson, error)

	// VocabularyForUser flattens the vocabulary of the user's lessons.
	VocabularyForUser(ctx context.Context, userID uuid.UUID) ([]domain.VocabularyEntry, error)

	// GrammarForUser flattens the grammar points of the user's lessons.
	GrammarForUser(ctx context.Context, userID uuid.UUID) ([]domain.GrammarEntry, error)

	// QuizzesForUser flattens the quizzes of the user's lessons.
	QuizzesForUser(ctx context.Context, userID uuid.UUID) ([]domain.QuizEntry, error)
}

type lessonServiceImpl struct {
	generator LessonGenerator
	persister *LessonPersister
	lessons   store.LessonStore
	logger    *slog.Logger
}

var _ LessonService = (*lessonServiceImpl)(nil)

// NewLessonService creates a LessonService.
func NewLessonService(
	generator LessonGenerator,
	lessons store.LessonStore,
	logger *slog.Logger,
) (LessonService, error) {
	if generator == nil {
		return nil, errors.New("generator cannot be nil")
	}
	if lessons == nil {
		return nil, errors.New("lesson store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	persister, err := NewLessonPersister(lessons, logger)
	if err != nil {
		return nil, err
	}

	return &lessonServiceImpl{
		generator: generator,
		persister: persister,
		lessons:   lessons,
		logger:    logger.With(slog.String("component", "lesson_service")),
	}, nil
}

func (s *lessonServiceImpl) GenerateAndSave(
	ctx context.Context,
	userID uuid.UUID,
	profile domain.DifficultyProfile,
) (*GenerationResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	lesson, err := s.generator.GenerateLesson(ctx, profile)
	if err != nil {
		return nil, err
	}

	result := &GenerationResult{Lesson: lesson}
	persisted, err := s.persister.Save(ctx, lesson, userID, profile)
	if err != nil {
		log.Warn("returning unsaved lesson", slog.String("error", err.Error()))
		result.SaveErr = err
		return result, nil
	}

	result.Persisted = persisted
	return result, nil
}

func (s *lessonServiceImpl) GetLesson(ctx context.Context, id uuid.UUID) (*domain.PersistedLesson, error) {
	lesson, err := s.lessons.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapError("get_lesson", "failed to retrieve lesson", err)
	}
	return lesson, nil
}

func (s *lessonServiceImpl) ListRecent(ctx context.Context, limit int) ([]*domain.PersistedLesson, error) {
	lessons, err := s.lessons.ListRecent(ctx, clampLimit(limit, DefaultRecentLimit, MaxRecentLimit))
	if err != nil {
		return nil, s.mapError("list_recent", "failed to list recent lessons", err)
	}
	return lessons, nil
}

func (s *lessonServiceImpl) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]*domain.PersistedLesson, error) {
	lessons, err := s.lessons.ListByUser(ctx, userID, clampLimit(limit, DefaultUserLimit, MaxUserLimit))
	if err != nil {
		return nil, s.mapError("list_by_user", "failed to list user lessons", err)
	}
	return lessons, nil
}

func (s *lessonServiceImpl) VocabularyForUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]domain.VocabularyEntry, error) {
	entries, err := s.lessons.VocabularyByUser(ctx, userID)
	if err != nil {
		return nil, s.mapError("vocabulary_for_user", "failed to collect vocabulary", err)
	}
	return entries, nil
}

func (s *lessonServiceImpl) GrammarForUser(ctx context.Context, userID uuid.UUID) ([]domain.GrammarEntry, error) {
	entries, err := s.lessons.GrammarByUser(ctx, userID)
	if err != nil {
		return nil, s.mapError("grammar_for_user", "failed to collect grammar", err)
	}
	return entries, nil
}

func (s *lessonServiceImpl) QuizzesForUser(ctx context.Context, userID uuid.UUID) ([]domain.QuizEntry, error) {
	entries, err := s.lessons.QuizzesByUser(ctx, userID)
	if err != nil {
		return nil, s.mapError("quizzes_for_user", "failed to collect quizzes", err)
	}
	return entries, nil
}

// mapError returns service sentinels directly and wraps everything else.
func (s *lessonServiceImpl) mapError(operation, message string, err error) error {
	if errors.Is(err, store.ErrLessonNotFound) {
		return ErrLessonNotFound
	}
	return &LessonServiceError{Operation: operation, Message: message, Err: err}
}

// clampLimit applies def to non-positive limits and caps at upper.
func clampLimit(limit, def, upper int) int {
	if limit <= 0 {
		return def
	}
	if limit > upper {
		return upper
	}
	return limit
}
