package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/todaku-reader/todaku-api/internal/domain"
	"github.com/todaku-reader/todaku-api/internal/service"
)

// MockLessonService implements service.LessonService. Methods whose Fn field
// is nil return zero values.
type MockLessonService struct {
	GenerateAndSaveFn func(
		ctx context.Context,
		userID uuid.UUID,
		profile domain.DifficultyProfile,
	) (*service.GenerationResult, error)
	GetLessonFn         func(ctx context.Context, id uuid.UUID) (*domain.PersistedLesson, error)
	ListRecentFn        func(ctx context.Context, limit int) ([]*domain.PersistedLesson, error)
	ListByUserFn        func(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.PersistedLesson, error)
	VocabularyForUserFn func(ctx context.Context, userID uuid.UUID) ([]domain.VocabularyEntry, error)
	GrammarForUserFn    func(ctx context.Context, userID uuid.UUID) ([]domain.GrammarEntry, error)
	QuizzesForUserFn    func(ctx context.Context, userID uuid.UUID) ([]domain.QuizEntry, error)
}

var _ service.LessonService = (*MockLessonService)(nil)

// GenerateAndSave implements service.LessonService.
func (m *MockLessonService) GenerateAndSave(
	ctx context.Context,
	userID uuid.UUID,
	profile domain.DifficultyProfile,
) (*service.GenerationResult, error) {
	if m.GenerateAndSaveFn != nil {
		return m.GenerateAndSaveFn(ctx, userID, profile)
	}
	return nil, nil
}

// GetLesson implements service.LessonService.
func (m *MockLessonService) GetLesson(ctx context.Context, id uuid.UUID) (*domain.PersistedLesson, error) {
	if m.GetLessonFn != nil {
		return m.GetLessonFn(ctx, id)
	}
	return nil, nil
}

// ListRecent implements service.LessonService.
func (m *MockLessonService) ListRecent(ctx context.Context, limit int) ([]*domain.PersistedLesson, error) {
	if m.ListRecentFn != nil {
		return m.ListRecentFn(ctx, limit)
	}
	return nil, nil
}

// ListByUser implements service.LessonService.
func (m *MockLessonService) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]*domain.PersistedLesson, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID, limit)
	}
	return nil, nil
}

// VocabularyForUser implements service.LessonService.
func (m *MockLessonService) VocabularyForUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]domain.VocabularyEntry, error) {
	if m.VocabularyForUserFn != nil {
		return m.VocabularyForUserFn(ctx, userID)
	}
	return nil, nil
}

// GrammarForUser implements service.LessonService.
func (m *MockLessonService) GrammarForUser(ctx context.Context, userID uuid.UUID) ([]domain.GrammarEntry, error) {
	if m.GrammarForUserFn != nil {
		return m.GrammarForUserFn(ctx, userID)
	}
	return nil, nil
}

// QuizzesForUser implements service.LessonService.
func (m *MockLessonService) QuizzesForUser(ctx context.Context, userID uuid.UUID) ([]domain.QuizEntry, error) {
	if m.QuizzesForUserFn != nil {
		return m.QuizzesForUserFn(ctx, userID)
	}
	return nil, nil
}
