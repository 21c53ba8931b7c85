package mocks

import (
	"context"
	"sync"

	"github.com/todaku-reader/todaku-api/internal/domain"
)

// MockLessonGenerator implements service.LessonGenerator for testing.
type MockLessonGenerator struct {
	// GenerateLessonFn overrides the default Lesson/Err response when set.
	GenerateLessonFn func(ctx context.Context, profile domain.DifficultyProfile) (*domain.Lesson, error)

	Lesson *domain.Lesson
	Err    error

	mu       sync.Mutex
	profiles []domain.DifficultyProfile
}

// GenerateLesson records the call and returns the configured response.
func (m *MockLessonGenerator) GenerateLesson(
	ctx context.Context,
	profile domain.DifficultyProfile,
) (*domain.Lesson, error) {
	m.mu.Lock()
	m.profiles = append(m.profiles, profile)
	m.mu.Unlock()

	if m.GenerateLessonFn != nil {
		return m.GenerateLessonFn(ctx, profile)
	}
	return m.Lesson, m.Err
}

// Calls returns the profiles passed to GenerateLesson so far.
func (m *MockLessonGenerator) Calls() []domain.DifficultyProfile {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.DifficultyProfile(nil), m.profiles...)
}
