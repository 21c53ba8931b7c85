package store

//go:generate mockgen -source=lesson.go -destination=../mocks/store/mock_lesson.go -package=mock_store

import (
	"context"

	"github.com/google/uuid"

	"github.com/todaku-reader/todaku-api/internal/domain"
)

// LessonStore persists validated lessons.
type LessonStore interface {
	// Create stores lesson for userID under a freshly generated ID with zero
	// upvotes and returns the stored record. The lesson must already satisfy
	// domain.Lesson.Validate.
	Create(
		ctx context.Context,
		userID uuid.UUID,
		profile domain.DifficultyProfile,
		lesson *domain.Lesson,
	) (*domain.PersistedLesson, error)

	// GetByID returns ErrLessonNotFound when no lesson has the given ID.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PersistedLesson, error)

	// ListRecent returns up to limit lessons, newest first.
	ListRecent(ctx context.Context, limit int) ([]*domain.PersistedLesson, error)

	// ListByUser returns up to limit lessons owned by userID, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.PersistedLesson, error)

	// VocabularyByUser flattens the vocabulary of every lesson owned by userID,
	// newest lesson first, preserving item order within a lesson.
	VocabularyByUser(ctx context.Context, userID uuid.UUID) ([]domain.VocabularyEntry, error)

	// GrammarByUser flattens the grammar points of every lesson owned by
	// userID in the same order as VocabularyByUser.
	GrammarByUser(ctx context.Context, userID uuid.UUID) ([]domain.GrammarEntry, error)

	// QuizzesByUser flattens the quizzes of every lesson owned by userID in the
	// same order as VocabularyByUser.
	QuizzesByUser(ctx context.Context, userID uuid.UUID) ([]domain.QuizEntry, error)
}

// UpvoteStore records upvotes.
type UpvoteStore interface {
	// Upvote records that userID upvoted lessonID and increments the lesson's
	// counter, atomically. It returns the new count, ErrAlreadyUpvoted when the
	// pair exists, or ErrLessonNotFound when the lesson does not.
	Upvote(ctx context.Context, upvote *domain.Upvote) (int, error)

	// HasUpvoted reports whether userID has upvoted lessonID.
	HasUpvoted(ctx context.Context, userID, lessonID uuid.UUID) (bool, error)
}
