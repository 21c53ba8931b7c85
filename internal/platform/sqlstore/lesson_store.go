package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/todaku-reader/todaku-api/internal/domain"
	"github.com/todaku-reader/todaku-api/internal/platform/logger"
	"github.com/todaku-reader/todaku-api/internal/store"
)

const (
	insertLessonQuery = `
		INSERT INTO lessons (` + lessonColumns + `)
		VALUES (:id, :user_id, :title, :content_jp, :content_en,
			:vocabulary, :grammar, :quizzes, :warnings,
			:wanikani_level, :genki_chapter, :tadoku_level, :topic, :length,
			:upvotes, :created_at)`

	getLessonQuery = `SELECT ` + lessonColumns + ` FROM lessons WHERE id = ?`

	listRecentQuery = `SELECT ` + lessonColumns + ` FROM lessons
		ORDER BY created_at DESC, id DESC LIMIT ?`

	listByUserQuery = `SELECT ` + lessonColumns + ` FROM lessons
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC LIMIT ?`

	listAllByUserQuery = `SELECT ` + lessonColumns + ` FROM lessons
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC`
)

// LessonStore implements store.LessonStore.
type LessonStore struct {
	db      *sqlx.DB
	dialect Dialect
	logger  *slog.Logger
}

var _ store.LessonStore = (*LessonStore)(nil)

// NewLessonStore creates a LessonStore. A nil logger falls back to
// slog.Default().
func NewLessonStore(db *sqlx.DB, dialect Dialect, logger *slog.Logger) *LessonStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if dialect == nil {
		panic("dialect cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LessonStore{
		db:      db,
		dialect: dialect,
		logger:  logger.With(slog.String("component", "lesson_store"), slog.String("dialect", dialect.Name())),
	}
}

// Create implements store.LessonStore.
func (s *LessonStore) Create(
	ctx context.Context,
	userID uuid.UUID,
	profile domain.DifficultyProfile,
	lesson *domain.Lesson,
) (*domain.PersistedLesson, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if lesson == nil {
		return nil, fmt.Errorf("%w: lesson is nil", store.ErrInvalidEntity)
	}
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user ID is required", store.ErrInvalidEntity)
	}
	if err := lesson.Validate(); err != nil {
		log.Warn("lesson validation failed during create", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	id := uuid.New()
	createdAt := time.Now().UTC().Truncate(time.Microsecond)
	row, err := newLessonRow(id, userID, profile, lesson, createdAt)
	if err != nil {
		return nil, store.NewStoreError("lesson", "create", "encoding failed", err)
	}

	if _, err := s.db.NamedExecContext(ctx, insertLessonQuery, row); err != nil {
		log.Error("failed to create lesson",
			slog.String("error", err.Error()),
			slog.String("lesson_id", id.String()),
			slog.String("user_id", userID.String()))
		return nil, store.NewStoreError("lesson", "create", "insert failed", err)
	}

	log.Info("lesson created",
		slog.String("lesson_id", id.String()),
		slog.String("user_id", userID.String()),
		slog.Int("vocabulary", len(lesson.Vocabulary)),
		slog.Int("quizzes", len(lesson.Quizzes)))

	return row.toDomain()
}

// GetByID implements store.LessonStore.
func (s *LessonStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.PersistedLesson, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var row lessonRow
	if err := s.db.GetContext(ctx, &row, s.db.Rebind(getLessonQuery), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("lesson not found", slog.String("lesson_id", id.String()))
			return nil, store.ErrLessonNotFound
		}
		log.Error("failed to get lesson",
			slog.String("error", err.Error()),
			slog.String("lesson_id", id.String()))
		return nil, store.NewStoreError("lesson", "get", "query failed", err)
	}

	return row.toDomain()
}

// ListRecent implements store.LessonStore.
func (s *LessonStore) ListRecent(ctx context.Context, limit int) ([]*domain.PersistedLesson, error) {
	return s.list(ctx, "list_recent", listRecentQuery, limit)
}

// ListByUser implements store.LessonStore.
func (s *LessonStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]*domain.PersistedLesson, error) {
	return s.list(ctx, "list_by_user", listByUserQuery, userID, limit)
}

// VocabularyByUser implements store.LessonStore.
func (s *LessonStore) VocabularyByUser(ctx context.Context, userID uuid.UUID) ([]domain.VocabularyEntry, error) {
	lessons, err := s.list(ctx, "vocabulary_by_user", listAllByUserQuery, userID)
	if err != nil {
		return nil, err
	}

	entries := []domain.VocabularyEntry{}
	for _, lesson := range lessons {
		for _, item := range lesson.Vocabulary {
			entries = append(entries, domain.VocabularyEntry{
				LessonID:       lesson.ID,
				LessonTitle:    lesson.Title,
				VocabularyItem: item,
			})
		}
	}
	return entries, nil
}

// GrammarByUser implements store.LessonStore.
func (s *LessonStore) GrammarByUser(ctx context.Context, userID uuid.UUID) ([]domain.GrammarEntry, error) {
	lessons, err := s.list(ctx, "grammar_by_user", listAllByUserQuery, userID)
	if err != nil {
		return nil, err
	}

	entries := []domain.GrammarEntry{}
	for _, lesson := range lessons {
		for _, point := range lesson.Grammar {
			entries = append(entries, domain.GrammarEntry{
				LessonID:     lesson.ID,
				LessonTitle:  lesson.Title,
				GrammarPoint: point,
			})
		}
	}
	return entries, nil
}

// QuizzesByUser implements store.LessonStore.
func (s *LessonStore) QuizzesByUser(ctx context.Context, userID uuid.UUID) ([]domain.QuizEntry, error) {
	lessons, err := s.list(ctx, "quizzes_by_user", listAllByUserQuery, userID)
	if err != nil {
		return nil, err
	}

	entries := []domain.QuizEntry{}
	for _, lesson := range lessons {
		for _, quiz := range lesson.Quizzes {
			entries = append(entries, domain.QuizEntry{
				LessonID:    lesson.ID,
				LessonTitle: lesson.Title,
				QuizItem:    quiz,
			})
		}
	}
	return entries, nil
}

func (s *LessonStore) list(
	ctx context.Context,
	operation, query string,
	args ...any,
) ([]*domain.PersistedLesson, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var rows []lessonRow
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(query), args...); err != nil {
		log.Error("failed to list lessons",
			slog.String("operation", operation),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("lesson", operation, "query failed", err)
	}

	lessons := make([]*domain.PersistedLesson, 0, len(rows))
	for i := range rows {
		lesson, err := rows[i].toDomain()
		if err != nil {
			return nil, store.NewStoreError("lesson", operation, "decoding failed", err)
		}
		lessons = append(lessons, lesson)
	}
	return lessons, nil
}
