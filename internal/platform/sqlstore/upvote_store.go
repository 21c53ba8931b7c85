package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/todaku-reader/todaku-api/internal/domain"
	"github.com/todaku-reader/todaku-api/internal/platform/logger"
	"github.com/todaku-reader/todaku-api/internal/store"
)

const (
	insertUpvoteQuery = `
		INSERT INTO lesson_upvotes (id, user_id, lesson_id, created_at)
		VALUES (?, ?, ?, ?)`

	incrementUpvotesQuery = `
		UPDATE lessons SET upvotes = upvotes + 1
		WHERE id = ?
		RETURNING upvotes`

	hasUpvotedQuery = `
		SELECT COUNT(*) FROM lesson_upvotes
		WHERE user_id = ? AND lesson_id = ?`
)

// UpvoteStore implements store.UpvoteStore.
type UpvoteStore struct {
	db      *sqlx.DB
	dialect Dialect
	logger  *slog.Logger
}

var _ store.UpvoteStore = (*UpvoteStore)(nil)

// NewUpvoteStore creates an UpvoteStore. A nil logger falls back to
// slog.Default().
func NewUpvoteStore(db *sqlx.DB, dialect Dialect, logger *slog.Logger) *UpvoteStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if dialect == nil {
		panic("dialect cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UpvoteStore{
		db:      db,
		dialect: dialect,
		logger:  logger.With(slog.String("component", "upvote_store"), slog.String("dialect", dialect.Name())),
	}
}

// Upvote implements store.UpvoteStore. The upvote row and the counter
// increment commit together or not at all; the unique (user_id, lesson_id)
// constraint decides concurrent duplicates.
func (s *UpvoteStore) Upvote(ctx context.Context, upvote *domain.Upvote) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.String("lesson_id", upvote.LessonID.String()),
		slog.String("user_id", upvote.UserID.String()))

	var count int
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, tx.Rebind(insertUpvoteQuery),
			upvote.ID, upvote.UserID, upvote.LessonID, upvote.CreatedAt)
		if err != nil {
			switch {
			case s.dialect.IsUniqueViolation(err):
				return store.ErrAlreadyUpvoted
			case s.dialect.IsForeignKeyViolation(err):
				return store.ErrLessonNotFound
			default:
				return store.NewStoreError("upvote", "create", "insert failed", err)
			}
		}

		err = tx.GetContext(ctx, &count, tx.Rebind(incrementUpvotesQuery), upvote.LessonID)
		if errors.Is(err, sql.ErrNoRows) {
			return store.ErrLessonNotFound
		}
		if err != nil {
			return store.NewStoreError("lesson", "increment_upvotes", "update failed", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyUpvoted) || errors.Is(err, store.ErrLessonNotFound) {
			log.Debug("upvote rejected", slog.String("reason", err.Error()))
		} else {
			log.Error("failed to record upvote", slog.String("error", err.Error()))
		}
		return 0, err
	}

	log.Info("upvote recorded", slog.Int("upvotes", count))
	return count, nil
}

// HasUpvoted implements store.UpvoteStore.
func (s *UpvoteStore) HasUpvoted(ctx context.Context, userID, lessonID uuid.UUID) (bool, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, s.db.Rebind(hasUpvotedQuery), userID, lessonID); err != nil {
		return false, fmt.Errorf("check upvote: %w", err)
	}
	return n > 0, nil
}
