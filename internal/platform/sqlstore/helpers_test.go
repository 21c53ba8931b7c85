package sqlstore_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/todaku-reader/todaku-api/internal/domain"
	"github.com/todaku-reader/todaku-api/internal/platform/sqlite"
	"github.com/todaku-reader/todaku-api/internal/platform/sqlstore"
)

// openTestDB returns a migrated SQLite database in a temp directory, backed
// by a single connection.
func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	return openDB(t, 1)
}

// openPooledDB is openTestDB with an unbounded pool, so concurrent callers
// contend on SQLite's write lock instead of queueing on one connection.
func openPooledDB(t *testing.T) *sqlx.DB {
	t.Helper()
	return openDB(t, 0)
}

func openDB(t *testing.T, maxOpenConns int) *sqlx.DB {
	t.Helper()
	ctx := context.Background()

	db, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "todaku.db"), maxOpenConns)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	migrator, err := sqlite.NewMigrator(db, nil)
	require.NoError(t, err)
	_, err = migrator.Up(ctx)
	require.NoError(t, err)

	return db
}

func newStores(t *testing.T) (*sqlstore.LessonStore, *sqlstore.UpvoteStore) {
	t.Helper()
	return storesOn(openTestDB(t))
}

func storesOn(db *sqlx.DB) (*sqlstore.LessonStore, *sqlstore.UpvoteStore) {
	return sqlstore.NewLessonStore(db, sqlite.Dialect{}, nil), sqlstore.NewUpvoteStore(db, sqlite.Dialect{}, nil)
}

func testProfile() domain.DifficultyProfile {
	return domain.DifficultyProfile{
		WaniKaniLevel: 5,
		GenkiChapter:  3,
		TadokuLevel:   "1",
		Topic:         "daily life",
		Length:        domain.LengthShort,
	}
}

func testLesson(title string) *domain.Lesson {
	return &domain.Lesson{
		Title:     title,
		ContentJP: "駅に 行きます。",
		ContentEN: "I go to the station.",
		Vocabulary: []domain.VocabularyItem{
			{Word: "駅", Reading: "えき", Meaning: "station", Example: "駅に 行きます。", ExampleTranslation: "I go to the station."},
		},
		Grammar: []domain.GrammarPoint{
			{Pattern: "〜に行きます", Explanation: "go to", Example: "駅に 行きます。", ExampleTranslation: "I go to the station."},
		},
		Quizzes: []domain.QuizItem{
			{
				Type:          domain.QuizTypeVocabulary,
				Question:      "What does 駅 mean?",
				Options:       []string{"station", "train", "bus", "car"},
				CorrectAnswer: 0,
				Explanation:   "駅 means station.",
				RelatedItem:   "駅",
			},
		},
		Warnings: []string{"missing quiz for grammar pattern: 〜に行きます"},
	}
}

func createLesson(t *testing.T, lessons *sqlstore.LessonStore, userID uuid.UUID, title string) *domain.PersistedLesson {
	t.Helper()
	persisted, err := lessons.Create(context.Background(), userID, testProfile(), testLesson(title))
	require.NoError(t, err)
	return persisted
}
