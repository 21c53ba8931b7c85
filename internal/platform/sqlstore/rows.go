package sqlstore

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/todaku-reader/todaku-api/internal/domain"
)

// lessonColumns lists the lessons columns in lessonRow order.
const lessonColumns = `id, user_id, title, content_jp, content_en,
	vocabulary, grammar, quizzes, warnings,
	wanikani_level, genki_chapter, tadoku_level, topic, length,
	upvotes, created_at`

// lessonRow is the flat storage shape of a lesson. The lists are stored as
// JSON documents.
type lessonRow struct {
	ID            uuid.UUID `db:"id"`
	UserID        uuid.UUID `db:"user_id"`
	Title         string    `db:"title"`
	ContentJP     string    `db:"content_jp"`
	ContentEN     string    `db:"content_en"`
	Vocabulary    string    `db:"vocabulary"`
	Grammar       string    `db:"grammar"`
	Quizzes       string    `db:"quizzes"`
	Warnings      string    `db:"warnings"`
	WaniKaniLevel int       `db:"wanikani_level"`
	GenkiChapter  int       `db:"genki_chapter"`
	TadokuLevel   string    `db:"tadoku_level"`
	Topic         string    `db:"topic"`
	Length        string    `db:"length"`
	Upvotes       int       `db:"upvotes"`
	CreatedAt     time.Time `db:"created_at"`
}

func newLessonRow(
	id, userID uuid.UUID,
	profile domain.DifficultyProfile,
	lesson *domain.Lesson,
	createdAt time.Time,
) (*lessonRow, error) {
	row := &lessonRow{
		ID:            id,
		UserID:        userID,
		Title:         lesson.Title,
		ContentJP:     lesson.ContentJP,
		ContentEN:     lesson.ContentEN,
		WaniKaniLevel: profile.WaniKaniLevel,
		GenkiChapter:  profile.GenkiChapter,
		TadokuLevel:   profile.TadokuLevel.String(),
		Topic:         profile.Topic,
		Length:        string(profile.Length),
		CreatedAt:     createdAt,
	}

	var err error
	if row.Vocabulary, err = encodeList(lesson.Vocabulary); err != nil {
		return nil, fmt.Errorf("encode vocabulary: %w", err)
	}
	if row.Grammar, err = encodeList(lesson.Grammar); err != nil {
		return nil, fmt.Errorf("encode grammar: %w", err)
	}
	if row.Quizzes, err = encodeList(lesson.Quizzes); err != nil {
		return nil, fmt.Errorf("encode quizzes: %w", err)
	}
	if row.Warnings, err = encodeList(lesson.Warnings); err != nil {
		return nil, fmt.Errorf("encode warnings: %w", err)
	}
	return row, nil
}

func (r *lessonRow) toDomain() (*domain.PersistedLesson, error) {
	lesson := &domain.PersistedLesson{
		ID:     r.ID,
		UserID: r.UserID,
		Profile: domain.DifficultyProfile{
			WaniKaniLevel: r.WaniKaniLevel,
			GenkiChapter:  r.GenkiChapter,
			TadokuLevel:   domain.TadokuLevel(r.TadokuLevel),
			Topic:         r.Topic,
			Length:        domain.Length(r.Length),
		},
		Upvotes:   r.Upvotes,
		CreatedAt: r.CreatedAt.UTC(),
		Lesson: domain.Lesson{
			Title:     r.Title,
			ContentJP: r.ContentJP,
			ContentEN: r.ContentEN,
		},
	}

	var err error
	if lesson.Vocabulary, err = decodeList[domain.VocabularyItem](r.Vocabulary); err != nil {
		return nil, fmt.Errorf("decode vocabulary of lesson %s: %w", r.ID, err)
	}
	if lesson.Grammar, err = decodeList[domain.GrammarPoint](r.Grammar); err != nil {
		return nil, fmt.Errorf("decode grammar of lesson %s: %w", r.ID, err)
	}
	if lesson.Quizzes, err = decodeList[domain.QuizItem](r.Quizzes); err != nil {
		return nil, fmt.Errorf("decode quizzes of lesson %s: %w", r.ID, err)
	}
	if lesson.Warnings, err = decodeList[string](r.Warnings); err != nil {
		return nil, fmt.Errorf("decode warnings of lesson %s: %w", r.ID, err)
	}
	return lesson, nil
}

func encodeList[T any](items []T) (string, error) {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeList[T any](data string) ([]T, error) {
	items := []T{}
	if data == "" {
		return items, nil
	}
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}
