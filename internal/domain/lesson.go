package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// QuizType identifies what a quiz item tests.
type QuizType string

// Quiz types. QuizTypeUnknown marks a reply value that did not match any of
// the supported types; such items never leave the validation stage.
const (
	QuizTypeVocabulary    QuizType = "vocabulary"
	QuizTypeGrammar       QuizType = "grammar"
	QuizTypeComprehension QuizType = "comprehension"
	QuizTypeUnknown       QuizType = "unknown"
)

// ParseQuizType maps free text onto a QuizType. Matching is case-insensitive
// and ignores surrounding whitespace.
func ParseQuizType(s string) QuizType {
	switch QuizType(strings.ToLower(strings.TrimSpace(s))) {
	case QuizTypeVocabulary:
		return QuizTypeVocabulary
	case QuizTypeGrammar:
		return QuizTypeGrammar
	case QuizTypeComprehension:
		return QuizTypeComprehension
	default:
		return QuizTypeUnknown
	}
}

// VocabularyItem is a word introduced by a lesson. Word is its identity
// within the lesson.
type VocabularyItem struct {
	Word               string `json:"word"`
	Reading            string `json:"reading"`
	Meaning            string `json:"meaning"`
	Example            string `json:"example"`
	ExampleTranslation string `json:"example_translation"`
}

// GrammarPoint is a grammar pattern introduced by a lesson. Pattern is its
// identity within the lesson.
type GrammarPoint struct {
	Pattern            string `json:"pattern"`
	Explanation        string `json:"explanation"`
	Example            string `json:"example"`
	ExampleTranslation string `json:"example_translation"`
}

// QuizItem is a multiple-choice question. CorrectAnswer indexes Options.
type QuizItem struct {
	Type          QuizType `json:"type"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	RelatedItem   string   `json:"related_item,omitempty"`
}

// Validate checks the answer bound.
func (q QuizItem) Validate() error {
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
		return fmt.Errorf("%w: correct answer %d out of range for %d options",
			ErrInvalidQuiz, q.CorrectAnswer, len(q.Options))
	}
	return nil
}

// Lesson is a validated graded reader: a bilingual story with its vocabulary,
// grammar and quizzes. Warnings lists the advisory consistency findings made
// while validating the model reply; they never block persistence.
type Lesson struct {
	Title      string           `json:"title"`
	ContentJP  string           `json:"content_jp"`
	ContentEN  string           `json:"content_en"`
	Vocabulary []VocabularyItem `json:"vocabulary"`
	Grammar    []GrammarPoint   `json:"grammar"`
	Quizzes    []QuizItem       `json:"quizzes"`
	Warnings   []string         `json:"warnings"`
}

// Validate checks the invariants every lesson handed to storage must hold.
func (l *Lesson) Validate() error {
	if strings.TrimSpace(l.Title) == "" {
		return fmt.Errorf("%w: title", ErrEmptyContent)
	}
	if strings.TrimSpace(l.ContentJP) == "" {
		return fmt.Errorf("%w: japanese content", ErrEmptyContent)
	}
	if strings.TrimSpace(l.ContentEN) == "" {
		return fmt.Errorf("%w: english content", ErrEmptyContent)
	}
	for i, q := range l.Quizzes {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("quiz %d: %w", i+1, err)
		}
	}
	return nil
}

// PersistedLesson is a lesson as stored: the validated content plus its
// identity, owner, the profile it was generated for and its upvote count.
type PersistedLesson struct {
	ID        uuid.UUID         `json:"id"`
	UserID    uuid.UUID         `json:"user_id"`
	Profile   DifficultyProfile `json:"profile"`
	Upvotes   int               `json:"upvotes"`
	CreatedAt time.Time         `json:"created_at"`
	Lesson
}

// Upvote records that a user upvoted a lesson. A user can upvote a lesson at
// most once.
type Upvote struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	LessonID  uuid.UUID `json:"lesson_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUpvote creates an upvote record for the given user and lesson.
func NewUpvote(userID, lessonID uuid.UUID) (*Upvote, error) {
	if userID == uuid.Nil || lessonID == uuid.Nil {
		return nil, fmt.Errorf("%w: upvote requires user and lesson", ErrInvalidID)
	}
	return &Upvote{
		ID:        uuid.New(),
		UserID:    userID,
		LessonID:  lessonID,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// VocabularyEntry is a vocabulary item together with the lesson it came from.
type VocabularyEntry struct {
	LessonID    uuid.UUID `json:"lesson_id"`
	LessonTitle string    `json:"lesson_title"`
	VocabularyItem
}

// GrammarEntry is a grammar point together with the lesson it came from.
type GrammarEntry struct {
	LessonID    uuid.UUID `json:"lesson_id"`
	LessonTitle string    `json:"lesson_title"`
	GrammarPoint
}

// QuizEntry is a quiz item together with the lesson it came from.
type QuizEntry struct {
	LessonID    uuid.UUID `json:"lesson_id"`
	LessonTitle string    `json:"lesson_title"`
	QuizItem
}
