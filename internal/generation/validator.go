package generation

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/todaku-reader/todaku-api/internal/domain"
)

// Validate applies the two-tier policy to a candidate.
//
// Hard checks reject the candidate with a *StructuralValidationError: the
// title and both story texts must be non-empty, the vocabulary, grammar and
// quizzes lists must be present, and no text field may hold a non-string
// value. Everything else is soft: non-object list entries, duplicates and
// unusable quizzes are dropped, and count or coverage mismatches between
// vocabulary/grammar and quizzes are reported in Lesson.Warnings without
// failing the attempt.
//
// Every quiz in the returned lesson satisfies 0 <= CorrectAnswer < len(Options).
func Validate(c *CandidateLesson) (*domain.Lesson, error) {
	if c == nil {
		return nil, &StructuralValidationError{
			Fields: []string{"title", "content_jp", "content_en", "vocabulary", "grammar", "quizzes"},
		}
	}

	title := NormalizeTitle(c.Title)

	var missing []string
	if title == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(c.ContentJP) == "" {
		missing = append(missing, "content_jp")
	}
	if strings.TrimSpace(c.ContentEN) == "" {
		missing = append(missing, "content_en")
	}
	if !c.HasVocabulary {
		missing = append(missing, "vocabulary")
	}
	if !c.HasGrammar {
		missing = append(missing, "grammar")
	}
	if !c.HasQuizzes {
		missing = append(missing, "quizzes")
	}
	missing = append(missing, c.Invalid...)
	if len(missing) > 0 {
		return nil, &StructuralValidationError{Fields: missing}
	}

	warnings := append([]string{}, c.Dropped...)

	vocabulary, w := uniqueVocabulary(c.Vocabulary)
	warnings = append(warnings, w...)

	grammar, w := uniqueGrammar(c.Grammar)
	warnings = append(warnings, w...)

	quizzes, w := usableQuizzes(c.Quizzes)
	warnings = append(warnings, w...)

	warnings = append(warnings, coverageWarnings(vocabulary, grammar, quizzes)...)

	return &domain.Lesson{
		Title:      title,
		ContentJP:  c.ContentJP,
		ContentEN:  c.ContentEN,
		Vocabulary: vocabulary,
		Grammar:    grammar,
		Quizzes:    quizzes,
		Warnings:   warnings,
	}, nil
}

// NormalizeTitle reduces a candidate title to a single string. Object titles
// prefer the Japanese text, then the English text, then the raw JSON value.
func NormalizeTitle(t CandidateTitle) string {
	if !t.IsObject {
		return strings.TrimSpace(t.Text)
	}
	switch {
	case t.JP != "":
		return t.JP
	case t.EN != "":
		return t.EN
	default:
		return strings.TrimSpace(t.Raw)
	}
}

func uniqueVocabulary(items []domain.VocabularyItem) ([]domain.VocabularyItem, []string) {
	var warnings []string
	named := make([]domain.VocabularyItem, 0, len(items))
	for i, v := range items {
		if v.Word == "" {
			warnings = append(warnings, fmt.Sprintf("dropped vocabulary item %d: empty word", i+1))
			continue
		}
		named = append(named, v)
	}

	word := func(v domain.VocabularyItem) string { return v.Word }
	for _, d := range lo.FindDuplicatesBy(named, word) {
		warnings = append(warnings, "duplicate vocabulary word: "+d.Word)
	}
	return lo.UniqBy(named, word), warnings
}

func uniqueGrammar(items []domain.GrammarPoint) ([]domain.GrammarPoint, []string) {
	var warnings []string
	named := make([]domain.GrammarPoint, 0, len(items))
	for i, g := range items {
		if g.Pattern == "" {
			warnings = append(warnings, fmt.Sprintf("dropped grammar point %d: empty pattern", i+1))
			continue
		}
		named = append(named, g)
	}

	pattern := func(g domain.GrammarPoint) string { return g.Pattern }
	for _, d := range lo.FindDuplicatesBy(named, pattern) {
		warnings = append(warnings, "duplicate grammar pattern: "+d.Pattern)
	}
	return lo.UniqBy(named, pattern), warnings
}

// usableQuizzes drops quizzes with an unknown type or an answer index outside
// their options.
func usableQuizzes(items []CandidateQuiz) ([]domain.QuizItem, []string) {
	var warnings []string
	quizzes := make([]domain.QuizItem, 0, len(items))
	for i, q := range items {
		if q.Type == domain.QuizTypeUnknown {
			warnings = append(warnings, fmt.Sprintf("dropped quiz %d: unknown type %q", i+1, q.RawType))
			continue
		}
		if err := q.QuizItem.Validate(); err != nil {
			warnings = append(warnings, fmt.Sprintf(
				"dropped quiz %d: correct answer %d out of range for %d options",
				i+1, q.CorrectAnswer, len(q.Options)))
			continue
		}
		quizzes = append(quizzes, q.QuizItem)
	}
	return quizzes, warnings
}

func coverageWarnings(
	vocabulary []domain.VocabularyItem,
	grammar []domain.GrammarPoint,
	quizzes []domain.QuizItem,
) []string {
	var warnings []string

	vocabQuizzes := lo.Filter(quizzes, func(q domain.QuizItem, _ int) bool {
		return q.Type == domain.QuizTypeVocabulary
	})
	grammarQuizzes := lo.Filter(quizzes, func(q domain.QuizItem, _ int) bool {
		return q.Type == domain.QuizTypeGrammar
	})

	if len(vocabQuizzes) != len(vocabulary) {
		warnings = append(warnings, fmt.Sprintf(
			"vocabulary quiz count mismatch: %d quizzes for %d words",
			len(vocabQuizzes), len(vocabulary)))
	}
	if len(grammarQuizzes) != len(grammar) {
		warnings = append(warnings, fmt.Sprintf(
			"grammar quiz count mismatch: %d quizzes for %d patterns",
			len(grammarQuizzes), len(grammar)))
	}

	related := func(q domain.QuizItem, _ int) string { return q.RelatedItem }
	coveredWords := lo.Map(vocabQuizzes, related)
	coveredPatterns := lo.Map(grammarQuizzes, related)

	for _, v := range vocabulary {
		if !lo.Contains(coveredWords, v.Word) {
			warnings = append(warnings, "missing quiz for vocabulary word: "+v.Word)
		}
	}
	for _, g := range grammar {
		if !lo.Contains(coveredPatterns, g.Pattern) {
			warnings = append(warnings, "missing quiz for grammar pattern: "+g.Pattern)
		}
	}
	return warnings
}
