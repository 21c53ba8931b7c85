package generation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/todaku-reader/todaku-api/internal/domain"
)

func parseAndValidate(t *testing.T, reply string) (*domain.Lesson, error) {
	t.Helper()
	c, err := ParseResponse(reply)
	require.NoError(t, err)
	return Validate(c)
}

func TestValidateWellFormedLesson(t *testing.T) {
	t.Parallel()

	lesson, err := parseAndValidate(t, validReply(t))
	require.NoError(t, err)

	assert.Equal(t, "はじめての 駅", lesson.Title)
	assert.NotEmpty(t, lesson.ContentJP)
	assert.NotEmpty(t, lesson.ContentEN)
	assert.Len(t, lesson.Vocabulary, 2)
	assert.Len(t, lesson.Grammar, 1)
	assert.Len(t, lesson.Quizzes, 6)
	assert.NotNil(t, lesson.Warnings)
	assert.Empty(t, lesson.Warnings)
}

func TestValidateHardChecks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		edits  map[string]any
		fields []string
	}{
		{name: "missing vocabulary", edits: map[string]any{"vocabulary": nil}, fields: []string{"vocabulary"}},
		{name: "missing grammar", edits: map[string]any{"grammar": nil}, fields: []string{"grammar"}},
		{name: "quizzes not a list", edits: map[string]any{"quizzes": "none"}, fields: []string{"quizzes"}},
		{name: "empty title", edits: map[string]any{"title": ""}, fields: []string{"title"}},
		{name: "blank japanese content", edits: map[string]any{"content_jp": "   "}, fields: []string{"content_jp"}},
		{name: "array title", edits: map[string]any{"title": []string{"a", "b"}}, fields: []string{"title"}},
		{name: "object japanese content", edits: map[string]any{"content_jp": map[string]any{"x": 1}}, fields: []string{"content_jp"}},
		{name: "numeric english content", edits: map[string]any{"content_en": 42}, fields: []string{"content_en"}},
		{
			name:   "non-string quiz option",
			edits:  map[string]any{"quizzes.0.options.2": 3},
			fields: []string{"quizzes[0].options[2]"},
		},
		{
			name:   "several fields",
			edits:  map[string]any{"content_en": nil, "vocabulary": map[string]any{"word": "駅"}},
			fields: []string{"content_en", "vocabulary"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			lesson, err := parseAndValidate(t, mutateReply(t, validReply(t), tt.edits))
			assert.Nil(t, lesson)

			var structural *StructuralValidationError
			require.True(t, errors.As(err, &structural), "got %v", err)
			assert.Equal(t, tt.fields, structural.Fields)
		})
	}
}

func TestValidateNilCandidate(t *testing.T) {
	t.Parallel()

	_, err := Validate(nil)
	var structural *StructuralValidationError
	assert.True(t, errors.As(err, &structural))
}

func TestValidateAllowsEmptyLists(t *testing.T) {
	t.Parallel()

	reply := mutateReply(t, validReply(t), map[string]any{
		"vocabulary": []any{},
		"grammar":    []any{},
		"quizzes":    []any{},
	})
	lesson, err := parseAndValidate(t, reply)
	require.NoError(t, err)
	assert.Empty(t, lesson.Warnings)
	assert.Empty(t, lesson.Quizzes)
}

func TestValidateMissingVocabularyQuizIsAWarning(t *testing.T) {
	t.Parallel()

	// Two words, one vocabulary quiz.
	reply := mutateReply(t, validReply(t), map[string]any{"quizzes.1": nil})
	lesson, err := parseAndValidate(t, reply)
	require.NoError(t, err)

	assert.Len(t, lesson.Vocabulary, 2)
	assert.Equal(t, []string{
		"vocabulary quiz count mismatch: 1 quizzes for 2 words",
		"missing quiz for vocabulary word: 電車",
	}, lesson.Warnings)
}

func TestValidateMissingGrammarQuizIsAWarning(t *testing.T) {
	t.Parallel()

	reply := mutateReply(t, validReply(t), map[string]any{"quizzes.2": nil})
	lesson, err := parseAndValidate(t, reply)
	require.NoError(t, err)

	require.Len(t, lesson.Grammar, 1)
	assert.Equal(t, "〜てください", lesson.Grammar[0].Pattern)
	assert.Contains(t, lesson.Warnings, "missing quiz for grammar pattern: 〜てください")
	assert.Contains(t, lesson.Warnings, "grammar quiz count mismatch: 0 quizzes for 1 patterns")
}

func TestValidateQuizPointingElsewhere(t *testing.T) {
	t.Parallel()

	// Count matches but the second vocabulary quiz tests a word not in the list.
	reply := mutateReply(t, validReply(t), map[string]any{"quizzes.1.related_item": "バス"})
	lesson, err := parseAndValidate(t, reply)
	require.NoError(t, err)

	assert.Equal(t, []string{"missing quiz for vocabulary word: 電車"}, lesson.Warnings)
}

func TestValidateDropsQuizzesOutsideAnswerBound(t *testing.T) {
	t.Parallel()

	reply := mutateReply(t, validReply(t), map[string]any{
		"quizzes.3.correct_answer": 4,
		"quizzes.4.type":           "reading",
		"quizzes.5.correct_answer": -1,
	})
	lesson, err := parseAndValidate(t, reply)
	require.NoError(t, err)

	require.Len(t, lesson.Quizzes, 3)
	for _, q := range lesson.Quizzes {
		assert.GreaterOrEqual(t, q.CorrectAnswer, 0)
		assert.Less(t, q.CorrectAnswer, len(q.Options))
	}
	assert.Equal(t, []string{
		"dropped quiz 4: correct answer 4 out of range for 4 options",
		`dropped quiz 5: unknown type "reading"`,
		"dropped quiz 6: correct answer -1 out of range for 4 options",
	}, lesson.Warnings)
}

func TestValidateDeduplicatesItems(t *testing.T) {
	t.Parallel()

	reply := mutateReply(t, validReply(t), map[string]any{
		"vocabulary.-1": map[string]any{"word": "駅", "meaning": "station again"},
		"grammar.-1":    map[string]any{"pattern": ""},
	})
	lesson, err := parseAndValidate(t, reply)
	require.NoError(t, err)

	require.Len(t, lesson.Vocabulary, 2)
	assert.Equal(t, "station", lesson.Vocabulary[0].Meaning)
	assert.Len(t, lesson.Grammar, 1)
	assert.Equal(t, []string{
		"duplicate vocabulary word: 駅",
		"dropped grammar point 2: empty pattern",
	}, lesson.Warnings)
}

func TestNormalizeTitle(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "駅", NormalizeTitle(CandidateTitle{Text: " 駅 "}))
	assert.Equal(t, "駅", NormalizeTitle(CandidateTitle{IsObject: true, JP: "駅", EN: "Station"}))
	assert.Equal(t, "Station", NormalizeTitle(CandidateTitle{IsObject: true, EN: "Station"}))
	assert.Equal(t, `{"name":"駅"}`, NormalizeTitle(CandidateTitle{IsObject: true, Raw: `{"name":"駅"}`}))
	assert.Equal(t, "", NormalizeTitle(CandidateTitle{}))
}

func TestValidateTitleForms(t *testing.T) {
	t.Parallel()

	lesson, err := parseAndValidate(t, mutateReply(t, validReply(t), map[string]any{"title": "えきへ"}))
	require.NoError(t, err)
	assert.Equal(t, "えきへ", lesson.Title)

	lesson, err = parseAndValidate(t, mutateReply(t, validReply(t), map[string]any{"title.jp": nil}))
	require.NoError(t, err)
	assert.Equal(t, "My First Station", lesson.Title)
}

func TestValidateWarnsAboutNonObjectEntries(t *testing.T) {
	t.Parallel()

	reply := mutateReply(t, validReply(t), map[string]any{
		"vocabulary": []any{"猫", "犬"},
		"grammar.1":  "〜ます",
	})

	lesson, err := parseAndValidate(t, reply)
	require.NoError(t, err)
	assert.Empty(t, lesson.Vocabulary)
	assert.Len(t, lesson.Grammar, 1)
	assert.Contains(t, lesson.Warnings, "dropped vocabulary item 1: not an object")
	assert.Contains(t, lesson.Warnings, "dropped vocabulary item 2: not an object")
	assert.Contains(t, lesson.Warnings, "dropped grammar point 2: not an object")
}
