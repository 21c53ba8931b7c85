package main

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/todaku-reader/todaku-api/internal/domain"
	"github.com/todaku-reader/todaku-api/internal/generation"
)

func TestWriteLesson(t *testing.T) {
	lesson := &domain.Lesson{
		Title:     "駅で",
		ContentJP: "駅で電車を待ちます。",
		ContentEN: "I wait for the train.",
		Vocabulary: []domain.VocabularyItem{
			{Word: "駅", Reading: "えき", Meaning: "station"},
		},
	}

	var js bytes.Buffer
	require.NoError(t, writeLesson(&js, lesson, formatJSON))
	assert.Contains(t, js.String(), `"title": "駅で"`)

	var yml bytes.Buffer
	require.NoError(t, writeLesson(&yml, lesson, formatYAML))
	assert.Contains(t, yml.String(), "title: 駅で")
	assert.Contains(t, yml.String(), "reading: えき")

	assert.Error(t, writeLesson(&bytes.Buffer{}, lesson, "xml"))
}

func TestProgressPrinter(t *testing.T) {
	var buf bytes.Buffer
	hook := newProgressPrinter(&buf).Hook

	hook(generation.AttemptEvent{Attempt: 1, MaxAttempts: 3})
	hook(generation.AttemptEvent{
		Attempt: 1, MaxAttempts: 3, Done: true, Elapsed: 1200 * time.Millisecond,
		Err: &generation.MalformedResponseError{Err: errors.New("unexpected end of JSON input")},
	})
	hook(generation.AttemptEvent{Attempt: 2, MaxAttempts: 3, Done: true, Elapsed: 2500 * time.Millisecond})

	out := buf.String()
	assert.Contains(t, out, "attempt 1/3 started")
	assert.Contains(t, out, "attempt 1/3 failed after 1.2s: malformed language model response")
	assert.Contains(t, out, "lesson ready after 2 attempt(s) in 2.5s")
}

func TestPrintWarnings(t *testing.T) {
	var buf bytes.Buffer
	printWarnings(&buf, nil)
	assert.Empty(t, buf.String())

	printWarnings(&buf, []string{"vocabulary word \"切符\" does not appear in the story"})
	assert.Contains(t, buf.String(), "1 consistency warning(s)")
	assert.Contains(t, buf.String(), "切符")
}
