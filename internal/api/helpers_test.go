package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/todaku-reader/todaku-api/internal/api/shared"
	"github.com/todaku-reader/todaku-api/internal/domain"
)

func sampleLesson() *domain.Lesson {
	return &domain.Lesson{
		Title:     "駅で / At the Station",
		ContentJP: "駅で電車を待ちます。",
		ContentEN: "I wait for the train at the station.",
		Vocabulary: []domain.VocabularyItem{
			{Word: "駅", Reading: "えき", Meaning: "station"},
		},
		Grammar: []domain.GrammarPoint{
			{Pattern: "〜で", Explanation: "place of action"},
		},
		Quizzes: []domain.QuizItem{
			{
				Type:          domain.QuizTypeVocabulary,
				Question:      "What does 駅 mean?",
				Options:       []string{"station", "train", "ticket", "bus"},
				CorrectAnswer: 0,
			},
		},
		Warnings: []string{"vocabulary word \"切符\" does not appear in the story"},
	}
}

func samplePersisted(userID uuid.UUID) *domain.PersistedLesson {
	return &domain.PersistedLesson{
		ID:     uuid.New(),
		UserID: userID,
		Profile: domain.DifficultyProfile{
			WaniKaniLevel: 5, GenkiChapter: 3, TadokuLevel: "1", Topic: "train", Length: domain.LengthShort,
		},
		CreatedAt: time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC),
		Lesson:    *sampleLesson(),
	}
}

// newRequest builds a request with an optional JSON body, authenticated user
// and chi URL parameters.
func newRequest(
	t *testing.T,
	method, target string,
	body interface{},
	userID uuid.UUID,
	params map[string]string,
) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, target, &buf)

	ctx := req.Context()
	if userID != uuid.Nil {
		ctx = shared.WithUserID(ctx, userID)
	}
	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range params {
			rctx.URLParams.Add(k, v)
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return req.WithContext(ctx)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}
