package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/todaku-reader/todaku-api/internal/mocks"
	"github.com/todaku-reader/todaku-api/internal/service"
)

func TestUpvoteHandler(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	lessonID := uuid.New()

	tests := []struct {
		name       string
		userID     uuid.UUID
		id         string
		upvoteErr  error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "first upvote",
			userID:     userID,
			id:         lessonID.String(),
			wantStatus: http.StatusOK,
			wantBody:   `{"upvoted":true,"upvotes":4}`,
		},
		{
			name:       "repeat upvote",
			userID:     userID,
			id:         lessonID.String(),
			upvoteErr:  service.ErrAlreadyUpvoted,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "unknown lesson",
			userID:     userID,
			id:         lessonID.String(),
			upvoteErr:  service.ErrLessonNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "store failure",
			userID:     userID,
			id:         lessonID.String(),
			upvoteErr:  errors.New("database is locked"),
			wantStatus: http.StatusInternalServerError,
		},
		{name: "bad lesson id", userID: userID, id: "abc", wantStatus: http.StatusBadRequest},
		{name: "unauthenticated", id: lessonID.String(), wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			calls := 0
			upvoter := &mocks.MockUpvoter{
				UpvoteFn: func(_ context.Context, uid, lid uuid.UUID) (int, error) {
					calls++
					assert.Equal(t, userID, uid)
					assert.Equal(t, lessonID, lid)
					if tt.upvoteErr != nil {
						return 0, tt.upvoteErr
					}
					return 4, nil
				},
			}

			rec := httptest.NewRecorder()
			req := newRequest(t, http.MethodPost, "/api/lessons/"+tt.id+"/upvote", nil, tt.userID,
				map[string]string{"id": tt.id})
			NewUpvoteHandler(upvoter, nil).Upvote(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
			if tt.wantStatus == http.StatusBadRequest || tt.wantStatus == http.StatusUnauthorized {
				assert.Zero(t, calls)
			}
		})
	}
}

func TestUpvoteHandlerStatus(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	lessonID := uuid.New()

	tests := []struct {
		name       string
		userID     uuid.UUID
		id         string
		upvoted    bool
		checkErr   error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "upvoted",
			userID:     userID,
			id:         lessonID.String(),
			upvoted:    true,
			wantStatus: http.StatusOK,
			wantBody:   `{"upvoted":true}`,
		},
		{
			name:       "not upvoted",
			userID:     userID,
			id:         lessonID.String(),
			wantStatus: http.StatusOK,
			wantBody:   `{"upvoted":false}`,
		},
		{
			name:       "store failure",
			userID:     userID,
			id:         lessonID.String(),
			checkErr:   errors.New("database is locked"),
			wantStatus: http.StatusInternalServerError,
		},
		{name: "bad lesson id", userID: userID, id: "abc", wantStatus: http.StatusBadRequest},
		{name: "unauthenticated", id: lessonID.String(), wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			calls := 0
			upvoter := &mocks.MockUpvoter{
				HasUpvotedFn: func(_ context.Context, uid, lid uuid.UUID) (bool, error) {
					calls++
					assert.Equal(t, userID, uid)
					assert.Equal(t, lessonID, lid)
					return tt.upvoted, tt.checkErr
				},
			}

			rec := httptest.NewRecorder()
			req := newRequest(t, http.MethodGet, "/api/lessons/"+tt.id+"/upvote", nil, tt.userID,
				map[string]string{"id": tt.id})
			NewUpvoteHandler(upvoter, nil).Status(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
			if tt.wantStatus == http.StatusBadRequest || tt.wantStatus == http.StatusUnauthorized {
				assert.Zero(t, calls)
			}
		})
	}
}
