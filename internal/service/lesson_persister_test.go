package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/todaku-reader/todaku-api/internal/domain"
	mock_store "github.com/todaku-reader/todaku-api/internal/mocks/store"
	"github.com/todaku-reader/todaku-api/internal/service"
)

func TestNewLessonPersister_NilStore(t *testing.T) {
	t.Parallel()
	_, err := service.NewLessonPersister(nil, nil)
	assert.Error(t, err)
}

func TestLessonPersister_Save(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	lessons := mock_store.NewMockLessonStore(ctrl)
	persister, err := service.NewLessonPersister(lessons, nil)
	require.NoError(t, err)

	lesson := sampleLesson()
	userID := uuid.New()
	want := &domain.PersistedLesson{ID: uuid.New(), UserID: userID, Lesson: *lesson}
	lessons.EXPECT().Create(gomock.Any(), userID, sampleProfile(), lesson).Return(want, nil)

	got, err := persister.Save(context.Background(), lesson, userID, sampleProfile())
	require.NoError(t, err)
	assert.Same(t, want, got)
}

func TestLessonPersister_SaveFailureCarriesLesson(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	lessons := mock_store.NewMockLessonStore(ctrl)
	persister, err := service.NewLessonPersister(lessons, nil)
	require.NoError(t, err)

	lesson := sampleLesson()
	cause := errors.New("connection refused")
	lessons.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, cause)

	got, err := persister.Save(context.Background(), lesson, uuid.New(), sampleProfile())
	assert.Nil(t, got)

	var persistErr *service.PersistenceError
	require.ErrorAs(t, err, &persistErr)
	assert.Same(t, lesson, persistErr.Lesson)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "failed to save lesson")
}
