package mocks

import (
	"context"

	"github.com/google/uuid"
)

// MockUpvoter implements api.Upvoter.
type MockUpvoter struct {
	UpvoteFn     func(ctx context.Context, userID, lessonID uuid.UUID) (int, error)
	HasUpvotedFn func(ctx context.Context, userID, lessonID uuid.UUID) (bool, error)
}

// Upvote calls UpvoteFn, or returns a count of 1.
func (m *MockUpvoter) Upvote(ctx context.Context, userID, lessonID uuid.UUID) (int, error) {
	if m.UpvoteFn != nil {
		return m.UpvoteFn(ctx, userID, lessonID)
	}
	return 1, nil
}

// HasUpvoted calls HasUpvotedFn, or reports false.
func (m *MockUpvoter) HasUpvoted(ctx context.Context, userID, lessonID uuid.UUID) (bool, error) {
	if m.HasUpvotedFn != nil {
		return m.HasUpvotedFn(ctx, userID, lessonID)
	}
	return false, nil
}
