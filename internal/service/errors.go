package service

import (
	"errors"
	"fmt"

	"github.com/todaku-reader/todaku-api/internal/domain"
)

// Sentinel errors returned by the services. Callers check them with
// errors.Is; the API layer maps them to status codes.
var (
	// ErrLessonNotFound indicates that the lesson does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrLessonNotFound = errors.New("lesson not found")

	// ErrAlreadyUpvoted indicates that the user already upvoted the lesson.
	// API layer should map this to HTTP 409 Conflict.
	ErrAlreadyUpvoted = errors.New("lesson already upvoted")
)

// PersistenceError reports a failed save. Lesson is the validated lesson that
// could not be stored so the caller can still show it.
type PersistenceError struct {
	Lesson *domain.Lesson
	Err    error
}

// Error implements the error interface for PersistenceError.
func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to save lesson: %v", e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// LessonServiceError wraps unexpected failures with the operation that
// produced them.
type LessonServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for LessonServiceError.
func (e *LessonServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("lesson service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("lesson service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *LessonServiceError) Unwrap() error {
	return e.Err
}
