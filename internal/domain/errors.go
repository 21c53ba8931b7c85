package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is usually wrapped with a more specific message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidProfile is returned when a difficulty profile cannot be used
	// to request a lesson.
	ErrInvalidProfile = errors.New("invalid difficulty profile")

	// ErrInvalidID is returned when an ID is malformed or empty.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidQuiz is returned when a quiz item violates the answer bound.
	ErrInvalidQuiz = errors.New("invalid quiz item")

	// ErrEmptyContent is returned when required lesson content is empty.
	ErrEmptyContent = errors.New("content cannot be empty")
)
