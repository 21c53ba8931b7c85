package generation

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors returned by the generation package
var (
	// ErrEmptyResponse is returned by adapters when the model replied with no text.
	ErrEmptyResponse = errors.New("language model returned an empty response")

	// ErrContentBlocked is returned when the model refused the request due to safety filters.
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrInvalidConfig is returned when a generator or orchestrator configuration is invalid.
	ErrInvalidConfig = errors.New("invalid generator configuration")
)

// InvocationError reports a failed call to the language model: transport
// failures, timeouts, authentication errors and empty replies.
type InvocationError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *InvocationError) Error() string {
	var b strings.Builder
	b.WriteString("language model invocation failed")
	if e.Provider != "" {
		b.WriteString(" (" + e.Provider + ")")
	}
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, ": status %d", e.StatusCode)
	}
	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	return b.String()
}

func (e *InvocationError) Unwrap() error { return e.Err }

// NewInvocationError wraps err as an InvocationError for the given provider.
func NewInvocationError(provider string, statusCode int, err error) *InvocationError {
	return &InvocationError{Provider: provider, StatusCode: statusCode, Err: err}
}

// MalformedResponseError reports a reply that is not a JSON object even after
// the repair pass.
type MalformedResponseError struct {
	// Snippet holds the start of the offending reply for diagnostics.
	Snippet string
	Err     error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return "malformed language model response: " + e.Err.Error()
	}
	return "malformed language model response"
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// StructuralValidationError reports a parsed reply that is missing required
// fields or has them in the wrong shape.
type StructuralValidationError struct {
	Fields []string
}

func (e *StructuralValidationError) Error() string {
	return "lesson failed structural validation: missing or invalid " + strings.Join(e.Fields, ", ")
}

// ExhaustedRetriesError is returned when every attempt failed. It unwraps to
// the cause of the last attempt.
type ExhaustedRetriesError struct {
	Attempts int
	LastErr  error
}

func (e *ExhaustedRetriesError) Error() string {
	return fmt.Sprintf("lesson generation failed after %d attempts: %v", e.Attempts, e.LastErr)
}

func (e *ExhaustedRetriesError) Unwrap() error { return e.LastErr }

// CancelledError is returned when the caller's context ends while a lesson is
// being generated. It unwraps to the context error.
type CancelledError struct {
	// Attempt is the attempt that was in flight or about to start.
	Attempt int
	Err     error
}

func (e *CancelledError) Error() string {
	return fmt.Sprintf("lesson generation cancelled during attempt %d: %v", e.Attempt, e.Err)
}

func (e *CancelledError) Unwrap() error { return e.Err }

// IsRetryable reports whether err is one of the per-attempt failures the
// orchestrator retries.
func IsRetryable(err error) bool {
	var invocation *InvocationError
	var malformed *MalformedResponseError
	var structural *StructuralValidationError
	return errors.As(err, &invocation) ||
		errors.As(err, &malformed) ||
		errors.As(err, &structural)
}
