package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/todaku-reader/todaku-api/internal/api/middleware"
	"github.com/todaku-reader/todaku-api/internal/api/shared"
	"github.com/todaku-reader/todaku-api/internal/domain"
	"github.com/todaku-reader/todaku-api/internal/generation"
	"github.com/todaku-reader/todaku-api/internal/service"
)

const genericErrorMessage = "An unexpected error occurred"

// MapErrorToStatusCode maps service, pipeline and domain errors to HTTP
// status codes. Unknown errors are 500.
func MapErrorToStatusCode(err error) int {
	var cancelled *generation.CancelledError
	var exhausted *generation.ExhaustedRetriesError

	switch {
	case err == nil:
		return http.StatusOK

	// Pipeline outcomes are checked first: they wrap arbitrary causes.
	case errors.As(err, &cancelled),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return http.StatusGatewayTimeout
	case errors.As(err, &exhausted):
		return http.StatusBadGateway

	case errors.Is(err, middleware.ErrMissingToken),
		errors.Is(err, middleware.ErrInvalidToken),
		errors.Is(err, middleware.ErrExpiredToken):
		return http.StatusUnauthorized

	case errors.Is(err, service.ErrLessonNotFound):
		return http.StatusNotFound

	case errors.Is(err, service.ErrAlreadyUpvoted):
		return http.StatusConflict

	case errors.Is(err, domain.ErrInvalidProfile),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for err.
func GetSafeErrorMessage(err error) string {
	var cancelled *generation.CancelledError
	var exhausted *generation.ExhaustedRetriesError

	switch {
	case err == nil:
		return genericErrorMessage
	case errors.As(err, &cancelled),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return "Lesson generation timed out"
	case errors.As(err, &exhausted):
		return "Lesson generation failed, please try again"
	case errors.Is(err, middleware.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, middleware.ErrMissingToken),
		errors.Is(err, middleware.ErrInvalidToken):
		return "Invalid token"
	case errors.Is(err, service.ErrLessonNotFound):
		return "Lesson not found"
	case errors.Is(err, service.ErrAlreadyUpvoted):
		return "Lesson already upvoted"
	case errors.Is(err, domain.ErrInvalidProfile):
		return profileMessage(err)
	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID"
	case errors.Is(err, domain.ErrValidation):
		return "Validation failed"
	default:
		return genericErrorMessage
	}
}

// profileMessage keeps the field detail of a profile error. Profile errors
// are built from fixed strings in the domain package and carry no user data
// beyond the rejected length value.
func profileMessage(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, domain.ErrInvalidProfile.Error()); i >= 0 {
		msg = msg[i:]
	}
	if msg == "" {
		return "Invalid difficulty profile"
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}

// HandleAPIError writes the mapped status and safe message for err. When err
// is unknown and defaultMsg is set, defaultMsg is shown instead of the generic
// message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, defaultMsg string) {
	status := MapErrorToStatusCode(err)
	msg := GetSafeErrorMessage(err)
	if msg == genericErrorMessage && defaultMsg != "" {
		msg = defaultMsg
	}
	shared.RespondWithErrorAndLog(w, r, status, msg, err)
}
