package api

import (
	"github.com/todaku-reader/todaku-api/internal/domain"
)

// GenerateLessonRequest is the body of POST /api/lessons/generate.
type GenerateLessonRequest struct {
	WaniKaniLevel int                `json:"wanikani_level" validate:"gte=0,lte=60"`
	GenkiChapter  int                `json:"genki_chapter"  validate:"gte=0,lte=23"`
	TadokuLevel   domain.TadokuLevel `json:"tadoku_level"`
	Topic         string             `json:"topic"          validate:"required,max=200"`
	Length        string             `json:"length"         validate:"omitempty,oneof=short medium long"`
}

// Profile converts the request into a validated difficulty profile.
func (req GenerateLessonRequest) Profile() (domain.DifficultyProfile, error) {
	return domain.NewDifficultyProfile(
		req.WaniKaniLevel,
		req.GenkiChapter,
		req.TadokuLevel,
		req.Topic,
		req.Length,
	)
}

// GenerateLessonResponse is returned by the generate endpoint. Lesson is the
// stored lesson when Saved is true and the unsaved lesson otherwise.
type GenerateLessonResponse struct {
	Saved     bool        `json:"saved"`
	Lesson    interface{} `json:"lesson"`
	Warnings  []string    `json:"warnings"`
	SaveError string      `json:"save_error,omitempty"`
}

// UpvoteStatusResponse reports whether the caller has upvoted a lesson.
type UpvoteStatusResponse struct {
	Upvoted bool `json:"upvoted"`
}

// UpvoteResponse is returned after a successful upvote.
type UpvoteResponse struct {
	Upvoted bool `json:"upvoted"`
	Upvotes int  `json:"upvotes"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}
