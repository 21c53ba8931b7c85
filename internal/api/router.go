package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	apimiddleware "github.com/todaku-reader/todaku-api/internal/api/middleware"
	"github.com/todaku-reader/todaku-api/internal/api/shared"
	"github.com/todaku-reader/todaku-api/internal/service"
)

var _ Upvoter = (*service.UpvoteService)(nil)

// RouterDeps holds what NewRouter needs to build the handlers.
type RouterDeps struct {
	Lessons           service.LessonService
	Upvoter           Upvoter
	Verifier          apimiddleware.TokenVerifier
	GenerationTimeout time.Duration
	Logger            *slog.Logger
}

// NewRouter registers every route. Feeds of public lessons are readable
// without a token; everything tied to a user requires one.
func NewRouter(deps RouterDeps) http.Handler {
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}

	lessonHandler := NewLessonHandler(deps.Lessons, deps.GenerationTimeout, log)
	upvoteHandler := NewUpvoteHandler(deps.Upvoter, log)
	authMiddleware := apimiddleware.NewAuthMiddleware(deps.Verifier)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(apimiddleware.NewTraceMiddleware(log))
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{Status: "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/lessons/recent", lessonHandler.ListRecent)
		r.Get("/lessons/{id}", lessonHandler.GetLesson)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Post("/lessons/generate", lessonHandler.GenerateLesson)
			r.Get("/lessons/mine", lessonHandler.ListMine)
			r.Post("/lessons/{id}/upvote", upvoteHandler.Upvote)
			r.Get("/lessons/{id}/upvote", upvoteHandler.Status)
			r.Get("/vocabulary", lessonHandler.Vocabulary)
			r.Get("/grammar", lessonHandler.Grammar)
			r.Get("/quizzes", lessonHandler.Quizzes)
		})
	})

	return r
}
