// Package server exposes the learning core over the HTTP API the web client
// speaks. Handlers decode plain JSON, call into the core services and map
// application errors onto status codes.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/example/tenkanji/internal/daily"
	"github.com/example/tenkanji/internal/study"
	"github.com/example/tenkanji/pkg/models"
)

// storageTimeout bounds every request's storage work so a stuck database
// surfaces as an error instead of a hung response.
const storageTimeout = 5 * time.Second

// UserStore is the user persistence the handlers need.
type UserStore interface {
	GetByInitials(ctx context.Context, initials string) (*models.User, error)
	CreateIfMissing(ctx context.Context, initials string) (*models.User, error)
	UpdateChunkSize(ctx context.Context, initials string, chunkSize int) error
}

// MasteryCounter reports how many words a user has mastered.
type MasteryCounter interface {
	CountMastered(ctx context.Context, initials string) (int, error)
}

// ChunkSelector serves study chunks and per-word status.
type ChunkSelector interface {
	SelectChunk(ctx context.Context, initials string, size int, mode study.Mode) (*study.Chunk, error)
	StatusList(ctx context.Context, initials string) ([]study.WordStatusEntry, error)
}

// ProgressRecorder applies submitted session results.
type ProgressRecorder interface {
	RecordResults(ctx context.Context, initials string, results []models.WordResult) error
}

// DailyService serves and records the daily challenge.
type DailyService interface {
	Today(ctx context.Context, initials string) (*daily.Challenge, error)
	Complete(ctx context.Context, initials string, score int, results []models.WordResult) (*models.DailyChallenge, error)
}

// StreakSource computes the advisory consecutive-day streak.
type StreakSource interface {
	Current(ctx context.Context, initials string, today time.Time) int
}

// Server wires the core services into an HTTP handler.
type Server struct {
	users    UserStore
	mastery  MasteryCounter
	selector ChunkSelector
	recorder ProgressRecorder
	daily    DailyService
	streaks  StreakSource
	now      func() time.Time
}

// New creates a Server over the given services.
func New(users UserStore, mastery MasteryCounter, selector ChunkSelector, recorder ProgressRecorder, dailySvc DailyService, streaks StreakSource) *Server {
	return &Server{
		users:    users,
		mastery:  mastery,
		selector: selector,
		recorder: recorder,
		daily:    dailySvc,
		streaks:  streaks,
		now:      time.Now,
	}
}

// Router builds the API route table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Post("/login", s.handleLogin)
		r.Get("/user/{initials}", s.handleGetUser)
		r.Put("/user/{initials}/settings", s.handleUpdateSettings)
		r.Get("/words/chunk", s.handleGetChunk)
		r.Get("/words/status", s.handleWordsStatus)
		r.Post("/progress", s.handleProgress)
		r.Get("/daily", s.handleGetDaily)
		r.Post("/daily/complete", s.handleCompleteDaily)
	})
	return r
}

// requestContext attaches the storage timeout to the request context.
func requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), storageTimeout)
}
