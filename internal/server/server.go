// Package server exposes scheduling over HTTP: clients POST a problem
// document and get the computed schedule back in one round trip.
package server

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/elektrokombinacija/mrta-coalition-research/internal/store"
)

// Version reported by the health endpoint.
const Version = "0.1.0"

// Server is the scheduling API server.
type Server struct {
	router    chi.Router
	logger    *slog.Logger
	startTime time.Time
	store     *store.Store // optional; enables the /runs endpoints
}

// Option configures optional Server dependencies.
type Option func(*Server)

// WithStore attaches a benchmark-history store, enabling the /runs
// endpoints.
func WithStore(st *store.Store) Option {
	return func(s *Server) {
		s.store = st
	}
}

// New creates a Server with all routes registered. A nil logger
// disables logging.
func New(logger *slog.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{
		router:    chi.NewRouter(),
		logger:    logger.With("component", "server"),
		startTime: time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Handler returns the http.Handler for this server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	r := s.router

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(s.logger))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/schedulers", s.handleSchedulers)
		r.Post("/schedule", s.handleSchedule)

		r.Route("/runs", func(r chi.Router) {
			r.Get("/", s.handleListRuns)
			r.Get("/{id}/results", s.handleRunResults)
		})
	})
}
