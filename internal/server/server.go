// Package server exposes the habit registry over a small local HTTP API. It
// is a presentation shell only: input collection and JSON rendering, no
// business logic. Handlers run concurrently under net/http, so every
// registry call is routed through a serial queue — the registry itself
// assumes one caller at a time.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"habitkeep/internal/habit"
	"habitkeep/internal/serial"
)

// Server is the habitkeep HTTP API server.
type Server struct {
	registry *habit.Registry
	queue    *serial.Queue
	logger   *zap.Logger
	router   chi.Router
	version  string
	dataDir  string
	started  time.Time
}

// New creates a Server over the given registry. The queue serializes all
// registry calls; Close releases it.
func New(registry *habit.Registry, logger *zap.Logger, version, dataDir string) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		registry: registry,
		queue:    serial.NewQueue(),
		logger:   logger,
		version:  version,
		dataDir:  dataDir,
		started:  time.Now(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close stops the serial queue after in-flight work completes.
func (s *Server) Close() {
	s.queue.Close()
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Get("/habits", s.handleListHabits)
		r.Post("/habits", s.handleAddHabit)
		r.Post("/habits/{name}/done", s.handleMarkDone)

		r.Get("/settings", s.handleGetSettings)
		r.Put("/settings", s.handleSetRetention)

		r.Post("/reset", s.handleReset)
	})

	s.router = r
}

// do runs fn on the serial queue. Returns false (and responds 503) if the
// server is shutting down.
func (s *Server) do(w http.ResponseWriter, fn func()) bool {
	if !s.queue.Do(fn) {
		writeError(w, http.StatusServiceUnavailable, "shutting down")
		return false
	}
	return true
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"version":  s.version,
		"uptime":   time.Since(s.started).Seconds(),
		"data_dir": s.dataDir,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
