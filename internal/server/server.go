// Package server exposes the puzzle engine as a small JSON API for
// external presentation layers. Games live in an in-memory store keyed
// by uuid; nothing is persisted across runs.
package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/skylinelabs/skyline/pkg/puzzle"
)

// Server owns the game store and the HTTP routes.
type Server struct {
	logger *log.Logger

	mu    sync.Mutex
	games map[string]*game
}

// game pairs a puzzle with its own lock: the engine is not reentrant,
// so concurrent requests against one game must serialize.
type game struct {
	mu      sync.Mutex
	puzzle  *puzzle.Puzzle
	name    string
	created time.Time
}

// New creates a server with an empty game store.
func New(logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		logger: logger,
		games:  make(map[string]*game),
	}
}

// Router builds the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Route("/api/games", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Delete("/", s.handleDelete)
			r.Post("/moves", s.handleMove)
			r.Post("/clear", s.handleClear)
			r.Put("/clues", s.handleClues)
			r.Post("/solve", s.handleSolve)
		})
	})
	return r
}

// requestLogger logs one line per request at debug level.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Microsecond),
		)
	})
}

// lookup returns the game for id, or nil if unknown.
func (s *Server) lookup(id string) *game {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.games[id]
}

func (s *Server) insert(g *game) string {
	id := uuid.NewString()
	s.mu.Lock()
	s.games[id] = g
	s.mu.Unlock()
	return id
}

func (s *Server) remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[id]; !ok {
		return false
	}
	delete(s.games, id)
	return true
}
