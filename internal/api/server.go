// Package api exposes the maze and leaderboard services over HTTP.
package api

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/MJE43/maze-arcade-go/internal/service"
	"github.com/MJE43/maze-arcade-go/internal/store"
)

const maxBodyBytes = 1 << 20

// Options configures a Server.
type Options struct {
	Logger         *logrus.Logger
	CORSOrigins    []string
	RequestTimeout time.Duration
}

// Server handles HTTP requests
type Server struct {
	db           store.DB
	mazes        *service.MazeService
	leaderboard  *service.LeaderboardService
	errorHandler *ErrorHandler
	logger       *logrus.Logger
	corsOrigins  []string
	timeout      time.Duration
	startTime    time.Time
}

// NewServer creates a new API server
func NewServer(db store.DB, mazes *service.MazeService, leaderboard *service.LeaderboardService, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &Server{
		db:           db,
		mazes:        mazes,
		leaderboard:  leaderboard,
		errorHandler: NewErrorHandler(logger),
		logger:       logger,
		corsOrigins:  opts.CORSOrigins,
		timeout:      timeout,
		startTime:    time.Now(),
	}
}

// Routes sets up the HTTP routes with proper middleware
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.LoggingMiddleware)
	r.Use(s.errorHandler.RecoveryHandler)
	r.Use(middleware.Timeout(s.timeout))
	r.Use(s.CORSMiddleware)

	r.Get("/health", s.handleHealth)
	r.Get("/health/ready", s.handleReadiness)
	r.Get("/health/live", s.handleLiveness)
	r.Get("/version", s.handleVersion)

	r.Route("/api/v1", s.gameRoutes)
	s.gameRoutes(r)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, http.StatusNotFound, ErrTypeInvalidParams, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, http.StatusMethodNotAllowed, ErrTypeInvalidParams, "Method not allowed")
	})

	return r
}

func (s *Server) gameRoutes(r chi.Router) {
	r.Get("/maze", s.handleMaze)
	r.Get("/maze/seed", s.handleNewSeed)
	r.Post("/score", s.handleScore)
	r.Get("/leaderboard", s.handleLeaderboard)
}

// writeJSON writes a JSON response with proper headers
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Maze-Version", Version)
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.WithError(err).Error("failed to encode response")
	}
}

// writeError writes a structured error response without a wrapped cause
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, errType, message string) {
	apiErr := NewError(errType, message).
		WithRequestID(middleware.GetReqID(r.Context())).
		WithContext("path", r.URL.Path).
		WithContext("method", r.Method).
		Build()
	s.errorHandler.respond(w, r, status, apiErr, nil)
}
