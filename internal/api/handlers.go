package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/MJE43/maze-arcade-go/internal/service"
)

// handleMaze generates the maze for width, height and seed query values.
func (s *Server) handleMaze(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	width, err := queryInt(q, "width")
	if err != nil {
		s.errorHandler.HandleError(w, r, err)
		return
	}
	height, err := queryInt(q, "height")
	if err != nil {
		s.errorHandler.HandleError(w, r, err)
		return
	}

	m, err := s.mazes.GetMaze(r.Context(), service.MazeRequest{
		Width:  width,
		Height: height,
		Seed:   q.Get("seed"),
	})
	if err != nil {
		s.errorHandler.HandleError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, MazeResponse{OK: true, Maze: m})
}

func (s *Server) handleNewSeed(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, SeedResponse{OK: true, Seed: s.mazes.NewSeed()})
}

// handleScore records a completed run.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		message := "Invalid JSON in request body"
		if errors.Is(err, io.EOF) {
			message = "Request body is empty"
		}
		s.writeError(w, r, http.StatusBadRequest, ErrTypeInvalidJSON, message)
		return
	}

	if err := ValidateScoreRequest(&req); err != nil {
		s.errorHandler.HandleError(w, r, err)
		return
	}

	id, err := s.leaderboard.Submit(r.Context(), toSubmission(&req))
	if err != nil {
		s.errorHandler.HandleError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, ScoreResponse{OK: true, ID: id})
}

// handleLeaderboard returns the ranking for an optional seed.
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit, err := queryInt(q, "limit")
	if err != nil {
		s.errorHandler.HandleError(w, r, err)
		return
	}

	items, err := s.leaderboard.Leaderboard(r.Context(), service.LeaderboardQuery{
		Seed:  q.Get("seed"),
		Limit: limit,
	})
	if err != nil {
		s.errorHandler.HandleError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, LeaderboardResponse{OK: true, Items: items})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, GetVersionInfo())
}
