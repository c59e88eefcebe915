package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/MJE43/maze-arcade-go/internal/store"
)

// LeaderboardOptions configures result sizes.
type LeaderboardOptions struct {
	DefaultLimit int
	MaxLimit     int
}

// DefaultLeaderboardOptions mirrors the store defaults.
func DefaultLeaderboardOptions() LeaderboardOptions {
	return LeaderboardOptions{DefaultLimit: store.DefaultRankLimit, MaxLimit: store.MaxRankLimit}
}

// ScoreSubmission is a completed run as reported by a client. Steps and
// Elapsed arrive as JSON numbers and must be non-negative integers.
type ScoreSubmission struct {
	Seed    string
	Steps   float64
	Elapsed float64
	Name    string
}

// LeaderboardQuery selects a ranking. A nil Limit uses the default.
type LeaderboardQuery struct {
	Seed  string
	Limit *int
}

// LeaderboardEntry is a ranked projection of a stored score.
type LeaderboardEntry struct {
	Rank      int       `json:"rank"`
	ID        int64     `json:"id"`
	Name      *string   `json:"name"`
	Seed      string    `json:"seed"`
	Steps     int64     `json:"steps"`
	Elapsed   int64     `json:"elapsed"`
	CreatedAt time.Time `json:"created_at"`
}

// LeaderboardService records runs and reads rankings through store.DB.
type LeaderboardService struct {
	db   store.DB
	opts LeaderboardOptions
}

// NewLeaderboardService returns a service over db.
func NewLeaderboardService(db store.DB, opts LeaderboardOptions) *LeaderboardService {
	if opts.MaxLimit <= 0 || opts.MaxLimit > store.MaxRankLimit {
		opts.MaxLimit = store.MaxRankLimit
	}
	if opts.DefaultLimit <= 0 || opts.DefaultLimit > opts.MaxLimit {
		opts.DefaultLimit = min(store.DefaultRankLimit, opts.MaxLimit)
	}
	return &LeaderboardService{db: db, opts: opts}
}

// Submit validates a run and stores it. It returns the new score id.
func (s *LeaderboardService) Submit(ctx context.Context, sub ScoreSubmission) (int64, error) {
	steps, err := wholeNumber("steps", sub.Steps)
	if err != nil {
		return 0, err
	}
	elapsed, err := wholeNumber("elapsed", sub.Elapsed)
	if err != nil {
		return 0, err
	}
	if len(sub.Seed) > store.MaxFieldLength {
		return 0, invalid("seed", "must be at most %d bytes", store.MaxFieldLength)
	}

	var name *string
	if trimmed := strings.TrimSpace(sub.Name); trimmed != "" {
		if len(trimmed) > store.MaxFieldLength {
			return 0, invalid("name", "must be at most %d bytes", store.MaxFieldLength)
		}
		name = &trimmed
	}

	id, err := s.db.InsertScore(ctx, &store.Score{
		Seed:       sub.Seed,
		Steps:      steps,
		Elapsed:    elapsed,
		PlayerName: name,
	})
	if err != nil {
		if errors.Is(err, store.ErrInvalidScore) {
			return 0, &ValidationError{Field: "score", Message: err.Error()}
		}
		return 0, fmt.Errorf("record score: %w", err)
	}
	return id, nil
}

// Leaderboard returns the ranking for q.Seed, or across all seeds when it is
// empty. Ranks start at 1.
func (s *LeaderboardService) Leaderboard(ctx context.Context, q LeaderboardQuery) ([]LeaderboardEntry, error) {
	scores, err := s.db.RankScores(ctx, store.RankQuery{Seed: q.Seed, Limit: s.limit(q.Limit)})
	if err != nil {
		return nil, fmt.Errorf("rank scores: %w", err)
	}

	entries := make([]LeaderboardEntry, len(scores))
	for i, sc := range scores {
		entries[i] = LeaderboardEntry{
			Rank:      i + 1,
			ID:        sc.ID,
			Name:      sc.PlayerName,
			Seed:      sc.Seed,
			Steps:     sc.Steps,
			Elapsed:   sc.Elapsed,
			CreatedAt: sc.CreatedAt,
		}
	}
	return entries, nil
}

// limit applies the default and clamps into [1, MaxLimit].
func (s *LeaderboardService) limit(v *int) int {
	if v == nil {
		return s.opts.DefaultLimit
	}
	return max(1, min(*v, s.opts.MaxLimit))
}

func wholeNumber(field string, v float64) (int64, error) {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return 0, invalid(field, "must be a finite number")
	case v < 0:
		return 0, invalid(field, "must be >= 0")
	case v != math.Trunc(v):
		return 0, invalid(field, "must be a whole number")
	case v > math.MaxInt32:
		return 0, invalid(field, "must be at most %d", math.MaxInt32)
	}
	return int64(v), nil
}
