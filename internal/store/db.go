package store

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	// DefaultRankLimit is used when a rank query does not set a limit.
	DefaultRankLimit = 20
	// MaxRankLimit caps how many rows a rank query may return.
	MaxRankLimit = 100
	// MaxFieldLength bounds seed and player name, matching VARCHAR(191).
	MaxFieldLength = 191
)

var (
	// ErrInvalidScore is returned before any write when a score fails validation.
	ErrInvalidScore = errors.New("invalid score")
	// ErrStorage wraps every failure of the underlying database.
	ErrStorage = errors.New("storage failure")
)

// DB is the score repository.
type DB interface {
	Close() error
	Ping(ctx context.Context) error
	Migrate(ctx context.Context) error
	InsertScore(ctx context.Context, score *Score) (int64, error)
	RankScores(ctx context.Context, query RankQuery) ([]Score, error)
	CountScores(ctx context.Context, seed string) (int64, error)
}

// RankQuery selects ranked scores. An empty Seed means every seed.
type RankQuery struct {
	Seed  string `json:"seed,omitempty"`
	Limit int    `json:"limit"`
}

// Normalize applies the default limit and clamps it to MaxRankLimit.
func (q RankQuery) Normalize() RankQuery {
	if q.Limit <= 0 {
		q.Limit = DefaultRankLimit
	}
	if q.Limit > MaxRankLimit {
		q.Limit = MaxRankLimit
	}
	return q
}

// Score is one completed maze run. Rows are append-only.
type Score struct {
	ID         int64     `json:"id" db:"id"`
	Seed       string    `json:"seed" db:"seed"`
	Steps      int64     `json:"steps" db:"steps"`
	Elapsed    int64     `json:"elapsed" db:"elapsed"` // seconds
	PlayerName *string   `json:"player_name" db:"player_name"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// Validate checks the fields a caller controls.
func (s *Score) Validate() error {
	switch {
	case s.Steps < 0:
		return fmt.Errorf("%w: steps must be >= 0", ErrInvalidScore)
	case s.Elapsed < 0:
		return fmt.Errorf("%w: elapsed must be >= 0", ErrInvalidScore)
	case len(s.Seed) > MaxFieldLength:
		return fmt.Errorf("%w: seed longer than %d bytes", ErrInvalidScore, MaxFieldLength)
	case s.PlayerName != nil && len(*s.PlayerName) > MaxFieldLength:
		return fmt.Errorf("%w: player name longer than %d bytes", ErrInvalidScore, MaxFieldLength)
	}
	return nil
}
