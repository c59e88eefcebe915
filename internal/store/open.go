package store

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"
)

// RetryConfig controls how OpenSQLite retries the initial connection.
type RetryConfig struct {
	Attempts uint64
	Base     time.Duration
}

// OpenSQLite opens the database, pings it and applies migrations, retrying
// the open and ping with exponential backoff. It is meant for process
// startup only; individual operations are never retried.
func OpenSQLite(ctx context.Context, path string, cfg RetryConfig) (*SQLiteDB, error) {
	if cfg.Base <= 0 {
		cfg.Base = 100 * time.Millisecond
	}
	backoff := retry.WithMaxRetries(cfg.Attempts, retry.NewExponential(cfg.Base))

	var db *SQLiteDB
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		candidate, err := NewSQLiteDB(path)
		if err != nil {
			return retry.RetryableError(err)
		}
		if err := candidate.Ping(ctx); err != nil {
			candidate.Close()
			return retry.RetryableError(err)
		}
		db = candidate
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
