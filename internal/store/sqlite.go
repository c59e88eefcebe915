package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	_ "modernc.org/sqlite"

	"github.com/MJE43/maze-arcade-go/internal/telemetry"
)

// SQLiteDB implements the DB interface using SQLite
type SQLiteDB struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteDB opens a SQLite database at path. ":memory:" opens a private
// in-memory database limited to one connection.
func NewSQLiteDB(path string) (*SQLiteDB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)
	if path == ":memory:" {
		dsn = ":memory:"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if path == ":memory:" {
		// every new connection would otherwise see an empty database
		db.SetMaxOpenConns(1)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	return &SQLiteDB{db: db, now: time.Now}, nil
}

// Close closes the database connection
func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

// Ping verifies the database is reachable.
func (s *SQLiteDB) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: ping: %v", ErrStorage, err)
	}
	return nil
}

// Migrate runs the embedded schema migrations.
func (s *SQLiteDB) Migrate(ctx context.Context) error {
	_, err := migrate(ctx, s.db)
	return err
}

// InsertScore validates and appends a score, returning its assigned id.
// CreatedAt is set by the server.
func (s *SQLiteDB) InsertScore(ctx context.Context, score *Score) (int64, error) {
	ctx, span := telemetry.Tracer("store").Start(ctx, "store.insert_score")
	defer span.End()

	if err := score.Validate(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}

	createdAt := s.now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO scores (seed, steps, elapsed, player_name, created_at) VALUES (?, ?, ?, ?, ?)`,
		score.Seed, score.Steps, score.Elapsed, score.PlayerName, createdAt,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
		return 0, fmt.Errorf("%w: insert score: %v", ErrStorage, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: read inserted id: %v", ErrStorage, err)
	}

	score.ID = id
	score.CreatedAt = createdAt
	span.SetAttributes(attribute.Int64("score.id", id))
	return id, nil
}

// RankScores returns scores ordered by elapsed time, then steps, then id.
// An empty seed ranks across all seeds.
func (s *SQLiteDB) RankScores(ctx context.Context, query RankQuery) ([]Score, error) {
	query = query.Normalize()

	ctx, span := telemetry.Tracer("store").Start(ctx, "store.rank_scores")
	defer span.End()
	span.SetAttributes(
		attribute.Bool("rank.filtered", query.Seed != ""),
		attribute.Int("rank.limit", query.Limit),
	)

	whereClause := ""
	args := []any{}
	if query.Seed != "" {
		whereClause = "WHERE seed = ?"
		args = append(args, query.Seed)
	}

	mainQuery := `SELECT id, seed, steps, elapsed, player_name, created_at
		FROM scores ` + whereClause + `
		ORDER BY elapsed ASC, steps ASC, id ASC
		LIMIT ?`
	args = append(args, query.Limit)

	rows, err := s.db.QueryContext(ctx, mainQuery, args...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "query failed")
		return nil, fmt.Errorf("%w: query scores: %v", ErrStorage, err)
	}
	defer rows.Close()

	scores := make([]Score, 0, query.Limit)
	for rows.Next() {
		var sc Score
		var name sql.NullString

		if err := rows.Scan(&sc.ID, &sc.Seed, &sc.Steps, &sc.Elapsed, &name, &sc.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scan score: %v", ErrStorage, err)
		}
		if name.Valid {
			n := name.String
			sc.PlayerName = &n
		}

		scores = append(scores, sc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate scores: %v", ErrStorage, err)
	}

	span.SetAttributes(attribute.Int("rank.rows", len(scores)))
	return scores, nil
}

// CountScores counts stored scores for seed, or all scores when seed is empty.
func (s *SQLiteDB) CountScores(ctx context.Context, seed string) (int64, error) {
	countQuery := "SELECT COUNT(*) FROM scores"
	args := []any{}
	if seed != "" {
		countQuery += " WHERE seed = ?"
		args = append(args, seed)
	}

	var total int64
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: count scores: %v", ErrStorage, err)
	}
	return total, nil
}
