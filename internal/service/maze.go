package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/singleflight"

	"github.com/MJE43/maze-arcade-go/internal/maze"
	"github.com/MJE43/maze-arcade-go/internal/store"
	"github.com/MJE43/maze-arcade-go/internal/telemetry"
)

// MazeOptions configures MazeService.
type MazeOptions struct {
	Bounds      maze.Bounds
	DefaultSize int
}

// DefaultMazeOptions matches the public maze endpoint.
func DefaultMazeOptions() MazeOptions {
	return MazeOptions{Bounds: maze.DefaultBounds, DefaultSize: maze.DefaultDimension}
}

// MazeRequest carries the caller's parameters. Nil dimensions take the
// configured default. An empty seed is a valid, reproducible seed.
type MazeRequest struct {
	Width  *int
	Height *int
	Seed   string
}

// MazeService validates maze parameters and runs the generator.
// It keeps no per-request state.
type MazeService struct {
	opts  MazeOptions
	group singleflight.Group
}

// NewMazeService validates opts and returns a service.
func NewMazeService(opts MazeOptions) (*MazeService, error) {
	if err := opts.Bounds.Validate(); err != nil {
		return nil, err
	}
	if opts.DefaultSize == 0 {
		opts.DefaultSize = maze.DefaultDimension
	}
	return &MazeService{opts: opts}, nil
}

// Bounds returns the configured dimension range.
func (s *MazeService) Bounds() maze.Bounds {
	return s.opts.Bounds
}

// GetMaze normalizes the request and generates the maze. Concurrent calls for
// the same normalized triple share one generation; the result is read-only.
func (s *MazeService) GetMaze(ctx context.Context, req MazeRequest) (*maze.Maze, error) {
	if len(req.Seed) > store.MaxFieldLength {
		return nil, invalid("seed", "must be at most %d bytes", store.MaxFieldLength)
	}

	width := maze.Normalize(s.dimension(req.Width), s.opts.Bounds)
	height := maze.Normalize(s.dimension(req.Height), s.opts.Bounds)

	_, span := telemetry.Tracer("maze").Start(ctx, "maze.generate")
	defer span.End()
	span.SetAttributes(
		attribute.Int("maze.width", width),
		attribute.Int("maze.height", height),
	)

	key := fmt.Sprintf("%d:%d:%s", width, height, req.Seed)
	v, err, shared := s.group.Do(key, func() (any, error) {
		return maze.GenerateWithBounds(width, height, req.Seed, s.opts.Bounds)
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	m := v.(*maze.Maze)
	span.SetAttributes(
		attribute.Int("maze.open_cells", m.OpenCells()),
		attribute.Bool("maze.shared", shared),
	)
	return m, nil
}

// NewSeed returns a fresh random seed. Callers that want a new maze on every
// visit ask for one explicitly; GetMaze never invents a seed.
func (s *MazeService) NewSeed() string {
	return uuid.NewString()
}

func (s *MazeService) dimension(v *int) int {
	if v == nil {
		return s.opts.DefaultSize
	}
	return *v
}
