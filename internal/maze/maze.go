package maze

import (
	"fmt"
	"strings"

	"github.com/MJE43/maze-arcade-go/internal/engine"
)

const (
	// MinDimension is the smallest width or height the carving lattice supports.
	MinDimension = 5
	// DefaultDimension is used when a caller does not ask for a size.
	DefaultDimension = 21
)

// Bounds is the accepted range for width and height before odd rounding.
type Bounds struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// DefaultBounds matches the public maze endpoint.
var DefaultBounds = Bounds{Min: 5, Max: 199}

// Validate checks that the bounds can produce at least one maze.
func (b Bounds) Validate() error {
	if b.Min < MinDimension {
		return fmt.Errorf("%w: minimum %d is below %d", ErrInvalidDimensions, b.Min, MinDimension)
	}
	if b.Max < b.Min {
		return fmt.Errorf("%w: maximum %d is below minimum %d", ErrInvalidDimensions, b.Max, b.Min)
	}
	return nil
}

// Clamp limits n to [Min, Max].
func (b Bounds) Clamp(n int) int {
	if n < b.Min {
		return b.Min
	}
	if n > b.Max {
		return b.Max
	}
	return n
}

// Normalize clamps n into b and rounds even values up to the next odd number.
func Normalize(n int, b Bounds) int {
	return b.Clamp(n) | 1
}

// Maze is a generated grid with its endpoints. A Maze is never modified after
// Generate returns it, so it may be shared between goroutines.
type Maze struct {
	Grid   [][]Tile `json:"grid"`
	Start  Point    `json:"start"`
	Goal   Point    `json:"goal"`
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Seed   string   `json:"seed"`
}

// Generate builds a maze using DefaultBounds.
func Generate(width, height int, seed string) (*Maze, error) {
	return GenerateWithBounds(width, height, seed, DefaultBounds)
}

// GenerateWithBounds clamps width and height into b, forces them odd and
// carves a perfect maze with a randomized depth-first backtracker seeded from
// seed. The same arguments always produce an identical maze.
func GenerateWithBounds(width, height int, seed string, b Bounds) (*Maze, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	w := Normalize(width, b)
	h := Normalize(height, b)
	if w < MinDimension || h < MinDimension {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, w, h)
	}

	grid := newGrid(w, h)
	carve(grid, w, h, engine.Derive(seed))

	return &Maze{
		Grid:   grid,
		Start:  Point{X: 1, Y: 1},
		Goal:   findGoal(grid, w, h),
		Width:  w,
		Height: h,
		Seed:   seed,
	}, nil
}

func newGrid(w, h int) [][]Tile {
	grid := make([][]Tile, h)
	for y := range grid {
		row := make([]Tile, w)
		for x := range row {
			row[x] = TileWall
		}
		grid[y] = row
	}
	return grid
}

// carve runs the backtracker over the odd-offset lattice starting at (1,1).
// Each step collects the unvisited lattice neighbours and draws one uniformly.
func carve(grid [][]Tile, w, h int, rng *engine.Rand) {
	grid[1][1] = TileOpen
	stack := []Point{{X: 1, Y: 1}}
	candidates := make([]direction, 0, len(directions))

	for len(stack) > 0 {
		cur := stack[len(stack)-1]

		candidates = candidates[:0]
		for _, d := range directions {
			nx, ny := cur.X+2*d.dx, cur.Y+2*d.dy
			if nx > 0 && ny > 0 && nx < w-1 && ny < h-1 && grid[ny][nx] == TileWall {
				candidates = append(candidates, d)
			}
		}

		if len(candidates) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		d := candidates[rng.Intn(len(candidates))]
		next := Point{X: cur.X + 2*d.dx, Y: cur.Y + 2*d.dy}
		grid[cur.Y+d.dy][cur.X+d.dx] = TileOpen
		grid[next.Y][next.X] = TileOpen
		stack = append(stack, next)
	}
}

// findGoal scans from the bottom-right corner toward the top-left and returns
// the first open cell.
func findGoal(grid [][]Tile, w, h int) Point {
	for y := h - 2; y >= 1; y-- {
		for x := w - 2; x >= 1; x-- {
			if grid[y][x] == TileOpen {
				return Point{X: x, Y: y}
			}
		}
	}
	return Point{X: w - 2, Y: h - 2}
}

// InBounds reports whether p lies on the grid.
func (m *Maze) InBounds(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < m.Width && p.Y < m.Height
}

// At returns the tile at p. Points off the grid are walls.
func (m *Maze) At(p Point) Tile {
	if !m.InBounds(p) {
		return TileWall
	}
	return m.Grid[p.Y][p.X]
}

// IsOpen reports whether p is a walkable cell.
func (m *Maze) IsOpen(p Point) bool {
	return m.At(p).IsPassable()
}

// Neighbors returns the open cells orthogonally adjacent to p.
func (m *Maze) Neighbors(p Point) []Point {
	out := make([]Point, 0, len(directions))
	for _, d := range directions {
		n := Point{X: p.X + d.dx, Y: p.Y + d.dy}
		if m.IsOpen(n) {
			out = append(out, n)
		}
	}
	return out
}

// OpenCells counts the carved cells.
func (m *Maze) OpenCells() int {
	n := 0
	for _, row := range m.Grid {
		for _, t := range row {
			if t == TileOpen {
				n++
			}
		}
	}
	return n
}

// String renders the maze with S and G marking the endpoints.
func (m *Maze) String() string {
	return m.render(nil)
}

// RenderPath renders the maze with path cells drawn as 'o'.
func (m *Maze) RenderPath(path []Point) string {
	onPath := make(map[Point]bool, len(path))
	for _, p := range path {
		onPath[p] = true
	}
	return m.render(onPath)
}

func (m *Maze) render(onPath map[Point]bool) string {
	var sb strings.Builder
	sb.Grow((m.Width + 1) * m.Height)
	for y, row := range m.Grid {
		for x, t := range row {
			p := Point{X: x, Y: y}
			switch {
			case p == m.Start:
				sb.WriteByte('S')
			case p == m.Goal:
				sb.WriteByte('G')
			case onPath[p]:
				sb.WriteByte('o')
			default:
				sb.WriteRune(t.Rune())
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
