package maze

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestGenerateGolden(t *testing.T) {
	tests := []struct {
		width, height int
		seed          string
		want          []string
	}{
		{
			width: 7, height: 7, seed: "abc",
			want: []string{
				"#######",
				"#S....#",
				"#####.#",
				"#.#...#",
				"#.#.###",
				"#....G#",
				"#######",
			},
		},
		{
			width: 9, height: 5, seed: "",
			want: []string{
				"#########",
				"#S..#...#",
				"###.#.#.#",
				"#.....#G#",
				"#########",
			},
		},
		{
			width: 11, height: 7, seed: "maze-42",
			want: []string{
				"###########",
				"#S..#.....#",
				"###.#####.#",
				"#...#.....#",
				"#.###.###.#",
				"#.....#..G#",
				"###########",
			},
		},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%dx%d/%q", tt.width, tt.height, tt.seed), func(t *testing.T) {
			m, err := Generate(tt.width, tt.height, tt.seed)
			if err != nil {
				t.Fatalf("Generate() error: %v", err)
			}
			want := strings.Join(tt.want, "\n") + "\n"
			if got := m.String(); got != want {
				t.Errorf("maze mismatch\ngot:\n%s\nwant:\n%s", got, want)
			}
		})
	}
}

func TestGenerateDeterministic(t *testing.T) {
	for _, seed := range []string{"", "x", "abc", "long seed with spaces", "ünïcödé"} {
		a, err := Generate(41, 23, seed)
		if err != nil {
			t.Fatalf("Generate(%q) error: %v", seed, err)
		}
		b, err := Generate(41, 23, seed)
		if err != nil {
			t.Fatalf("Generate(%q) error: %v", seed, err)
		}
		if a.Start != b.Start || a.Goal != b.Goal {
			t.Errorf("seed %q: endpoints differ: %v/%v vs %v/%v", seed, a.Start, a.Goal, b.Start, b.Goal)
		}
		for y := range a.Grid {
			for x := range a.Grid[y] {
				if a.Grid[y][x] != b.Grid[y][x] {
					t.Fatalf("seed %q: tile mismatch at (%d,%d)", seed, x, y)
				}
			}
		}
	}
}

func TestGenerateDifferentSeeds(t *testing.T) {
	a, _ := Generate(31, 31, "alpha")
	b, _ := Generate(31, 31, "omega")
	if a.String() == b.String() {
		t.Error("expected different seeds to produce different mazes")
	}
}

func TestOddNormalization(t *testing.T) {
	m, err := Generate(20, 20, "x")
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if m.Width != 21 || m.Height != 21 {
		t.Errorf("got %dx%d, want 21x21", m.Width, m.Height)
	}
	if len(m.Grid) != 21 || len(m.Grid[0]) != 21 {
		t.Errorf("grid is %dx%d, want 21x21", len(m.Grid[0]), len(m.Grid))
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{in: -3, want: 5},
		{in: 0, want: 5},
		{in: 5, want: 5},
		{in: 6, want: 7},
		{in: 20, want: 21},
		{in: 21, want: 21},
		{in: 198, want: 199},
		{in: 199, want: 199},
		{in: 1000, want: 199},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in, DefaultBounds); got != tt.want {
			t.Errorf("Normalize(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestGenerateClampsToMaximum(t *testing.T) {
	m, err := Generate(1000, 1000, "x")
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if m.Width != 199 || m.Height != 199 {
		t.Errorf("got %dx%d, want 199x199", m.Width, m.Height)
	}
	assertPerfect(t, m)
}

func TestGenerateRejectsInvalidBounds(t *testing.T) {
	tests := []struct {
		name   string
		bounds Bounds
	}{
		{name: "minimum too small", bounds: Bounds{Min: 3, Max: 199}},
		{name: "maximum below minimum", bounds: Bounds{Min: 9, Max: 7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := GenerateWithBounds(21, 21, "x", tt.bounds)
			if !errors.Is(err, ErrInvalidDimensions) {
				t.Fatalf("expected ErrInvalidDimensions, got %v", err)
			}
			if m != nil {
				t.Error("expected no maze on error")
			}
		})
	}
}

func TestMazeProperties(t *testing.T) {
	sizes := [][2]int{{5, 5}, {7, 5}, {5, 9}, {21, 21}, {33, 17}, {64, 48}}
	seeds := []string{"", "a", "b", "seed-1", "seed-2", "🙂"}

	for _, size := range sizes {
		for _, seed := range seeds {
			name := fmt.Sprintf("%dx%d/%q", size[0], size[1], seed)
			t.Run(name, func(t *testing.T) {
				m, err := Generate(size[0], size[1], seed)
				if err != nil {
					t.Fatalf("Generate() error: %v", err)
				}
				assertPerfect(t, m)
			})
		}
	}
}

// assertPerfect checks border closure, start/goal placement, connectivity and
// the absence of cycles.
func assertPerfect(t *testing.T, m *Maze) {
	t.Helper()

	if m.Width%2 == 0 || m.Height%2 == 0 {
		t.Errorf("dimensions %dx%d are not odd", m.Width, m.Height)
	}

	for x := 0; x < m.Width; x++ {
		if m.Grid[0][x] != TileWall || m.Grid[m.Height-1][x] != TileWall {
			t.Fatalf("border open at column %d", x)
		}
	}
	for y := 0; y < m.Height; y++ {
		if m.Grid[y][0] != TileWall || m.Grid[y][m.Width-1] != TileWall {
			t.Fatalf("border open at row %d", y)
		}
	}

	if m.Start != (Point{X: 1, Y: 1}) {
		t.Errorf("start = %v, want (1,1)", m.Start)
	}
	if !m.IsOpen(m.Goal) {
		t.Errorf("goal %v is not open", m.Goal)
	}

	open := m.OpenCells()
	edges := 0
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.Grid[y][x] != TileOpen {
				continue
			}
			if x+1 < m.Width && m.Grid[y][x+1] == TileOpen {
				edges++
			}
			if y+1 < m.Height && m.Grid[y+1][x] == TileOpen {
				edges++
			}
		}
	}
	if edges != open-1 {
		t.Errorf("edges = %d, open cells = %d; want edges == open-1", edges, open)
	}

	if got := len(m.Reachable(m.Start)); got != open {
		t.Errorf("reachable from start = %d, open cells = %d", got, open)
	}

	// every lattice cell is carved
	for y := 1; y < m.Height-1; y += 2 {
		for x := 1; x < m.Width-1; x += 2 {
			if m.Grid[y][x] != TileOpen {
				t.Fatalf("lattice cell (%d,%d) not carved", x, y)
			}
		}
	}

	if path := m.Solve(); path == nil {
		t.Error("goal not reachable from start")
	}
}

func TestGoalIsBottomRightMostOpenCell(t *testing.T) {
	m, err := Generate(15, 11, "goal")
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	// Every lattice cell is open, so the scan stops at the corner cell.
	if want := (Point{X: 13, Y: 9}); m.Goal != want {
		t.Errorf("goal = %v, want %v", m.Goal, want)
	}
}

func TestFindGoalFallback(t *testing.T) {
	grid := newGrid(7, 7)
	if got := findGoal(grid, 7, 7); got != (Point{X: 5, Y: 5}) {
		t.Errorf("fallback goal = %v, want (5,5)", got)
	}
}

func TestSolve(t *testing.T) {
	m, err := Generate(7, 7, "abc")
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	path := m.Solve()
	want := []Point{
		{1, 1}, {2, 1}, {3, 1}, {4, 1}, {5, 1},
		{5, 2}, {5, 3}, {4, 3}, {3, 3}, {3, 4},
		{3, 5}, {4, 5}, {5, 5},
	}
	if len(path) != len(want) {
		t.Fatalf("path length = %d, want %d: %v", len(path), len(want), path)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Errorf("path[%d] = %v, want %v", i, path[i], want[i])
		}
	}
}

func TestShortestPathRejectsWalls(t *testing.T) {
	m, _ := Generate(7, 7, "abc")
	if p := m.ShortestPath(Point{X: 0, Y: 0}, m.Goal); p != nil {
		t.Errorf("expected nil path from a wall, got %v", p)
	}
	if p := m.ShortestPath(m.Start, Point{X: 100, Y: 100}); p != nil {
		t.Errorf("expected nil path to an off-grid point, got %v", p)
	}
}

func TestRenderPath(t *testing.T) {
	m, _ := Generate(7, 7, "abc")
	out := m.RenderPath(m.Solve())
	if !strings.Contains(out, "#Soooo#") {
		t.Errorf("expected the first row of the solution to be drawn, got:\n%s", out)
	}
}
