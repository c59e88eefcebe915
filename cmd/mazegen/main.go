// Command mazegen prints a seeded maze as ASCII, optionally with its solution.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/MJE43/maze-arcade-go/internal/engine"
	"github.com/MJE43/maze-arcade-go/internal/maze"
)

func main() {
	width := flag.Int("width", maze.DefaultDimension, "maze width, clamped and rounded to odd")
	height := flag.Int("height", maze.DefaultDimension, "maze height, clamped and rounded to odd")
	seed := flag.String("seed", "", "generation seed")
	solve := flag.Bool("solve", false, "draw the shortest path from start to goal")
	floats := flag.Int("floats", 0, "also print the first N PRNG values for the seed")
	flag.Parse()

	m, err := maze.Generate(*width, *height, *seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mazegen: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Seed:  %q\n", m.Seed)
	fmt.Printf("Size:  %dx%d\n", m.Width, m.Height)
	fmt.Printf("Start: (%d,%d)  Goal: (%d,%d)\n", m.Start.X, m.Start.Y, m.Goal.X, m.Goal.Y)
	fmt.Printf("Open cells: %d\n\n", m.OpenCells())

	if *solve {
		path := m.Solve()
		fmt.Print(m.RenderPath(path))
		fmt.Printf("\nShortest path: %d steps\n", len(path)-1)
	} else {
		fmt.Print(m.String())
	}

	if *floats > 0 {
		fmt.Println("\nPRNG stream:")
		for i, f := range engine.Floats(*seed, *floats) {
			fmt.Printf("  %3d  %.10f\n", i, f)
		}
	}
}
