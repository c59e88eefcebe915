package maze

import (
	"fmt"
	"runtime"
	"sync"
	"testing"
)

// TestConcurrentReproducibility checks that generation is identical across
// goroutines and GOMAXPROCS settings.
func TestConcurrentReproducibility(t *testing.T) {
	const (
		width  = 61
		height = 41
		seed   = "reproducibility"
	)

	reference, err := Generate(width, height, seed)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	want := reference.String()

	t.Run("Multiple calls identical", func(t *testing.T) {
		for i := 0; i < 10; i++ {
			m, err := Generate(width, height, seed)
			if err != nil {
				t.Fatalf("iteration %d: %v", i, err)
			}
			if m.String() != want {
				t.Fatalf("iteration %d produced a different maze", i)
			}
		}
	})

	t.Run("Different GOMAXPROCS settings", func(t *testing.T) {
		original := runtime.GOMAXPROCS(0)
		defer runtime.GOMAXPROCS(original)

		for _, procs := range []int{1, 2, 4, runtime.NumCPU()} {
			if procs > runtime.NumCPU() {
				continue
			}
			t.Run(fmt.Sprintf("GOMAXPROCS=%d", procs), func(t *testing.T) {
				runtime.GOMAXPROCS(procs)
				m, err := Generate(width, height, seed)
				if err != nil {
					t.Fatalf("Generate() error: %v", err)
				}
				if m.String() != want {
					t.Error("maze differs under a different GOMAXPROCS")
				}
			})
		}
	})

	t.Run("Concurrent generation", func(t *testing.T) {
		const workers = 16
		results := make([]string, workers)
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				m, err := Generate(width, height, seed)
				if err != nil {
					t.Errorf("worker %d: %v", i, err)
					return
				}
				results[i] = m.String()
			}(i)
		}
		wg.Wait()

		for i, got := range results {
			if got != want {
				t.Errorf("worker %d produced a different maze", i)
			}
		}
	})
}

func BenchmarkGenerate(b *testing.B) {
	for _, size := range []int{21, 99, 199} {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := Generate(size, size, "bench"); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
