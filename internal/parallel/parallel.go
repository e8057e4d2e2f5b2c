// Package parallel provides data-parallel loop helpers for element-wise
// container operations.
//
// Every helper produces exactly the result of the sequential loop: callers
// only hand it iterations that touch disjoint elements.
package parallel

import (
	"runtime"

	"github.com/sourcegraph/conc"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum iterations per goroutine to avoid overhead.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 64,
	}
}

// Sequential returns a config that always runs loops on the calling goroutine.
func Sequential() Config {
	return Config{}
}

// For executes f(i) for i in [0, n) with optional parallelism.
// Falls back to sequential execution if parallelism is disabled or n is too small.
func For(n int, f func(i int), cfg Config) {
	ForRange(0, n-1, f, cfg)
}

// ForRange executes f(i) for i in the inclusive range [lo, hi].
//
// A panic in f reaches the caller on both paths: worker panics are recovered,
// and once every chunk has finished the first one is raised again on the
// calling goroutine with its original value.
func ForRange(lo, hi int, f func(i int), cfg Config) {
	n := hi - lo + 1
	if n <= 0 {
		return
	}
	workers := cfg.NumWorkers
	if !cfg.Enabled || workers <= 1 || n < max(cfg.MinChunkSize, 2) {
		for i := lo; i <= hi; i++ {
			f(i)
		}
		return
	}

	var wg conc.WaitGroup
	chunkSize := max((n+workers-1)/workers, cfg.MinChunkSize, 1)

	for start := lo; start <= hi; start += chunkSize {
		end := min(start+chunkSize-1, hi)
		wg.Go(func() {
			for i := start; i <= end; i++ {
				f(i)
			}
		})
	}
	if r := wg.WaitAndRecover(); r != nil {
		panic(r.Value)
	}
}
