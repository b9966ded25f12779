package sim

import (
	"context"
	"sync"

	"github.com/san-kum/gravsim/internal/metrics"
	"github.com/san-kum/gravsim/internal/scheme"
	"github.com/san-kum/gravsim/internal/world"
)

// Comparison is one scheme's outcome when racing schemes from the same
// initial conditions.
type Comparison struct {
	Scheme string
	Final  *world.World
	Result *Result
	Err    error
}

// Compare runs every named scheme over its own deep copy of the initial
// world, one goroutine per scheme. Each goroutine owns its world and runner
// exclusively, so no locking is needed beyond the join.
func Compare(ctx context.Context, initial *world.World, names []string, cfg Config) []Comparison {
	comps := make([]Comparison, len(names))

	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func(idx int, name string) {
			defer wg.Done()

			comps[idx].Scheme = name
			s, err := scheme.New(name)
			if err != nil {
				comps[idx].Err = err
				return
			}

			w := initial.Clone()
			runner := New(s)
			for _, m := range metrics.Defaults() {
				runner.AddMetric(m)
			}

			comps[idx].Result, comps[idx].Err = runner.Run(ctx, w, cfg)
			comps[idx].Final = w
		}(i, name)
	}
	wg.Wait()

	return comps
}
