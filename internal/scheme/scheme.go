// Package scheme implements the fixed-step time integration schemes that
// advance a world. All three share the world's pairwise force evaluation and
// differ only in operation ordering, which is what decides how well energy
// and momentum survive long runs.
package scheme

import (
	"fmt"
	"sort"

	"github.com/san-kum/gravsim/internal/world"
)

// Scheme advances a world by exactly one fixed-size step. Tick must advance
// the world clock by exactly dt.
type Scheme interface {
	Name() string
	Tick(w *world.World, dt float64)
}

// Primer is implemented by schemes that need a one-time initialization pass
// before the first tick. Drivers must call Prime exactly once; skipping it
// silently degrades accuracy.
type Primer interface {
	Prime(w *world.World, dt float64)
}

var factories = map[string]func() Scheme{
	"forward-euler":    func() Scheme { return NewForwardEuler() },
	"symplectic-euler": func() Scheme { return NewSymplecticEuler() },
	"leapfrog":         func() Scheme { return NewLeapfrog() },
}

// New returns a fresh scheme by name.
func New(name string) (Scheme, error) {
	fn, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown scheme: %s (available: %v)", name, Names())
	}
	return fn(), nil
}

// Names lists the registered scheme names, sorted.
func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
