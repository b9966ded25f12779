// Package metrics observes conserved quantities over a simulation run.
// Masses carry a factor of G, so all energies and momenta here are G-scaled;
// the drift metrics report relative or differential values where the scale
// cancels.
package metrics

import (
	"github.com/san-kum/gravsim/internal/vec"
	"github.com/san-kum/gravsim/internal/world"
)

// Metric accumulates a scalar over world snapshots.
type Metric interface {
	Name() string
	Observe(w *world.World)
	Value() float64
	Reset()
}

// Energy returns the G-scaled total mechanical energy: kinetic plus pairwise
// gravitational potential.
func Energy(w *world.World) float64 {
	bodies := w.Bodies()
	e := 0.0
	for i := range bodies {
		e += 0.5 * bodies[i].GM * bodies[i].Vel.LengthSquared()
		for j := i + 1; j < len(bodies); j++ {
			r := bodies[j].Pos.Sub(bodies[i].Pos).Length()
			e -= bodies[i].GM * bodies[j].GM / r
		}
	}
	return e
}

// Momentum returns the G-scaled total linear momentum.
func Momentum(w *world.World) vec.Vec3 {
	p := vec.Zero
	for _, b := range w.Bodies() {
		p = p.Add(b.Vel.Scale(b.GM))
	}
	return p
}

// AngularMomentum returns the G-scaled total angular momentum about the
// origin.
func AngularMomentum(w *world.World) vec.Vec3 {
	l := vec.Zero
	for _, b := range w.Bodies() {
		l = l.Add(b.Pos.Cross(b.Vel).Scale(b.GM))
	}
	return l
}
