package scheme

import "github.com/san-kum/gravsim/internal/world"

// SymplecticEuler is the semi-implicit Euler scheme: velocities are kicked
// in place from accelerations at pre-tick positions, then positions drift on
// the already-updated velocities. Accelerations never read velocities, so
// the in-place kick needs no staging buffer. The ordering keeps long-run
// energy drift bounded where plain explicit Euler diverges.
type SymplecticEuler struct{}

func NewSymplecticEuler() *SymplecticEuler {
	return &SymplecticEuler{}
}

func (s *SymplecticEuler) Name() string { return "symplectic-euler" }

func (s *SymplecticEuler) Tick(w *world.World, dt float64) {
	bodies := w.Bodies()

	// Kick each body with its own freshly computed acceleration. Positions
	// are untouched until the drift pass, so every force sum still reads
	// the pre-tick snapshot.
	for i := range bodies {
		a := w.AccelOn(i)
		bodies[i].Vel = bodies[i].Vel.Add(a.Scale(dt))
	}

	for i := range bodies {
		bodies[i].Pos = bodies[i].Pos.Add(bodies[i].Vel.Scale(dt))
	}

	w.AdvanceTime(dt)
}
