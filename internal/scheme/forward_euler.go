package scheme

import (
	"github.com/san-kum/gravsim/internal/vec"
	"github.com/san-kum/gravsim/internal/world"
)

// ForwardEuler is plain explicit Euler: positions advance on the pre-tick
// velocity and the velocity kick is staged, then committed afterward. Least
// stable of the three schemes; kept for comparison.
type ForwardEuler struct {
	acc []vec.Vec3
}

func NewForwardEuler() *ForwardEuler {
	return &ForwardEuler{}
}

func (s *ForwardEuler) Name() string { return "forward-euler" }

func (s *ForwardEuler) Tick(w *world.World, dt float64) {
	bodies := w.Bodies()

	// Stage every new velocity from the pre-tick position snapshot.
	// Committing mid-loop would bias later bodies' force sums toward the
	// post-update state.
	s.acc = w.Accels(s.acc)
	for i := range bodies {
		bodies[i].NextVel = bodies[i].Vel.Add(s.acc[i].Scale(dt))
	}

	// Drift on the old velocity, then commit the staged kick.
	for i := range bodies {
		bodies[i].Pos = bodies[i].Pos.Add(bodies[i].Vel.Scale(dt))
		bodies[i].Vel = bodies[i].NextVel
	}

	w.AdvanceTime(dt)
}
