package scheme

import "github.com/san-kum/gravsim/internal/world"

// Leapfrog is the staggered velocity-Verlet scheme. Velocities live half a
// step ahead of positions:
//
//	x[n+1]    = x[n]     + dt * v[n+1/2]
//	v[n+3/2]  = v[n+1/2] + dt * a(x[n+1])
//
// Prime applies the initial half-kick that offsets the velocities; it must
// run exactly once before the first Tick or the position/velocity phase
// desynchronizes.
type Leapfrog struct{}

func NewLeapfrog() *Leapfrog {
	return &Leapfrog{}
}

func (l *Leapfrog) Name() string { return "leapfrog" }

// Prime advances every velocity by a half-step using forces from the
// initial positions.
func (l *Leapfrog) Prime(w *world.World, dt float64) {
	bodies := w.Bodies()
	for i := range bodies {
		a := w.AccelOn(i)
		bodies[i].Vel = bodies[i].Vel.Add(a.Scale(dt / 2))
	}
}

func (l *Leapfrog) Tick(w *world.World, dt float64) {
	bodies := w.Bodies()

	for i := range bodies {
		bodies[i].Pos = bodies[i].Pos.Add(bodies[i].Vel.Scale(dt))
	}
	w.AdvanceTime(dt)

	// Full velocity kick from the new positions.
	for i := range bodies {
		a := w.AccelOn(i)
		bodies[i].Vel = bodies[i].Vel.Add(a.Scale(dt))
	}
}
