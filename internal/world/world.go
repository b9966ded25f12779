package world

import "github.com/san-kum/gravsim/internal/vec"

// World is an ordered collection of bodies plus elapsed simulated time.
// Body order is stable; rest-frame selection refers to it by index.
type World struct {
	bodies []Body
	time   float64
}

// New builds a world at time zero. The bodies are copied; the world owns its
// storage exclusively.
func New(bodies []Body) *World {
	owned := make([]Body, len(bodies))
	copy(owned, bodies)
	return &World{bodies: owned}
}

func (w *World) Len() int {
	return len(w.bodies)
}

// Time returns elapsed simulated time.
func (w *World) Time() float64 {
	return w.time
}

// AdvanceTime moves the clock forward by dt. Schemes call this exactly once
// per tick.
func (w *World) AdvanceTime(dt float64) {
	w.time += dt
}

// Bodies returns the world's own body storage. Integration schemes advance
// the world by mutating the elements in place; all other callers treat the
// slice as read-only and must not grow it.
func (w *World) Bodies() []Body {
	return w.bodies
}

// At returns a pointer to body i.
func (w *World) At(i int) *Body {
	return &w.bodies[i]
}

// AccelOn sums the gravitational acceleration on body i from every other
// body at current positions. A world with zero or one body yields exactly
// zero; there is no self-force.
func (w *World) AccelOn(i int) vec.Vec3 {
	a := vec.Zero
	for j := range w.bodies {
		if j == i {
			continue
		}
		a = a.Add(w.bodies[i].AccelFrom(w.bodies[j]))
	}
	return a
}

// Accels evaluates AccelOn for every body into dst, reallocating only when
// dst is too small. All sums read the same position snapshot because
// positions are not written here.
func (w *World) Accels(dst []vec.Vec3) []vec.Vec3 {
	if cap(dst) < len(w.bodies) {
		dst = make([]vec.Vec3, len(w.bodies))
	}
	dst = dst[:len(w.bodies)]
	for i := range w.bodies {
		dst[i] = w.AccelOn(i)
	}
	return dst
}

// IntoRestFrame re-expresses every body relative to body i, leaving body i
// exactly at the origin with zero velocity. An out-of-range index is a
// no-op: the existing frame is kept.
func (w *World) IntoRestFrame(i int) {
	if i < 0 || i >= len(w.bodies) {
		return
	}
	refPos, refVel := w.bodies[i].Pos, w.bodies[i].Vel
	for k := range w.bodies {
		b := &w.bodies[k]
		b.Pos = b.Pos.Sub(refPos)
		b.Vel = b.Vel.Sub(refVel)
		b.NextVel = b.NextVel.Sub(refVel)
	}
}

// Clone deep-copies the world, including elapsed time.
func (w *World) Clone() *World {
	c := New(w.bodies)
	c.time = w.time
	return c
}
