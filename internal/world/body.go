package world

import (
	"fmt"

	"github.com/san-kum/gravsim/internal/vec"
)

// Body is a point mass. GM stores the mass pre-multiplied by the
// gravitational constant.
//
// NextVel is a staging buffer used only by the forward Euler scheme: it lets
// a tick compute every body's post-step velocity from one consistent
// pre-step snapshot before any velocity is committed. Forward Euler keeps it
// equal to Vel between ticks; the other schemes never touch it.
type Body struct {
	Pos     vec.Vec3
	Vel     vec.Vec3
	GM      float64
	NextVel vec.Vec3
}

// NewBody returns a body with the staging buffer initialized to vel.
func NewBody(pos, vel vec.Vec3, gm float64) Body {
	return Body{Pos: pos, Vel: vel, GM: gm, NextVel: vel}
}

// AccelFrom returns the gravitational acceleration b feels from the other
// body: (Gm_other / |r|^3) * r with r pointing from b to other. Zero
// separation divides by zero.
func (b Body) AccelFrom(other Body) vec.Vec3 {
	r := other.Pos.Sub(b.Pos)
	d := r.Length()
	return r.Scale(other.GM / (d * d * d))
}

// Speed returns |Vel|.
func (b Body) Speed() float64 {
	return b.Vel.Length()
}

// String renders the body in the exponential diagnostic form.
func (b Body) String() string {
	return fmt.Sprintf("r = [%s], v = [%s], Gm = %e", b.Pos.Sci(), b.Vel.Sci(), b.GM)
}
