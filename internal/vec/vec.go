package vec

import (
	"fmt"
	"math"
)

// Vec3 is a 3-component double-precision vector. It is a plain value type:
// operations return new values and never mutate the receiver. Points use the
// same representation. All operations follow IEEE-754 semantics; NaN and Inf
// propagate rather than being trapped.
type Vec3 [3]float64

// Zero is the zero vector.
var Zero = Vec3{}

func New(x, y, z float64) Vec3 {
	return Vec3{x, y, z}
}

func (v Vec3) X() float64 { return v[0] }
func (v Vec3) Y() float64 { return v[1] }
func (v Vec3) Z() float64 { return v[2] }

func (v Vec3) Neg() Vec3 {
	return Vec3{-v[0], -v[1], -v[2]}
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v[0] + o[0], v[1] + o[1], v[2] + o[2]}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v[0] - o[0], v[1] - o[1], v[2] - o[2]}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

func (v Vec3) Div(s float64) Vec3 {
	return Vec3{v[0] / s, v[1] / s, v[2] / s}
}

// Hadamard returns the component-wise product.
func (v Vec3) Hadamard(o Vec3) Vec3 {
	return Vec3{v[0] * o[0], v[1] * o[1], v[2] * o[2]}
}

func (v Vec3) Dot(o Vec3) float64 {
	return v[0]*o[0] + v[1]*o[1] + v[2]*o[2]
}

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v[1]*o[2] - v[2]*o[1],
		v[2]*o[0] - v[0]*o[2],
		v[0]*o[1] - v[1]*o[0],
	}
}

func (v Vec3) LengthSquared() float64 {
	return v.Dot(v)
}

func (v Vec3) Length() float64 {
	return math.Sqrt(v.LengthSquared())
}

// Unit returns v scaled to unit length. The zero vector divides by zero and
// yields NaN components; callers accept that.
func (v Vec3) Unit() Vec3 {
	return v.Div(v.Length())
}

// Sum adds up a slice of vectors, left to right.
func Sum(vs []Vec3) Vec3 {
	total := Zero
	for _, v := range vs {
		total = total.Add(v)
	}
	return total
}

// String renders the three components space-separated.
func (v Vec3) String() string {
	return fmt.Sprintf("%v %v %v", v[0], v[1], v[2])
}

// Sci renders the three components space-separated in scientific notation,
// the form used for body diagnostics.
func (v Vec3) Sci() string {
	return fmt.Sprintf("%e %e %e", v[0], v[1], v[2])
}
