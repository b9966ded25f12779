package metrics

import (
	"math"

	"github.com/san-kum/gravsim/internal/vec"
	"github.com/san-kum/gravsim/internal/world"
)

// EnergyDrift tracks the maximum relative deviation of total energy from
// its first observed value.
type EnergyDrift struct {
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{}
}

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(w *world.World) {
	energy := Energy(w)
	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}

// MomentumDrift tracks the maximum distance of total linear momentum from
// its first observed value.
type MomentumDrift struct {
	initial  vec.Vec3
	maxDrift float64
	samples  int
}

func NewMomentumDrift() *MomentumDrift {
	return &MomentumDrift{}
}

func (m *MomentumDrift) Name() string { return "momentum_drift" }

func (m *MomentumDrift) Observe(w *world.World) {
	p := Momentum(w)
	if m.samples == 0 {
		m.initial = p
	}
	m.samples++
	m.maxDrift = math.Max(m.maxDrift, p.Sub(m.initial).Length())
}

func (m *MomentumDrift) Value() float64 { return m.maxDrift }

func (m *MomentumDrift) Reset() {
	m.initial = vec.Zero
	m.maxDrift = 0
	m.samples = 0
}

// AngularMomentumDrift tracks the maximum distance of total angular momentum
// from its first observed value.
type AngularMomentumDrift struct {
	initial  vec.Vec3
	maxDrift float64
	samples  int
}

func NewAngularMomentumDrift() *AngularMomentumDrift {
	return &AngularMomentumDrift{}
}

func (m *AngularMomentumDrift) Name() string { return "angular_momentum_drift" }

func (m *AngularMomentumDrift) Observe(w *world.World) {
	l := AngularMomentum(w)
	if m.samples == 0 {
		m.initial = l
	}
	m.samples++
	m.maxDrift = math.Max(m.maxDrift, l.Sub(m.initial).Length())
}

func (m *AngularMomentumDrift) Value() float64 { return m.maxDrift }

func (m *AngularMomentumDrift) Reset() {
	m.initial = vec.Zero
	m.maxDrift = 0
	m.samples = 0
}

// MinSeparation tracks the smallest pairwise distance seen during a run, a
// cheap close-encounter diagnostic.
type MinSeparation struct {
	min     float64
	samples int
}

func NewMinSeparation() *MinSeparation {
	return &MinSeparation{min: math.Inf(1)}
}

func (m *MinSeparation) Name() string { return "min_separation" }

func (m *MinSeparation) Observe(w *world.World) {
	bodies := w.Bodies()
	for i := range bodies {
		for j := i + 1; j < len(bodies); j++ {
			d := bodies[j].Pos.Sub(bodies[i].Pos).Length()
			if d < m.min {
				m.min = d
			}
		}
	}
	m.samples++
}

func (m *MinSeparation) Value() float64 {
	if math.IsInf(m.min, 1) {
		return 0
	}
	return m.min
}

func (m *MinSeparation) Reset() {
	m.min = math.Inf(1)
	m.samples = 0
}

// Defaults returns the standard metric set recorded with every run.
func Defaults() []Metric {
	return []Metric{
		NewEnergyDrift(),
		NewMomentumDrift(),
		NewAngularMomentumDrift(),
		NewMinSeparation(),
	}
}
