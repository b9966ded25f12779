package config

import "sort"

// Presets are ready-made initial conditions in G-scaled units (Gm = 1 means
// the body's gravitational parameter is 1).
var Presets = map[string]*Config{
	"binary": {
		// Equal pair on a circular mutual orbit, period 2*pi/sqrt(2).
		Scheme: "leapfrog", Dt: 1e-3, Duration: 44.4288, RestFrame: KeepFrame, SampleEvery: 10,
		Bodies: []BodyConfig{
			{Pos: [3]float64{0.5, 0, 0}, Vel: [3]float64{0, 0.7071067811865476, 0}, GM: 1},
			{Pos: [3]float64{-0.5, 0, 0}, Vel: [3]float64{0, -0.7071067811865476, 0}, GM: 1},
		},
	},
	"sun-planet": {
		// Massless satellite on a circular unit orbit, period 2*pi.
		Scheme: "leapfrog", Dt: 1e-3, Duration: 62.83185307179586, RestFrame: KeepFrame, SampleEvery: 10,
		Bodies: []BodyConfig{
			{Pos: [3]float64{0, 0, 0}, Vel: [3]float64{0, 0, 0}, GM: 1},
			{Pos: [3]float64{1, 0, 0}, Vel: [3]float64{0, 1, 0}, GM: 0},
		},
	},
	"figure-eight": {
		// Chenciner-Montgomery three-body choreography, period ~6.3259.
		Scheme: "leapfrog", Dt: 1e-4, Duration: 6.3259, RestFrame: KeepFrame, SampleEvery: 100,
		Bodies: []BodyConfig{
			{Pos: [3]float64{0.97000436, -0.24308753, 0}, Vel: [3]float64{0.46620368, 0.43236573, 0}, GM: 1},
			{Pos: [3]float64{-0.97000436, 0.24308753, 0}, Vel: [3]float64{0.46620368, 0.43236573, 0}, GM: 1},
			{Pos: [3]float64{0, 0, 0}, Vel: [3]float64{-0.93240737, -0.86473146, 0}, GM: 1},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cp := *p
	cp.Bodies = append([]BodyConfig(nil), p.Bodies...)
	if cp.DataDir == "" {
		cp.DataDir = DefaultDataDir
	}
	return &cp
}

// ListPresets returns the preset names, sorted.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
