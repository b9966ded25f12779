package report

import (
	"strings"
	"testing"
	"time"

	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/vec"
	"github.com/san-kum/gravsim/internal/world"
)

func TestFinalState(t *testing.T) {
	w := world.New([]world.Body{
		world.NewBody(vec.New(1, 0, 0), vec.New(0, 0.5, 0), 2),
	})
	w.AdvanceTime(3)

	var buf strings.Builder
	FinalState(&buf, w)
	out := buf.String()

	if !strings.HasPrefix(out, "Simulation time: 3\n") {
		t.Errorf("missing time header:\n%s", out)
	}
	if !strings.Contains(out, "Gm = 2.000000e+00") {
		t.Errorf("missing exponential Gm field:\n%s", out)
	}
	if !strings.Contains(out, "speed = 0.5") {
		t.Errorf("missing speed:\n%s", out)
	}
}

func TestCompareTable(t *testing.T) {
	comps := []sim.Comparison{
		{
			Scheme: "leapfrog",
			Result: &sim.Result{
				StepsTaken: 1000,
				Metrics:    map[string]float64{"energy_drift": 1e-9, "momentum_drift": 0},
				Elapsed:    5 * time.Millisecond,
			},
		},
		{Scheme: "bogus", Err: sim.ErrDiverged},
	}

	var buf strings.Builder
	if err := CompareTable(&buf, comps); err != nil {
		t.Fatalf("CompareTable: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "SCHEME") || !strings.Contains(out, "ENERGY_DRIFT") {
		t.Errorf("missing header:\n%s", out)
	}
	if !strings.Contains(out, "leapfrog") || !strings.Contains(out, "1000") {
		t.Errorf("missing row data:\n%s", out)
	}
	if !strings.Contains(out, "error:") {
		t.Errorf("failed scheme not reported:\n%s", out)
	}
}

func TestSeries(t *testing.T) {
	frames := []sim.Frame{
		{Time: 0, Bodies: []world.Body{
			world.NewBody(vec.Zero, vec.Zero, 1),
			world.NewBody(vec.New(2, 0, 0), vec.New(0, 3, 0), 1),
		}},
		{Time: 1, Bodies: []world.Body{
			world.NewBody(vec.Zero, vec.Zero, 1),
			world.NewBody(vec.New(0, 4, 0), vec.New(0, 0, 5), 1),
		}},
	}

	sep := SeparationSeries(frames, 0, 1)
	if len(sep) != 2 || sep[0] != 2 || sep[1] != 4 {
		t.Errorf("SeparationSeries: got %v", sep)
	}

	speed := SpeedSeries(frames, 1)
	if len(speed) != 2 || speed[0] != 3 || speed[1] != 5 {
		t.Errorf("SpeedSeries: got %v", speed)
	}

	energy := EnergySeries(frames)
	if len(energy) != 2 {
		t.Fatalf("EnergySeries: got %d values", len(energy))
	}
	if energy[0] == energy[1] {
		t.Error("distinct configurations should have distinct energies")
	}
}

func TestPlotEmpty(t *testing.T) {
	var buf strings.Builder
	Plot(&buf, "x", nil)
	if !strings.Contains(buf.String(), "no data") {
		t.Errorf("empty plot output: %q", buf.String())
	}
}
