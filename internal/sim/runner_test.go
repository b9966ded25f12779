package sim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/gravsim/internal/metrics"
	"github.com/san-kum/gravsim/internal/scheme"
	"github.com/san-kum/gravsim/internal/vec"
	"github.com/san-kum/gravsim/internal/world"
)

func sunPlanet() *world.World {
	return world.New([]world.Body{
		world.NewBody(vec.Zero, vec.Zero, 1),
		world.NewBody(vec.New(1, 0, 0), vec.New(0, 1, 0), 0),
	})
}

// binary is an equal-mass circular pair; unlike sunPlanet its total
// G-scaled energy is nonzero, so drift metrics are meaningful.
func binary() *world.World {
	v := math.Sqrt(2) / 2
	return world.New([]world.Body{
		world.NewBody(vec.New(0.5, 0, 0), vec.New(0, v, 0), 1),
		world.NewBody(vec.New(-0.5, 0, 0), vec.New(0, -v, 0), 1),
	})
}

func TestRunReachesDuration(t *testing.T) {
	w := sunPlanet()
	r := New(scheme.NewLeapfrog())

	// dt is a power of two so the clock sums exactly.
	result, err := r.Run(context.Background(), w, Config{Dt: 0.0078125, Duration: 1.0})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if w.Time() < 1.0 {
		t.Errorf("world time %g short of duration", w.Time())
	}
	if result.StepsTaken != 128 {
		t.Errorf("expected 128 steps, got %d", result.StepsTaken)
	}
	if len(result.Frames) != 129 {
		t.Errorf("expected 129 frames, got %d", len(result.Frames))
	}
	if result.Frames[0].Time != 0 {
		t.Errorf("first frame should be the initial state, t=%g", result.Frames[0].Time)
	}
}

func TestRunSampling(t *testing.T) {
	w := sunPlanet()
	r := New(scheme.NewSymplecticEuler())

	result, err := r.Run(context.Background(), w, Config{Dt: 0.0078125, Duration: 1.0, SampleEvery: 16})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// initial frame + one every 16 of the 128 steps
	if len(result.Frames) != 9 {
		t.Errorf("expected 9 frames, got %d", len(result.Frames))
	}
	last := result.Frames[len(result.Frames)-1]
	if math.Abs(last.Time-1.0) > 1e-9 {
		t.Errorf("last frame at t=%g, expected 1.0", last.Time)
	}
}

func TestRunValidatesConfig(t *testing.T) {
	r := New(scheme.NewForwardEuler())

	if _, err := r.Run(context.Background(), sunPlanet(), Config{Dt: 0, Duration: 1}); !errors.Is(err, ErrNonPositiveDt) {
		t.Errorf("expected ErrNonPositiveDt, got %v", err)
	}
	if _, err := r.Run(context.Background(), sunPlanet(), Config{Dt: 0.01, Duration: -1}); !errors.Is(err, ErrNonPositiveDuration) {
		t.Errorf("expected ErrNonPositiveDuration, got %v", err)
	}
}

func TestRunFramesAreCopies(t *testing.T) {
	w := sunPlanet()
	r := New(scheme.NewLeapfrog())

	result, err := r.Run(context.Background(), w, Config{Dt: 0.01, Duration: 0.1})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	first := result.Frames[0].Bodies[1].Pos
	w.At(1).Pos = vec.New(99, 99, 99)
	if result.Frames[0].Bodies[1].Pos != first {
		t.Error("recorded frame aliases live world state")
	}
}

func TestRunCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := New(scheme.NewLeapfrog())
	_, err := r.Run(ctx, sunPlanet(), Config{Dt: 1e-6, Duration: 1e6})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRunExtremeStepBudget(t *testing.T) {
	// A tiny dt with a huge duration implies ~1e18 steps. The runner must
	// not size any allocation from that product; a cancelled context has to
	// stop the run after a bounded amount of work and memory.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := New(scheme.NewSymplecticEuler())
	result, err := r.Run(ctx, sunPlanet(), Config{Dt: 1e-9, Duration: 1e9})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if cap(result.Frames) > 16 {
		t.Errorf("frame storage preallocated for %d frames on a cancelled run", cap(result.Frames))
	}
}

func TestRunDivergenceDetection(t *testing.T) {
	// Coincident bodies poison the force sum with NaN on the first tick.
	w := world.New([]world.Body{
		world.NewBody(vec.Zero, vec.Zero, 1),
		world.NewBody(vec.Zero, vec.Zero, 1),
	})

	r := New(scheme.NewSymplecticEuler())
	_, err := r.Run(context.Background(), w, Config{Dt: 0.01, Duration: 1, ValidateState: true})
	if !errors.Is(err, ErrDiverged) {
		t.Errorf("expected ErrDiverged, got %v", err)
	}
}

func TestRunRecordsMetrics(t *testing.T) {
	w := binary()
	r := New(scheme.NewLeapfrog())
	for _, m := range metrics.Defaults() {
		r.AddMetric(m)
	}

	result, err := r.Run(context.Background(), w, Config{Dt: 1e-3, Duration: 2 * math.Pi})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	drift, ok := result.Metrics["energy_drift"]
	if !ok {
		t.Fatal("energy_drift not recorded")
	}
	if drift > 1e-4 {
		t.Errorf("leapfrog energy drift over one orbit: %g", drift)
	}
	if sep := result.Metrics["min_separation"]; sep < 0.9 {
		t.Errorf("min separation on a circular orbit: %g", sep)
	}
}

func TestRunPrimesLeapfrog(t *testing.T) {
	// A primed leapfrog run differs from ticking the same scheme unprimed.
	auto := sunPlanet()
	if _, err := New(scheme.NewLeapfrog()).Run(context.Background(), auto, Config{Dt: 0.01, Duration: 1}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	manual := sunPlanet()
	lf := scheme.NewLeapfrog()
	for manual.Time() < 1 {
		lf.Tick(manual, 0.01)
	}

	if auto.At(1).Pos.Sub(manual.At(1).Pos).Length() < 1e-6 {
		t.Error("runner does not appear to prime the leapfrog scheme")
	}
}

func TestZeroBodyRun(t *testing.T) {
	w := world.New(nil)
	r := New(scheme.NewForwardEuler())

	result, err := r.Run(context.Background(), w, Config{Dt: 0.125, Duration: 1})
	if err != nil {
		t.Fatalf("Run on empty world: %v", err)
	}
	if result.StepsTaken != 8 {
		t.Errorf("expected 8 steps, got %d", result.StepsTaken)
	}
}

func TestCompare(t *testing.T) {
	comps := Compare(context.Background(), binary(), []string{"leapfrog", "forward-euler", "bogus"}, Config{Dt: 1e-3, Duration: 2 * math.Pi})

	byName := map[string]Comparison{}
	for _, c := range comps {
		byName[c.Scheme] = c
	}

	if byName["bogus"].Err == nil {
		t.Error("expected error for unknown scheme")
	}
	lf, fe := byName["leapfrog"], byName["forward-euler"]
	if lf.Err != nil || fe.Err != nil {
		t.Fatalf("unexpected errors: %v / %v", lf.Err, fe.Err)
	}

	if lf.Result.Metrics["energy_drift"] >= fe.Result.Metrics["energy_drift"] {
		t.Errorf("leapfrog drift %g should beat forward Euler drift %g",
			lf.Result.Metrics["energy_drift"], fe.Result.Metrics["energy_drift"])
	}

	// Each comparison ran on its own copy.
	if lf.Final == fe.Final {
		t.Error("comparisons shared a world")
	}
}
