package storage

import (
	"errors"
	"testing"
	"time"

	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/vec"
	"github.com/san-kum/gravsim/internal/world"
)

func sampleResult() *sim.Result {
	frame := func(t float64) sim.Frame {
		return sim.Frame{
			Time: t,
			Bodies: []world.Body{
				world.NewBody(vec.New(t, 0, 0), vec.New(0, 1, 0), 1),
				world.NewBody(vec.New(-t, 0, 0), vec.New(0, -1, 0), 2.5),
			},
		}
	}
	return &sim.Result{
		Frames:     []sim.Frame{frame(0), frame(0.1), frame(0.2)},
		Metrics:    map[string]float64{"energy_drift": 1e-9},
		StepsTaken: 2,
	}
}

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndLoad(t *testing.T) {
	s := openStore(t)

	id, err := s.Save("leapfrog", 1e-3, 0.2, -1, sampleResult())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	meta, err := s.Load(id)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if meta.Scheme != "leapfrog" {
		t.Errorf("scheme: got %s", meta.Scheme)
	}
	if meta.Bodies != 2 {
		t.Errorf("bodies: got %d", meta.Bodies)
	}
	if meta.RestFrame != -1 {
		t.Errorf("rest_frame: got %d", meta.RestFrame)
	}
	if len(meta.GMs) != 2 || meta.GMs[1] != 2.5 {
		t.Errorf("gms: got %v", meta.GMs)
	}
	if meta.Metrics["energy_drift"] != 1e-9 {
		t.Errorf("metrics: got %v", meta.Metrics)
	}
	if time.Since(meta.CreatedAt) > time.Minute {
		t.Errorf("created_at implausible: %v", meta.CreatedAt)
	}
}

func TestLoadFramesRoundtrip(t *testing.T) {
	s := openStore(t)

	id, err := s.Save("symplectic-euler", 1e-3, 0.2, 0, sampleResult())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	frames, err := s.LoadFrames(id)
	if err != nil {
		t.Fatalf("LoadFrames: %v", err)
	}

	if len(frames) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(frames))
	}
	if frames[2].Time != 0.2 {
		t.Errorf("frame time: got %g", frames[2].Time)
	}
	if frames[2].Bodies[0].Pos != vec.New(0.2, 0, 0) {
		t.Errorf("frame position: got %v", frames[2].Bodies[0].Pos)
	}
	if frames[2].Bodies[1].GM != 2.5 {
		t.Errorf("Gm not reattached: got %g", frames[2].Bodies[1].GM)
	}
}

func TestList(t *testing.T) {
	s := openStore(t)

	if runs, err := s.List(); err != nil || len(runs) != 0 {
		t.Fatalf("fresh store List: %v, %d runs", err, len(runs))
	}

	if _, err := s.Save("leapfrog", 1e-3, 1, -1, sampleResult()); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Save("forward-euler", 1e-3, 1, -1, sampleResult()); err != nil {
		t.Fatal(err)
	}

	runs, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
}

func TestLoadUnknown(t *testing.T) {
	s := openStore(t)

	if _, err := s.Load("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.LoadFrames("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadFrames: expected ErrNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	s := openStore(t)

	id, err := s.Save("leapfrog", 1e-3, 1, -1, sampleResult())
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Delete(id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Load(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("run still loadable after delete: %v", err)
	}
	if err := s.Delete(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("double delete: expected ErrNotFound, got %v", err)
	}
}
