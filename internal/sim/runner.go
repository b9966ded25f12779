// Package sim drives integration schemes over worlds: the fixed-step run
// loop, trajectory recording, metric observation, and concurrent
// scheme-versus-scheme comparison.
package sim

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/san-kum/gravsim/internal/metrics"
	"github.com/san-kum/gravsim/internal/scheme"
	"github.com/san-kum/gravsim/internal/world"
)

// Config controls a single run.
type Config struct {
	Dt       float64
	Duration float64

	// SampleEvery records every Nth frame; values below 1 record all.
	SampleEvery int

	// ValidateState stops the run with ErrDiverged when a tick produces
	// NaN/Inf. The core itself never traps these.
	ValidateState bool
}

// Frame is a recorded snapshot of the world's bodies at one instant.
type Frame struct {
	Time   float64
	Bodies []world.Body
}

// Result collects everything a run produced.
type Result struct {
	Frames     []Frame
	Metrics    map[string]float64
	StepsTaken int
	Elapsed    time.Duration
}

// Observer is notified after every tick.
type Observer interface {
	OnTick(w *world.World)
}

// Runner drives one scheme over a world. Not safe for concurrent use; run
// comparisons through Compare instead.
type Runner struct {
	scheme    scheme.Scheme
	metrics   []metrics.Metric
	observers []Observer
}

func New(s scheme.Scheme) *Runner {
	return &Runner{scheme: s}
}

func (r *Runner) AddMetric(m metrics.Metric) { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer)     { r.observers = append(r.observers, o) }

// Run ticks the world until its clock reaches cfg.Duration, priming the
// scheme first when it needs it. The world is mutated in place; the result
// holds copies.
func (r *Runner) Run(ctx context.Context, w *world.World, cfg Config) (*Result, error) {
	if cfg.Dt <= 0 {
		return nil, fmt.Errorf("%w: got %g", ErrNonPositiveDt, cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return nil, fmt.Errorf("%w: got %g", ErrNonPositiveDuration, cfg.Duration)
	}

	sampleEvery := cfg.SampleEvery
	if sampleEvery < 1 {
		sampleEvery = 1
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	// Frame storage grows as needed. Duration/dt is caller-controlled and
	// can imply billions of steps, so it must never size an allocation.
	result := &Result{
		Metrics: make(map[string]float64),
	}

	if p, ok := r.scheme.(scheme.Primer); ok {
		p.Prime(w, cfg.Dt)
	}

	r.observe(w)
	result.Frames = append(result.Frames, snapshot(w))

	start := time.Now()
	for step := 1; w.Time() < cfg.Duration; step++ {
		select {
		case <-ctx.Done():
			result.Elapsed = time.Since(start)
			return result, ctx.Err()
		default:
		}

		r.scheme.Tick(w, cfg.Dt)
		result.StepsTaken++

		if cfg.ValidateState && diverged(w) {
			result.Elapsed = time.Since(start)
			r.finish(result)
			return result, fmt.Errorf("%w at t=%.6g", ErrDiverged, w.Time())
		}

		r.observe(w)
		if step%sampleEvery == 0 {
			result.Frames = append(result.Frames, snapshot(w))
		}
	}
	result.Elapsed = time.Since(start)

	if result.StepsTaken%sampleEvery != 0 {
		result.Frames = append(result.Frames, snapshot(w))
	}

	r.finish(result)
	return result, nil
}

func (r *Runner) observe(w *world.World) {
	for _, m := range r.metrics {
		m.Observe(w)
	}
	for _, o := range r.observers {
		o.OnTick(w)
	}
}

func (r *Runner) finish(result *Result) {
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func snapshot(w *world.World) Frame {
	bodies := make([]world.Body, w.Len())
	copy(bodies, w.Bodies())
	return Frame{Time: w.Time(), Bodies: bodies}
}

func diverged(w *world.World) bool {
	for _, b := range w.Bodies() {
		for i := 0; i < 3; i++ {
			if math.IsNaN(b.Pos[i]) || math.IsInf(b.Pos[i], 0) ||
				math.IsNaN(b.Vel[i]) || math.IsInf(b.Vel[i], 0) {
				return true
			}
		}
	}
	return false
}
