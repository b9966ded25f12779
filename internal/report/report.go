// Package report renders simulation output for humans: the final-state
// listing, scheme comparison tables, and terminal plots of recorded series.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/gravsim/internal/metrics"
	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/world"
)

// FinalState prints the elapsed time and one diagnostic line per body.
func FinalState(out io.Writer, w *world.World) {
	fmt.Fprintf(out, "Simulation time: %v\n", w.Time())
	for _, b := range w.Bodies() {
		fmt.Fprintf(out, "%s, speed = %v\n", b, b.Speed())
	}
}

// CompareTable tabulates the outcome of a scheme comparison.
func CompareTable(out io.Writer, comps []sim.Comparison) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SCHEME\tSTEPS\tENERGY_DRIFT\tMOMENTUM_DRIFT\tTIME_MS")

	for _, c := range comps {
		if c.Err != nil {
			fmt.Fprintf(tw, "%s\terror: %v\t\t\t\n", c.Scheme, c.Err)
			continue
		}
		fmt.Fprintf(tw, "%s\t%d\t%.3e\t%.3e\t%.2f\n",
			c.Scheme,
			c.Result.StepsTaken,
			c.Result.Metrics["energy_drift"],
			c.Result.Metrics["momentum_drift"],
			float64(c.Result.Elapsed.Microseconds())/1000,
		)
	}

	return tw.Flush()
}

// EnergySeries extracts the G-scaled total energy of each recorded frame.
func EnergySeries(frames []sim.Frame) []float64 {
	series := make([]float64, len(frames))
	for i, f := range frames {
		series[i] = metrics.Energy(world.New(f.Bodies))
	}
	return series
}

// SeparationSeries extracts the distance between bodies i and j over the
// recorded frames.
func SeparationSeries(frames []sim.Frame, i, j int) []float64 {
	series := make([]float64, 0, len(frames))
	for _, f := range frames {
		if i >= len(f.Bodies) || j >= len(f.Bodies) {
			continue
		}
		series = append(series, f.Bodies[j].Pos.Sub(f.Bodies[i].Pos).Length())
	}
	return series
}

// SpeedSeries extracts body i's speed over the recorded frames.
func SpeedSeries(frames []sim.Frame, i int) []float64 {
	series := make([]float64, 0, len(frames))
	for _, f := range frames {
		if i >= len(f.Bodies) {
			continue
		}
		series = append(series, f.Bodies[i].Speed())
	}
	return series
}

// Plot renders a series as a terminal graph.
func Plot(out io.Writer, caption string, data []float64) {
	if len(data) == 0 {
		fmt.Fprintln(out, "no data to plot")
		return
	}
	graph := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
	fmt.Fprintln(out, graph)
	fmt.Fprintln(out)
}
