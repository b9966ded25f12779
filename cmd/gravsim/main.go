package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/input"
	"github.com/san-kum/gravsim/internal/metrics"
	"github.com/san-kum/gravsim/internal/report"
	"github.com/san-kum/gravsim/internal/scheme"
	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/storage"
	"github.com/san-kum/gravsim/internal/viz"
	"github.com/san-kum/gravsim/internal/world"
)

var (
	dataDir     string
	dt          float64
	duration    float64
	schemeName  string
	restFrame   int
	sampleEvery int
	configFile  string
	preset      string
	noSave      bool
	frameSteps  int
	plotPair    []int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gravsim",
		Short: "N-body gravitation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")

	runCmd := &cobra.Command{
		Use:   "run [bodies.csv]",
		Short: "run a simulation",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "tick duration")
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "simulated duration")
	runCmd.Flags().StringVar(&schemeName, "scheme", config.DefaultScheme, "integration scheme")
	runCmd.Flags().IntVar(&restFrame, "rest-frame", config.KeepFrame, "report in the rest frame of this body index (negative keeps the frame)")
	runCmd.Flags().IntVar(&sampleEvery, "sample-every", 1, "record every Nth frame")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset initial conditions")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not archive the run")

	compareCmd := &cobra.Command{
		Use:   "compare [bodies.csv] [scheme]...",
		Short: "race schemes on the same initial conditions",
		Args:  cobra.ArbitraryArgs,
		RunE:  compareSchemes,
	}
	compareCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "tick duration")
	compareCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "simulated duration")
	compareCmd.Flags().StringVar(&preset, "preset", "", "use preset initial conditions")

	liveCmd := &cobra.Command{
		Use:   "live [bodies.csv]",
		Short: "run with live visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "tick duration")
	liveCmd.Flags().StringVar(&schemeName, "scheme", config.DefaultScheme, "integration scheme")
	liveCmd.Flags().StringVar(&preset, "preset", "", "use preset initial conditions")
	liveCmd.Flags().IntVar(&frameSteps, "steps-per-frame", 25, "simulation steps per rendered frame")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list archived runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot an archived run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntSliceVar(&plotPair, "pair", []int{0, 1}, "body pair for the separation plot")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export an archived run to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset initial conditions",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("%-14s %d bodies, scheme %s, dt %g, duration %g\n",
					name, len(p.Bodies), p.Scheme, p.Dt, p.Duration)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, compareCmd, liveCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildConfig assembles the effective run configuration: preset, then
// config file, then environment, then explicit flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.Default()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("scheme") {
		cfg.Scheme = schemeName
	}
	if cmd.Flags().Changed("rest-frame") {
		cfg.RestFrame = restFrame
	}
	if cmd.Flags().Changed("sample-every") {
		cfg.SampleEvery = sampleEvery
	}
	if cmd.Flags().Changed("data") {
		cfg.DataDir = dataDir
	}

	if len(args) > 0 {
		cfg.BodiesFile = args[0]
		cfg.Bodies = nil
	}
	return cfg, nil
}

// loadWorld builds the initial world from inline bodies or a CSV file.
func loadWorld(cfg *config.Config) (*world.World, error) {
	if len(cfg.Bodies) > 0 {
		return world.New(cfg.BuildBodies()), nil
	}
	if cfg.BodiesFile == "" {
		return nil, fmt.Errorf("no initial conditions: pass a bodies CSV, --preset, or a config with bodies")
	}
	bodies, err := input.LoadFile(cfg.BodiesFile)
	if err != nil {
		return nil, err
	}
	return world.New(bodies), nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	w, err := loadWorld(cfg)
	if err != nil {
		return err
	}

	s, err := scheme.New(cfg.Scheme)
	if err != nil {
		return err
	}

	runner := sim.New(s)
	for _, m := range metrics.Defaults() {
		runner.AddMetric(m)
	}

	fmt.Printf("running %s, %d bodies, dt=%g, duration=%g\n", cfg.Scheme, w.Len(), cfg.Dt, cfg.Duration)
	start := time.Now()

	result, err := runner.Run(context.Background(), w, sim.Config{
		Dt:          cfg.Dt,
		Duration:    cfg.Duration,
		SampleEvery: cfg.SampleEvery,
	})
	if err != nil {
		return err
	}

	w.IntoRestFrame(cfg.RestFrame)

	fmt.Printf("completed %d steps in %v\n\n", result.StepsTaken, time.Since(start))
	report.FinalState(os.Stdout, w)

	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6e\n", name, val)
	}

	if noSave {
		return nil
	}
	st, err := storage.Open(cfg.DataDir)
	if err != nil {
		return err
	}
	defer st.Close()

	id, err := st.Save(cfg.Scheme, cfg.Dt, cfg.Duration, cfg.RestFrame, result)
	if err != nil {
		return err
	}
	fmt.Printf("\nrun id: %s\n", id)
	return nil
}

func compareSchemes(cmd *cobra.Command, args []string) error {
	if preset == "" && len(args) == 0 {
		return fmt.Errorf("pass a bodies CSV or --preset")
	}

	names := scheme.Names()

	cfgArgs := args
	if preset != "" {
		if len(args) > 0 {
			names = args
		}
		cfgArgs = nil
	} else if len(args) > 1 {
		names = args[1:]
		cfgArgs = args[:1]
	}

	cfg, err := buildConfig(cmd, cfgArgs)
	if err != nil {
		return err
	}

	w, err := loadWorld(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("comparing %v on %d bodies (dt=%g, duration=%g)\n\n", names, w.Len(), cfg.Dt, cfg.Duration)

	comps := sim.Compare(context.Background(), w, names, sim.Config{
		Dt:          cfg.Dt,
		Duration:    cfg.Duration,
		SampleEvery: cfg.SampleEvery,
	})

	return report.CompareTable(os.Stdout, comps)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	w, err := loadWorld(cfg)
	if err != nil {
		return err
	}

	s, err := scheme.New(cfg.Scheme)
	if err != nil {
		return err
	}

	return viz.Run(w, s, cfg.Dt, frameSteps)
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := storage.Open(dataDir)
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCHEME\tCREATED\tBODIES\tDT\tDURATION")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%g\t%g\n",
			run.ID,
			run.Scheme,
			run.CreatedAt.Format("2006-01-02 15:04:05"),
			run.Bodies,
			run.Dt,
			run.Duration,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st, err := storage.Open(dataDir)
	if err != nil {
		return err
	}
	defer st.Close()

	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\nscheme: %s\nsamples: %d\n\n", meta.ID, meta.Scheme, len(frames))

	report.Plot(os.Stdout, "total energy (G-scaled)", report.EnergySeries(frames))

	if meta.Bodies >= 2 && len(plotPair) == 2 {
		caption := fmt.Sprintf("separation |body%d - body%d|", plotPair[0], plotPair[1])
		report.Plot(os.Stdout, caption, report.SeparationSeries(frames, plotPair[0], plotPair[1]))
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st, err := storage.Open(dataDir)
	if err != nil {
		return err
	}
	defer st.Close()

	frames, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"time"}
	for i := range frames[0].Bodies {
		prefix := fmt.Sprintf("b%d_", i)
		header = append(header,
			prefix+"pos_x", prefix+"pos_y", prefix+"pos_z",
			prefix+"vel_x", prefix+"vel_y", prefix+"vel_z")
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, frame := range frames {
		row := []string{strconv.FormatFloat(frame.Time, 'g', -1, 64)}
		for _, b := range frame.Bodies {
			for i := 0; i < 3; i++ {
				row = append(row, strconv.FormatFloat(b.Pos[i], 'g', -1, 64))
			}
			for i := 0; i < 3; i++ {
				row = append(row, strconv.FormatFloat(b.Vel[i], 'g', -1, 64))
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st, err := storage.Open(dataDir)
	if err != nil {
		return err
	}
	defer st.Close()

	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}
