package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/orrery/internal/analysis"
	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/experiment"
	"github.com/san-kum/orrery/internal/export"
	"github.com/san-kum/orrery/internal/kepler"
	"github.com/san-kum/orrery/internal/logging"
	"github.com/san-kum/orrery/internal/orrery"
	"github.com/san-kum/orrery/internal/solar"
	"github.com/san-kum/orrery/internal/storage"
	"github.com/san-kum/orrery/internal/viz"
)

var (
	dataDir   string
	logLevel  string
	logFormat string

	configFile       string
	preset           string
	bodies           []string
	placement        string
	start            string
	timeScale        float64
	solverIterations int
	physics          bool
	integrator       string
	anchor           bool
	workers          int
	tick             float64
	steps            int
	sampleEvery      int

	plotBody   string
	plotWidth  int
	plotHeight int
	svgSize    int
	svgOut     string
	date       string
)

var logger kitlog.Logger = kitlog.NewNopLogger()

func main() {
	rootCmd := &cobra.Command{
		Use:   "orrery",
		Short: "n-body solar system simulator",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := logging.New(os.Stderr, logFormat, logLevel)
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.Run(viz.NewPicker(buildSystem))
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".orrery", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error, none)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "logfmt", "log format (logfmt, json)")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a simulation and store its tracks",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	simFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "watch a simulation in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	simFlags(liveCmd)

	serveCmd := &cobra.Command{
		Use:   "serve [preset]",
		Short: "stream a running simulation over websocket",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runServe,
	}
	simFlags(serveCmd)
	serveCmd.Flags().StringVar(&listenAddr, "addr", ":8080", "listen address")
	serveCmd.Flags().Float64Var(&rateHz, "hz", 30, "updates per second")

	compareCmd := &cobra.Command{
		Use:   "compare [integrators...]",
		Short: "run one configuration under several integrators",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareIntegrators,
	}
	simFlags(compareCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the orbits of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&plotBody, "body", "", "body whose radius to chart (default: second body)")
	plotCmd.Flags().IntVar(&plotWidth, "width", 80, "plot width")
	plotCmd.Flags().IntVar(&plotHeight, "height", 24, "plot height")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "estimate orbital periods of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run tracks as csv",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "draw a stored run, or a preset's orbits, as svg",
		Long:  "With a run id the sampled tracks are drawn. With --preset the analytic orbits at --date are drawn instead.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&svgSize, "size", 800, "image size in pixels")
	exportSVGCmd.Flags().StringVarP(&svgOut, "output", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().StringVar(&preset, "preset", "", "draw a preset instead of a run")
	exportSVGCmd.Flags().StringVar(&date, "date", "", "date for --preset (RFC3339, default J2000)")

	elementsCmd := &cobra.Command{
		Use:   "elements [bodies...]",
		Short: "print osculating elements at a date",
		RunE:  printElements,
	}
	elementsCmd.Flags().StringVar(&date, "date", "", "date (RFC3339, default now)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets, integrators and bodies",
		RunE:  listPresets,
	}

	rootCmd.AddCommand(runCmd, liveCmd, serveCmd, compareCmd, listCmd, plotCmd, analyzeCmd,
		exportJSONCmd, exportCSVCmd, exportSVGCmd, elementsCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func simFlags(cmd *cobra.Command) {
	d := config.DefaultConfig()
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
	f.StringSliceVar(&bodies, "bodies", d.Bodies, "bodies to load, parents first")
	f.StringVar(&placement, "placement", d.Placement, "initial placement (analytic, default)")
	f.StringVar(&start, "start", "", "start time (RFC3339, default now)")
	f.Float64Var(&timeScale, "time-scale", d.TimeScale, "simulated seconds per wall-clock second")
	f.IntVar(&solverIterations, "iterations", d.SolverIterations, "integrator sub-steps per update")
	f.BoolVar(&physics, "physics", d.SimulatePhysics, "integrate gravity (false follows the element models)")
	f.StringVar(&integrator, "integrator", d.Integrator, "integrator")
	f.BoolVar(&anchor, "anchor", d.Anchor, "hold the first body fixed")
	f.IntVar(&workers, "workers", d.Workers, "force workers (0 or 1 is serial)")
	f.Float64Var(&tick, "tick", d.Tick, "wall-clock seconds per update")
	f.IntVar(&steps, "steps", d.Steps, "number of updates")
	f.IntVar(&sampleEvery, "sample-every", d.SampleEvery, "updates between stored samples")
}

// resolveConfig layers preset, config file, environment and flags, in that
// order.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	name := preset
	if len(args) > 0 && cmd.Name() != "compare" {
		name = args[0]
	}

	cfg := config.DefaultConfig()
	if name != "" {
		p := config.GetPreset(name)
		if p == nil {
			return nil, fmt.Errorf("%w: %q", solar.ErrUnknownPreset, name)
		}
		cfg = p
	}

	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = c
	}

	if err := config.ApplyEnv(cfg, config.NewEnv()); err != nil {
		return nil, err
	}

	f := cmd.Flags()
	if f.Changed("bodies") {
		cfg.Bodies = append([]string(nil), bodies...)
		if name == "" && configFile == "" {
			cfg.Name = "custom"
		}
	}
	if f.Changed("placement") {
		cfg.Placement = placement
	}
	if f.Changed("start") {
		t, err := time.Parse(time.RFC3339, start)
		if err != nil {
			return nil, fmt.Errorf("%w: start: %v", config.ErrInvalidConfig, err)
		}
		cfg.Start = t
	}
	if f.Changed("time-scale") {
		cfg.TimeScale = timeScale
	}
	if f.Changed("iterations") {
		cfg.SolverIterations = solverIterations
	}
	if f.Changed("physics") {
		cfg.SimulatePhysics = physics
	}
	if f.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if f.Changed("anchor") {
		cfg.Anchor = anchor
	}
	if f.Changed("workers") {
		cfg.Workers = workers
	}
	if f.Changed("tick") {
		cfg.Tick = tick
	}
	if f.Changed("steps") {
		cfg.Steps = steps
	}
	if f.Changed("sample-every") {
		cfg.SampleEvery = sampleEvery
	}

	return cfg, cfg.Validate()
}

func setup(cfg *config.Config) (*experiment.Experiment, error) {
	exp := experiment.New(cfg, logger)
	if err := exp.Setup(experiment.NewRegistry()); err != nil {
		return nil, err
	}
	return exp, nil
}

func buildSystem(cfg *config.Config) (*orrery.System, error) {
	exp, err := setup(cfg)
	if err != nil {
		return nil, err
	}
	return exp.System(), nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp, err := setup(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("running %s: %d bodies, %s, %d steps of %s...\n",
		cfg.Name, len(cfg.Bodies), cfg.Integrator, cfg.Steps, formatSpan(cfg.TimeScale*cfg.Tick))

	result, err := exp.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if err != nil {
		fmt.Println("interrupted, saving partial run")
	}

	runID, err := st.Save(result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", result.Wall.Round(time.Millisecond))
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n", len(result.Samples))
	if n := len(result.Samples); n > 0 {
		fmt.Printf("simulated: %s to %s\n",
			result.Samples[0].Time.Format(time.DateOnly), result.Samples[n-1].Time.Format(time.DateOnly))
	}
	if result.ClockResets > 0 {
		fmt.Printf("clock resets: %d\n", result.ClockResets)
	}
	printMetrics(result.Metrics)
	return nil
}

// formatSpan renders a simulated duration in seconds.
func formatSpan(s float64) string {
	return strings.TrimSuffix(viz.FormatTimeScale(s), "/s")
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %-24s %.6e\n", name, m[name])
	}
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	sys, err := buildSystem(cfg)
	if err != nil {
		return err
	}
	return viz.Run(viz.NewModel(sys, cfg.Name))
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, nil)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	results, err := experiment.Compare(ctx, cfg, args, experiment.NewRegistry(), logger)
	if err != nil {
		return err
	}

	ref := results[0]
	target := referenceBody(ref.BodyNames())
	center := centerOf(target, ref.BodyNames())

	fmt.Printf("comparing integrators for %s (%d steps, %s per step)\n\n",
		cfg.Name, cfg.Steps, formatSpan(cfg.TimeScale*cfg.Tick))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "INTEGRATOR\tENERGY DRIFT\tMOMENTUM DRIFT\tRADIUS DRIFT\tSEP %s (AU)\tDIVERGENCE (1/s)\tWALL\n", strings.ToUpper(target))

	refTrack := ref.RelativeTrack(target, center)
	for i, r := range results {
		track := r.RelativeTrack(target, center)
		sep := analysis.Separation(refTrack, track)
		final := 0.0
		if len(sep) > 0 {
			final = sep[len(sep)-1] / kepler.AU
		}
		div := 0.0
		if i > 0 {
			div = analysis.Divergence(refTrack, track, r.Times())
		}
		fmt.Fprintf(w, "%s\t%.3e\t%.3e\t%.3e\t%.3e\t%.3e\t%v\n",
			args[i],
			r.Metrics["energy_drift"],
			r.Metrics["momentum_drift"],
			r.Metrics["radius_drift_"+target],
			final, div,
			r.Wall.Round(time.Millisecond),
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nseparation and divergence are measured against %s\n", args[0])
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tBODIES\tINTEG\tSPAN\tSAMPLES\tENERGY DRIFT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\t%d\t%.2e\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			len(run.Bodies),
			run.Integrator,
			formatSpan(run.End.Sub(run.Start).Seconds()),
			run.Samples,
			run.Metrics["energy_drift"],
		)
	}

	return w.Flush()
}

// referenceBody picks the first orbiting body: the second one loaded.
func referenceBody(names []string) string {
	if len(names) > 1 {
		return names[1]
	}
	if len(names) == 1 {
		return names[0]
	}
	return ""
}

// centerOf returns the body name orbits are measured from: the catalog
// parent if loaded, otherwise the first body.
func centerOf(name string, names []string) string {
	if e, ok := solar.Lookup(name); ok && e.Parent != "" {
		for _, n := range names {
			if n == e.Parent {
				return n
			}
		}
	}
	if len(names) > 0 {
		return names[0]
	}
	return ""
}

func loadRun(runID string) (*storage.RunMetadata, *storage.Tracks, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	tr, err := st.LoadTracks(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(tr.Times) == 0 {
		return nil, nil, fmt.Errorf("run %s has no samples", runID)
	}
	return meta, tr, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, tr, err := loadRun(args[0])
	if err != nil {
		return err
	}

	target := plotBody
	if target == "" {
		target = referenceBody(tr.Bodies)
	}
	center := centerOf(target, tr.Bodies)
	rel := tr.Relative(target, center)
	if rel == nil {
		return fmt.Errorf("%w: %s", orrery.ErrUnknownBody, target)
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s, integrator: %s, %d samples\n\n", meta.Preset, meta.Integrator, len(tr.Times))

	radius := make([]float64, len(rel))
	for i, p := range rel {
		radius[i] = p.Len() / kepler.AU
	}
	graph := asciigraph.Plot(radius,
		asciigraph.Height(10),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(fmt.Sprintf("%s distance from %s (AU)", target, center)),
	)
	fmt.Println(graph)
	fmt.Println()

	// heliocentric view of every orbiting body
	var tracks [][]mgl64.Vec3
	var glyphs []rune
	var legend []string
	for _, name := range tr.Bodies {
		c := centerOf(name, tr.Bodies)
		if name == c {
			continue
		}
		tracks = append(tracks, tr.Relative(name, c))
		g := []rune(name)[0]
		glyphs = append(glyphs, g)
		legend = append(legend, fmt.Sprintf("%c %s", g, name))
	}
	if len(tracks) == 0 {
		return nil
	}
	fmt.Println(analysis.PlotXY(tracks, glyphs, plotWidth, plotHeight))
	fmt.Println(strings.Join(legend, "  "))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, tr, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("orbit analysis: %s\n", meta.ID)
	fmt.Printf("preset: %s, %d samples over %s\n\n",
		meta.Preset, len(tr.Times), formatSpan(tr.Times[len(tr.Times)-1]))

	dt := 0.0
	if len(tr.Times) > 1 {
		dt = tr.Times[1] - tr.Times[0]
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODY\tCENTER\tMEAN R (AU)\tSPECTRAL PERIOD (d)\tSECTION PERIOD (d)\tCATALOG (d)")

	for _, name := range tr.Bodies {
		center := centerOf(name, tr.Bodies)
		if name == center {
			continue
		}
		rel := tr.Relative(name, center)

		radius := make([]float64, len(rel))
		xs := make([]float64, len(rel))
		mean := 0.0
		for i, p := range rel {
			radius[i] = p.Len()
			xs[i] = p.X()
			mean += radius[i]
		}
		mean /= float64(len(rel))

		spectral := "-"
		if p, err := analysis.DominantPeriod(xs, dt); err == nil {
			spectral = fmt.Sprintf("%.2f", p/86400)
		} else {
			level.Debug(logger).Log("msg", "no spectral period", "body", name, "err", err)
		}
		section := "-"
		if p, err := analysis.SectionPeriod(rel, tr.Times); err == nil {
			section = fmt.Sprintf("%.2f", p/86400)
		}
		catalog := "-"
		if e, ok := solar.Lookup(name); ok && e.Orbit.SiderealOrbitPeriod > 0 {
			catalog = fmt.Sprintf("%.2f", e.Orbit.SiderealOrbitPeriod)
		}

		fmt.Fprintf(w, "%s\t%s\t%.4f\t%s\t%s\t%s\n", name, center, mean/kepler.AU, spectral, section, catalog)
	}
	return w.Flush()
}

func exportJSON(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).ExportJSON(args[0], os.Stdout)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).ExportCSV(args[0], os.Stdout)
}

func parseDate(s string, def time.Time) (time.Time, error) {
	if s == "" {
		return def, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		if d, derr := time.Parse(time.DateOnly, s); derr == nil {
			return d, nil
		}
		return time.Time{}, fmt.Errorf("date: %w", err)
	}
	return t, nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	var sc export.Scene

	switch {
	case len(args) == 1:
		meta, tr, err := loadRun(args[0])
		if err != nil {
			return err
		}
		tracks := make(map[string][]mgl64.Vec3, len(tr.Bodies))
		for _, name := range tr.Bodies {
			tracks[name] = tr.Relative(name, tr.Bodies[0])
		}
		sc = export.TracksScene(meta.ID, tr.Bodies, tracks)

	case preset != "":
		cfg := config.GetPreset(preset)
		if cfg == nil {
			return fmt.Errorf("%w: %q", solar.ErrUnknownPreset, preset)
		}
		t, err := parseDate(date, kepler.TimeFromJulian(kepler.J2000))
		if err != nil {
			return err
		}
		cfg.Start = t
		cfg.Placement = string(solar.Analytic)
		sys, err := buildSystem(cfg)
		if err != nil {
			return err
		}
		sc = export.SystemScene(sys, solar.Segments)
		sc.Title = fmt.Sprintf("%s %s", preset, t.Format(time.DateOnly))

	default:
		return errors.New("need a run id or --preset")
	}

	out := os.Stdout
	if svgOut != "" {
		f, err := os.Create(svgOut)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	_, err := fmt.Fprint(out, export.SVG(sc, svgSize))
	return err
}

func printElements(cmd *cobra.Command, args []string) error {
	t, err := parseDate(date, time.Now().UTC())
	if err != nil {
		return err
	}

	names := args
	if len(names) == 0 {
		names = solar.Classic
	}
	// satellites need their parents loaded first
	var load []string
	seen := map[string]bool{}
	var add func(string)
	add = func(n string) {
		if seen[n] {
			return
		}
		if e, ok := solar.Lookup(n); ok && e.Parent != "" {
			add(e.Parent)
		}
		seen[n] = true
		load = append(load, n)
	}
	for _, n := range names {
		add(n)
	}

	sys := orrery.New(orrery.WithStart(t), orrery.WithLogger(logger))
	if err := solar.Load(sys, load, solar.Analytic); err != nil {
		return err
	}

	fmt.Printf("osculating elements at %s (JD %.5f)\n\n", t.Format(time.RFC3339), sys.JulianDate())
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "BODY\tA (AU)\tE\tI (°)\tΩ (°)\tω (°)\tM (°)\tR (AU)\t")

	for _, name := range names {
		b, err := sys.Body(name)
		if err != nil {
			return err
		}
		if b.OrbitData().SemiMajorAxis == 0 {
			continue
		}
		el := b.CurrentOrbitData()
		r := b.Position
		if b.Parent != nil {
			r = r.Sub(b.Parent.Position)
		}
		fmt.Fprintf(w, "%s\t%.6f\t%.6f\t%.4f\t%.4f\t%.4f\t%.4f\t%.6f\t\n",
			name,
			el.SemiMajorAxis/kepler.AU,
			el.Eccentricity,
			el.Inclination,
			el.AscendingNode,
			el.PeriapsisArg,
			el.MeanAnomaly,
			r.Len()/kepler.AU,
		)
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	reg := experiment.NewRegistry()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tBODIES\tTIME SCALE\tITERATIONS\tPHYSICS\tPLACEMENT")
	for _, name := range reg.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%v\t%s\n",
			name, strings.Join(p.Bodies, ","), viz.FormatTimeScale(p.TimeScale),
			p.SolverIterations, p.SimulatePhysics, p.Placement)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nintegrators: %s\n", strings.Join(reg.ListIntegrators(), ", "))
	fmt.Printf("backends:    %s\n", strings.Join(reg.ListBackends(), ", "))

	var catalog []string
	for _, e := range solar.Catalog() {
		catalog = append(catalog, e.Name)
	}
	fmt.Printf("bodies:      %s\n", strings.Join(catalog, ", "))
	return nil
}
