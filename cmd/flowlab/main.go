package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/flowlab/internal/analysis"
	"github.com/san-kum/flowlab/internal/config"
	"github.com/san-kum/flowlab/internal/experiment"
	"github.com/san-kum/flowlab/internal/export"
	"github.com/san-kum/flowlab/internal/sampler"
	"github.com/san-kum/flowlab/internal/storage"
	"github.com/san-kum/flowlab/internal/tui"
	"github.com/san-kum/flowlab/internal/viz"
)

var (
	dataDir string
	// run parameters
	width         float64
	height        float64
	resolution    float64
	neighbourhood int
	decay         string
	generator     string
	particles     int
	lifespan      int
	color         string
	seed          int64
	configFile    string
	preset        string
	noSave        bool
	// render parameters
	plotCols int
	plotRows int
	svgOut   string
	svgSize  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "flowlab",
		Short: "flow field particle advection lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".flowlab", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "advect a particle batch through a field",
		RunE:  runBatch,
	}
	runCmd.Flags().Float64Var(&width, "width", config.DefaultWidth, "domain width")
	runCmd.Flags().Float64Var(&height, "height", config.DefaultHeight, "domain height")
	runCmd.Flags().Float64Var(&resolution, "resolution", config.DefaultResolution, "grid resolution")
	runCmd.Flags().IntVar(&neighbourhood, "neighbourhood", config.DefaultNeighbourhood, "sampling window size")
	runCmd.Flags().StringVar(&decay, "decay", config.DefaultDecay, "distance decay (inv_linear, inv_quadratic, inv_cubic)")
	runCmd.Flags().StringVar(&generator, "generator", config.DefaultGenerator, "field generator")
	runCmd.Flags().IntVar(&particles, "particles", config.DefaultParticles, "particle count")
	runCmd.Flags().IntVar(&lifespan, "lifespan", config.DefaultLifespan, "steps per particle")
	runCmd.Flags().StringVar(&color, "color", "black", "particle color tag")
	runCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "skip persisting the run")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset configurations",
		RunE:  listPresets,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot trajectory coordinates over steps",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "per-particle trajectory statistics",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	fieldCmd := &cobra.Command{
		Use:   "field",
		Short: "render the field as terminal arrows",
		RunE:  showField,
	}
	fieldCmd.Flags().Float64Var(&width, "width", config.DefaultWidth, "domain width")
	fieldCmd.Flags().Float64Var(&height, "height", config.DefaultHeight, "domain height")
	fieldCmd.Flags().Float64Var(&resolution, "resolution", config.DefaultResolution, "grid resolution")
	fieldCmd.Flags().StringVar(&generator, "generator", config.DefaultGenerator, "field generator")
	fieldCmd.Flags().Int64Var(&seed, "seed", 42, "random seed")
	fieldCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	fieldCmd.Flags().IntVar(&plotCols, "cols", 60, "output columns")
	fieldCmd.Flags().IntVar(&plotRows, "rows", 20, "output rows")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "write a run's trajectories as CSV to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "write a run and its trajectories as JSON to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render a run's trajectories to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&svgOut, "out", "", "output file (default <run_id>.svg)")
	exportSVGCmd.Flags().IntVar(&svgSize, "size", 800, "image width and height in pixels")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "advect particles with a live terminal view",
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	liveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	liveCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "time field construction and batch advection",
		RunE:  benchField,
	}

	rootCmd.AddCommand(runCmd, presetsCmd, listCmd, plotCmd, analyzeCmd, fieldCmd,
		exportCSVCmd, exportJSONCmd, exportSVGCmd, liveCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildConfig resolves precedence: defaults, then preset, then config file,
// then any flag the user set explicitly.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		c := *p
		cfg = &c
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config %s: %w", configFile, err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("resolution") {
		cfg.Resolution = resolution
	}
	if flags.Changed("neighbourhood") {
		cfg.Neighbourhood = neighbourhood
	}
	if flags.Changed("decay") {
		cfg.Decay = decay
	}
	if flags.Changed("generator") {
		cfg.Generator = generator
	}
	if flags.Changed("particles") {
		cfg.Particles.Count = particles
	}
	if flags.Changed("lifespan") {
		cfg.Particles.Lifespan = lifespan
	}
	if flags.Changed("color") {
		cfg.Particles.Color = color
	}
	if flags.Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}

	return cfg, nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	exp := experiment.New(cfg)
	if err := exp.Setup(); err != nil {
		return err
	}

	start := time.Now()
	results, err := exp.Run()
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if len(results) == 0 {
		fmt.Println("no particles configured")
		return nil
	}

	fmt.Printf("advected %d particles for %d steps in %v\n",
		len(results), cfg.Particles.Lifespan, elapsed)

	names := make([]string, 0)
	for name := range results[0].Metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, "PARTICLE\tFINAL X\tFINAL Y")
	for _, name := range names {
		fmt.Fprintf(w, "\t%s", name)
	}
	fmt.Fprintln(w)
	for i, r := range results {
		pos := r.Particle.Position()
		fmt.Fprintf(w, "%d\t%.3f\t%.3f", i, pos.X, pos.Y)
		for _, name := range names {
			fmt.Fprintf(w, "\t%.3f", r.Metrics[name])
		}
		fmt.Fprintln(w)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if noSave {
		return nil
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(cfg, results)
	if err != nil {
		return err
	}
	fmt.Printf("\nsaved as %s\n", runID)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	names := config.ListPresets()
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDOMAIN\tRES\tGENERATOR\tDECAY\tPARTICLES\tLIFESPAN")
	for _, name := range names {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%.0fx%.0f\t%.2f\t%s\t%s\t%d\t%d\n",
			name, p.Width, p.Height, p.Resolution, p.Generator, p.Decay,
			p.Particles.Count, p.Particles.Lifespan)
	}
	return w.Flush()
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
	fmt.Fprintln(w, "ID\tTIME\tGENERATOR\tDOMAIN\tRES\tPARTICLES\tLIFESPAN")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.0fx%.0f\t%.2f\t%d\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Generator,
			run.Width, run.Height,
			run.Resolution,
			run.Particles,
			run.Lifespan,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	trajectories, err := st.LoadTrajectories(runID)
	if err != nil {
		return err
	}
	if len(trajectories) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("generator: %s\n", meta.Generator)
	fmt.Printf("particles: %d\n\n", len(trajectories))

	maxPlots := 3
	for i, traj := range trajectories {
		if i >= maxPlots {
			fmt.Printf("(%d more particles not shown)\n", len(trajectories)-maxPlots)
			break
		}
		xs, ys := analysis.Coordinates(traj)
		for _, series := range []struct {
			axis string
			data []float64
		}{{"x", xs}, {"y", ys}} {
			graph := asciigraph.Plot(series.data,
				asciigraph.Height(8),
				asciigraph.Width(80),
				asciigraph.Caption(fmt.Sprintf("particle %d: %s vs step", i, series.axis)),
			)
			fmt.Println(graph)
			fmt.Println()
		}
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	trajectories, err := st.LoadTrajectories(runID)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PARTICLE\tSTEPS\tPATH\tDISPLACEMENT\tTORTUOSITY\tMEAN STEP\tSTDDEV")
	for i, traj := range trajectories {
		s := analysis.Summarize(traj)
		fmt.Fprintf(w, "%d\t%d\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\n",
			i, s.Steps, s.PathLength, s.Displacement, s.Tortuosity, s.MeanStep, s.StdDevStep)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nmean path length: %.3f\n", analysis.AggregatePathLength(trajectories))
	return nil
}

func showField(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	exp := experiment.New(cfg)
	if err := exp.Setup(); err != nil {
		return err
	}

	fmt.Printf("%s field, %dx%d cells at resolution %.2f\n\n",
		cfg.Generator, exp.Grid().Cols(), exp.Grid().Rows(), cfg.Resolution)
	fmt.Print(viz.Quiver(exp.Grid(), plotCols, plotRows))
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	path := storage.New(dataDir).TrajectoryPath(runID)
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = os.Stdout.ReadFrom(f)
	return err
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	trajectories, err := st.LoadTrajectories(runID)
	if err != nil {
		return err
	}

	return storage.ExportJSON(os.Stdout, meta, trajectories)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	trajectories, err := st.LoadTrajectories(runID)
	if err != nil {
		return err
	}
	colors, err := st.LoadColors(runID)
	if err != nil {
		return err
	}

	svg := export.TrajectoriesToSVG(trajectories, colors, svgSize, svgSize)
	if svg == "" {
		return fmt.Errorf("no trajectory data in %s", runID)
	}

	out := svgOut
	if out == "" {
		out = runID + ".svg"
	}
	if err := os.WriteFile(out, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", out)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	exp := experiment.New(cfg)
	if err := exp.Setup(); err != nil {
		return err
	}

	m := tui.NewModel(cfg.Generator, sampler.New(exp.Grid()),
		exp.Particles(), cfg.Particles.Lifespan)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func benchField(cmd *cobra.Command, args []string) error {
	resolutions := []float64{1.0, 0.5, 0.1}
	counts := []int{10, 100}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RES\tCELLS\tPARTICLES\tINIT\tADVECT\tSTEPS/SEC")

	for _, res := range resolutions {
		for _, n := range counts {
			cfg := config.DefaultConfig()
			cfg.Width, cfg.Height = 50, 50
			cfg.Resolution = res
			cfg.Seed = 42
			cfg.Particles.Count = n
			cfg.Particles.Lifespan = 200

			exp := experiment.New(cfg)

			start := time.Now()
			if err := exp.Setup(); err != nil {
				return err
			}
			initTime := time.Since(start)

			start = time.Now()
			results, err := exp.Run()
			if err != nil {
				return err
			}
			advectTime := time.Since(start)

			steps := len(results) * cfg.Particles.Lifespan
			cells := exp.Grid().Cols() * exp.Grid().Rows()
			fmt.Fprintf(w, "%.2f\t%d\t%d\t%v\t%v\t%.0f\n",
				res, cells, n, initTime, advectTime,
				float64(steps)/advectTime.Seconds())
		}
	}
	return w.Flush()
}
