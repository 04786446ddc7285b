package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"scflab/internal/config"
	"scflab/internal/lab"
	"scflab/internal/scf"
	"scflab/internal/store"
	"scflab/internal/viz"
)

var (
	dataDir    string
	solver     string
	mixer      string
	alpha      float64
	tol        float64
	maxIter    int
	window     int
	dim        int
	q0         float64
	configFile string
	preset     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "scflab",
		Short: "self-consistent field convergence lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".scflab", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "solve a model to self-consistency",
		Args:  cobra.ExactArgs(1),
		RunE:  runModel,
	}
	addSolveFlags(runCmd)
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for model: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the residual history of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return store.New(dataDir).ExportJSON(os.Stdout, args[0])
		},
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export residual history to CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return store.New(dataDir).ExportCSV(os.Stdout, args[0])
		},
	}

	compareCmd := &cobra.Command{
		Use:   "compare [model] [solver1] [solver2] ...",
		Short: "compare solvers on the same model",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareSolvers,
	}
	addSolveFlags(compareCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep [model]",
		Short: "scan damping factors for a stable window",
		Args:  cobra.ExactArgs(1),
		RunE:  sweepDamping,
	}
	addSolveFlags(sweepCmd)

	liveCmd := &cobra.Command{
		Use:   "live [model]",
		Short: "solve with a live residual view",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addSolveFlags(liveCmd)

	rootCmd.AddCommand(runCmd, presetsCmd, listCmd, plotCmd, exportJSONCmd, exportCSVCmd, compareCmd, sweepCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSolveFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&solver, "solver", "damped", "solver (damped, anderson)")
	cmd.Flags().StringVar(&mixer, "mixer", "simple", "mixer (simple, kerker)")
	cmd.Flags().Float64Var(&alpha, "alpha", config.DefaultAlpha, "damping factor")
	cmd.Flags().Float64Var(&tol, "tol", config.DefaultTol, "residual tolerance")
	cmd.Flags().IntVar(&maxIter, "max-iter", config.DefaultMaxIter, "iteration bound")
	cmd.Flags().IntVar(&window, "window", 0, "anderson history window (0 = unbounded)")
	cmd.Flags().IntVar(&dim, "dim", 0, "dimension (models with a free size)")
	cmd.Flags().Float64Var(&q0, "q0", config.DefaultQ0, "kerker screening wavevector")
}

// resolveConfig layers preset, config file and changed flags, in that order.
func resolveConfig(cmd *cobra.Command, model string) (lab.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Model = model

	if preset != "" {
		p := config.GetPreset(model, preset)
		if p == nil {
			return lab.Config{}, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(model))
		}
		*cfg = *p
	}

	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return lab.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		fileCfg.Model = model
		*cfg = *fileCfg
	}

	if cmd.Flags().Changed("solver") {
		cfg.Solver = solver
	}
	if cmd.Flags().Changed("mixer") {
		cfg.Mixer = mixer
	}
	if cmd.Flags().Changed("alpha") {
		cfg.Alpha = alpha
	}
	if cmd.Flags().Changed("tol") {
		cfg.Tol = tol
	}
	if cmd.Flags().Changed("max-iter") {
		cfg.MaxIter = maxIter
	}
	if cmd.Flags().Changed("window") {
		cfg.Window = window
	}
	if cmd.Flags().Changed("dim") {
		cfg.Dim = dim
	}
	if cmd.Flags().Changed("q0") {
		cfg.Q0 = q0
	}

	return lab.Config{
		Model:   cfg.Model,
		Solver:  cfg.Solver,
		Mixer:   cfg.Mixer,
		Dim:     cfg.Dim,
		Alpha:   cfg.Alpha,
		Tol:     cfg.Tol,
		MaxIter: cfg.MaxIter,
		Window:  cfg.Window,
		Q0:      cfg.Q0,
	}, nil
}

func runModel(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp := lab.New(cfg)
	if err := exp.Assemble(lab.NewRegistry()); err != nil {
		return err
	}

	fmt.Printf("solving %s with %s/%s (alpha=%.2f)...\n", cfg.Model, cfg.Solver, cfg.Mixer, cfg.Alpha)

	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}

	runID, err := st.Save(cfg, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", result.Elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("status: %s\n", result.Status)
	fmt.Printf("iterations: %d\n", result.Iterations)
	fmt.Printf("residual: %.3e\n", result.ResidualNorm)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	if !result.Converged {
		fmt.Println("\ndid not converge; try a smaller --alpha, the kerker mixer or the anderson solver")
	}

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := store.New(dataDir).List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tSOLVER\tMIXER\tALPHA\tITERS\tRESIDUAL\tCONVERGED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2f\t%d\t%.3e\t%v\n",
			run.ID,
			run.Model,
			run.Solver,
			run.Mixer,
			run.Alpha,
			run.Iterations,
			run.ResidualNorm,
			run.Converged,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	residuals, err := st.LoadResiduals(runID)
	if err != nil {
		return err
	}

	if len(residuals) < 2 {
		return fmt.Errorf("not enough data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s  solver: %s  mixer: %s  alpha: %.2f\n", meta.Model, meta.Solver, meta.Mixer, meta.Alpha)
	fmt.Printf("status: converged=%v after %d iterations\n\n", meta.Converged, meta.Iterations)

	fmt.Println(viz.ResidualChart(residuals, "log10 residual"))
	return nil
}

func compareSolvers(cmd *cobra.Command, args []string) error {
	model := args[0]
	solvers := args[1:]

	registry := lab.NewRegistry()

	fmt.Printf("comparing solvers for %s (alpha=%.2f, tol=%.1e)\n\n", model, alpha, tol)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SOLVER\tCONVERGED\tITERS\tRESIDUAL\tRATE\tTIME")

	for _, name := range solvers {
		cfg, err := resolveConfig(cmd, model)
		if err != nil {
			return err
		}
		cfg.Solver = name

		exp := lab.New(cfg)
		if err := exp.Assemble(registry); err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}

		result, err := exp.Run(context.Background())
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}

		fmt.Fprintf(w, "%s\t%v\t%d\t%.3e\t%.4f\t%v\n",
			name,
			result.Converged,
			result.Iterations,
			result.ResidualNorm,
			result.Metrics["rate"],
			result.Elapsed,
		)
	}

	return w.Flush()
}

func sweepDamping(cmd *cobra.Command, args []string) error {
	model := args[0]

	registry := lab.NewRegistry()
	build := func(a float64) (*lab.Experiment, error) {
		cfg, err := resolveConfig(cmd, model)
		if err != nil {
			return nil, err
		}
		cfg.Alpha = a
		exp := lab.New(cfg)
		if err := exp.Assemble(registry); err != nil {
			return nil, err
		}
		return exp, nil
	}

	fmt.Printf("sweeping damping factors for %s\n\n", model)

	points, best, err := lab.NewSweep(lab.DefaultAlphas()).Run(context.Background(), build)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ALPHA\tCONVERGED\tITERS\tRESIDUAL")
	for _, p := range points {
		fmt.Fprintf(w, "%.1f\t%v\t%d\t%.3e\n", p.Alpha, p.Converged, p.Iterations, p.Residual)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if best < 0 {
		fmt.Println("\nno damping factor converged")
		return nil
	}
	fmt.Printf("\nbest: alpha=%.1f (%d iterations)\n", points[best].Alpha, points[best].Iterations)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	exp := lab.New(cfg)
	if err := exp.Assemble(lab.NewRegistry()); err != nil {
		return err
	}

	events := make(chan viz.Event, 64)
	go func() {
		defer close(events)
		result, err := exp.RunWithObserver(context.Background(), func(it scf.Iteration) {
			events <- viz.Event{Iter: &it}
		})
		if err != nil {
			events <- viz.Event{Err: err}
			return
		}
		events <- viz.Event{Result: result.Result}
	}()

	title := fmt.Sprintf("%s / %s / %s", cfg.Model, cfg.Solver, cfg.Mixer)
	p := tea.NewProgram(viz.NewLive(title, events))
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
