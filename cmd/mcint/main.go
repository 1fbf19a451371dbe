package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/mcint/internal/analysis"
	"github.com/san-kum/mcint/internal/config"
	"github.com/san-kum/mcint/internal/experiment"
	"github.com/san-kum/mcint/internal/export"
	"github.com/san-kum/mcint/internal/logger"
	"github.com/san-kum/mcint/internal/problems"
	"github.com/san-kum/mcint/internal/sampling"
	"github.com/san-kum/mcint/internal/storage"
	"github.com/san-kum/mcint/internal/viz"
)

var (
	dataDir    string
	configFile string
	generator  string
	seed       uint64
	samples    int
	verbose    bool
	convFormat string
	plotFormat string
	preset     string
	plot       bool
	asJSON     bool
	save       bool

	cfg *config.Config
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "mcint",
		Short:         "monte carlo integration lab",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".mcint", "data directory for saved sweeps")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&generator, "generator", config.DefaultGenerator, "random source (pcg, chacha8, splitmix)")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", uint64(time.Now().UnixNano()), "random seed")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging to stderr")

	estimateCmd := &cobra.Command{
		Use:   "estimate [problem]",
		Short: "estimate one integral",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runEstimate,
	}
	estimateCmd.Flags().IntVarP(&samples, "samples", "n", config.DefaultSamples, "number of sample points")
	estimateCmd.Flags().BoolVar(&asJSON, "json", false, "print result as JSON")

	ballCmd := &cobra.Command{
		Use:   "ball [dim]",
		Short: "estimate the volume of the unit ball",
		Args:  cobra.ExactArgs(1),
		RunE:  runBall,
	}
	ballCmd.Flags().IntVarP(&samples, "samples", "n", config.DefaultSamples, "number of sample points")

	convergeCmd := &cobra.Command{
		Use:   "converge [problem]",
		Short: "relative error sweep over log-spaced sample counts",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runConverge,
	}
	convergeCmd.Flags().StringVarP(&convFormat, "format", "f", export.FormatTable, "output format (table, csv, json)")
	convergeCmd.Flags().StringVar(&preset, "preset", "", "use sweep preset")
	convergeCmd.Flags().BoolVar(&plot, "plot", false, "draw log-log error plot")
	convergeCmd.Flags().BoolVar(&save, "save", false, "save the sweep to the data directory")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list saved sweeps",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved sweep",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVarP(&plotFormat, "format", "f", "", "also print the record (table, csv, json)")

	liveCmd := &cobra.Command{
		Use:   "live [problem]",
		Short: "run a sweep with live visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&preset, "preset", "", "use sweep preset")

	problemsCmd := &cobra.Command{
		Use:   "problems",
		Short: "list built-in problems",
		RunE:  listProblems,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list sweep presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tEXPONENTS\tPOINTS")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%g..%g\t%d\n", name, p.MinExp, p.MaxExp, p.Points)
			}
			return w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "write the default config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Save(args[0], config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}

	rootCmd.AddCommand(estimateCmd, ballCmd, convergeCmd, liveCmd, runsCmd, plotCmd, problemsCmd, presetsCmd, configCmd)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// setup loads the config and applies flag overrides. Flags win over the file
// and environment; the file wins over built-in defaults.
func setup(cmd *cobra.Command) error {
	loaded, err := config.Load(configFile)
	if err != nil {
		return err
	}
	cfg = loaded

	if cmd.Flags().Changed("generator") || cfg.Generator == "" {
		cfg.Generator = generator
	}
	if cmd.Flags().Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}
	if f := cmd.Flags().Lookup("samples"); f != nil && f.Changed {
		cfg.Samples = samples
	}
	if verbose {
		cfg.Environment = logger.DevelopmentEnvironment
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	return logger.Setup(cfg.Environment)
}

func problemArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return cfg.Problem
}

func sweepCounts() ([]int, error) {
	sweep := cfg.Sweep
	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		sweep = *p
	}
	if err := sweep.Validate(); err != nil {
		return nil, err
	}
	return analysis.LogSpace(sweep.MinExp, sweep.MaxExp, sweep.Points), nil
}

func newExperiment(name string, counts []int) (*experiment.Experiment, error) {
	return experiment.New(experiment.Config{
		Problem:   name,
		Generator: cfg.Generator,
		Seed:      cfg.Seed,
		Samples:   cfg.Samples,
		Counts:    counts,
	}, problems.NewRegistry())
}

func runEstimate(cmd *cobra.Command, args []string) error {
	exp, err := newExperiment(problemArg(args), nil)
	if err != nil {
		return err
	}

	res, err := exp.Estimate(cmd.Context())
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	printResult(exp.Problem(), res)
	return nil
}

func runBall(cmd *cobra.Command, args []string) error {
	dim, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("dimension %q: %w", args[0], sampling.ErrInvalidDimension)
	}

	p := problems.Ball(dim)
	registry := problems.NewRegistry()
	registry.Register(p)

	exp, err := experiment.New(experiment.Config{
		Problem:   p.Name,
		Generator: cfg.Generator,
		Seed:      cfg.Seed,
		Samples:   cfg.Samples,
	}, registry)
	if err != nil {
		return err
	}

	res, err := exp.Estimate(cmd.Context())
	if err != nil {
		return err
	}
	printResult(p, res)
	return nil
}

func printResult(p problems.Problem, res *experiment.Result) {
	fmt.Printf("%s: %s\n", p.Name, p.Description)
	fmt.Printf("samples:  %d (seed %d)\n", res.Samples, res.Seed)
	fmt.Printf("estimate: %.10g\n", res.Estimate)
	if res.HasExact {
		fmt.Printf("exact:    %.10g\n", res.Exact)
		fmt.Printf("abs err:  %.3e\n", res.AbsErr)
	}
	fmt.Printf("elapsed:  %v\n", res.Elapsed)
}

func runConverge(cmd *cobra.Command, args []string) error {
	counts, err := sweepCounts()
	if err != nil {
		return err
	}
	exp, err := newExperiment(problemArg(args), counts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	rec, err := exp.Converge(ctx, nil)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.Canceled) {
		logger.Warn(ctx, "sweep interrupted", zap.Int("points", len(rec)))
	}

	p := exp.Problem()
	meta := export.Meta{Problem: p.Name, Generator: cfg.Generator, Seed: cfg.Seed, Exact: p.Exact}
	if err := export.Write(os.Stdout, convFormat, meta, rec); err != nil {
		return err
	}

	if plot && len(rec) > 0 {
		fmt.Println()
		fmt.Println(viz.PlotConvergence(rec, 60, 15))
	}

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(meta, rec)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "run id: %s\n", runID)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPROBLEM\tGENERATOR\tSEED\tPOINTS\tSLOPE\tTIMESTAMP")
	for _, run := range runs {
		slope := "-"
		if run.Slope != nil {
			slope = fmt.Sprintf("%.3f", *run.Slope)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
			run.ID, run.Problem, run.Generator, run.Seed, run.Points, slope,
			run.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	run, err := st.Load(args[0])
	if err != nil {
		return err
	}
	rec, err := st.LoadRecord(args[0])
	if err != nil {
		return err
	}
	if len(rec) == 0 {
		return fmt.Errorf("run %s has no points", run.ID)
	}

	if plotFormat != "" {
		meta := export.Meta{Problem: run.Problem, Generator: run.Generator, Seed: run.Seed, Exact: run.Exact}
		if err := export.Write(os.Stdout, plotFormat, meta, rec); err != nil {
			return err
		}
		fmt.Println()
	}
	fmt.Println(viz.PlotConvergence(rec, 60, 15))
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	counts, err := sweepCounts()
	if err != nil {
		return err
	}
	exp, err := newExperiment(problemArg(args), counts)
	if err != nil {
		return err
	}

	p := exp.Problem()
	if !p.Convergent() {
		return fmt.Errorf("problem %s: %w", p.Name, analysis.ErrInvalidReference)
	}

	m := viz.NewModel(p.Name, p.Exact, exp, counts)
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}

	if fm, ok := final.(viz.Model); ok {
		if err := fm.Err(); err != nil {
			return err
		}
		if slope, err := analysis.FitSlope(fm.Record()); err == nil {
			fmt.Printf("%s: %d points, log-log slope %.3f\n", p.Name, len(fm.Record()), slope)
		}
	}
	return nil
}

func listProblems(cmd *cobra.Command, args []string) error {
	registry := problems.NewRegistry()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tKIND\tDIM\tEXACT\tDESCRIPTION")
	for _, name := range registry.List() {
		p, err := registry.Get(name)
		if err != nil {
			return err
		}
		exact := "-"
		if p.HasExact {
			exact = strconv.FormatFloat(p.Exact, 'g', 8, 64)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", p.Name, p.Kind, p.Dimension(), exact, p.Description)
	}
	return w.Flush()
}
