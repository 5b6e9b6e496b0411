package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/san-kum/driftfield/internal/config"
	"github.com/san-kum/driftfield/internal/ebitenui"
	"github.com/san-kum/driftfield/internal/gui"
	"github.com/san-kum/driftfield/internal/motionpref"
	"github.com/san-kum/driftfield/internal/render"
	"github.com/san-kum/driftfield/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir       string
	configFile    string
	preset        string
	reducedMotion string
	seed          int64
	logLevel      string
	logFile       string
	theme         string
	// bench
	jsonOut      bool
	noSave       bool
	ensembleRuns int
	sweepParam   string
	sweepMin     float64
	sweepMax     float64
	sweepSteps   int
	// snapshot
	outFile        string
	snapshotFrames int
	snapshotWidth  float64
	snapshotHeight float64
	// plot
	series string
	svgOut string
)

// main registers the driftfield commands and runs the raylib host when no
// subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:           "driftfield",
		Short:         "ambient particle field",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runGUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".driftfield", "data directory for bench runs")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "start from a named preset")
	pf.StringVar(&reducedMotion, "reduced-motion", "", "override reduced motion: auto, on or off")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 seeds from the clock)")
	pf.StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run the field in a raylib window",
		RunE:  runGUI,
	}

	windowCmd := &cobra.Command{
		Use:   "window",
		Short: "run the field in an ebiten window",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHost(cmd, os.Stderr, ebitenui.Run)
		},
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run the field in the terminal",
		RunE:  runTUI,
	}
	tuiCmd.Flags().StringVar(&logFile, "log-file", "", "write logs here instead of discarding them")
	tuiCmd.Flags().StringVar(&theme, "theme", "", "terminal theme: "+strings.Join(viz.ThemeNames(), ", "))

	benchCmd := &cobra.Command{
		Use:   "bench [scenario.yaml]",
		Short: "run a scenario headless and report frame cost",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runBench,
	}
	benchCmd.Flags().BoolVar(&jsonOut, "json", false, "print the run as JSON")
	benchCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	benchCmd.Flags().StringVar(&sweepParam, "sweep", "", "sweep a parameter instead of a single run")
	benchCmd.Flags().Float64Var(&sweepMin, "min", 0, "sweep start value")
	benchCmd.Flags().Float64Var(&sweepMax, "max", 0, "sweep end value")
	benchCmd.Flags().IntVar(&sweepSteps, "steps", 5, "sweep steps")
	benchCmd.Flags().IntVar(&ensembleRuns, "ensemble", 0, "run this many seeds in parallel instead of a single run")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list saved bench runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&series, "series", "", "cost, links or population (default: all)")
	plotCmd.Flags().StringVar(&svgOut, "svg", "", "write the series as SVG instead")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a saved run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "render frames headless and write the last one as SVG",
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().StringVarP(&outFile, "out", "o", "driftfield.svg", "output file")
	snapshotCmd.Flags().IntVar(&snapshotFrames, "frames", 120, "frames to simulate before the snapshot")
	snapshotCmd.Flags().Float64Var(&snapshotWidth, "width", 0, "viewport width (default: window width)")
	snapshotCmd.Flags().Float64Var(&snapshotHeight, "height", 0, "viewport height (default: window height)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Printf("  %-8s %s\n", name, config.Presets[name].Description)
			}
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the resolved config to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(guiCmd, windowCmd, tuiCmd, benchCmd, runsCmd, plotCmd, exportCmd, snapshotCmd, presetsCmd, configCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

// loadConfig resolves defaults, then the preset, then the config file, then
// flags, and validates the result.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("reduced-motion") {
		cfg.ReducedMotion = reducedMotion
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("--log-level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		Prefix:          "driftfield",
		ReportTimestamp: true,
		Level:           level,
	}), nil
}

type hostFunc func(ctx context.Context, cfg *config.Config, motion motionpref.Query, logger *log.Logger) error

func runGUI(cmd *cobra.Command, args []string) error {
	return runHost(cmd, os.Stderr, gui.Run)
}

func runTUI(cmd *cobra.Command, args []string) error {
	if theme != "" {
		if err := viz.SetTheme(theme); err != nil {
			return err
		}
	}
	var w io.Writer = io.Discard
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return runHost(cmd, w, viz.Run)
}

func runHost(cmd *cobra.Command, logOut io.Writer, run hostFunc) error {
	logger, err := newLogger(logOut)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger.Info("config loaded", "preset", preset, "file", configFile, "seed", cfg.Seed)

	motion, err := cfg.MotionQuery()
	if err != nil {
		return err
	}
	err = run(cmd.Context(), cfg, motion, logger)
	if errors.Is(err, render.ErrNoSurface) {
		return fmt.Errorf("host has no drawing surface: %w", err)
	}
	return err
}
