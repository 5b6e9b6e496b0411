package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/driftfield/internal/automation"
	"github.com/san-kum/driftfield/internal/config"
	"github.com/san-kum/driftfield/internal/export"
	"github.com/san-kum/driftfield/internal/metrics"
	"github.com/san-kum/driftfield/internal/storage"
	"github.com/san-kum/driftfield/internal/viz"
	"github.com/spf13/cobra"
)

// summaryOrder fixes the row order of the bench summary; unknown metrics
// follow alphabetically.
var summaryOrder = []string{
	"frames", "cost_mean_ms", "cost_p95_ms", "cost_max_ms", "budget_ok", "dt_clamped",
	"links_mean", "links_max", "population_final",
}

func newRunner(cmd *cobra.Command) (*automation.Runner, *config.Config, *metrics.Collector, error) {
	logger, err := newLogger(os.Stderr)
	if err != nil {
		return nil, nil, nil, err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	motion, err := cfg.MotionQuery()
	if err != nil {
		return nil, nil, nil, err
	}

	pacing := metrics.NewCollector(false,
		metrics.NewFrameBudget(cfg.Window.FrameInterval()),
		metrics.NewClampedFrames(cfg.Motion.Delta(cfg.Motion.MaxFrameGap)),
	)
	return &automation.Runner{
		Options:   cfg.EngineOptions(),
		Motion:    motion,
		Rand:      cfg.Rand(),
		Logger:    logger,
		Observers: []metrics.Observer{pacing},
	}, cfg, pacing, nil
}

func runBench(cmd *cobra.Command, args []string) error {
	runner, cfg, pacing, err := newRunner(cmd)
	if err != nil {
		return err
	}

	scenario := automation.DefaultScenario()
	if len(args) == 1 {
		scenario, err = automation.LoadScenario(args[0])
		if err != nil {
			return err
		}
	}

	if sweepParam != "" {
		return runSweep(cmd, runner, scenario)
	}
	if ensembleRuns > 0 {
		return runEnsemble(cmd, runner, cfg, scenario)
	}

	res, err := runner.Run(cmd.Context(), scenario)
	if err != nil {
		return err
	}
	summary := res.Summary
	for k, v := range pacing.Summary() {
		summary[k] = v
	}

	meta := storage.RunMetadata{
		Scenario: scenario.Name,
		Preset:   preset,
		Seed:     cfg.Seed,
		Width:    scenario.Width,
		Height:   scenario.Height,
		Mode:     res.Mode.String(),
		Metrics:  summary,
	}
	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		id, err := st.Save(meta, res.Frames)
		if err != nil {
			return err
		}
		meta.ID = id
		runner.Logger.Info("run saved", "id", id, "dir", dataDir)
	}

	if jsonOut {
		meta.Frames = len(res.Frames)
		return storage.ExportJSON(os.Stdout, meta, res.Frames)
	}

	detail := fmt.Sprintf("%d frames, %v simulated, %v wall, seed %d",
		len(res.Frames), res.Simulated, res.Wall.Round(time.Millisecond), cfg.Seed)
	fmt.Println(benchReport(scenario.Name+"  "+res.Mode.String(), detail, summary))

	if len(res.Frames) > 1 {
		return plotSeries(res.Frames, "")
	}
	return nil
}

func runSweep(cmd *cobra.Command, runner *automation.Runner, scenario *automation.Scenario) error {
	results, err := automation.RunSweep(cmd.Context(), runner, scenario, automation.ParameterSweep{
		ParamName: sweepParam,
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepSteps,
	})
	if err != nil {
		return fmt.Errorf("%w (sweepable: %s)", err, strings.Join(automation.Sweepable, ", "))
	}

	fmt.Printf("sweeping %s over %d steps\n\n", sweepParam, sweepSteps)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VALUE\tCOST_MEAN\tCOST_P95\tLINKS_MEAN\tLINKS_MAX\tPOPULATION")
	for _, r := range results {
		fmt.Fprintf(w, "%.4g\t%.3fms\t%.3fms\t%.1f\t%.0f\t%.0f\n",
			r.ParamValue,
			r.Summary["cost_mean_ms"],
			r.Summary["cost_p95_ms"],
			r.Summary["links_mean"],
			r.Summary["links_max"],
			r.Summary["population_final"],
		)
	}
	return w.Flush()
}

func runEnsemble(cmd *cobra.Command, runner *automation.Runner, cfg *config.Config, scenario *automation.Scenario) error {
	e := automation.NewEnsemble(runner, ensembleRuns, cfg.Seed)
	results, err := e.Run(cmd.Context(), scenario)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d runs from seed %d\n\n", scenario.Name, ensembleRuns, cfg.Seed)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tCOST_MEAN\tCOST_P95\tLINKS_MEAN\tLINKS_MAX\tWALL")
	var mean float64
	for i, r := range results {
		mean += r.Summary["cost_mean_ms"]
		fmt.Fprintf(w, "%d\t%.3fms\t%.3fms\t%.1f\t%.0f\t%v\n",
			e.Seed(i),
			r.Summary["cost_mean_ms"],
			r.Summary["cost_p95_ms"],
			r.Summary["links_mean"],
			r.Summary["links_max"],
			r.Wall.Round(time.Millisecond),
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nmean frame cost across runs: %.3fms\n", mean/float64(len(results)))
	return nil
}

// benchReport is the header, summary box and the separator above the plots.
func benchReport(title, detail string, summary map[string]float64) string {
	var b strings.Builder
	b.WriteString(viz.HeaderStyle.Render(title) + "\n")
	b.WriteString(viz.Subtle.Render(detail) + "\n\n")
	b.WriteString(viz.BoxWithTitle("summary", formatSummary(summary), 44) + "\n\n")
	b.WriteString(viz.Separator(80) + "\n")
	return b.String()
}

func formatSummary(summary map[string]float64) string {
	keys := make([]string, 0, len(summary))
	seen := make(map[string]bool, len(summaryOrder))
	for _, k := range summaryOrder {
		if _, ok := summary[k]; ok {
			keys = append(keys, k)
			seen[k] = true
		}
	}
	var rest []string
	for k := range summary {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	keys = append(keys, rest...)

	lines := make([]string, len(keys))
	for i, k := range keys {
		lines[i] = viz.MetricLabel.Render(fmt.Sprintf("%-18s", k)) + viz.MetricValue.Render(fmt.Sprintf("%.4g", summary[k]))
	}
	return strings.Join(lines, "\n")
}

// frameSeries extracts one per-frame column by name.
func frameSeries(frames []metrics.Frame, name string) ([]float64, string, error) {
	out := make([]float64, len(frames))
	switch name {
	case "cost":
		for i, f := range frames {
			out[i] = float64(f.Cost) / float64(time.Millisecond)
		}
		return out, "frame cost (ms)", nil
	case "links":
		for i, f := range frames {
			out[i] = float64(f.Links)
		}
		return out, "links per frame", nil
	case "population":
		for i, f := range frames {
			out[i] = float64(f.Population)
		}
		return out, "population", nil
	}
	return nil, "", fmt.Errorf("unknown series %q (cost, links, population)", name)
}

func plotSeries(frames []metrics.Frame, only string) error {
	names := []string{"cost", "links", "population"}
	if only != "" {
		names = []string{only}
	}
	for _, name := range names {
		data, caption, err := frameSeries(frames, name)
		if err != nil {
			return err
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
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
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tFRAMES\tMODE\tCOST_MEAN\tLINKS_MAX")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%.3fms\t%.0f\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Mode,
			run.Metrics["cost_mean_ms"],
			run.Metrics["links_max"],
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	if len(frames) < 2 {
		return fmt.Errorf("run %s has %d frames, nothing to plot", meta.ID, len(frames))
	}

	if svgOut != "" {
		name := series
		if name == "" {
			name = "cost"
		}
		data, _, err := frameSeries(frames, name)
		if err != nil {
			return err
		}
		if err := os.WriteFile(svgOut, []byte(export.SeriesToSVG(data, 800, 240, "#64aaff")), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgOut)
		return nil
	}

	fmt.Printf("run: %s (%s, %d frames)\n\n", meta.ID, meta.Scenario, meta.Frames)
	return plotSeries(frames, series)
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, *meta, frames)
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	runner, cfg, _, err := newRunner(cmd)
	if err != nil {
		return err
	}
	if snapshotFrames < 1 {
		return fmt.Errorf("--frames must be at least 1")
	}

	svg := export.NewSVG(cfg.Render.Dim.WithAlpha(1))
	runner.Surface = svg

	s := &automation.Scenario{
		Name:     "snapshot",
		Frames:   snapshotFrames,
		Width:    float64(cfg.Window.Width),
		Height:   float64(cfg.Window.Height),
		Ratio:    1,
		Interval: cfg.Window.FrameInterval(),
	}
	if snapshotWidth > 0 {
		s.Width = snapshotWidth
	}
	if snapshotHeight > 0 {
		s.Height = snapshotHeight
	}

	res, err := runner.Run(cmd.Context(), s)
	if err != nil {
		return err
	}

	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	if _, err := svg.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%s, %d particles)\n", outFile, res.Mode, len(res.Final))
	return nil
}
