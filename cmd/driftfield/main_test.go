package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/driftfield/internal/config"
	"github.com/san-kum/driftfield/internal/metrics"
	"github.com/spf13/cobra"
)

func resetFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		preset, configFile, reducedMotion, seed = "", "", "", 0
	})
}

func flagCommand() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Flags().StringVar(&reducedMotion, "reduced-motion", "", "")
	cmd.Flags().Int64Var(&seed, "seed", 0, "")
	return cmd
}

func TestLoadConfigDefaults(t *testing.T) {
	resetFlags(t)
	cfg, err := loadConfig(flagCommand())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Population.Base != 110 || cfg.ReducedMotion != "auto" {
		t.Errorf("got base %d, reduced_motion %q", cfg.Population.Base, cfg.ReducedMotion)
	}
}

func TestLoadConfigPresetThenFileThenFlags(t *testing.T) {
	resetFlags(t)
	path := filepath.Join(t.TempDir(), "field.yaml")
	if err := os.WriteFile(path, []byte("links:\n  threshold: 90\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cmd := flagCommand()
	preset = "dense"
	configFile = path
	if err := cmd.Flags().Set("seed", "7"); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Flags().Set("reduced-motion", "on"); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Population.Base != 200 {
		t.Errorf("preset base: got %d, want 200", cfg.Population.Base)
	}
	if cfg.Links.Threshold != 90 {
		t.Errorf("file threshold: got %v, want 90", cfg.Links.Threshold)
	}
	if cfg.Seed != 7 || cfg.ReducedMotion != "on" {
		t.Errorf("flags: got seed %d, reduced_motion %q", cfg.Seed, cfg.ReducedMotion)
	}
}

func TestLoadConfigUnknownPreset(t *testing.T) {
	resetFlags(t)
	preset = "stormy"
	if _, err := loadConfig(flagCommand()); err == nil {
		t.Fatal("expected error for unknown preset")
	}
}

func TestLoadConfigInvalidFlag(t *testing.T) {
	resetFlags(t)
	cmd := flagCommand()
	if err := cmd.Flags().Set("reduced-motion", "sometimes"); err != nil {
		t.Fatal(err)
	}
	_, err := loadConfig(cmd)
	if !errors.Is(err, config.ErrInvalid) {
		t.Fatalf("got %v, want ErrInvalid", err)
	}
}

func TestFrameSeries(t *testing.T) {
	frames := []metrics.Frame{
		{Population: 110, Links: 4, Cost: 1500 * time.Microsecond},
		{Population: 112, Links: 6, Cost: 2 * time.Millisecond},
	}

	cost, _, err := frameSeries(frames, "cost")
	if err != nil {
		t.Fatal(err)
	}
	if cost[0] != 1.5 || cost[1] != 2 {
		t.Errorf("cost: got %v", cost)
	}

	links, _, _ := frameSeries(frames, "links")
	if links[1] != 6 {
		t.Errorf("links: got %v", links)
	}

	pop, _, _ := frameSeries(frames, "population")
	if pop[1] != 112 {
		t.Errorf("population: got %v", pop)
	}

	if _, _, err := frameSeries(frames, "energy"); err == nil {
		t.Error("expected error for unknown series")
	}
}

func TestFormatSummaryOrder(t *testing.T) {
	out := formatSummary(map[string]float64{
		"population_final": 110,
		"zeta":             1,
		"frames":           600,
		"cost_mean_ms":     0.4,
	})
	order := []string{"frames", "cost_mean_ms", "population_final", "zeta"}
	last := -1
	for _, name := range order {
		i := strings.Index(out, name)
		if i < 0 {
			t.Fatalf("%s missing from summary:\n%s", name, out)
		}
		if i < last {
			t.Errorf("%s out of order:\n%s", name, out)
		}
		last = i
	}
}

func TestBenchReport(t *testing.T) {
	out := benchReport("default  animate", "600 frames", map[string]float64{"frames": 600})
	for _, want := range []string{"default  animate", "600 frames", "summary", "◆"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestRunTUIUnknownTheme(t *testing.T) {
	t.Cleanup(func() { theme = "" })
	theme = "sepia"
	err := runTUI(flagCommand(), nil)
	if err == nil || !strings.Contains(err.Error(), "unknown theme") {
		t.Fatalf("got %v, want unknown theme error", err)
	}
}
