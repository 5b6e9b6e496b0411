package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/driftfield/internal/motionpref"
	"github.com/san-kum/driftfield/internal/surface"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Population.Base != 110 || cfg.Population.Cap != 260 || cfg.Population.SpawnPerMove != 2 {
		t.Errorf("population = %+v, want 110/260/2", cfg.Population)
	}
	if cfg.Links.Threshold != 140 {
		t.Errorf("expected link threshold 140, got %v", cfg.Links.Threshold)
	}
	if cfg.Motion.MaxFrameGap != 40*time.Millisecond {
		t.Errorf("expected max frame gap 40ms, got %v", cfg.Motion.MaxFrameGap)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "driftfield.yaml")

	cfg := DefaultConfig()
	cfg.Seed = 7
	cfg.Links.Color = surface.RGBA(1, 2, 3, 0.5)
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Seed != 7 {
		t.Errorf("seed = %d, want 7", got.Seed)
	}
	if got.Links.Color != cfg.Links.Color {
		t.Errorf("link color = %v, want %v", got.Links.Color, cfg.Links.Color)
	}
	if got.Motion.FrameUnit != cfg.Motion.FrameUnit {
		t.Errorf("frame unit = %v, want %v", got.Motion.FrameUnit, cfg.Motion.FrameUnit)
	}
	if len(got.Seeded.Palette) != 4 {
		t.Errorf("seeded palette = %d entries, want 4", len(got.Seeded.Palette))
	}
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	data := `
population:
  base: 40
links:
  color: "hsl(280, 60%, 50%)"
motion:
  max_frame_gap: 50ms
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Population.Base != 40 || cfg.Population.Cap != 260 {
		t.Errorf("population = %+v, want base 40 with default cap", cfg.Population)
	}
	if cfg.Motion.MaxFrameGap != 50*time.Millisecond {
		t.Errorf("max frame gap = %v, want 50ms", cfg.Motion.MaxFrameGap)
	}
	if h := cfg.Links.Color.Hue(); h < 279 || h > 281 {
		t.Errorf("link hue = %v, want about 280", h)
	}
}

func TestLoadRejectsUnknownField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typo.yaml")
	if err := os.WriteFile(path, []byte("population:\n  bsae: 3\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for unknown field")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative base", func(c *Config) { c.Population.Base = -1 }},
		{"cap below base", func(c *Config) { c.Population.Cap = 10 }},
		{"inverted range", func(c *Config) { c.Seeded.Size.Min, c.Seeded.Size.Max = 3, 1 }},
		{"empty palette", func(c *Config) { c.Spawned.Palette = nil }},
		{"zero frame unit", func(c *Config) { c.Motion.FrameUnit = 0 }},
		{"negative threshold", func(c *Config) { c.Links.Threshold = -5 }},
		{"bad reduced motion", func(c *Config) { c.ReducedMotion = "sometimes" }},
		{"zero window", func(c *Config) { c.Window.Width = 0 }},
		{"zero fps", func(c *Config) { c.Window.FPS = 0 }},
		{"halo offset", func(c *Config) { c.Render.Halo.MidOffset = 2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestEngineOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Population.Base = 12
	cfg.Links.BlendHue = true

	opts := cfg.EngineOptions()
	if opts.BaseCount != 12 || opts.Cap != 260 {
		t.Errorf("options = %d/%d, want 12/260", opts.BaseCount, opts.Cap)
	}
	if !opts.Links.BlendHue {
		t.Error("expected blend_hue to carry over")
	}
	if opts.Drift.PhaseRate != 0.0025 {
		t.Errorf("phase rate = %v, want 0.0025", opts.Drift.PhaseRate)
	}
}

func TestMotionQuery(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ReducedMotion = "on"
	q, err := cfg.MotionQuery()
	if err != nil {
		t.Fatal(err)
	}
	if q != motionpref.Fixed(true) {
		t.Errorf("query = %v, want Fixed(true)", q)
	}

	cfg.ReducedMotion = "maybe"
	if _, err := cfg.MotionQuery(); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestFrameInterval(t *testing.T) {
	if got := (WindowConfig{FPS: 50}).FrameInterval(); got != 20*time.Millisecond {
		t.Errorf("interval = %v, want 20ms", got)
	}
	if got := (WindowConfig{}).FrameInterval(); got != time.Second/60 {
		t.Errorf("interval = %v, want 1/60s", got)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("dense")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Population.Base != 200 {
		t.Errorf("expected base 200, got %d", cfg.Population.Base)
	}
	if cfg.Window.Width != DefaultWidth {
		t.Error("preset should keep untouched defaults")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresetsValidate(t *testing.T) {
	names := ListPresets()
	if len(names) != 4 {
		t.Fatalf("expected 4 presets, got %v", names)
	}
	for _, name := range names {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
	}
}
