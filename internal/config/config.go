package config

import (
	"bytes"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/san-kum/driftfield/internal/integrators"
	"github.com/san-kum/driftfield/internal/links"
	"github.com/san-kum/driftfield/internal/motionpref"
	"github.com/san-kum/driftfield/internal/particle"
	"github.com/san-kum/driftfield/internal/render"
	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

const (
	DefaultWidth  = 1280
	DefaultHeight = 720
	DefaultFPS    = 60
	DefaultTitle  = "driftfield"
)

type Config struct {
	// Seed fixes the random source. Zero seeds from the clock.
	Seed          int64             `yaml:"seed"`
	ReducedMotion string            `yaml:"reduced_motion"`
	Population    PopulationConfig  `yaml:"population"`
	Seeded        particle.Spec     `yaml:"seeded"`
	Spawned       particle.Spec     `yaml:"spawned"`
	Motion        integrators.Drift `yaml:"motion"`
	Links         links.Params      `yaml:"links"`
	Render        render.Style      `yaml:"render"`
	Window        WindowConfig      `yaml:"window"`
}

type PopulationConfig struct {
	Base         int `yaml:"base"`
	Cap          int `yaml:"cap"`
	SpawnPerMove int `yaml:"spawn_per_move"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	FPS    int    `yaml:"fps"`
}

func DefaultConfig() *Config {
	opts := render.DefaultOptions()
	return &Config{
		ReducedMotion: "auto",
		Population: PopulationConfig{
			Base:         opts.BaseCount,
			Cap:          opts.Cap,
			SpawnPerMove: opts.SpawnPerMove,
		},
		Seeded:  opts.Seeded,
		Spawned: opts.Spawned,
		Motion:  opts.Drift,
		Links:   opts.Links,
		Render:  opts.Style,
		Window: WindowConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			Title:  DefaultTitle,
			FPS:    DefaultFPS,
		},
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads a YAML file over base, so a file only needs the fields it
// changes. base is modified in place and returned.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(base); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	if err := base.Validate(); err != nil {
		return nil, err
	}
	return base, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	p := c.Population
	switch {
	case p.Base < 0:
		return invalid("population.base: negative %d", p.Base)
	case p.Cap < p.Base:
		return invalid("population.cap %d below base %d", p.Cap, p.Base)
	case p.SpawnPerMove < 0:
		return invalid("population.spawn_per_move: negative %d", p.SpawnPerMove)
	}
	if err := c.Seeded.Validate("seeded"); err != nil {
		return invalid("%v", err)
	}
	if err := c.Spawned.Validate("spawned"); err != nil {
		return invalid("%v", err)
	}
	if c.Motion.FrameUnit <= 0 {
		return invalid("motion.frame_unit must be positive")
	}
	if c.Motion.MaxFrameGap < 0 {
		return invalid("motion.max_frame_gap: negative %v", c.Motion.MaxFrameGap)
	}
	if c.Motion.Margin < 0 {
		return invalid("motion.margin: negative %v", c.Motion.Margin)
	}
	if c.Links.Threshold < 0 {
		return invalid("links.threshold: negative %v", c.Links.Threshold)
	}
	if c.Links.MaxWidth < 0 {
		return invalid("links.max_width: negative %v", c.Links.MaxWidth)
	}
	if c.Render.Halo.MidOffset < 0 || c.Render.Halo.MidOffset > 1 {
		return invalid("render.halo.mid_offset %v outside [0,1]", c.Render.Halo.MidOffset)
	}
	if _, err := motionpref.FromSetting(c.ReducedMotion); err != nil {
		return invalid("reduced_motion: %v", err)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return invalid("window: size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.FPS <= 0 {
		return invalid("window.fps must be positive")
	}
	return nil
}

// EngineOptions maps the config onto the engine's tunables.
func (c *Config) EngineOptions() render.Options {
	return render.Options{
		BaseCount:    c.Population.Base,
		Cap:          c.Population.Cap,
		SpawnPerMove: c.Population.SpawnPerMove,
		Seeded:       c.Seeded,
		Spawned:      c.Spawned,
		Drift:        c.Motion,
		Links:        c.Links,
		Style:        c.Render,
	}
}

// MotionQuery resolves the reduced_motion setting.
func (c *Config) MotionQuery() (motionpref.Query, error) {
	q, err := motionpref.FromSetting(c.ReducedMotion)
	if err != nil {
		return nil, invalid("reduced_motion: %v", err)
	}
	return q, nil
}

// Rand returns the random source for the engine.
func (c *Config) Rand() *rand.Rand {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func (w WindowConfig) FrameInterval() time.Duration {
	if w.FPS <= 0 {
		return time.Second / DefaultFPS
	}
	return time.Second / time.Duration(w.FPS)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}
