// Package render runs the particle field: it sizes the surface, seeds the
// population, and drives the per-frame pipeline from the host's scheduler.
//
// An Engine is not safe for concurrent use. Hosts call Init, OnResize,
// OnPointerMove and the scheduled frame callbacks from one goroutine, the
// same way a browser delivers events and animation frames on its UI thread.
package render

import (
	"context"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/driftfield/internal/input"
	"github.com/san-kum/driftfield/internal/integrators"
	"github.com/san-kum/driftfield/internal/links"
	"github.com/san-kum/driftfield/internal/metrics"
	"github.com/san-kum/driftfield/internal/motionpref"
	"github.com/san-kum/driftfield/internal/particle"
	"github.com/san-kum/driftfield/internal/surface"
)

// Options holds every tunable of the engine.
type Options struct {
	BaseCount    int
	Cap          int
	SpawnPerMove int
	Seeded       particle.Spec
	Spawned      particle.Spec
	Drift        integrators.Drift
	Links        links.Params
	Style        Style
}

func DefaultOptions() Options {
	return Options{
		BaseCount:    particle.BaseCount,
		Cap:          particle.Cap,
		SpawnPerMove: input.DefaultPerMove,
		Seeded:       particle.SeededSpec(),
		Spawned:      particle.SpawnedSpec(),
		Drift:        *integrators.NewDrift(),
		Links:        links.DefaultParams(),
		Style:        DefaultStyle(),
	}
}

// Host is everything the engine needs from its environment.
type Host struct {
	Surface   surface.Surface
	Window    surface.Window
	Scheduler Scheduler
	Clock     Clock
	// Motion is asked once during Init. Nil means no preference.
	Motion motionpref.Query
}

type Option func(*Engine)

// WithRand replaces the time-seeded random source.
func WithRand(src particle.Source) Option {
	return func(e *Engine) { e.rng = src }
}

func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithObserver registers an observer for every rendered frame.
func WithObserver(o metrics.Observer) Option {
	return func(e *Engine) { e.observers = append(e.observers, o) }
}

type Engine struct {
	opts      Options
	host      Host
	rng       particle.Source
	logger    *log.Logger
	observers []metrics.Observer

	viewport *surface.Viewport
	store    *particle.Store
	drift    *integrators.Drift
	pipeline *Pipeline
	spawner  *input.Spawner

	mode        motionpref.Mode
	initialized bool
	last        time.Duration
	frames      int
}

func New(opts Options, host Host, options ...Option) *Engine {
	e := &Engine{opts: opts, host: host}
	for _, o := range options {
		o(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if e.logger == nil {
		e.logger = log.Default()
	}
	return e
}

// Init decides between animation and the static backdrop and, when
// animating, sizes the surface, seeds the population and schedules the
// first frame. It fails only when there is no surface to draw on.
func (e *Engine) Init(ctx context.Context) error {
	if e.initialized {
		return ErrInitialized
	}
	if e.host.Surface == nil {
		return ErrNoSurface
	}
	if e.host.Window == nil {
		e.logger.Warn("no window geometry, using an empty viewport")
		e.host.Window = &surface.StaticWindow{Ratio: 1}
	}
	if e.host.Clock == nil {
		e.host.Clock = NewSystemClock()
	}

	mode := motionpref.NewGate(e.host.Motion, e.logger).Decide(ctx)
	if mode == motionpref.Animate && e.host.Scheduler == nil {
		e.logger.Warn("no frame scheduler, falling back to static backdrop")
		mode = motionpref.Static
	}

	e.mode = mode
	e.viewport = surface.NewViewport(e.host.Window, e.host.Surface)
	e.store = particle.NewStore(e.opts.Cap, e.opts.Seeded, e.opts.Spawned, e.rng)
	e.drift = &e.opts.Drift
	e.pipeline = NewPipeline(e.host.Surface, e.viewport, e.store, e.drift, links.NewRenderer(e.opts.Links), e.opts.Style)
	e.spawner = input.NewSpawner(e.store, e.host.Surface, e.opts.SpawnPerMove)
	e.initialized = true

	e.logger.Info("particle field initialized", "mode", mode)

	if mode == motionpref.Static {
		e.host.Surface.SetBackdrop(motionpref.Backdrop())
		return nil
	}

	e.viewport.Resize()
	w, h := e.viewport.Size()
	e.store.Seed(e.opts.BaseCount, w, h)
	e.last = e.host.Clock.Now()
	e.host.Scheduler.RequestFrame(e.frame)
	return nil
}

func (e *Engine) frame(now time.Duration) {
	start := time.Now()
	dt := e.drift.Delta(now - e.last)
	e.last = now

	linked := e.pipeline.Frame(dt)
	e.frames++

	if len(e.observers) > 0 {
		f := metrics.Frame{
			Index:      e.frames,
			Time:       now,
			Dt:         dt,
			Population: e.store.Len(),
			Links:      linked,
			Cost:       time.Since(start),
		}
		for _, o := range e.observers {
			o.OnFrame(f)
		}
	}

	e.host.Scheduler.RequestFrame(e.frame)
}

// OnResize re-reads window geometry. Safe to call on every resize event.
func (e *Engine) OnResize() {
	if !e.initialized {
		return
	}
	e.viewport.Resize()
	w, h := e.viewport.Size()
	e.logger.Debug("viewport resized", "width", w, "height", h, "ratio", e.viewport.Ratio())
}

// OnPointerMove injects particles at a pointer position in client
// coordinates. It does nothing in static mode.
func (e *Engine) OnPointerMove(clientX, clientY float64) {
	if !e.initialized || e.mode != motionpref.Animate {
		return
	}
	e.spawner.OnPointerMove(clientX, clientY)
}

// Reseed replaces the population with a fresh seeded fill.
func (e *Engine) Reseed() {
	if !e.initialized || e.mode != motionpref.Animate {
		return
	}
	w, h := e.viewport.Size()
	e.store.Seed(e.opts.BaseCount, w, h)
	e.logger.Info("particle field reseeded", "count", e.store.Len())
}

func (e *Engine) Mode() motionpref.Mode { return e.mode }

// Frames counts rendered frames.
func (e *Engine) Frames() int { return e.frames }

func (e *Engine) Population() int {
	if e.store == nil {
		return 0
	}
	return e.store.Len()
}

// Particles copies the live population.
func (e *Engine) Particles() []particle.Particle {
	if e.store == nil {
		return nil
	}
	return e.store.Snapshot()
}

// Size is the current logical surface size.
func (e *Engine) Size() (w, h float64) {
	if e.viewport == nil {
		return 0, 0
	}
	return e.viewport.Size()
}
