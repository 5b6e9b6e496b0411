package automation

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/driftfield/internal/metrics"
	"github.com/san-kum/driftfield/internal/motionpref"
	"github.com/san-kum/driftfield/internal/particle"
	"github.com/san-kum/driftfield/internal/render"
	"github.com/san-kum/driftfield/internal/surface"
	"gopkg.in/yaml.v3"
)

var ErrUnknownAction = errors.New("automation: unknown action")

const (
	ActionMove   = "move"
	ActionResize = "resize"
	ActionReseed = "reseed"
)

// Scenario is a scripted headless run of the field.
type Scenario struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Frames      int           `yaml:"frames"`
	Width       float64       `yaml:"width"`
	Height      float64       `yaml:"height"`
	Ratio       float64       `yaml:"ratio"`
	Interval    time.Duration `yaml:"interval"`
	Actions     []Action      `yaml:"actions"`
}

// Action fires just before the frame with the given zero-based index.
type Action struct {
	Frame  int     `yaml:"frame"`
	Type   string  `yaml:"type"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Ratio  float64 `yaml:"ratio"`
	// Repeat fires a move this many times in the same frame.
	Repeat int `yaml:"repeat"`
}

// DefaultScenario is what bench runs when no file is given: ten seconds at
// 60fps with a pointer sweep that fills the store to its cap.
func DefaultScenario() *Scenario {
	s := &Scenario{
		Name:        "default",
		Description: "idle field, pointer sweep, resize",
		Frames:      600,
		Width:       1280,
		Height:      720,
		Ratio:       1,
		Interval:    16666 * time.Microsecond,
	}
	for i := 0; i < 80; i++ {
		s.Actions = append(s.Actions, Action{
			Frame: 120 + i,
			Type:  ActionMove,
			X:     200 + float64(i)*10,
			Y:     360,
		})
	}
	s.Actions = append(s.Actions,
		Action{Frame: 400, Type: ActionResize, Width: 960, Height: 540, Ratio: 2},
		Action{Frame: 500, Type: ActionReseed},
	)
	return s
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	scenario := Scenario{Ratio: 1, Interval: 16666 * time.Microsecond}
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if err := scenario.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &scenario, nil
}

func (s *Scenario) Validate() error {
	if s.Frames < 0 {
		return fmt.Errorf("automation: negative frame count %d", s.Frames)
	}
	if s.Width < 0 || s.Height < 0 {
		return fmt.Errorf("automation: negative viewport %vx%v", s.Width, s.Height)
	}
	if s.Interval < 0 {
		return fmt.Errorf("automation: negative interval %v", s.Interval)
	}
	for i, a := range s.Actions {
		switch a.Type {
		case ActionMove, ActionResize, ActionReseed:
		default:
			return fmt.Errorf("action %d: %w %q", i, ErrUnknownAction, a.Type)
		}
		if a.Frame < 0 || a.Frame >= s.Frames {
			return fmt.Errorf("automation: action %d at frame %d outside [0,%d)", i, a.Frame, s.Frames)
		}
	}
	return nil
}

// Result is the outcome of one scenario run.
type Result struct {
	Scenario  string
	Mode      motionpref.Mode
	Frames    []metrics.Frame
	Summary   map[string]float64
	Final     []particle.Particle
	Wall      time.Duration
	Simulated time.Duration
}

// Runner drives an engine with a virtual clock and a manual scheduler, so a
// run is deterministic for a given random source and takes no wall time
// beyond the drawing work itself.
type Runner struct {
	Options render.Options
	// Surface receives the drawing calls. Nil records counts only.
	Surface surface.Surface
	Motion  motionpref.Query
	Rand    particle.Source
	Logger  *log.Logger
	// Observers see every frame alongside the runner's own collector.
	Observers []metrics.Observer
}

func (r *Runner) Run(ctx context.Context, s *Scenario) (*Result, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	logger := r.Logger
	if logger == nil {
		logger = log.Default()
	}
	surf := r.Surface
	if surf == nil {
		surf = surface.NewRecorder(false)
	}
	ratio := s.Ratio
	if ratio <= 0 {
		ratio = 1
	}

	window := &surface.StaticWindow{Width: s.Width, Height: s.Height, Ratio: ratio}
	sched := &render.ManualScheduler{}
	clock := &render.VirtualClock{}
	collector := metrics.NewCollector(true)

	opts := []render.Option{render.WithLogger(logger), render.WithObserver(collector)}
	if r.Rand != nil {
		opts = append(opts, render.WithRand(r.Rand))
	}
	for _, o := range r.Observers {
		opts = append(opts, render.WithObserver(o))
	}

	engine := render.New(r.Options, render.Host{
		Surface:   surf,
		Window:    window,
		Scheduler: sched,
		Clock:     clock,
		Motion:    r.Motion,
	}, opts...)
	if err := engine.Init(ctx); err != nil {
		return nil, err
	}

	byFrame := make(map[int][]Action)
	for _, a := range s.Actions {
		byFrame[a.Frame] = append(byFrame[a.Frame], a)
	}

	logger.Info("running scenario", "name", s.Name, "frames", s.Frames, "mode", engine.Mode())
	start := time.Now()

	for i := 0; i < s.Frames; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, a := range byFrame[i] {
			apply(engine, window, a)
		}
		clock.Advance(s.Interval)
		sched.Fire(clock.Now())
	}

	return &Result{
		Scenario:  s.Name,
		Mode:      engine.Mode(),
		Frames:    collector.Frames,
		Summary:   collector.Summary(),
		Final:     engine.Particles(),
		Wall:      time.Since(start),
		Simulated: clock.Now(),
	}, nil
}

func apply(e *render.Engine, w *surface.StaticWindow, a Action) {
	switch a.Type {
	case ActionMove:
		n := a.Repeat
		if n < 1 {
			n = 1
		}
		for i := 0; i < n; i++ {
			e.OnPointerMove(a.X, a.Y)
		}
	case ActionResize:
		w.Set(a.Width, a.Height, a.Ratio)
		e.OnResize()
	case ActionReseed:
		e.Reseed()
	}
}

// ParameterSweep runs a scenario across a range of values of one tunable.
type ParameterSweep struct {
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
}

// SweepResult holds the summary for one value of the swept parameter.
type SweepResult struct {
	ParamValue float64
	Summary    map[string]float64
}

// Sweepable lists the parameters RunSweep accepts.
var Sweepable = []string{"links.threshold", "population.base", "population.cap", "motion.phase_rate"}

func RunSweep(ctx context.Context, r *Runner, s *Scenario, sweep ParameterSweep) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("automation: sweep needs at least one step")
	}
	base := r.Options
	defer func() { r.Options = base }()

	results := make([]SweepResult, 0, sweep.NumSteps)
	for i := 0; i < sweep.NumSteps; i++ {
		v := sweep.ParamMin
		if sweep.NumSteps > 1 {
			v += float64(i) * (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)
		}
		opts := base
		if err := setParam(&opts, sweep.ParamName, v); err != nil {
			return nil, err
		}
		r.Options = opts

		res, err := r.Run(ctx, s)
		if err != nil {
			return nil, fmt.Errorf("sweep %s=%v: %w", sweep.ParamName, v, err)
		}
		results = append(results, SweepResult{ParamValue: v, Summary: res.Summary})
	}
	return results, nil
}

func setParam(o *render.Options, name string, v float64) error {
	switch name {
	case "links.threshold":
		o.Links.Threshold = v
	case "population.base":
		o.BaseCount = int(v)
		if o.Cap < o.BaseCount {
			o.Cap = o.BaseCount
		}
	case "population.cap":
		o.Cap = int(v)
	case "motion.phase_rate":
		o.Drift.PhaseRate = v
	default:
		return fmt.Errorf("automation: parameter %q is not sweepable", name)
	}
	return nil
}
