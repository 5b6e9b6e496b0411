package integrators

import (
	"math"
	"time"

	"github.com/san-kum/driftfield/internal/particle"
)

const (
	// FrameUnit is the frame interval that maps to dt = 1.
	FrameUnit = 16666 * time.Microsecond
	// MaxFrameGap caps the measured interval so a stalled or resumed tab does
	// not teleport particles.
	MaxFrameGap = 40 * time.Millisecond
)

// Drift advances particles along their constant velocity plus a small
// sinusoidal wobble driven by each particle's phase, then wraps them around a
// margin outside the surface.
type Drift struct {
	PhaseRate   float64       `yaml:"phase_rate"`
	WobbleX     float64       `yaml:"wobble_x"`
	WobbleFreqX float64       `yaml:"wobble_freq_x"`
	WobbleY     float64       `yaml:"wobble_y"`
	WobbleFreqY float64       `yaml:"wobble_freq_y"`
	Margin      float64       `yaml:"margin"`
	FrameUnit   time.Duration `yaml:"frame_unit"`
	MaxFrameGap time.Duration `yaml:"max_frame_gap"`
}

func NewDrift() *Drift {
	return &Drift{
		PhaseRate:   0.0025,
		WobbleX:     0.12,
		WobbleFreqX: 1.3,
		WobbleY:     0.09,
		WobbleFreqY: 1.1,
		Margin:      30,
		FrameUnit:   FrameUnit,
		MaxFrameGap: MaxFrameGap,
	}
}

// Delta converts the wall-clock gap between two frames into a normalized dt,
// clamped to [0, MaxFrameGap/FrameUnit].
func (d *Drift) Delta(elapsed time.Duration) float64 {
	unit, gap := d.FrameUnit, d.MaxFrameGap
	if unit <= 0 {
		unit = FrameUnit
	}
	if gap <= 0 {
		gap = MaxFrameGap
	}
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > gap {
		elapsed = gap
	}
	return float64(elapsed) / float64(unit)
}

// Step integrates every particle in the store by dt over a w×h surface.
func (d *Drift) Step(store *particle.Store, dt, w, h float64) {
	store.Range(func(p *particle.Particle) {
		d.Advance(p, dt, w, h)
	})
}

// Advance integrates a single particle.
func (d *Drift) Advance(p *particle.Particle, dt, w, h float64) {
	p.Phase += d.PhaseRate * dt
	p.X += p.VX*dt + math.Sin(p.Phase*d.WobbleFreqX)*d.WobbleX
	p.Y += p.VY*dt + math.Cos(p.Phase*d.WobbleFreqY)*d.WobbleY

	p.X = wrap(p.X, w, d.Margin)
	p.Y = wrap(p.Y, h, d.Margin)
}

func wrap(v, extent, margin float64) float64 {
	if v < -margin {
		return extent + margin
	}
	if v > extent+margin {
		return -margin
	}
	return v
}
