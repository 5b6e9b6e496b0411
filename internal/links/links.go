// Package links draws the faint connective lines between nearby particles.
//
// The pass is O(n²) over the live population. Population is capped, so the
// cost per frame is bounded (260 particles is 33,670 pair checks); Threshold
// is the single knob a spatial index would key on.
package links

import (
	"math"

	"github.com/san-kum/driftfield/internal/particle"
	"github.com/san-kum/driftfield/internal/surface"
)

// Params configures link rendering.
type Params struct {
	Threshold float64       `yaml:"threshold"`
	Alpha     float64       `yaml:"alpha"`
	WidthBias float64       `yaml:"width_bias"`
	MaxWidth  float64       `yaml:"max_width"`
	Color     surface.Color `yaml:"color"`
	BlendHue  bool          `yaml:"blend_hue"`
}

func DefaultParams() Params {
	return Params{
		Threshold: 140,
		Alpha:     0.04,
		WidthBias: 0.2,
		MaxWidth:  1.3,
		Color:     surface.RGBA(100, 170, 255, 1),
	}
}

// Link describes the line between one pair.
type Link struct {
	Distance float64
	// Mix is 1 for coincident particles and 0 at the threshold.
	Mix   float64
	Alpha float64
	Width float64
	// Hue blends the pair's hues, weighted toward a as they close in.
	Hue float64
}

type Renderer struct {
	params Params
}

func NewRenderer(p Params) *Renderer {
	return &Renderer{params: p}
}

func (r *Renderer) Params() Params { return r.params }

// Between reports whether a and b are linked and, if so, how.
func (r *Renderer) Between(a, b *particle.Particle) (Link, bool) {
	d := math.Hypot(a.X-b.X, a.Y-b.Y)
	if d >= r.params.Threshold {
		return Link{}, false
	}
	mix := 1 - d/r.params.Threshold
	return Link{
		Distance: d,
		Mix:      mix,
		Alpha:    r.params.Alpha * mix,
		Width:    math.Min(r.params.MaxWidth, mix+r.params.WidthBias),
		Hue:      math.Round(a.Color.H*mix + b.Color.H*(1-mix)),
	}, true
}

// Draw strokes every link in the store and returns how many were drawn.
func (r *Renderer) Draw(s surface.Surface, store *particle.Store) int {
	if r.params.Threshold <= 0 {
		return 0
	}
	drawn := 0
	store.ForEachPair(func(a, b *particle.Particle) {
		l, ok := r.Between(a, b)
		if !ok {
			return
		}
		c := r.params.Color
		if r.params.BlendHue {
			c = c.WithHue(l.Hue)
		}
		s.StrokeLine(a.X, a.Y, b.X, b.Y, l.Width, c.WithAlpha(l.Alpha))
		drawn++
	})
	return drawn
}
