package render

import (
	"math"

	"github.com/san-kum/driftfield/internal/integrators"
	"github.com/san-kum/driftfield/internal/links"
	"github.com/san-kum/driftfield/internal/particle"
	"github.com/san-kum/driftfield/internal/surface"
)

// Ambient is the atmospheric wash anchored near the top-left. X and Y are
// fractions of the surface size; Radius is a fraction of its larger side.
type Ambient struct {
	X      float64       `yaml:"x"`
	Y      float64       `yaml:"y"`
	Radius float64       `yaml:"radius"`
	Inner  surface.Color `yaml:"inner"`
	Outer  surface.Color `yaml:"outer"`
}

// Halo is the soft glow behind each particle core. Scale multiplies the core
// radius; Inner and Mid are opacities at the centre and at MidOffset.
type Halo struct {
	Scale     float64 `yaml:"scale"`
	Inner     float64 `yaml:"inner"`
	Mid       float64 `yaml:"mid"`
	MidOffset float64 `yaml:"mid_offset"`
}

type Style struct {
	Dim       surface.Color `yaml:"dim"`
	Ambient   Ambient       `yaml:"ambient"`
	Halo      Halo          `yaml:"halo"`
	CoreAlpha float64       `yaml:"core_alpha"`
}

func DefaultStyle() Style {
	return Style{
		Dim: surface.RGBA(2, 2, 6, 0.15),
		Ambient: Ambient{
			X:      0.15,
			Y:      0.12,
			Radius: 0.8,
			Inner:  surface.RGBA(80, 140, 255, 0.02),
			Outer:  surface.Transparent,
		},
		Halo:      Halo{Scale: 12, Inner: 0.12, Mid: 0.05, MidOffset: 0.5},
		CoreAlpha: 0.9,
	}
}

// Pipeline draws one frame: clear, dim, ambient wash, integrate, particles,
// links. It never changes store membership.
type Pipeline struct {
	surf     surface.Surface
	viewport *surface.Viewport
	store    *particle.Store
	drift    *integrators.Drift
	links    *links.Renderer
	style    Style
}

func NewPipeline(s surface.Surface, vp *surface.Viewport, store *particle.Store, drift *integrators.Drift, lr *links.Renderer, style Style) *Pipeline {
	return &Pipeline{surf: s, viewport: vp, store: store, drift: drift, links: lr, style: style}
}

// Frame renders with integration step dt and returns the number of links drawn.
func (p *Pipeline) Frame(dt float64) int {
	w, h := p.viewport.Size()

	p.surf.ClearRect(0, 0, w, h)
	p.surf.FillRect(0, 0, w, h, p.style.Dim)
	p.surf.FillRectGradient(0, 0, w, h, p.ambient(w, h))

	p.drift.Step(p.store, dt, w, h)

	p.store.Range(p.drawParticle)

	return p.links.Draw(p.surf, p.store)
}

func (p *Pipeline) ambient(w, h float64) surface.RadialGradient {
	a := p.style.Ambient
	return surface.RadialGradient{
		X:      w * a.X,
		Y:      h * a.Y,
		Radius: math.Max(w, h) * a.Radius,
		Stops: []surface.Stop{
			{Offset: 0, Color: a.Inner},
			{Offset: 1, Color: a.Outer},
		},
	}
}

func (p *Pipeline) drawParticle(pt *particle.Particle) {
	halo := p.style.Halo
	r := pt.Size * halo.Scale
	p.surf.FillCircleGradient(pt.X, pt.Y, r, surface.RadialGradient{
		X:      pt.X,
		Y:      pt.Y,
		Radius: r,
		Stops: []surface.Stop{
			{Offset: 0, Color: pt.Color.Color(halo.Inner * pt.Alpha)},
			{Offset: halo.MidOffset, Color: pt.Color.Color(halo.Mid * pt.Alpha)},
			{Offset: 1, Color: surface.Transparent},
		},
	})
	p.surf.FillCircle(pt.X, pt.Y, pt.Size, pt.Color.Color(p.style.CoreAlpha*pt.Alpha))
}
