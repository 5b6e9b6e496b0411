package motionpref

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/san-kum/driftfield/internal/surface"
)

// Mode is the outcome of the startup decision.
type Mode int

const (
	Animate Mode = iota
	Static
)

func (m Mode) String() string {
	if m == Static {
		return "static"
	}
	return "animate"
}

// Gate evaluates the preference exactly once per call to Decide. It does not
// watch for changes during a session.
type Gate struct {
	query  Query
	logger *log.Logger
}

func NewGate(q Query, logger *log.Logger) *Gate {
	if logger == nil {
		logger = log.Default()
	}
	return &Gate{query: q, logger: logger}
}

// Decide returns Static only when the query positively reports a preference
// for reduced motion. A missing or failing query means Animate.
func (g *Gate) Decide(ctx context.Context) Mode {
	if g.query == nil {
		return Animate
	}
	reduce, err := g.query.PrefersReducedMotion(ctx)
	if err != nil {
		g.logger.Debug("reduced-motion query failed, animating", "err", err)
		return Animate
	}
	if reduce {
		return Static
	}
	return Animate
}

// Backdrop is the static low-opacity background shown instead of the
// animation: two faint radial washes in opposite corners.
func Backdrop() []surface.BackdropGradient {
	return []surface.BackdropGradient{
		{CX: 0.2, CY: 0.3, Extent: 0.1, Color: surface.RGBA(80, 140, 255, 0.02)},
		{CX: 0.8, CY: 0.7, Extent: 0.1, Color: surface.RGBA(80, 50, 255, 0.02)},
	}
}
