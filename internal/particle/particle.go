// Package particle holds the particle data model and the bounded store that
// owns the live population.
package particle

import "github.com/san-kum/driftfield/internal/surface"

const (
	// BaseCount is the seeded population after (re)initialization.
	BaseCount = 110
	// Cap bounds the live population; spawning past it evicts the oldest.
	Cap = 260
)

// HSL is a palette entry: hue in degrees, saturation and lightness in percent.
type HSL struct {
	H float64 `yaml:"h"`
	S float64 `yaml:"s"`
	L float64 `yaml:"l"`
}

// Color returns the entry at the given opacity.
func (c HSL) Color(alpha float64) surface.Color {
	return surface.HSLA(c.H, c.S, c.L, alpha)
}

// Palette is a fixed set of colors particles draw from uniformly.
type Palette []HSL

var (
	// Ambient colors seeded particles: vivid blue, deep blue, dark teal, near-black blue.
	Ambient = Palette{
		{H: 210, S: 88, L: 50},
		{H: 230, S: 72, L: 36},
		{H: 191, S: 40, L: 24},
		{H: 240, S: 20, L: 8},
	}

	// Interaction colors particles spawned by pointer movement.
	Interaction = Palette{
		{H: 200, S: 80, L: 48},
		{H: 230, S: 78, L: 36},
	}
)

// Particle is one drifting point. Life is carried for completeness; nothing
// removes particles by age.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Size   float64
	Color  HSL
	Phase  float64
	Alpha  float64
	Life   float64
}
