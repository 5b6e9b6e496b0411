package particle

import (
	"fmt"
	"math"
)

// Source is the randomness the store draws from. *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// Range is a closed interval sampled uniformly.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

func (r Range) Sample(src Source) float64 {
	return r.Min + src.Float64()*(r.Max-r.Min)
}

func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

func (r Range) Validate(name string) error {
	if math.IsNaN(r.Min) || math.IsNaN(r.Max) || r.Min > r.Max {
		return fmt.Errorf("%s: min %v > max %v", name, r.Min, r.Max)
	}
	return nil
}

// Spec describes how a class of particles is generated.
type Spec struct {
	VX      Range   `yaml:"vx"`
	VY      Range   `yaml:"vy"`
	Size    Range   `yaml:"size"`
	Alpha   Range   `yaml:"alpha"`
	Life    Range   `yaml:"life"`
	Jitter  float64 `yaml:"jitter"`
	Palette Palette `yaml:"palette"`
}

// SeededSpec is used for the initial population fill.
func SeededSpec() Spec {
	return Spec{
		VX:      Range{-0.18, 0.18},
		VY:      Range{-0.12, 0.12},
		Size:    Range{0.75, 3.2},
		Alpha:   Range{0.5, 1},
		Life:    Range{80, 420},
		Palette: Ambient,
	}
}

// SpawnedSpec is used for particles injected at the pointer.
func SpawnedSpec() Spec {
	return Spec{
		VX:      Range{-0.6, 0.6},
		VY:      Range{-0.6, 0.6},
		Size:    Range{0.9, 2.6},
		Alpha:   Range{0.8, 1},
		Life:    Range{40, 160},
		Jitter:  6,
		Palette: Interaction,
	}
}

func (s Spec) Validate(name string) error {
	checks := []struct {
		field string
		r     Range
	}{
		{"vx", s.VX}, {"vy", s.VY}, {"size", s.Size}, {"alpha", s.Alpha}, {"life", s.Life},
	}
	for _, c := range checks {
		if err := c.r.Validate(name + "." + c.field); err != nil {
			return err
		}
	}
	if s.Size.Min < 0 {
		return fmt.Errorf("%s.size: negative radius %v", name, s.Size.Min)
	}
	if s.Alpha.Min < 0 || s.Alpha.Max > 1 {
		return fmt.Errorf("%s.alpha: outside [0,1]", name)
	}
	if s.Jitter < 0 {
		return fmt.Errorf("%s.jitter: negative %v", name, s.Jitter)
	}
	if len(s.Palette) == 0 {
		return fmt.Errorf("%s.palette: empty", name)
	}
	return nil
}

// New draws one particle at (x, y) from the spec.
func (s Spec) New(src Source, x, y float64) Particle {
	if s.Jitter > 0 {
		x += Range{-s.Jitter, s.Jitter}.Sample(src)
		y += Range{-s.Jitter, s.Jitter}.Sample(src)
	}
	return Particle{
		X:     x,
		Y:     y,
		VX:    s.VX.Sample(src),
		VY:    s.VY.Sample(src),
		Size:  s.Size.Sample(src),
		Color: s.Palette.Choose(src),
		Life:  s.Life.Sample(src),
		Phase: src.Float64() * 2 * math.Pi,
		Alpha: s.Alpha.Sample(src),
	}
}

// Choose picks a palette entry uniformly.
func (p Palette) Choose(src Source) HSL {
	i := int(src.Float64() * float64(len(p)))
	if i >= len(p) {
		i = len(p) - 1
	}
	return p[i]
}
