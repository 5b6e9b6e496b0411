package surface

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// ErrColorSyntax is returned by ParseColor for anything it does not understand.
var ErrColorSyntax = errors.New("surface: malformed color")

// Color is a straight-alpha sRGB color. A is in [0, 1].
type Color struct {
	R, G, B uint8
	A       float64
}

// Transparent is fully transparent black.
var Transparent = Color{}

func RGBA(r, g, b uint8, a float64) Color {
	return Color{R: r, G: g, B: b, A: clamp01(a)}
}

// HSLA builds a color from hue in degrees and saturation/lightness in percent.
func HSLA(h, s, l, a float64) Color {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	r, g, b := colorful.Hsl(h, clamp01(s/100), clamp01(l/100)).RGB255()
	return Color{R: r, G: g, B: b, A: clamp01(a)}
}

func (c Color) WithAlpha(a float64) Color {
	c.A = clamp01(a)
	return c
}

// Hue returns the HSL hue of c in degrees.
func (c Color) Hue() float64 {
	h, _, _ := c.colorful().Hsl()
	return h
}

// WithHue keeps saturation and lightness and swaps the hue.
func (c Color) WithHue(h float64) Color {
	_, s, l := c.colorful().Hsl()
	return HSLA(h, s*100, l*100, c.A)
}

func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.Alpha8()}
}

// Alpha8 is A scaled to a byte.
func (c Color) Alpha8() uint8 {
	return uint8(math.Round(clamp01(c.A) * 255))
}

// CSS renders the color as rgba(r,g,b,a).
func (c Color) CSS() string {
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", c.R, c.G, c.B, strconv.FormatFloat(c.A, 'f', -1, 64))
}

func (c Color) String() string { return c.CSS() }

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// ParseColor accepts rgb(), rgba(), hsl(), hsla(), #rgb, #rrggbb and "transparent".
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "transparent":
		return Transparent, nil
	case strings.HasPrefix(s, "#"):
		cf, err := colorful.Hex(s)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q", ErrColorSyntax, s)
		}
		r, g, b := cf.RGB255()
		return Color{R: r, G: g, B: b, A: 1}, nil
	}

	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return Color{}, fmt.Errorf("%w: %q", ErrColorSyntax, s)
	}
	fn := strings.TrimSpace(s[:open])
	parts := strings.Split(s[open+1:len(s)-1], ",")
	args := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(p), "%"), 64)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q", ErrColorSyntax, s)
		}
		args[i] = v
	}

	alpha := 1.0
	switch fn {
	case "rgb", "hsl":
		if len(args) != 3 {
			return Color{}, fmt.Errorf("%w: %q wants 3 components", ErrColorSyntax, s)
		}
	case "rgba", "hsla":
		if len(args) != 4 {
			return Color{}, fmt.Errorf("%w: %q wants 4 components", ErrColorSyntax, s)
		}
		alpha = args[3]
	default:
		return Color{}, fmt.Errorf("%w: unknown function %q", ErrColorSyntax, fn)
	}

	if strings.HasPrefix(fn, "hsl") {
		return HSLA(args[0], args[1], args[2], alpha), nil
	}
	return RGBA(channel(args[0]), channel(args[1]), channel(args[2]), alpha), nil
}

func (c Color) MarshalYAML() (interface{}, error) {
	return c.CSS(), nil
}

func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ParseColor(raw)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(255, v))))
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
