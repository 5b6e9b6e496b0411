package surface

import (
	"errors"
	"math"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"rgba(2,2,6,0.15)", Color{R: 2, G: 2, B: 6, A: 0.15}},
		{"rgb(100, 170, 255)", Color{R: 100, G: 170, B: 255, A: 1}},
		{"transparent", Transparent},
		{"#ff0000", Color{R: 255, A: 1}},
		{"RGBA(80,140,255,0.02)", Color{R: 80, G: 140, B: 255, A: 0.02}},
		{"hsl(0, 100%, 50%)", Color{R: 255, A: 1}},
	}

	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil {
			t.Errorf("ParseColor(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseColorErrors(t *testing.T) {
	for _, in := range []string{"", "blue", "rgb(1,2)", "rgba(1,2,3)", "cmyk(1,2,3,4)", "rgb(a,b,c)", "#zz"} {
		if _, err := ParseColor(in); !errors.Is(err, ErrColorSyntax) {
			t.Errorf("ParseColor(%q) err = %v, want ErrColorSyntax", in, err)
		}
	}
}

func TestHSLA(t *testing.T) {
	c := HSLA(210, 88, 50, 0.5)
	if c.B < c.R || c.B < c.G {
		t.Errorf("hue 210 should be blue-dominant, got %+v", c)
	}
	if c.A != 0.5 {
		t.Errorf("alpha = %v, want 0.5", c.A)
	}
	if h := c.Hue(); math.Abs(h-210) > 1 {
		t.Errorf("Hue() = %v, want ~210", h)
	}

	wrapped := HSLA(-150, 88, 50, 1)
	if wrapped.R != c.R || wrapped.G != c.G || wrapped.B != c.B {
		t.Errorf("negative hue should wrap: got %+v want %+v", wrapped, c)
	}
}

func TestColorYAML(t *testing.T) {
	var doc struct {
		Dim Color `yaml:"dim"`
	}
	if err := yaml.Unmarshal([]byte("dim: rgba(2,2,6,0.15)\n"), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc.Dim != (Color{R: 2, G: 2, B: 6, A: 0.15}) {
		t.Errorf("decoded %+v", doc.Dim)
	}

	if err := yaml.Unmarshal([]byte("dim: nope\n"), &doc); err == nil {
		t.Error("expected error for malformed color")
	}
}
