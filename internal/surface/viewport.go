package surface

import "math"

// Viewport tracks the drawable surface size and device pixel density and
// applies them to the Surface on every Resize.
type Viewport struct {
	window Window
	surf   Surface

	width, height float64
	ratio         float64
}

func NewViewport(w Window, s Surface) *Viewport {
	return &Viewport{window: w, surf: s, ratio: 1}
}

// Resize reads the window geometry and resizes the surface: backing buffer to
// logical size times ratio, display size to the logical size, and an absolute
// scale transform so drawing stays in logical pixels. Repeated calls do not
// accumulate transform state.
func (v *Viewport) Resize() {
	w, h := v.window.InnerSize()
	v.width = math.Ceil(nonNegative(w))
	v.height = math.Ceil(nonNegative(h))
	v.ratio = pixelRatio(v.window.DevicePixelRatio())

	bw, bh := v.Backing()
	v.surf.SetBackingSize(bw, bh)
	v.surf.SetDisplaySize(int(v.width), int(v.height))
	v.surf.SetTransform(v.ratio)
}

// Size is the logical surface size.
func (v *Viewport) Size() (w, h float64) { return v.width, v.height }

func (v *Viewport) Ratio() float64 { return v.ratio }

// Backing is the backing buffer resolution in device pixels.
func (v *Viewport) Backing() (w, h int) {
	return int(v.width * v.ratio), int(v.height * v.ratio)
}

// pixelRatio defaults unreported or sub-unit ratios to 1.
func pixelRatio(r float64) float64 {
	if math.IsNaN(r) || math.IsInf(r, 0) || r < 1 {
		return 1
	}
	return r
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}
