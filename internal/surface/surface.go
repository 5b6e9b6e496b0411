// Package surface defines the drawing contract the particle engine renders
// into and the Viewport that keeps it sized to the host window.
//
// All drawing coordinates are logical (CSS) pixels. Implementations map them
// onto their backing buffer using the scale installed by SetTransform.
package surface

// Surface is a 2D drawing context bound to a full-viewport element.
type Surface interface {
	// SetBackingSize sets the backing buffer resolution in device pixels.
	SetBackingSize(w, h int)
	// SetDisplaySize sets the displayed size in logical pixels.
	SetDisplaySize(w, h int)
	// SetTransform installs an absolute scale; it replaces any previous transform.
	SetTransform(scale float64)

	ClearRect(x, y, w, h float64)
	FillRect(x, y, w, h float64, c Color)
	FillRectGradient(x, y, w, h float64, g RadialGradient)
	FillCircle(cx, cy, r float64, c Color)
	FillCircleGradient(cx, cy, r float64, g RadialGradient)
	StrokeLine(x0, y0, x1, y1, width float64, c Color)

	// SetBackdrop paints a static background behind the surface. It is the
	// only drawing done in reduced-motion mode.
	SetBackdrop(gradients []BackdropGradient)

	// Origin is the surface's bounding-box origin in client coordinates.
	Origin() (x, y float64)
}

// Window reports viewport geometry.
type Window interface {
	InnerSize() (w, h float64)
	DevicePixelRatio() float64
}

// StaticWindow is a Window with fixed, settable geometry. Headless runs and
// tests use it in place of a real window.
type StaticWindow struct {
	Width, Height float64
	Ratio         float64
}

func (w *StaticWindow) InnerSize() (float64, float64) { return w.Width, w.Height }
func (w *StaticWindow) DevicePixelRatio() float64     { return w.Ratio }

// Set updates the geometry in place.
func (w *StaticWindow) Set(width, height, ratio float64) {
	w.Width, w.Height, w.Ratio = width, height, ratio
}
