package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/driftfield/internal/surface"
)

// gradientSegments is the ring resolution used for halos and washes.
const gradientSegments = 32

// Window reads geometry from the raylib window.
type Window struct{}

func (Window) InnerSize() (float64, float64) {
	return float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight())
}

func (Window) DevicePixelRatio() float64 {
	return float64(rl.GetWindowScaleDPI().X)
}

// Surface draws into the current raylib frame. Calls are only valid between
// rl.BeginDrawing and rl.EndDrawing.
//
// With FlagWindowHighdpi raylib sizes the framebuffer and applies the DPI
// scale itself, so the transform is recorded and coordinates stay logical.
type Surface struct {
	Background rl.Color

	backingW, backingH int
	displayW, displayH int
	scale              float64
	backdrop           []surface.BackdropGradient
}

func NewSurface(background surface.Color) *Surface {
	return &Surface{Background: toRL(background), scale: 1}
}

func (s *Surface) SetBackingSize(w, h int)    { s.backingW, s.backingH = w, h }
func (s *Surface) SetDisplaySize(w, h int)    { s.displayW, s.displayH = w, h }
func (s *Surface) SetTransform(scale float64) { s.scale = scale }

func (s *Surface) Origin() (float64, float64) { return 0, 0 }

func (s *Surface) SetBackdrop(gradients []surface.BackdropGradient) {
	s.backdrop = append(s.backdrop[:0], gradients...)
}

func (s *Surface) ClearRect(x, y, w, h float64) {
	if x <= 0 && y <= 0 && w >= float64(s.displayW) && h >= float64(s.displayH) {
		rl.ClearBackground(s.Background)
		return
	}
	rl.DrawRectangleRec(rl.NewRectangle(float32(x), float32(y), float32(w), float32(h)), s.Background)
}

func (s *Surface) FillRect(x, y, w, h float64, c surface.Color) {
	rl.DrawRectangleRec(rl.NewRectangle(float32(x), float32(y), float32(w), float32(h)), toRL(c))
}

// FillRectGradient clips the gradient disc to the rectangle.
func (s *Surface) FillRectGradient(x, y, w, h float64, g surface.RadialGradient) {
	rl.BeginScissorMode(int32(x), int32(y), int32(w), int32(h))
	drawMesh(surface.RadialMesh(g, gradientSegments))
	rl.EndScissorMode()
}

func (s *Surface) FillCircle(cx, cy, r float64, c surface.Color) {
	rl.DrawCircleV(rl.NewVector2(float32(cx), float32(cy)), float32(r), toRL(c))
}

func (s *Surface) FillCircleGradient(cx, cy, r float64, g surface.RadialGradient) {
	drawMesh(surface.RadialMesh(g, gradientSegments))
}

func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, c surface.Color) {
	rl.DrawLineEx(rl.NewVector2(float32(x0), float32(y0)), rl.NewVector2(float32(x1), float32(y1)), float32(width), toRL(c))
}

// DrawBackdrop paints the static backdrop, for hosts in static mode.
func (s *Surface) DrawBackdrop() {
	rl.ClearBackground(s.Background)
	w, h := float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight())
	for _, b := range s.backdrop {
		drawMesh(surface.RadialMesh(b.Resolve(w, h), gradientSegments*2))
	}
}

func drawMesh(m surface.Mesh) {
	if len(m.Indices) == 0 {
		return
	}
	rl.Begin(rl.Triangles)
	for _, i := range m.Indices {
		v := m.Vertices[i]
		rl.Color4ub(v.Color.R, v.Color.G, v.Color.B, v.Color.Alpha8())
		rl.Vertex2f(v.X, v.Y)
	}
	rl.End()
}

func toRL(c surface.Color) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.Alpha8())
}
