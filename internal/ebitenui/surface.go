package ebitenui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/san-kum/driftfield/internal/surface"
)

const gradientSegments = 32

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// Surface draws onto the screen image handed to Game.Draw. The screen is
// laid out at backing resolution, so every coordinate is multiplied by the
// current transform scale.
type Surface struct {
	Background surface.Color

	dst                *ebiten.Image
	backingW, backingH int
	displayW, displayH int
	scale              float64
	backdrop           []surface.BackdropGradient
}

func NewSurface(background surface.Color) *Surface {
	return &Surface{Background: background, scale: 1}
}

// Target sets the image subsequent calls draw on.
func (s *Surface) Target(dst *ebiten.Image) { s.dst = dst }

func (s *Surface) SetBackingSize(w, h int)    { s.backingW, s.backingH = w, h }
func (s *Surface) SetDisplaySize(w, h int)    { s.displayW, s.displayH = w, h }
func (s *Surface) SetTransform(scale float64) { s.scale = scale }

func (s *Surface) Origin() (float64, float64) { return 0, 0 }

func (s *Surface) SetBackdrop(gradients []surface.BackdropGradient) {
	s.backdrop = append(s.backdrop[:0], gradients...)
}

func (s *Surface) ClearRect(x, y, w, h float64) {
	if s.dst == nil {
		return
	}
	s.sub(x, y, w, h).Fill(s.Background.NRGBA())
}

func (s *Surface) FillRect(x, y, w, h float64, c surface.Color) {
	if s.dst == nil {
		return
	}
	vector.DrawFilledRect(s.dst, s.px(x), s.px(y), s.px(w), s.px(h), c.NRGBA(), false)
}

func (s *Surface) FillRectGradient(x, y, w, h float64, g surface.RadialGradient) {
	if s.dst == nil {
		return
	}
	s.drawMesh(s.sub(x, y, w, h), surface.RadialMesh(g, gradientSegments))
}

func (s *Surface) FillCircle(cx, cy, r float64, c surface.Color) {
	if s.dst == nil {
		return
	}
	vector.DrawFilledCircle(s.dst, s.px(cx), s.px(cy), s.px(r), c.NRGBA(), true)
}

func (s *Surface) FillCircleGradient(cx, cy, r float64, g surface.RadialGradient) {
	if s.dst == nil {
		return
	}
	s.drawMesh(s.dst, surface.RadialMesh(g, gradientSegments))
}

func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, c surface.Color) {
	if s.dst == nil {
		return
	}
	vector.StrokeLine(s.dst, s.px(x0), s.px(y0), s.px(x1), s.px(y1), s.px(width), c.NRGBA(), true)
}

// DrawBackdrop paints the static backdrop over the background.
func (s *Surface) DrawBackdrop() {
	if s.dst == nil {
		return
	}
	s.dst.Fill(s.Background.NRGBA())
	w, h := float64(s.displayW), float64(s.displayH)
	for _, b := range s.backdrop {
		s.drawMesh(s.dst, surface.RadialMesh(b.Resolve(w, h), gradientSegments*2))
	}
}

func (s *Surface) sub(x, y, w, h float64) *ebiten.Image {
	r := image.Rect(int(s.px(x)), int(s.px(y)), int(s.px(x+w)+0.5), int(s.px(y+h)+0.5))
	return s.dst.SubImage(r).(*ebiten.Image)
}

func (s *Surface) px(v float64) float32 { return float32(v * s.scale) }

func (s *Surface) drawMesh(dst *ebiten.Image, m surface.Mesh) {
	if len(m.Indices) == 0 {
		return
	}
	vs := toVertices(m, float32(s.scale))
	dst.DrawTriangles(vs, m.Indices, whiteSubImage, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func toVertices(m surface.Mesh, scale float32) []ebiten.Vertex {
	vs := make([]ebiten.Vertex, len(m.Vertices))
	for i, v := range m.Vertices {
		vs[i] = ebiten.Vertex{
			DstX:   v.X * scale,
			DstY:   v.Y * scale,
			SrcX:   1,
			SrcY:   1,
			ColorR: float32(v.Color.R) / 255,
			ColorG: float32(v.Color.G) / 255,
			ColorB: float32(v.Color.B) / 255,
			ColorA: float32(v.Color.A),
		}
	}
	return vs
}
