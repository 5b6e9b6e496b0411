package viz

import (
	"math"

	"github.com/san-kum/driftfield/internal/surface"
)

const (
	// CellWidth and CellHeight are the logical pixels one terminal cell
	// stands for. A braille cell is 2x4 dots, so a dot is 4x4 pixels.
	CellWidth  = 8
	CellHeight = 16
	dotSize    = 4
)

// TermWindow sizes the field to a block of terminal cells.
type TermWindow struct {
	Cols, Rows int
}

func (w *TermWindow) InnerSize() (float64, float64) {
	return float64(w.Cols * CellWidth), float64(w.Rows * CellHeight)
}

func (w *TermWindow) DevicePixelRatio() float64 { return 1 }

// Surface rasterizes drawing calls onto a braille Canvas. Dots are binary,
// so fills fainter than MinFill and strokes fainter than MinStroke are
// dropped; the dim and ambient layers never show. The static backdrop is
// drawn separately by DrawBackdrop.
type Surface struct {
	Canvas    *Canvas
	MinFill   float64
	MinStroke float64
	// OriginRow is the terminal row the canvas starts on, for pointer
	// translation.
	OriginRow int

	displayW, displayH int
	backdrop           []surface.BackdropGradient
}

func NewSurface() *Surface {
	return &Surface{
		Canvas:    NewCanvas(0, 0),
		MinFill:   0.3,
		MinStroke: 0.02,
	}
}

// SetBackingSize reallocates the canvas to cover w x h logical pixels.
func (s *Surface) SetBackingSize(w, h int) {
	cols := int(math.Ceil(float64(w) / CellWidth))
	rows := int(math.Ceil(float64(h) / CellHeight))
	if cols != s.Canvas.Width || rows != s.Canvas.Height {
		s.Canvas = NewCanvas(cols, rows)
	}
}

func (s *Surface) SetDisplaySize(w, h int) { s.displayW, s.displayH = w, h }

// SetTransform is a no-op: terminal windows always report a ratio of 1.
func (s *Surface) SetTransform(float64) {}

func (s *Surface) Origin() (float64, float64) {
	return 0, float64(s.OriginRow * CellHeight)
}

func (s *Surface) SetBackdrop(gradients []surface.BackdropGradient) {
	s.backdrop = append(s.backdrop[:0], gradients...)
}

// Backdrop returns the gradients set for static mode.
func (s *Surface) Backdrop() []surface.BackdropGradient { return s.backdrop }

// DrawBackdrop paints the static-mode gradients over a w x h field as a
// checkered wash. Their alpha is far below MinFill, so they skip the fill
// threshold and rely on the alpha lift in Canvas.Render to show.
func (s *Surface) DrawBackdrop(w, h float64) {
	s.Canvas.Clear()
	for _, b := range s.backdrop {
		g := b.Resolve(w, h)
		for py := dot(g.Y - g.Radius); py <= dot(g.Y+g.Radius); py++ {
			for px := dot(g.X - g.Radius); px <= dot(g.X+g.Radius); px++ {
				if px < 0 || py < 0 || (px+py)%2 != 0 {
					continue
				}
				lx, ly := float64(px*dotSize), float64(py*dotSize)
				if c := g.At(math.Hypot(lx-g.X, ly-g.Y)); c.A > 0 {
					s.Canvas.SetColor(px, py, c)
				}
			}
		}
	}
}

func (s *Surface) ClearRect(x, y, w, h float64) {
	if x <= 0 && y <= 0 && w >= float64(s.displayW) && h >= float64(s.displayH) {
		s.Canvas.Clear()
		return
	}
	for py := dot(y); py < dot(y+h); py++ {
		for px := dot(x); px < dot(x+w); px++ {
			s.Canvas.Unset(px, py)
		}
	}
}

func (s *Surface) FillRect(x, y, w, h float64, c surface.Color) {
	if c.A < s.MinFill {
		return
	}
	for py := dot(y); py < dot(y+h); py++ {
		for px := dot(x); px < dot(x+w); px++ {
			s.Canvas.SetColor(px, py, c)
		}
	}
}

func (s *Surface) FillRectGradient(x, y, w, h float64, g surface.RadialGradient) {
	if len(g.Stops) == 0 || g.Stops[0].Color.A < s.MinFill {
		return
	}
	for py := dot(y); py < dot(y+h); py++ {
		for px := dot(x); px < dot(x+w); px++ {
			lx, ly := float64(px*dotSize), float64(py*dotSize)
			if c := g.At(math.Hypot(lx-g.X, ly-g.Y)); c.A >= s.MinFill {
				s.Canvas.SetColor(px, py, c)
			}
		}
	}
}

func (s *Surface) FillCircle(cx, cy, r float64, c surface.Color) {
	if c.A < s.MinFill {
		return
	}
	s.Canvas.DrawDisk(cx/dotSize, cy/dotSize, r/dotSize, c)
}

// FillCircleGradient draws the part of the gradient opaque enough to show.
func (s *Surface) FillCircleGradient(cx, cy, r float64, g surface.RadialGradient) {
	if len(g.Stops) == 0 || g.Stops[0].Color.A < s.MinFill {
		return
	}
	reach := 0.0
	for _, st := range g.Stops {
		if st.Color.A >= s.MinFill {
			reach = st.Offset
		}
	}
	s.Canvas.DrawDisk(cx/dotSize, cy/dotSize, reach*r/dotSize, g.Stops[0].Color)
}

func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, c surface.Color) {
	if c.A < s.MinStroke {
		return
	}
	s.Canvas.DrawLine(dot(x0), dot(y0), dot(x1), dot(y1), c)
}

func dot(v float64) int {
	return int(math.Floor(v / dotSize))
}
