package viz

import (
	"testing"

	"github.com/san-kum/driftfield/internal/motionpref"
	"github.com/san-kum/driftfield/internal/surface"
)

func newTestSurface() *Surface {
	s := NewSurface()
	s.SetBackingSize(80, 64)
	s.SetDisplaySize(80, 64)
	return s
}

func countDots(c *Canvas) int {
	n := 0
	for _, row := range c.Grid {
		for _, r := range row {
			for b := r - blank; b > 0; b &= b - 1 {
				n++
			}
		}
	}
	return n
}

func TestTermWindow(t *testing.T) {
	w := &TermWindow{Cols: 100, Rows: 30}
	width, height := w.InnerSize()
	if width != 800 || height != 480 || w.DevicePixelRatio() != 1 {
		t.Errorf("window = %vx%v@%v", width, height, w.DevicePixelRatio())
	}
}

func TestSurfaceBackingSize(t *testing.T) {
	s := NewSurface()
	s.SetBackingSize(81, 33)
	if s.Canvas.Width != 11 || s.Canvas.Height != 3 {
		t.Errorf("canvas = %dx%d, want 11x3", s.Canvas.Width, s.Canvas.Height)
	}
}

func TestSurfaceDropsFaintLayers(t *testing.T) {
	s := newTestSurface()

	s.FillRect(0, 0, 80, 64, surface.RGBA(2, 2, 6, 0.15))
	s.FillRectGradient(0, 0, 80, 64, surface.RadialGradient{
		X: 12, Y: 8, Radius: 64,
		Stops: []surface.Stop{{Offset: 0, Color: surface.RGBA(80, 140, 255, 0.02)}, {Offset: 1, Color: surface.Transparent}},
	})
	s.FillCircleGradient(40, 32, 24, surface.RadialGradient{
		X: 40, Y: 32, Radius: 24,
		Stops: []surface.Stop{{Offset: 0, Color: surface.RGBA(1, 1, 1, 0.12)}, {Offset: 1, Color: surface.Transparent}},
	})
	s.StrokeLine(0, 0, 80, 64, 1, surface.RGBA(100, 170, 255, 0.01))

	if n := countDots(s.Canvas); n != 0 {
		t.Errorf("faint layers set %d dots, want 0", n)
	}
}

func TestSurfaceDrawsCoresAndCloseLinks(t *testing.T) {
	s := newTestSurface()

	s.FillCircle(40, 32, 2, surface.RGBA(1, 1, 1, 0.9))
	if n := countDots(s.Canvas); n != 1 {
		t.Errorf("core set %d dots, want 1", n)
	}

	s.StrokeLine(0, 0, 28, 0, 1, surface.RGBA(100, 170, 255, 0.03))
	if n := countDots(s.Canvas); n != 9 {
		t.Errorf("after link %d dots, want 9", n)
	}

	s.ClearRect(0, 0, 80, 64)
	if n := countDots(s.Canvas); n != 0 {
		t.Errorf("after clear %d dots, want 0", n)
	}
}

func TestSurfacePartialClear(t *testing.T) {
	s := newTestSurface()
	s.FillRect(0, 0, 80, 64, surface.RGBA(1, 1, 1, 1))
	total := countDots(s.Canvas)

	s.ClearRect(0, 0, 8, 16)
	if n := countDots(s.Canvas); n != total-8 {
		t.Errorf("partial clear left %d dots, want %d", n, total-8)
	}
}

func TestSurfaceOrigin(t *testing.T) {
	s := NewSurface()
	s.OriginRow = 2
	if x, y := s.Origin(); x != 0 || y != 32 {
		t.Errorf("origin = (%v,%v), want (0,32)", x, y)
	}
}

func TestSurfaceDrawBackdrop(t *testing.T) {
	s := NewSurface()
	s.SetBackingSize(800, 480)
	s.SetBackdrop(motionpref.Backdrop())
	s.DrawBackdrop(800, 480)

	// Centers at 20%/30% and 80%/70% of 800x480: dots (40,36) and (160,84).
	for _, cell := range []struct{ row, col int }{{9, 20}, {21, 80}} {
		if s.Canvas.Grid[cell.row][cell.col] == blank {
			t.Errorf("cell %v under a backdrop center is blank", cell)
		}
		if a := s.Canvas.Colors[cell.row][cell.col].A; a <= 0 || a > 0.02 {
			t.Errorf("cell %v alpha = %v, want (0, 0.02]", cell, a)
		}
	}
	if s.Canvas.Grid[0][0] != blank || s.Canvas.Grid[29][99] != blank {
		t.Error("corners are outside both washes and should stay blank")
	}

	// Checkered: never two horizontally adjacent dots.
	for row := range s.Canvas.Grid {
		for _, r := range s.Canvas.Grid[row] {
			bits := r - blank
			if bits&0x09 == 0x09 || bits&0x12 == 0x12 || bits&0x24 == 0x24 || bits&0xC0 == 0xC0 {
				t.Fatalf("row %d has adjacent dots in cell %q", row, r)
			}
		}
	}

	s.DrawBackdrop(800, 480)
	first := countDots(s.Canvas)
	s.DrawBackdrop(800, 480)
	if countDots(s.Canvas) != first {
		t.Error("redrawing the backdrop should not accumulate")
	}
}
