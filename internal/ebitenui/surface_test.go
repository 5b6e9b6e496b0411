package ebitenui

import (
	"math"
	"testing"

	"github.com/san-kum/driftfield/internal/surface"
)

func TestToVertices(t *testing.T) {
	m := surface.RadialMesh(surface.RadialGradient{
		X: 10, Y: 20, Radius: 5,
		Stops: []surface.Stop{
			{Offset: 0, Color: surface.RGBA(255, 0, 0, 0.5)},
			{Offset: 1, Color: surface.Transparent},
		},
	}, 8)

	vs := toVertices(m, 2)
	if len(vs) != len(m.Vertices) {
		t.Fatalf("vertices = %d, want %d", len(vs), len(m.Vertices))
	}

	centre := vs[0]
	if centre.DstX != 20 || centre.DstY != 40 {
		t.Errorf("centre = (%v,%v), want (20,40)", centre.DstX, centre.DstY)
	}
	if centre.ColorR != 1 || centre.ColorG != 0 || centre.ColorA != 0.5 {
		t.Errorf("centre color = %v %v %v %v", centre.ColorR, centre.ColorG, centre.ColorB, centre.ColorA)
	}
	if centre.SrcX != 1 || centre.SrcY != 1 {
		t.Error("vertices must sample the white pixel")
	}

	edge := vs[len(vs)-1]
	if edge.ColorA != 0 {
		t.Errorf("edge alpha = %v, want 0", edge.ColorA)
	}
	if d := math.Hypot(float64(edge.DstX-20), float64(edge.DstY-40)); math.Abs(d-10) > 1e-3 {
		t.Errorf("edge distance = %v, want 10", d)
	}
}

func TestWindowGeometry(t *testing.T) {
	w := &Window{width: 640, height: 480, ratio: 2}
	vp := surface.NewViewport(w, surface.NewRecorder(false))
	vp.Resize()

	bw, bh := vp.Backing()
	if bw != 1280 || bh != 960 {
		t.Errorf("backing = %dx%d, want 1280x960", bw, bh)
	}
}

func TestSurfaceWithoutTarget(t *testing.T) {
	s := NewSurface(background)
	s.SetDisplaySize(10, 10)
	// Drawing outside Game.Draw is a no-op rather than a panic.
	s.ClearRect(0, 0, 10, 10)
	s.FillCircle(1, 1, 1, surface.RGBA(1, 1, 1, 1))
	s.StrokeLine(0, 0, 1, 1, 1, surface.RGBA(1, 1, 1, 1))
	s.DrawBackdrop()
}
