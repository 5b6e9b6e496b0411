package viz

import (
	"strings"
	"testing"

	"github.com/san-kum/driftfield/internal/surface"
)

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(2, 1)

	c.Set(0, 0)
	c.Set(1, 3)
	if got := c.Grid[0][0]; got != 0x2800|0x1|0x80 {
		t.Errorf("cell = %U, want dots 1 and 8", got)
	}

	c.Unset(0, 0)
	if got := c.Grid[0][0]; got != 0x2800|0x80 {
		t.Errorf("cell = %U after unset", got)
	}

	// Out of range writes are ignored.
	c.Set(-1, 0)
	c.Set(4, 0)
	c.Set(0, 4)
	if c.Grid[0][1] != blank {
		t.Error("out of range write touched the grid")
	}
}

func TestCanvasKeepsBrightestColor(t *testing.T) {
	c := NewCanvas(1, 1)
	dim := surface.RGBA(10, 10, 10, 0.2)
	bright := surface.RGBA(200, 200, 200, 0.9)

	c.SetColor(0, 0, bright)
	c.SetColor(1, 1, dim)
	if c.Colors[0][0] != bright {
		t.Errorf("cell color = %v, want %v", c.Colors[0][0], bright)
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(4, 1)
	c.DrawLine(0, 0, 7, 0, surface.RGBA(1, 1, 1, 1))
	for i := 0; i < 4; i++ {
		if c.Grid[0][i] != 0x2800|0x1|0x8 {
			t.Errorf("cell %d = %U, want top row set", i, c.Grid[0][i])
		}
	}
}

func TestCanvasDrawDisk(t *testing.T) {
	c := NewCanvas(4, 2)
	col := surface.RGBA(1, 1, 1, 1)

	c.DrawDisk(3, 3, 0.4, col)
	if c.Grid[0][1] != 0x2800|0x80 {
		t.Errorf("tiny disk = %U, want the single centre dot", c.Grid[0][1])
	}

	c.Clear()
	c.DrawDisk(3, 3, 2, col)
	set := 0
	for _, row := range c.Grid {
		for _, r := range row {
			for b := r - blank; b > 0; b &= b - 1 {
				set++
			}
		}
	}
	if set != 13 {
		t.Errorf("radius-2 disk set %d dots, want 13", set)
	}
}

func TestCanvasRender(t *testing.T) {
	c := NewCanvas(3, 2)
	c.SetColor(0, 0, surface.RGBA(100, 170, 255, 1))

	out := c.Render(surface.RGBA(0, 0, 0, 1))
	if strings.Count(out, "\n") != 2 {
		t.Errorf("render has %d lines, want 2", strings.Count(out, "\n"))
	}
	if !strings.Contains(out, string(rune(0x2801))) {
		t.Error("render lost the set dot")
	}
	if c.String() != "⠁⠀⠀\n⠀⠀⠀\n" {
		t.Errorf("plain render = %q", c.String())
	}
}

func TestCellColor(t *testing.T) {
	c := NewCanvas(2, 1)
	bg := surface.RGBA(0, 0, 0, 1)
	c.SetColor(0, 0, surface.RGBA(255, 255, 255, 1))
	c.SetColor(2, 0, surface.RGBA(255, 255, 255, 0.15))

	if got := c.cellColor(0, 0, bg); got != "#ffffff" {
		t.Errorf("opaque cell = %s, want #ffffff", got)
	}
	if got := c.cellColor(0, 1, bg); got != "#808080" {
		t.Errorf("faint cell = %s, want #808080", got)
	}

	c.Clear()
	if got := c.cellColor(0, 0, bg); got != "#000000" {
		t.Errorf("blank cell = %s, want background", got)
	}
}
