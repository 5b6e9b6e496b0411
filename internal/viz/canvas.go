package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/driftfield/internal/surface"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a grid of braille cells. Each cell also remembers the most opaque
// color drawn into it, which Render uses as the cell's foreground.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]surface.Color
}

func NewCanvas(w, h int) *Canvas {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Colors: make([][]surface.Color, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]surface.Color, w)
	}
	c.Clear()
	return c
}

// Set sets a pixel at (x, y) in sub-pixel coordinates.
// The canvas size in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	c.SetColor(x, y, surface.Color{R: 255, G: 255, B: 255, A: 1})
}

// SetColor sets a pixel and offers col as the cell color.
func (c *Canvas) SetColor(x, y int, col surface.Color) {
	if x < 0 || y < 0 {
		return
	}

	cx := x / 2
	row := y / 4
	if cx >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][cx] |= rune(pixelMap[y%4][x%2])
	if col.A >= c.Colors[row][cx].A {
		c.Colors[row][cx] = col
	}
}

// Unset clears a pixel
func (c *Canvas) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	cx := x / 2
	row := y / 4
	if cx >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][cx] &^= rune(pixelMap[y%4][x%2])
	if c.Grid[row][cx] < blank {
		c.Grid[row][cx] = blank
	}
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Colors[i][j] = surface.Transparent
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, col surface.Color) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.SetColor(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawDisk fills a disk of sub-pixel radius r. Radii under one sub-pixel
// still set the centre dot.
func (c *Canvas) DrawDisk(cx, cy, r float64, col surface.Color) {
	x0, y0 := int(cx), int(cy)
	if r < 1 {
		c.SetColor(x0, y0, col)
		return
	}
	ir := int(r + 0.5)
	for dy := -ir; dy <= ir; dy++ {
		for dx := -ir; dx <= ir; dx++ {
			if float64(dx*dx+dy*dy) <= r*r {
				c.SetColor(x0+dx, y0+dy, col)
			}
		}
	}
}

// String renders the grid without color.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render renders the grid with each cell in its color, joining runs of equal
// color into one styled span.
func (c *Canvas) Render(bg surface.Color) string {
	var b strings.Builder
	for i, row := range c.Grid {
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && c.cellColor(i, j, bg) == c.cellColor(i, start, bg) {
				continue
			}
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(c.cellColor(i, start, bg)))
			b.WriteString(style.Render(string(row[start:j])))
			start = j
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// cellColor blends the cell color over bg. Terminal cells cannot show the
// faint alphas of the field, so opacity is lifted before blending.
func (c *Canvas) cellColor(row, col int, bg surface.Color) string {
	fg := c.Colors[row][col]
	if c.Grid[row][col] == blank {
		return hex(bg)
	}
	a := fg.A + 0.35
	if a > 1 {
		a = 1
	}
	return hex(blend(bg, fg, a))
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
