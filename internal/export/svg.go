// Package export renders frames to SVG documents.
package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/san-kum/driftfield/internal/surface"
)

// SVG is a Surface that builds an SVG document. It keeps only what was drawn
// since the last full clear, so after N frames it holds the Nth.
type SVG struct {
	// Background fills the page under the backdrop and the drawing.
	Background surface.Color

	backingW, backingH int
	displayW, displayH int
	scale              float64

	defs     strings.Builder
	body     strings.Builder
	gradient int
	backdrop []surface.BackdropGradient
}

func NewSVG(background surface.Color) *SVG {
	return &SVG{Background: background, scale: 1}
}

func (s *SVG) SetBackingSize(w, h int)    { s.backingW, s.backingH = w, h }
func (s *SVG) SetDisplaySize(w, h int)    { s.displayW, s.displayH = w, h }
func (s *SVG) SetTransform(scale float64) { s.scale = scale }

func (s *SVG) Origin() (float64, float64) { return 0, 0 }

func (s *SVG) SetBackdrop(gradients []surface.BackdropGradient) {
	s.backdrop = append(s.backdrop[:0], gradients...)
}

// ClearRect over the whole display drops everything drawn so far; a partial
// clear paints the background over the area.
func (s *SVG) ClearRect(x, y, w, h float64) {
	if x <= 0 && y <= 0 && w >= float64(s.displayW) && h >= float64(s.displayH) {
		s.defs.Reset()
		s.body.Reset()
		s.gradient = 0
		return
	}
	s.FillRect(x, y, w, h, s.Background)
}

func (s *SVG) FillRect(x, y, w, h float64, c surface.Color) {
	fmt.Fprintf(&s.body, `<rect x="%s" y="%s" width="%s" height="%s"%s/>`+"\n",
		num(x), num(y), num(w), num(h), paint("fill", c))
}

func (s *SVG) FillRectGradient(x, y, w, h float64, g surface.RadialGradient) {
	id := s.defineGradient(g)
	fmt.Fprintf(&s.body, `<rect x="%s" y="%s" width="%s" height="%s" fill="url(#%s)"/>`+"\n",
		num(x), num(y), num(w), num(h), id)
}

func (s *SVG) FillCircle(cx, cy, r float64, c surface.Color) {
	fmt.Fprintf(&s.body, `<circle cx="%s" cy="%s" r="%s"%s/>`+"\n", num(cx), num(cy), num(r), paint("fill", c))
}

func (s *SVG) FillCircleGradient(cx, cy, r float64, g surface.RadialGradient) {
	id := s.defineGradient(g)
	fmt.Fprintf(&s.body, `<circle cx="%s" cy="%s" r="%s" fill="url(#%s)"/>`+"\n", num(cx), num(cy), num(r), id)
}

func (s *SVG) StrokeLine(x0, y0, x1, y1, width float64, c surface.Color) {
	fmt.Fprintf(&s.body, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke-width="%s"%s/>`+"\n",
		num(x0), num(y0), num(x1), num(y1), num(width), paint("stroke", c))
}

func (s *SVG) defineGradient(g surface.RadialGradient) string {
	id := "g" + strconv.Itoa(s.gradient)
	s.gradient++
	writeGradient(&s.defs, id, g)
	return id
}

func writeGradient(b *strings.Builder, id string, g surface.RadialGradient) {
	fmt.Fprintf(b, `<radialGradient id="%s" gradientUnits="userSpaceOnUse" cx="%s" cy="%s" r="%s">`+"\n",
		id, num(g.X), num(g.Y), num(g.Radius))
	for _, st := range g.Stops {
		fmt.Fprintf(b, `<stop offset="%s" stop-color="%s" stop-opacity="%s"/>`+"\n",
			num(st.Offset), rgb(st.Color), num(st.Color.A))
	}
	b.WriteString("</radialGradient>\n")
}

// WriteTo writes the complete document.
func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.String())
	return int64(n), err
}

func (s *SVG) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
`, s.backingW, s.backingH, s.backingW, s.backingH)

	sb.WriteString("<defs>\n")
	for i, b := range s.backdrop {
		writeGradient(&sb, "bg"+strconv.Itoa(i), b.Resolve(float64(s.displayW), float64(s.displayH)))
	}
	sb.WriteString(s.defs.String())
	sb.WriteString("</defs>\n")

	fmt.Fprintf(&sb, `<rect width="100%%" height="100%%"%s/>`+"\n", paint("fill", s.Background))
	fmt.Fprintf(&sb, `<g transform="scale(%s)">`+"\n", num(s.scale))
	for i := range s.backdrop {
		fmt.Fprintf(&sb, `<rect width="%d" height="%d" fill="url(#bg%d)"/>`+"\n", s.displayW, s.displayH, i)
	}
	sb.WriteString(s.body.String())
	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}

func rgb(c surface.Color) string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

func paint(attr string, c surface.Color) string {
	if c.A >= 1 {
		return fmt.Sprintf(` %s="%s"`, attr, rgb(c))
	}
	return fmt.Sprintf(` %s="%s" %s-opacity="%s"`, attr, rgb(c), attr, num(c.A))
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 32)
}
