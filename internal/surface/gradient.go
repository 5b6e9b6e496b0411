package surface

import "math"

// Stop is a color stop; Offset is in [0, 1] along the gradient radius.
type Stop struct {
	Offset float64
	Color  Color
}

// RadialGradient is a concentric radial gradient centred at (X, Y) with the
// last stop reached at Radius.
type RadialGradient struct {
	X, Y   float64
	Radius float64
	Stops  []Stop
}

// At evaluates the gradient color at distance d from the centre.
func (g RadialGradient) At(d float64) Color {
	if len(g.Stops) == 0 {
		return Transparent
	}
	if g.Radius <= 0 {
		return g.Stops[len(g.Stops)-1].Color
	}
	t := d / g.Radius
	if t <= g.Stops[0].Offset {
		return g.Stops[0].Color
	}
	for i := 1; i < len(g.Stops); i++ {
		a, b := g.Stops[i-1], g.Stops[i]
		if t <= b.Offset {
			span := b.Offset - a.Offset
			if span <= 0 {
				return b.Color
			}
			return lerpColor(a.Color, b.Color, (t-a.Offset)/span)
		}
	}
	return g.Stops[len(g.Stops)-1].Color
}

// BackdropGradient is a radial gradient positioned relative to the surface,
// the way a CSS background is. CX and CY are fractions of the surface size;
// Extent is the fraction of the distance to the farthest corner at which
// Color has faded to transparent.
type BackdropGradient struct {
	CX, CY float64
	Extent float64
	Color  Color
}

// Resolve turns the backdrop into an absolute gradient for a w×h surface.
func (b BackdropGradient) Resolve(w, h float64) RadialGradient {
	cx, cy := b.CX*w, b.CY*h
	far := math.Max(math.Max(math.Hypot(cx, cy), math.Hypot(w-cx, cy)),
		math.Max(math.Hypot(cx, h-cy), math.Hypot(w-cx, h-cy)))
	return RadialGradient{
		X:      cx,
		Y:      cy,
		Radius: b.Extent * far,
		Stops: []Stop{
			{Offset: 0, Color: b.Color},
			{Offset: 1, Color: Transparent},
		},
	}
}

// Vertex is a colored mesh vertex in surface coordinates.
type Vertex struct {
	X, Y  float32
	Color Color
}

// Mesh is an indexed triangle list.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint16
}

// RadialMesh tessellates a radial gradient into rings of triangles, one ring
// per pair of adjacent stops. Triangles are emitted counter-clockwise on a
// y-down screen: (outer a, inner a, inner b), (inner b, outer a, outer b).
func RadialMesh(g RadialGradient, segments int) Mesh {
	if segments < 3 {
		segments = 3
	}
	stops := g.Stops
	if len(stops) == 0 || g.Radius <= 0 {
		return Mesh{}
	}
	if stops[0].Offset > 0 {
		stops = append([]Stop{{Offset: 0, Color: stops[0].Color}}, stops...)
	}
	stops = retintTransparent(stops)

	ring := segments + 1
	m := Mesh{
		Vertices: make([]Vertex, 0, len(stops)*ring),
		Indices:  make([]uint16, 0, (len(stops)-1)*segments*6),
	}
	for _, st := range stops {
		r := st.Offset * g.Radius
		for k := 0; k <= segments; k++ {
			a := 2 * math.Pi * float64(k) / float64(segments)
			m.Vertices = append(m.Vertices, Vertex{
				X:     float32(g.X + math.Cos(a)*r),
				Y:     float32(g.Y + math.Sin(a)*r),
				Color: st.Color,
			})
		}
	}
	for s := 1; s < len(stops); s++ {
		inner := uint16((s - 1) * ring)
		outer := uint16(s * ring)
		for k := uint16(0); k < uint16(segments); k++ {
			m.Indices = append(m.Indices,
				outer+k, inner+k, inner+k+1,
				inner+k+1, outer+k, outer+k+1,
			)
		}
	}
	return m
}

// lerpColor interpolates with premultiplied alpha, as canvas gradients do,
// so fading toward a transparent stop keeps the hue instead of darkening.
func lerpColor(a, b Color, t float64) Color {
	alpha := a.A + (b.A-a.A)*t
	mix := func(x, y uint8) uint8 {
		if alpha <= 0 {
			return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
		}
		px, py := float64(x)*a.A, float64(y)*b.A
		return uint8(math.Round(math.Min(255, (px+(py-px)*t)/alpha)))
	}
	return Color{
		R: mix(a.R, b.R),
		G: mix(a.G, b.G),
		B: mix(a.B, b.B),
		A: alpha,
	}
}

// retintTransparent gives fully transparent stops the color of their nearest
// visible neighbour. Vertex colors are interpolated with straight alpha, so a
// transparent black stop would otherwise pull the ring toward black.
func retintTransparent(stops []Stop) []Stop {
	out := append([]Stop(nil), stops...)
	for i := range out {
		if out[i].Color.A > 0 {
			continue
		}
		for _, j := range []int{i - 1, i + 1} {
			if j >= 0 && j < len(stops) && stops[j].Color.A > 0 {
				out[i].Color = stops[j].Color.WithAlpha(0)
				break
			}
		}
	}
	return out
}
