package surface

// OpKind identifies a recorded drawing call.
type OpKind int

const (
	OpClear OpKind = iota
	OpFillRect
	OpFillRectGradient
	OpFillCircle
	OpFillCircleGradient
	OpStrokeLine
)

func (k OpKind) String() string {
	switch k {
	case OpClear:
		return "clear"
	case OpFillRect:
		return "fill_rect"
	case OpFillRectGradient:
		return "fill_rect_gradient"
	case OpFillCircle:
		return "fill_circle"
	case OpFillCircleGradient:
		return "fill_circle_gradient"
	case OpStrokeLine:
		return "stroke_line"
	default:
		return "unknown"
	}
}

// Op is one recorded drawing call. Fields unused by a kind are zero.
type Op struct {
	Kind     OpKind
	X, Y     float64
	X1, Y1   float64
	W, H     float64
	R        float64
	Width    float64
	Color    Color
	Gradient RadialGradient
}

// Recorder is a Surface that records calls instead of drawing them. With
// KeepOps false it only counts, which keeps long headless runs cheap.
type Recorder struct {
	KeepOps bool

	Ops    []Op
	Counts map[OpKind]int

	BackingW, BackingH int
	DisplayW, DisplayH int
	Scale              float64
	TransformCalls     int
	Backdrop           []BackdropGradient

	OriginX, OriginY float64
}

func NewRecorder(keepOps bool) *Recorder {
	return &Recorder{KeepOps: keepOps, Counts: make(map[OpKind]int), Scale: 1}
}

func (r *Recorder) SetBackingSize(w, h int) { r.BackingW, r.BackingH = w, h }
func (r *Recorder) SetDisplaySize(w, h int) { r.DisplayW, r.DisplayH = w, h }

func (r *Recorder) SetTransform(scale float64) {
	r.Scale = scale
	r.TransformCalls++
}

func (r *Recorder) ClearRect(x, y, w, h float64) {
	r.record(Op{Kind: OpClear, X: x, Y: y, W: w, H: h})
}

func (r *Recorder) FillRect(x, y, w, h float64, c Color) {
	r.record(Op{Kind: OpFillRect, X: x, Y: y, W: w, H: h, Color: c})
}

func (r *Recorder) FillRectGradient(x, y, w, h float64, g RadialGradient) {
	r.record(Op{Kind: OpFillRectGradient, X: x, Y: y, W: w, H: h, Gradient: g})
}

func (r *Recorder) FillCircle(cx, cy, radius float64, c Color) {
	r.record(Op{Kind: OpFillCircle, X: cx, Y: cy, R: radius, Color: c})
}

func (r *Recorder) FillCircleGradient(cx, cy, radius float64, g RadialGradient) {
	r.record(Op{Kind: OpFillCircleGradient, X: cx, Y: cy, R: radius, Gradient: g})
}

func (r *Recorder) StrokeLine(x0, y0, x1, y1, width float64, c Color) {
	r.record(Op{Kind: OpStrokeLine, X: x0, Y: y0, X1: x1, Y1: y1, Width: width, Color: c})
}

func (r *Recorder) SetBackdrop(gradients []BackdropGradient) {
	r.Backdrop = append(r.Backdrop[:0], gradients...)
}

func (r *Recorder) Origin() (float64, float64) { return r.OriginX, r.OriginY }

// Count returns how many calls of kind were recorded.
func (r *Recorder) Count(kind OpKind) int { return r.Counts[kind] }

// LastFrame returns the ops recorded since the most recent clear.
func (r *Recorder) LastFrame() []Op {
	for i := len(r.Ops) - 1; i >= 0; i-- {
		if r.Ops[i].Kind == OpClear {
			return r.Ops[i:]
		}
	}
	return r.Ops
}

// Reset drops recorded ops and counts but keeps geometry.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
	for k := range r.Counts {
		delete(r.Counts, k)
	}
}

func (r *Recorder) record(op Op) {
	if r.Counts == nil {
		r.Counts = make(map[OpKind]int)
	}
	r.Counts[op.Kind]++
	if r.KeepOps {
		r.Ops = append(r.Ops, op)
	}
}
