package metrics

import "time"

// Frame is what the engine reports after drawing one frame.
type Frame struct {
	Index      int
	Time       time.Duration // host timestamp of the frame callback
	Dt         float64       // normalized, clamped integration step
	Population int
	Links      int
	Cost       time.Duration // wall time spent integrating and drawing
}

// Observer receives every rendered frame.
type Observer interface {
	OnFrame(f Frame)
}

// Metric reduces a stream of frames to a single value.
type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

// Collector keeps the frames it sees and feeds its metrics.
type Collector struct {
	Frames  []Frame
	metrics []Metric
	keep    bool
}

// NewCollector builds a collector. With keepFrames false only the metrics are
// updated, which bounds memory for long runs.
func NewCollector(keepFrames bool, metrics ...Metric) *Collector {
	if len(metrics) == 0 {
		metrics = Defaults()
	}
	return &Collector{metrics: metrics, keep: keepFrames}
}

// Defaults is the standard metric set reported by bench runs.
func Defaults() []Metric {
	return []Metric{
		NewFrameCount(),
		NewMeanCost(),
		NewPercentileCost(0.95),
		NewMaxCost(),
		NewMeanLinks(),
		NewMaxLinks(),
		NewFinalPopulation(),
	}
}

func (c *Collector) OnFrame(f Frame) {
	if c.keep {
		c.Frames = append(c.Frames, f)
	}
	for _, m := range c.metrics {
		m.Observe(f)
	}
}

// Summary returns every metric by name.
func (c *Collector) Summary() map[string]float64 {
	out := make(map[string]float64, len(c.metrics))
	for _, m := range c.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

func (c *Collector) Reset() {
	c.Frames = c.Frames[:0]
	for _, m := range c.metrics {
		m.Reset()
	}
}
