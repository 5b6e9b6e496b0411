package metrics

import (
	"fmt"
	"math"
	"sort"
	"time"
)

type FrameCount struct{ n int }

func NewFrameCount() *FrameCount     { return &FrameCount{} }
func (c *FrameCount) Name() string   { return "frames" }
func (c *FrameCount) Observe(Frame)  { c.n++ }
func (c *FrameCount) Value() float64 { return float64(c.n) }
func (c *FrameCount) Reset()         { c.n = 0 }

// MeanCost is the average frame cost in milliseconds.
type MeanCost struct {
	sum     time.Duration
	samples int
}

func NewMeanCost() *MeanCost { return &MeanCost{} }

func (m *MeanCost) Name() string { return "cost_mean_ms" }

func (m *MeanCost) Observe(f Frame) {
	m.sum += f.Cost
	m.samples++
}

func (m *MeanCost) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return millis(m.sum) / float64(m.samples)
}

func (m *MeanCost) Reset() {
	m.sum = 0
	m.samples = 0
}

// PercentileCost keeps every sample; frames per run are bounded by the scenario.
type PercentileCost struct {
	q       float64
	samples []float64
}

func NewPercentileCost(q float64) *PercentileCost {
	return &PercentileCost{q: math.Max(0, math.Min(1, q))}
}

func (p *PercentileCost) Name() string {
	return fmt.Sprintf("cost_p%d_ms", int(math.Round(p.q*100)))
}

func (p *PercentileCost) Observe(f Frame) {
	p.samples = append(p.samples, millis(f.Cost))
}

func (p *PercentileCost) Value() float64 {
	if len(p.samples) == 0 {
		return 0
	}
	sorted := append([]float64(nil), p.samples...)
	sort.Float64s(sorted)
	idx := int(math.Ceil(p.q*float64(len(sorted)))) - 1
	if idx < 0 {
		idx = 0
	}
	return sorted[idx]
}

func (p *PercentileCost) Reset() { p.samples = p.samples[:0] }

type MaxCost struct{ max time.Duration }

func NewMaxCost() *MaxCost { return &MaxCost{} }

func (m *MaxCost) Name() string { return "cost_max_ms" }

func (m *MaxCost) Observe(f Frame) {
	if f.Cost > m.max {
		m.max = f.Cost
	}
}

func (m *MaxCost) Value() float64 { return millis(m.max) }
func (m *MaxCost) Reset()         { m.max = 0 }

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
