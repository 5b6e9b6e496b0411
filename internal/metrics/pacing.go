package metrics

import "time"

// FrameBudget is the fraction of frames whose cost stayed within budget.
// With no samples it reports 1.
type FrameBudget struct {
	name       string
	budget     time.Duration
	violations int
	samples    int
}

func NewFrameBudget(budget time.Duration) *FrameBudget {
	return &FrameBudget{
		name:   "budget_ok",
		budget: budget,
	}
}

func (s *FrameBudget) Name() string {
	return s.name
}

func (s *FrameBudget) Observe(f Frame) {
	s.samples++
	if f.Cost > s.budget {
		s.violations++
	}
}

func (s *FrameBudget) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *FrameBudget) Reset() {
	s.violations = 0
	s.samples = 0
}

// ClampedFrames is the fraction of frames whose dt hit the frame-gap clamp,
// i.e. frames the host delivered late.
type ClampedFrames struct {
	name    string
	limit   float64
	clamped int
	samples int
}

// NewClampedFrames counts frames with dt at or above limit.
func NewClampedFrames(limit float64) *ClampedFrames {
	return &ClampedFrames{
		name:  "dt_clamped",
		limit: limit,
	}
}

func (c *ClampedFrames) Name() string {
	return c.name
}

func (c *ClampedFrames) Observe(f Frame) {
	c.samples++
	if f.Dt >= c.limit-1e-9 {
		c.clamped++
	}
}

func (c *ClampedFrames) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return float64(c.clamped) / float64(c.samples)
}

func (c *ClampedFrames) Reset() {
	c.clamped = 0
	c.samples = 0
}
