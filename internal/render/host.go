package render

import "time"

// FrameFunc is invoked by the host just before a repaint with the host's
// timestamp for that frame.
type FrameFunc func(now time.Duration)

// Scheduler runs a callback once, before the next repaint. The engine calls
// it again from inside each callback to keep the loop going.
type Scheduler interface {
	RequestFrame(fn FrameFunc)
}

// Clock is a monotonic time source.
type Clock interface {
	Now() time.Duration
}

// SystemClock measures time since it was created.
type SystemClock struct {
	start time.Time
}

func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

func (c *SystemClock) Now() time.Duration { return time.Since(c.start) }

// VirtualClock only moves when told to.
type VirtualClock struct {
	now time.Duration
}

func (c *VirtualClock) Now() time.Duration       { return c.now }
func (c *VirtualClock) Advance(d time.Duration) { c.now += d }
func (c *VirtualClock) Set(t time.Duration)     { c.now = t }

// ManualScheduler holds at most one pending callback until the host fires
// it. Hosts with their own repaint loop (raylib, ebiten, bubbletea ticks)
// and headless runners drive the engine through it.
type ManualScheduler struct {
	pending  FrameFunc
	requests int
}

func (s *ManualScheduler) RequestFrame(fn FrameFunc) {
	s.pending = fn
	s.requests++
}

// Fire runs the pending callback, if any, and reports whether it did.
func (s *ManualScheduler) Fire(now time.Duration) bool {
	fn := s.pending
	if fn == nil {
		return false
	}
	s.pending = nil
	fn(now)
	return true
}

func (s *ManualScheduler) Pending() bool { return s.pending != nil }

// Requests counts every RequestFrame call since creation.
func (s *ManualScheduler) Requests() int { return s.requests }
