package particle

// Store owns the live population. Membership changes only through Seed and
// Spawn; callers update particles in place through Range and ForEachPair.
//
// A Store is not safe for concurrent use. The engine touches it from a single
// frame-loop goroutine, which is also where hosts deliver input events.
type Store struct {
	items   []Particle
	cap     int
	seeded  Spec
	spawned Spec
	src     Source
}

func NewStore(capacity int, seeded, spawned Spec, src Source) *Store {
	if capacity < 0 {
		capacity = 0
	}
	return &Store{
		items:   make([]Particle, 0, capacity),
		cap:     capacity,
		seeded:  seeded,
		spawned: spawned,
		src:     src,
	}
}

// Seed replaces the whole population with count particles spread uniformly
// over a w×h surface. count is clamped to [0, Cap()].
func (s *Store) Seed(count int, w, h float64) {
	if count < 0 {
		count = 0
	}
	if count > s.cap {
		count = s.cap
	}
	s.items = s.items[:0]
	for i := 0; i < count; i++ {
		x := Range{0, w}.Sample(s.src)
		y := Range{0, h}.Sample(s.src)
		p := s.seeded.New(s.src, x, y)
		s.items = append(s.items, p)
	}
}

// Spawn appends one interaction particle near (x, y). At capacity the oldest
// particle is evicted first, so the population never exceeds Cap().
func (s *Store) Spawn(x, y float64) {
	if s.cap == 0 {
		return
	}
	p := s.spawned.New(s.src, x, y)
	if len(s.items) >= s.cap {
		copy(s.items, s.items[1:])
		s.items = s.items[:len(s.items)-1]
	}
	s.items = append(s.items, p)
}

func (s *Store) Len() int { return len(s.items) }
func (s *Store) Cap() int { return s.cap }

// Range calls fn for every particle in insertion order.
func (s *Store) Range(fn func(p *Particle)) {
	for i := range s.items {
		fn(&s.items[i])
	}
}

// ForEachPair calls fn once for every unordered pair, with a inserted before b.
func (s *Store) ForEachPair(fn func(a, b *Particle)) {
	n := len(s.items)
	for i := 0; i < n; i++ {
		a := &s.items[i]
		for j := i + 1; j < n; j++ {
			fn(a, &s.items[j])
		}
	}
}

// Snapshot copies the population in insertion order.
func (s *Store) Snapshot() []Particle {
	out := make([]Particle, len(s.items))
	copy(out, s.items)
	return out
}
