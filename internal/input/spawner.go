// Package input turns pointer movement into particles.
package input

import "github.com/san-kum/driftfield/internal/particle"

// DefaultPerMove is how many particles each pointer-move event injects.
const DefaultPerMove = 2

// Originer reports where the drawing surface sits in client coordinates.
type Originer interface {
	Origin() (x, y float64)
}

// Spawner reacts to every pointer move with no batching or rate limiting;
// the store's cap is the only bound.
type Spawner struct {
	store   *particle.Store
	origin  Originer
	perMove int
}

func NewSpawner(store *particle.Store, origin Originer, perMove int) *Spawner {
	if perMove < 0 {
		perMove = 0
	}
	return &Spawner{store: store, origin: origin, perMove: perMove}
}

// OnPointerMove spawns particles at the surface-local position of a pointer
// event given in client coordinates.
func (s *Spawner) OnPointerMove(clientX, clientY float64) {
	x, y := clientX, clientY
	if s.origin != nil {
		ox, oy := s.origin.Origin()
		x -= ox
		y -= oy
	}
	for i := 0; i < s.perMove; i++ {
		s.store.Spawn(x, y)
	}
}
