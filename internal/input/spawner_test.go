package input

import (
	"math/rand"
	"testing"

	"github.com/san-kum/driftfield/internal/particle"
	"github.com/san-kum/driftfield/internal/surface"
)

func newStore() *particle.Store {
	return particle.NewStore(particle.Cap, particle.SeededSpec(), particle.SpawnedSpec(), rand.New(rand.NewSource(5)))
}

func TestOnPointerMoveSpawnsTwo(t *testing.T) {
	store := newStore()
	sp := NewSpawner(store, nil, DefaultPerMove)

	sp.OnPointerMove(100, 100)

	if store.Len() != 2 {
		t.Fatalf("population = %d, want 2", store.Len())
	}
	snap := store.Snapshot()
	if snap[0].X == snap[1].X && snap[0].Y == snap[1].Y {
		t.Error("expected independent jitter for the two particles")
	}
}

func TestOnPointerMoveTranslatesToSurface(t *testing.T) {
	store := newStore()
	rec := surface.NewRecorder(false)
	rec.OriginX, rec.OriginY = 40, 25

	NewSpawner(store, rec, DefaultPerMove).OnPointerMove(140, 125)

	for _, p := range store.Snapshot() {
		if p.X < 94 || p.X > 106 || p.Y < 94 || p.Y > 106 {
			t.Errorf("particle at (%v,%v), want within 6px of (100,100)", p.X, p.Y)
		}
	}
}

func TestOnPointerMoveRespectsCap(t *testing.T) {
	store := newStore()
	sp := NewSpawner(store, nil, DefaultPerMove)
	for i := 0; i < 500; i++ {
		sp.OnPointerMove(float64(i), float64(i))
	}
	if store.Len() != particle.Cap {
		t.Errorf("population = %d, want %d", store.Len(), particle.Cap)
	}
}
