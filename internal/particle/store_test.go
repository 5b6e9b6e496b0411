package particle_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/driftfield/internal/particle"
)

func newStore(seed int64) *particle.Store {
	return particle.NewStore(particle.Cap, particle.SeededSpec(), particle.SpawnedSpec(), rand.New(rand.NewSource(seed)))
}

func inPalette(c particle.HSL, p particle.Palette) bool {
	for _, e := range p {
		if e == c {
			return true
		}
	}
	return false
}

var _ = Describe("Store", func() {
	var store *particle.Store

	BeforeEach(func() {
		store = newStore(7)
	})

	Describe("Seed", func() {
		It("fills exactly the requested count within the seeded ranges", func() {
			store.Seed(particle.BaseCount, 800, 600)
			Expect(store.Len()).To(Equal(110))

			spec := particle.SeededSpec()
			for _, p := range store.Snapshot() {
				Expect(p.X).To(BeNumerically(">=", 0))
				Expect(p.X).To(BeNumerically("<=", 800))
				Expect(p.Y).To(BeNumerically(">=", 0))
				Expect(p.Y).To(BeNumerically("<=", 600))
				Expect(spec.VX.Contains(p.VX)).To(BeTrue())
				Expect(spec.VY.Contains(p.VY)).To(BeTrue())
				Expect(p.Size).To(BeNumerically(">=", 0.75))
				Expect(p.Size).To(BeNumerically("<=", 3.2))
				Expect(p.Alpha).To(BeNumerically(">=", 0.5))
				Expect(p.Alpha).To(BeNumerically("<=", 1))
				Expect(p.Phase).To(BeNumerically(">=", 0))
				Expect(p.Phase).To(BeNumerically("<", 2*math.Pi))
				Expect(inPalette(p.Color, particle.Ambient)).To(BeTrue())
			}
		})

		It("replaces the previous population", func() {
			store.Seed(50, 800, 600)
			store.Spawn(10, 10)
			store.Seed(particle.BaseCount, 800, 600)
			Expect(store.Len()).To(Equal(particle.BaseCount))
		})

		It("clamps the count to the store bounds", func() {
			store.Seed(1000, 800, 600)
			Expect(store.Len()).To(Equal(particle.Cap))

			store.Seed(-3, 800, 600)
			Expect(store.Len()).To(BeZero())
		})
	})

	Describe("Spawn", func() {
		It("places spawned particles within the jitter box using the interaction palette", func() {
			for i := 0; i < 100; i++ {
				store.Spawn(400, 300)
			}
			spec := particle.SpawnedSpec()
			for _, p := range store.Snapshot() {
				Expect(p.X).To(BeNumerically("~", 400, 6))
				Expect(p.Y).To(BeNumerically("~", 300, 6))
				Expect(spec.VX.Contains(p.VX)).To(BeTrue())
				Expect(spec.Size.Contains(p.Size)).To(BeTrue())
				Expect(spec.Alpha.Contains(p.Alpha)).To(BeTrue())
				Expect(inPalette(p.Color, particle.Interaction)).To(BeTrue())
			}
		})

		It("never exceeds the cap", func() {
			store.Seed(particle.BaseCount, 800, 600)
			for i := 0; i < 1000; i++ {
				store.Spawn(float64(i), 0)
				Expect(store.Len()).To(BeNumerically("<=", particle.Cap))
			}
			Expect(store.Len()).To(Equal(particle.Cap))
		})

		It("evicts strictly in insertion order once full", func() {
			small := particle.NewStore(3, particle.SeededSpec(), particle.Spec{
				Palette: particle.Interaction,
			}, rand.New(rand.NewSource(1)))

			for _, x := range []float64{1, 2, 3, 4, 5} {
				small.Spawn(x, 0)
			}

			xs := []float64{}
			for _, p := range small.Snapshot() {
				xs = append(xs, p.X)
			}
			Expect(xs).To(Equal([]float64{3, 4, 5}))
		})

		It("evicts exactly one seeded particle per spawn at capacity", func() {
			store.Seed(particle.Cap, 800, 600)
			before := store.Snapshot()

			store.Spawn(-500, -500)

			after := store.Snapshot()
			Expect(after).To(HaveLen(particle.Cap))
			Expect(after[:particle.Cap-1]).To(Equal(before[1:]))
			Expect(after[particle.Cap-1].X).To(BeNumerically("~", -500, 6))
		})

		It("is a no-op on a zero-capacity store", func() {
			empty := particle.NewStore(0, particle.SeededSpec(), particle.SpawnedSpec(), rand.New(rand.NewSource(1)))
			empty.Spawn(1, 1)
			Expect(empty.Len()).To(BeZero())
		})
	})

	Describe("ForEachPair", func() {
		It("visits every unordered pair exactly once", func() {
			store.Seed(20, 100, 100)
			seen := map[[2]*particle.Particle]bool{}
			count := 0
			store.ForEachPair(func(a, b *particle.Particle) {
				count++
				Expect(a).NotTo(BeIdenticalTo(b))
				Expect(seen[[2]*particle.Particle{b, a}]).To(BeFalse())
				seen[[2]*particle.Particle{a, b}] = true
			})
			Expect(count).To(Equal(20 * 19 / 2))
		})
	})

	Describe("Range", func() {
		It("mutates particles in place", func() {
			store.Seed(5, 100, 100)
			store.Range(func(p *particle.Particle) { p.X = -1 })
			for _, p := range store.Snapshot() {
				Expect(p.X).To(Equal(-1.0))
			}
		})
	})
})

var _ = Describe("Spec", func() {
	It("accepts the built-in specs", func() {
		Expect(particle.SeededSpec().Validate("seeded")).To(Succeed())
		Expect(particle.SpawnedSpec().Validate("spawned")).To(Succeed())
	})

	It("rejects inverted ranges and empty palettes", func() {
		bad := particle.SeededSpec()
		bad.Size = particle.Range{Min: 3, Max: 1}
		Expect(bad.Validate("seeded")).To(MatchError(ContainSubstring("seeded.size")))

		bad = particle.SpawnedSpec()
		bad.Palette = nil
		Expect(bad.Validate("spawned")).To(MatchError(ContainSubstring("palette")))
	})
})
