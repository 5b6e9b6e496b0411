package metrics

type MeanLinks struct {
	sum     int
	samples int
}

func NewMeanLinks() *MeanLinks { return &MeanLinks{} }

func (m *MeanLinks) Name() string { return "links_mean" }

func (m *MeanLinks) Observe(f Frame) {
	m.sum += f.Links
	m.samples++
}

func (m *MeanLinks) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return float64(m.sum) / float64(m.samples)
}

func (m *MeanLinks) Reset() {
	m.sum = 0
	m.samples = 0
}

type MaxLinks struct{ max int }

func NewMaxLinks() *MaxLinks { return &MaxLinks{} }

func (m *MaxLinks) Name() string { return "links_max" }

func (m *MaxLinks) Observe(f Frame) {
	if f.Links > m.max {
		m.max = f.Links
	}
}

func (m *MaxLinks) Value() float64 { return float64(m.max) }
func (m *MaxLinks) Reset()         { m.max = 0 }

// FinalPopulation is the population of the last frame seen.
type FinalPopulation struct{ last int }

func NewFinalPopulation() *FinalPopulation { return &FinalPopulation{} }

func (p *FinalPopulation) Name() string    { return "population_final" }
func (p *FinalPopulation) Observe(f Frame) { p.last = f.Population }
func (p *FinalPopulation) Value() float64  { return float64(p.last) }
func (p *FinalPopulation) Reset()          { p.last = 0 }
