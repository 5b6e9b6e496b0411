package automation

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
)

// Ensemble runs one scenario once per seed, in parallel. Every run gets its
// own engine, recording surface and random source, so the runner's Surface,
// Rand and Observers are not used.
type Ensemble struct {
	base      Runner
	numRuns   int
	seedStart int64
}

func NewEnsemble(r *Runner, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{base: *r, numRuns: numRuns, seedStart: seedStart}
}

// Seed returns the seed used for run i.
func (e *Ensemble) Seed(i int) int64 { return e.seedStart + int64(i) }

func (e *Ensemble) Run(ctx context.Context, s *Scenario) ([]*Result, error) {
	if e.numRuns < 1 {
		return nil, fmt.Errorf("automation: ensemble needs at least one run")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			r := e.base
			r.Surface = nil
			r.Observers = nil
			r.Rand = rand.New(rand.NewSource(e.Seed(idx)))

			results[idx], errs[idx] = r.Run(ctx, s)
		}(i)
	}

	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("ensemble run %d (seed %d): %w", i, e.Seed(i), err)
		}
	}
	return results, nil
}
