package simulate

import (
	"context"
	"fmt"

	"querybench/internal/benchmark"
)

// ProgressFunc is called after each collected trial.
type ProgressFunc func(done, total int, trial benchmark.Trial)

// Collector gathers a trial set by calling a Sampler repeatedly.
type Collector struct {
	Sampler  Sampler
	Progress ProgressFunc
}

// NewCollector returns a Collector over s.
func NewCollector(s Sampler) *Collector {
	return &Collector{Sampler: s}
}

// Collect samples n trials in order.
func (c *Collector) Collect(ctx context.Context, n int) (benchmark.TrialSet, error) {
	if n < 1 {
		return nil, benchmark.ErrInvalidTrialCount
	}

	trials := make(benchmark.TrialSet, 0, n)
	for i := 0; i < n; i++ {
		trial, err := c.Sampler.Sample(ctx)
		if err != nil {
			return trials, fmt.Errorf("trial %d of %d: %w", i+1, n, err)
		}
		trials = append(trials, trial)
		if c.Progress != nil {
			c.Progress(i+1, n, trial)
		}
	}
	return trials, nil
}
