// Package simulate emulates latency samples for the compared methods.
package simulate

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"querybench/internal/benchmark"
)

// Profile fixes the simulated cost of one method.
type Profile struct {
	Method benchmark.Method
	Min    int           // inclusive, ms
	Max    int           // inclusive, ms
	Delay  time.Duration // blocking time standing in for network cost
}

// DefaultProfiles: wide/high for the RPC client, medium for the indexer,
// narrow/low for the database.
var DefaultProfiles = []Profile{
	{Method: benchmark.Web3JS, Min: 2000, Max: 3000, Delay: 500 * time.Millisecond},
	{Method: benchmark.TheGraph, Min: 250, Max: 400, Delay: 100 * time.Millisecond},
	{Method: benchmark.MongoDB, Min: 40, Max: 80, Delay: 20 * time.Millisecond},
}

// Sampler produces one trial per call.
type Sampler interface {
	Sample(ctx context.Context) (benchmark.Trial, error)
}

// SleepFunc blocks for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Service is the stateless simulated benchmark. Each Sample is independent.
type Service struct {
	profiles []Profile
	sleep    SleepFunc

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

// Option configures a Service.
type Option func(*Service)

// WithRand sets the random source, mainly for tests.
func WithRand(r *rand.Rand) Option {
	return func(s *Service) { s.rng = r }
}

// WithSleep replaces the blocking delay.
func WithSleep(fn SleepFunc) Option {
	return func(s *Service) { s.sleep = fn }
}

// WithProfiles overrides the default method profiles.
func WithProfiles(p []Profile) Option {
	return func(s *Service) { s.profiles = p }
}

// NewService returns a Service using DefaultProfiles.
func NewService(opts ...Option) (*Service, error) {
	s := &Service{
		profiles: DefaultProfiles,
		sleep:    Sleep,
		rng:      rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(s)
	}
	for _, p := range s.profiles {
		if p.Min < 0 || p.Max < p.Min {
			return nil, fmt.Errorf("invalid range [%d, %d] for %s", p.Min, p.Max, p.Method)
		}
	}
	return s, nil
}

// Profiles returns the configured profiles.
func (s *Service) Profiles() []Profile {
	return append([]Profile(nil), s.profiles...)
}

// Sample blocks for each method's delay in turn and returns a latency drawn
// uniformly from its closed range.
func (s *Service) Sample(ctx context.Context) (benchmark.Trial, error) {
	trial := make(benchmark.Trial, len(s.profiles))
	for _, p := range s.profiles {
		if err := s.sleep(ctx, p.Delay); err != nil {
			return nil, err
		}
		trial[p.Method] = s.draw(p.Min, p.Max)
	}
	return trial, nil
}

func (s *Service) draw(lo, hi int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo + s.rng.IntN(hi-lo+1)
}

// Sleep is the default SleepFunc.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
