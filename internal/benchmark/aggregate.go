package benchmark

import (
	"fmt"
	"time"
)

// Validate checks that the set is non-empty and every trial carries a
// non-negative latency for each of the given methods.
func (ts TrialSet) Validate(methods []Method) error {
	if len(ts) == 0 {
		return ErrEmptyTrialSet
	}
	for i, t := range ts {
		for _, m := range methods {
			v, ok := t[m]
			if !ok {
				return &MethodError{Method: m, Index: i, Err: ErrMissingMethod}
			}
			if v < 0 {
				return &MethodError{Method: m, Index: i, Err: ErrNegativeLatency}
			}
		}
	}
	return nil
}

// MeanLatency returns the arithmetic mean of method's latency across trials.
func MeanLatency(trials TrialSet, method Method) (float64, error) {
	if len(trials) == 0 {
		return 0, ErrEmptyTrialSet
	}

	var sum int64
	for i, t := range trials {
		v, ok := t[method]
		if !ok {
			return 0, &MethodError{Method: method, Index: i, Err: ErrMissingMethod}
		}
		sum += int64(v)
	}
	return float64(sum) / float64(len(trials)), nil
}

// Speedup returns how many times faster compared is than baseline.
// A zero compared mean is an error rather than +Inf.
func Speedup(baselineMean, comparedMean float64) (float64, error) {
	if comparedMean == 0 {
		return 0, ErrZeroLatency
	}
	return baselineMean / comparedMean, nil
}

// Builder computes Reports. The zero value uses DefaultMethods, Baseline
// and time.Now.
type Builder struct {
	Methods  []Method
	Baseline Method
	Now      func() time.Time
}

// NewBuilder returns a Builder for the default method set.
func NewBuilder() *Builder {
	return &Builder{
		Methods:  DefaultMethods,
		Baseline: Baseline,
		Now:      time.Now,
	}
}

// Build validates trials and computes averages and speedups in one pass.
func (b *Builder) Build(trials TrialSet) (Report, error) {
	methods := b.Methods
	if len(methods) == 0 {
		methods = DefaultMethods
	}
	baseline := b.Baseline
	if baseline == "" {
		baseline = Baseline
	}
	now := b.Now
	if now == nil {
		now = time.Now
	}

	if err := trials.Validate(methods); err != nil {
		return Report{}, fmt.Errorf("invalid trial set: %w", err)
	}

	report := Report{
		Timestamp:  now(),
		Executions: len(trials),
		Baseline:   baseline,
		Methods:    append([]Method(nil), methods...),
		Averages:   make(map[Method]float64, len(methods)),
		Speedups:   make(map[Method]float64, len(methods)-1),
		Raw:        trials.Clone(),
	}

	for _, m := range methods {
		avg, err := MeanLatency(trials, m)
		if err != nil {
			return Report{}, err
		}
		report.Averages[m] = avg
	}

	base, ok := report.Averages[baseline]
	if !ok {
		return Report{}, fmt.Errorf("baseline %s is not among the compared methods", baseline)
	}
	for _, m := range report.Compared() {
		s, err := Speedup(base, report.Averages[m])
		if err != nil {
			return Report{}, fmt.Errorf("speedup of %s: %w", m, err)
		}
		report.Speedups[m] = s
	}

	return report, nil
}

// Clone returns a deep copy so callers cannot mutate recorded trials.
func (ts TrialSet) Clone() TrialSet {
	out := make(TrialSet, len(ts))
	for i, t := range ts {
		c := make(Trial, len(t))
		for k, v := range t {
			c[k] = v
		}
		out[i] = c
	}
	return out
}

// SampleTrials returns the five fixed demonstration trials.
func SampleTrials() TrialSet {
	return TrialSet{
		{Web3JS: 2458, TheGraph: 320, MongoDB: 67},
		{Web3JS: 2621, TheGraph: 298, MongoDB: 72},
		{Web3JS: 2534, TheGraph: 315, MongoDB: 69},
		{Web3JS: 2489, TheGraph: 335, MongoDB: 64},
		{Web3JS: 2598, TheGraph: 302, MongoDB: 71},
	}
}
