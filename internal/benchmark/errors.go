package benchmark

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyTrialSet     = errors.New("trial set is empty")
	ErrMissingMethod     = errors.New("trial is missing method")
	ErrNegativeLatency   = errors.New("latency must not be negative")
	ErrZeroLatency       = errors.New("compared latency is zero")
	ErrInvalidTrialCount = errors.New("trial count must be at least 1")
)

// MethodError reports a problem with one method in one trial.
type MethodError struct {
	Method Method
	Index  int // position of the offending trial
	Err    error
}

func (e *MethodError) Error() string {
	return fmt.Sprintf("trial %d, method %s: %v", e.Index, e.Method, e.Err)
}

func (e *MethodError) Unwrap() error {
	return e.Err
}
