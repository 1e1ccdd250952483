package benchmark

import "time"

// Method identifies a data-access method under comparison.
type Method string

const (
	Web3JS   Method = "web3js"
	TheGraph Method = "thegraph"
	MongoDB  Method = "mongodb"
)

// Baseline is the method every speedup is measured against.
const Baseline = Web3JS

// DefaultMethods lists the compared methods in display order.
var DefaultMethods = []Method{Web3JS, TheGraph, MongoDB}

var labels = map[Method]string{
	Web3JS:   "Web3.js",
	TheGraph: "The Graph",
	MongoDB:  "MongoDB",
}

// Label returns the human readable name of the method.
func (m Method) Label() string {
	if l, ok := labels[m]; ok {
		return l
	}
	return string(m)
}

// Trial is one measurement event: latency in milliseconds per method.
type Trial map[Method]int

// TrialSet is an ordered sequence of trials sharing the same method keys.
type TrialSet []Trial

// Report is the single computed result every renderer consumes.
type Report struct {
	Timestamp  time.Time
	Executions int
	Baseline   Method
	Methods    []Method
	Averages   map[Method]float64
	Speedups   map[Method]float64 // keyed by compared method, relative to Baseline
	Raw        TrialSet
}

// SpeedupKey is the name a speedup is published under, e.g. "thegraph_vs_web3js".
func SpeedupKey(compared, baseline Method) string {
	return string(compared) + "_vs_" + string(baseline)
}

// Compared returns the non-baseline methods in display order.
func (r Report) Compared() []Method {
	var out []Method
	for _, m := range r.Methods {
		if m != r.Baseline {
			out = append(out, m)
		}
	}
	return out
}
