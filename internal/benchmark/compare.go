package benchmark

import "fmt"

// Comparison describes how one method's average moved between two reports.
type Comparison struct {
	Method  Method
	AvgDiff float64 // Percentage change, negative is faster
	Prev    float64
	Curr    float64
}

// Compare runs comparison between two reports.
// It returns a comparison for every method present in both.
func Compare(prev, curr Report) []Comparison {
	var comparisons []Comparison
	for _, m := range curr.Methods {
		p, ok := prev.Averages[m]
		if !ok {
			continue
		}
		c := curr.Averages[m]
		comp := Comparison{Method: m, Prev: p, Curr: c}
		if p > 0 {
			comp.AvgDiff = ((c - p) / p) * 100
		}
		comparisons = append(comparisons, comp)
	}
	return comparisons
}

func (c Comparison) String() string {
	return fmt.Sprintf("%s: %.1fms -> %.1fms (%+.2f%%)", c.Method, c.Prev, c.Curr, c.AvgDiff)
}
