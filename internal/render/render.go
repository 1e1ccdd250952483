// Package render turns a computed benchmark.Report into its console,
// JSON and Markdown representations.
package render

import (
	"fmt"
	"strings"

	"querybench/internal/benchmark"
)

// TimeLayout is the day-first timestamp used by the human readable outputs.
const TimeLayout = "02/01/2006 15:04:05"

// Recommendation pairs a usage scenario with the method suited to it.
type Recommendation struct {
	Scenario string
	Short    string // heading used in the Markdown document
	Method   benchmark.Method
	Reason   string
	Summary  string // one-line rationale used in the Markdown document
}

// Recommendations are keyed to three fixed scenarios: latency-critical,
// decentralization-balanced and sporadic-simple.
var Recommendations = []Recommendation{
	{
		Scenario: "DeFi / High-Frequency Trading",
		Short:    "DeFi / Trading",
		Method:   benchmark.MongoDB,
		Reason:   "minimal latency is essential",
		Summary:  "Latency is critical for UX",
	},
	{
		Scenario: "Decentralized dApps",
		Short:    "dApps",
		Method:   benchmark.TheGraph,
		Reason:   "balance between performance and decentralization",
		Summary:  "Ideal balance",
	},
	{
		Scenario: "Sporadic Queries / Wallets",
		Short:    "Sporadic Queries",
		Method:   benchmark.Web3JS,
		Reason:   "simplicity and maximum decentralization",
		Summary:  "Simplicity and decentralization",
	},
}

// Conclusions are the fixed closing statements of the Markdown document.
var Conclusions = []struct {
	Method    benchmark.Method
	Statement string
}{
	{benchmark.MongoDB, "offers the best absolute performance"},
	{benchmark.TheGraph, "keeps a good balance between performance and decentralization"},
	{benchmark.Web3JS, "is suitable only for sporadic queries"},
}

var stars = map[benchmark.Method]int{
	benchmark.Web3JS:   1,
	benchmark.TheGraph: 3,
	benchmark.MongoDB:  5,
}

// Stars returns the performance tier of a method as a row of stars.
func Stars(m benchmark.Method) string {
	n, ok := stars[m]
	if !ok {
		n = 1
	}
	return strings.Repeat("⭐", n)
}

// Millis formats a latency with one decimal place.
func Millis(v float64) string {
	return fmt.Sprintf("%.1fms", v)
}

// Ratio formats a speedup with one decimal place.
func Ratio(v float64) string {
	return fmt.Sprintf("%.1fx", v)
}
