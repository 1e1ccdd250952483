package benchmark

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Document is the persisted shape of a Report (report.json).
type Document struct {
	Timestamp  time.Time          `json:"timestamp"`
	Executions int                `json:"executions"`
	Averages   Averages           `json:"averages"`
	Speedup    Speedups           `json:"speedup"`
	RawResults TrialSet           `json:"raw_results"`
}

// Document converts the report into its persisted shape.
func (r Report) Document() Document {
	doc := Document{
		Timestamp:  r.Timestamp,
		Executions: r.Executions,
		Averages:   make(Averages, len(r.Averages)),
		Speedup:    make(Speedups, len(r.Speedups)),
		RawResults: r.Raw,
	}
	for m, v := range r.Averages {
		doc.Averages[m] = v
	}
	for m, v := range r.Speedups {
		doc.Speedup[SpeedupKey(m, r.Baseline)] = v
	}
	if doc.RawResults == nil {
		doc.RawResults = TrialSet{}
	}
	return doc
}

// Report rebuilds a Report from a persisted document. Method order follows
// DefaultMethods, with unknown methods appended alphabetically.
func (d Document) Report() Report {
	r := Report{
		Timestamp:  d.Timestamp,
		Executions: d.Executions,
		Baseline:   Baseline,
		Averages:   make(map[Method]float64, len(d.Averages)),
		Speedups:   make(map[Method]float64, len(d.Speedup)),
		Raw:        d.RawResults,
	}
	for m, v := range d.Averages {
		r.Averages[m] = v
	}

	for key, v := range d.Speedup {
		compared, base, ok := strings.Cut(key, "_vs_")
		if !ok {
			continue
		}
		r.Baseline = Method(base)
		r.Speedups[Method(compared)] = v
	}

	var extra []Method
	for m := range d.Averages {
		known := false
		for _, dm := range DefaultMethods {
			if m == dm {
				known = true
				break
			}
		}
		if !known {
			extra = append(extra, m)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	for _, m := range DefaultMethods {
		if _, ok := d.Averages[m]; ok {
			r.Methods = append(r.Methods, m)
		}
	}
	r.Methods = append(r.Methods, extra...)
	return r
}

// MarshalIndent encodes the document with two-space indentation.
func (d Document) MarshalIndent() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}
	return append(data, '\n'), nil
}

// ParseTrials decodes a trial set from JSON. It accepts a bare array of
// trials, an object with an "executions" array, or a report document with
// "raw_results".
func ParseTrials(data []byte) (TrialSet, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrEmptyTrialSet
	}

	if data[0] == '[' {
		var ts TrialSet
		if err := json.Unmarshal(data, &ts); err != nil {
			return nil, fmt.Errorf("failed to decode trials: %w", err)
		}
		return ts, nil
	}

	var wrapped struct {
		Executions json.RawMessage `json:"executions"`
		RawResults TrialSet        `json:"raw_results"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to decode trials: %w", err)
	}
	if len(wrapped.RawResults) > 0 {
		return wrapped.RawResults, nil
	}
	// In a report document "executions" is a count, not a list.
	if len(wrapped.Executions) > 0 && wrapped.Executions[0] == '[' {
		var ts TrialSet
		if err := json.Unmarshal(wrapped.Executions, &ts); err != nil {
			return nil, fmt.Errorf("failed to decode executions: %w", err)
		}
		return ts, nil
	}
	return nil, ErrEmptyTrialSet
}

// Averages maps each method to its mean latency. It encodes in method order
// (DefaultMethods first, then the rest alphabetically).
type Averages map[Method]float64

func (a Averages) MarshalJSON() ([]byte, error) {
	keys := make([]string, 0, len(a))
	values := make(map[string]float64, len(a))
	for m, v := range a {
		keys = append(keys, string(m))
		values[string(m)] = v
	}
	sortByMethod(keys, func(k string) Method { return Method(k) })
	return marshalOrdered(keys, func(k string) (string, error) { return formatFloat(values[k]) })
}

// Speedups maps "<compared>_vs_<baseline>" keys to ratios, encoded in the
// order of the compared method.
type Speedups map[string]float64

func (s Speedups) MarshalJSON() ([]byte, error) {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sortByMethod(keys, func(k string) Method {
		compared, _, _ := strings.Cut(k, "_vs_")
		return Method(compared)
	})
	return marshalOrdered(keys, func(k string) (string, error) { return formatFloat(s[k]) })
}

// MarshalJSON encodes the trial in method order.
func (t Trial) MarshalJSON() ([]byte, error) {
	if t == nil {
		return []byte("null"), nil
	}
	keys := make([]string, 0, len(t))
	for m := range t {
		keys = append(keys, string(m))
	}
	sortByMethod(keys, func(k string) Method { return Method(k) })
	return marshalOrdered(keys, func(k string) (string, error) {
		return strconv.Itoa(t[Method(k)]), nil
	})
}

func methodRank(m Method) int {
	for i, dm := range DefaultMethods {
		if m == dm {
			return i
		}
	}
	return len(DefaultMethods)
}

func sortByMethod(keys []string, method func(string) Method) {
	sort.Slice(keys, func(i, j int) bool {
		ri, rj := methodRank(method(keys[i])), methodRank(method(keys[j]))
		if ri != rj {
			return ri < rj
		}
		return keys[i] < keys[j]
	})
}

func marshalOrdered(keys []string, value func(string) (string, error)) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		v, err := value(k)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}
		buf.WriteString(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// formatFloat writes the shortest representation of v, keeping a decimal
// point on whole numbers (2540.0, not 2540).
func formatFloat(v float64) (string, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "", fmt.Errorf("unsupported value %v", v)
	}
	format := byte('f')
	if abs := math.Abs(v); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	s := strconv.FormatFloat(v, format, -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s, nil
}
