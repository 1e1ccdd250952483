package render

import (
	"bytes"
	"fmt"
	"os"
	"text/template"

	"querybench/internal/benchmark"
)

// DefaultMarkdownFile is where WriteMarkdown writes when no path is given.
const DefaultMarkdownFile = "RESULTS.md"

var markdownTmpl = template.Must(template.New("results").Funcs(template.FuncMap{
	"millis": Millis,
	"ratio":  Ratio,
	"stars":  Stars,
	"inc":    func(i int) int { return i + 1 },
	"date":   func(r benchmark.Report) string { return r.Timestamp.Format(TimeLayout) },
}).Parse(`# Benchmark Report

**Date:** {{date .Report}}

## Results

### Average Latency

| Method | Latency | Performance |
|--------|----------|-------------|
{{- range .Rows}}
| {{.Method.Label}} | {{millis .Avg}} | {{stars .Method}} |
{{- end}}

### Speedup
{{range .Speedups}}
- **{{.Method.Label}}**: {{ratio .Value}} faster than {{$.Report.Baseline.Label}}
{{- end}}

## Conclusions
{{range $i, $c := .Conclusions}}
{{inc $i}}. **{{$c.Method.Label}}** {{$c.Statement}}
{{- end}}

## Recommendations
{{range .Recommendations}}
### {{.Short}}
→ **{{.Method.Label}}** - {{.Summary}}
{{end -}}
`))

type markdownRow struct {
	Method benchmark.Method
	Avg    float64
}

type markdownSpeedup struct {
	Method benchmark.Method
	Value  float64
}

// Markdown renders the results document for r.
func Markdown(r benchmark.Report) (string, error) {
	data := struct {
		Report          benchmark.Report
		Rows            []markdownRow
		Speedups        []markdownSpeedup
		Conclusions     any
		Recommendations []Recommendation
	}{
		Report:          r,
		Conclusions:     Conclusions,
		Recommendations: Recommendations,
	}
	for _, m := range r.Methods {
		data.Rows = append(data.Rows, markdownRow{Method: m, Avg: r.Averages[m]})
	}
	for _, m := range r.Compared() {
		data.Speedups = append(data.Speedups, markdownSpeedup{Method: m, Value: r.Speedups[m]})
	}

	var buf bytes.Buffer
	if err := markdownTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return buf.String(), nil
}

// WriteMarkdown renders r and writes it to path, replacing any existing file.
func WriteMarkdown(path string, r benchmark.Report) error {
	if path == "" {
		path = DefaultMarkdownFile
	}
	doc, err := Markdown(r)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
