package render

import (
	"fmt"
	"os"

	"querybench/internal/benchmark"
)

// DefaultJSONFile is where WriteJSON writes when no path is given.
const DefaultJSONFile = "report.json"

// WriteJSON writes the structured report to path, replacing any existing file.
func WriteJSON(path string, r benchmark.Report) error {
	if path == "" {
		path = DefaultJSONFile
	}
	data, err := r.Document().MarshalIndent()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
