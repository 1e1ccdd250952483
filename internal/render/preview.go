package render

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// Preview renders a Markdown document for display in a terminal.
func Preview(markdown string, width int, noColor bool) (string, error) {
	if width <= 0 {
		width = 80
	}
	style := glamour.WithAutoStyle()
	if noColor {
		style = glamour.WithStandardStyle("notty")
	}
	renderer, err := glamour.NewTermRenderer(
		style,
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := renderer.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}
