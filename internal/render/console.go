package render

import (
	"fmt"
	"io"
	"strings"

	"querybench/internal/benchmark"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

const ruleWidth = 70

// ConsoleOptions tweaks console rendering.
type ConsoleOptions struct {
	NoColor bool
}

type consoleStyles struct {
	title   lipgloss.Style
	section lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	accent  lipgloss.Style
	muted   lipgloss.Style
}

func newConsoleStyles(re *lipgloss.Renderer) consoleStyles {
	return consoleStyles{
		title: re.NewStyle().
			Foreground(lipgloss.Color("#FFF")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true),
		section: re.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true),
		label: re.NewStyle().
			Foreground(lipgloss.Color("252")).
			Width(12),
		value: re.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true),
		accent: re.NewStyle().
			Foreground(lipgloss.Color("46")),
		muted: re.NewStyle().
			Foreground(lipgloss.Color("241")),
	}
}

// Console writes the human readable report to w.
func Console(w io.Writer, r benchmark.Report, opts ConsoleOptions) error {
	re := lipgloss.NewRenderer(w)
	if opts.NoColor {
		re.SetColorProfile(termenv.Ascii)
	}
	st := newConsoleStyles(re)

	heavy := strings.Repeat("=", ruleWidth)
	light := strings.Repeat("─", ruleWidth)

	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format+"\n", args...)
	}

	line("%s", heavy)
	line("%s", st.title.Render("📊 BENCHMARK REPORT - BLOCKCHAIN QUERY OPTIMIZATION"))
	line("%s", heavy)
	line("")
	line("🕐 Date: %s", r.Timestamp.Format(TimeLayout))
	line("🔢 Executions: %d", r.Executions)

	line("")
	line("%s", light)
	line("%s", st.section.Render("📈 AVERAGE LATENCY (ms)"))
	line("%s", light)
	for _, m := range r.Methods {
		line("  %s%s  %s", st.label.Render(m.Label()+":"), st.value.Render(Millis(r.Averages[m])), Stars(m))
	}

	line("")
	line("%s", light)
	line("%s", st.section.Render(fmt.Sprintf("⚡ SPEEDUP (relative to %s)", r.Baseline.Label())))
	line("%s", light)
	for _, m := range r.Compared() {
		line("  %s%s faster", st.label.Render(m.Label()+":"), st.accent.Render(Ratio(r.Speedups[m])))
	}

	line("")
	line("%s", light)
	line("%s", st.section.Render("💡 RECOMMENDATIONS"))
	line("%s", light)
	for _, rec := range Recommendations {
		line("")
		line("  %s", rec.Scenario)
		line("     %s", st.muted.Render(fmt.Sprintf("→ Use %s (%s)", rec.Method.Label(), rec.Reason)))
	}
	line("")
	line("%s", heavy)

	_, err := io.WriteString(w, b.String())
	return err
}
