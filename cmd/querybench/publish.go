package main

import (
	"fmt"
	"strings"
	"time"

	"querybench/internal/benchmark"
	"querybench/internal/config"
	"querybench/internal/db"
	"querybench/internal/render"
	"querybench/internal/simulate"
	"querybench/internal/telemetry"

	"github.com/spf13/cobra"
)

// Allows mocking in tests
var (
	newStoreFunc = func(cfg config.StoreConfig) (db.Store, error) {
		return db.NewStore(db.StoreConfig{Type: cfg.Type, ConnectionString: cfg.DSN})
	}
	sleepFunc = simulate.Sleep
	nowFunc   = time.Now
)

type publishOptions struct {
	JSONPath     string
	MarkdownPath string
	Delay        time.Duration
	Save         bool
	NoColor      bool
	Store        config.StoreConfig
}

func resolvePublishOptions(cmd *cobra.Command, cfg config.Config) publishOptions {
	fs := cmd.Flags()
	save, _ := fs.GetBool("save")
	opts := publishOptions{
		JSONPath:     stringFlagOr(fs, "json", cfg.Output.JSON),
		MarkdownPath: stringFlagOr(fs, "markdown", cfg.Output.Markdown),
		Delay:        durationFlagOr(fs, "delay", cfg.Report.Delay),
		Save:         save || cfg.Store.Type != "",
		NoColor:      cfg.NoColor,
		Store:        cfg.Store,
	}
	if strings.TrimSpace(opts.JSONPath) == "" {
		opts.JSONPath = render.DefaultJSONFile
	}
	if strings.TrimSpace(opts.MarkdownPath) == "" {
		opts.MarkdownPath = render.DefaultMarkdownFile
	}
	return opts
}

// publishReport builds the report from trials, prints it and writes both
// report files.
func publishReport(cmd *cobra.Command, trials benchmark.TrialSet, opts publishOptions) (benchmark.Report, error) {
	b := benchmark.NewBuilder()
	b.Now = nowFunc
	report, err := b.Build(trials)
	if err != nil {
		return benchmark.Report{}, fmt.Errorf("failed to build report: %w", err)
	}
	telemetry.LogDebug("report built", "executions", report.Executions)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Generating report...")
	if err := sleepFunc(cmd.Context(), opts.Delay); err != nil {
		return report, err
	}

	if err := render.Console(out, report, render.ConsoleOptions{NoColor: opts.NoColor}); err != nil {
		return report, fmt.Errorf("failed to print report: %w", err)
	}

	if err := render.WriteJSON(opts.JSONPath, report); err != nil {
		telemetry.LogError("failed to write report", err, "path", opts.JSONPath)
		return report, err
	}
	fmt.Fprintf(out, "\nReport saved to %s\n", opts.JSONPath)

	if err := render.WriteMarkdown(opts.MarkdownPath, report); err != nil {
		telemetry.LogError("failed to write report", err, "path", opts.MarkdownPath)
		return report, err
	}
	fmt.Fprintf(out, "Markdown saved to %s\n", opts.MarkdownPath)

	if opts.Save {
		if err := saveToHistory(cmd, report, opts.Store); err != nil {
			telemetry.LogError("failed to save report to history", err, "store", opts.Store.Type)
			return report, err
		}
	}
	return report, nil
}

func saveToHistory(cmd *cobra.Command, report benchmark.Report, storeCfg config.StoreConfig) error {
	store, err := newStoreFunc(storeCfg)
	if err != nil {
		return fmt.Errorf("failed to open history store: %w", err)
	}
	defer store.Close()

	previous, err := store.ListReports(1)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	id, err := store.SaveReport(report)
	if err != nil {
		return err
	}
	telemetry.LogInfo("report saved to history", "id", id, "executions", report.Executions)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Saved report #%d to history\n", id)
	if len(previous) > 0 {
		printComparison(cmd, previous[0].Report, report)
	}
	return nil
}

func printComparison(cmd *cobra.Command, prev, curr benchmark.Report) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nComparison with run of %s:\n", prev.Timestamp.Format(render.TimeLayout))
	for _, c := range benchmark.Compare(prev, curr) {
		fmt.Fprintf(out, "  %s\n", c)
	}
}
