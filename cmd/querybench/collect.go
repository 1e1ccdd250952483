package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"querybench/internal/benchmark"
	"querybench/internal/simulate"
	"querybench/internal/ui"
	"querybench/internal/web"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// Allows mocking in tests
var (
	newSamplerFunc = func() (simulate.Sampler, error) { return simulate.NewService() }
	runCollectTUI  = ui.RunCollect
)

func init() {
	rootCmd.AddCommand(newCollectCmd())
}

func newCollectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Run simulated trials and generate the report",
		Long: `Runs the simulated benchmark N times, either in process or against a
remote benchmark API (--remote), then generates the report from the
collected trials.`,
		RunE: runCollect,
	}
	cmd.Flags().IntP("trials", "n", 0, "Number of trials (default from report.trials)")
	cmd.Flags().String("remote", "", "Base URL of a running benchmark API, e.g. http://localhost:5000")
	cmd.Flags().Bool("tui", false, "Show an interactive progress view")
	cmd.Flags().StringP("output", "o", "", "Also write the raw trials to this JSON file")
	addOutputFlags(cmd.Flags())
	return cmd
}

func runCollect(cmd *cobra.Command, args []string) error {
	cfg, err := currentConfig()
	if err != nil {
		return err
	}

	fs := cmd.Flags()
	n := intFlagOr(fs, "trials", cfg.Report.Trials)
	if n < 1 {
		return fmt.Errorf("--trials must be at least 1: %w", benchmark.ErrInvalidTrialCount)
	}

	var sampler simulate.Sampler
	if remote, _ := fs.GetString("remote"); remote != "" {
		sampler = web.NewClient(remote)
	} else {
		sampler, err = newSamplerFunc()
		if err != nil {
			return fmt.Errorf("failed to create benchmark service: %w", err)
		}
	}

	collector := simulate.NewCollector(sampler)
	out := cmd.OutOrStdout()

	var trials benchmark.TrialSet
	if useTUI, _ := fs.GetBool("tui"); useTUI {
		trials, err = runCollectTUI(cmd.Context(), collector, n, tea.WithOutput(out))
	} else {
		fmt.Fprintf(out, "Running %d trials...\n", n)
		collector.Progress = func(done, total int, trial benchmark.Trial) {
			fmt.Fprintf(out, "[%d/%d] %s\n", done, total, formatTrial(trial))
		}
		trials, err = collector.Collect(cmd.Context(), n)
	}
	if err != nil {
		return fmt.Errorf("failed to collect trials: %w", err)
	}

	if path, _ := fs.GetString("output"); path != "" {
		if err := writeTrials(path, trials); err != nil {
			return err
		}
		fmt.Fprintf(out, "Trials saved to %s\n", path)
	}

	_, err = publishReport(cmd, trials, resolvePublishOptions(cmd, cfg))
	return err
}

func formatTrial(trial benchmark.Trial) string {
	parts := make([]string, 0, len(trial))
	for _, m := range benchmark.DefaultMethods {
		if v, ok := trial[m]; ok {
			parts = append(parts, fmt.Sprintf("%s=%dms", m, v))
		}
	}
	return strings.Join(parts, " ")
}

// writeTrials stores trials in the "executions" shape accepted by report --input.
func writeTrials(path string, trials benchmark.TrialSet) error {
	data, err := json.MarshalIndent(map[string]benchmark.TrialSet{"executions": trials}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal trials: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
