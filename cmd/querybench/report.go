package main

import (
	"fmt"
	"os"

	"querybench/internal/benchmark"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newReportCmd())
}

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate the benchmark report from a set of trials",
		Long: `Aggregates a trial set into per-method averages and speedups relative
to Web3.js, prints the report and writes report.json and RESULTS.md.

Without --input the built-in sample of five trials is used. The input file
may be a JSON array of trials, an object with an "executions" array, or a
previous report.json.`,
		RunE: runReport,
	}
	cmd.Flags().StringP("input", "i", "", "JSON file with the trials to analyze")
	addOutputFlags(cmd.Flags())
	return cmd
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := currentConfig()
	if err != nil {
		return err
	}

	trials := benchmark.SampleTrials()
	if input, _ := cmd.Flags().GetString("input"); input != "" {
		data, err := os.ReadFile(input)
		if err != nil {
			return fmt.Errorf("failed to read trials: %w", err)
		}
		trials, err = benchmark.ParseTrials(data)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", input, err)
		}
	}

	_, err = publishReport(cmd, trials, resolvePublishOptions(cmd, cfg))
	return err
}
