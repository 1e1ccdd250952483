package main

import (
	"fmt"
	"text/tabwriter"

	"querybench/internal/benchmark"
	"querybench/internal/render"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newHistoryCmd())
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved reports and compare the latest two",
		RunE:  runHistory,
	}
	cmd.Flags().IntP("limit", "n", 10, "Maximum number of reports to list (0 for all)")
	return cmd
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := currentConfig()
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")

	store, err := newStoreFunc(cfg.Store)
	if err != nil {
		return fmt.Errorf("failed to open history store: %w", err)
	}
	defer store.Close()

	reports, err := store.ListReports(limit)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(reports) == 0 {
		fmt.Fprintln(out, "No saved reports.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprint(w, "ID\tTIMESTAMP\tEXECUTIONS")
	for _, m := range benchmark.DefaultMethods {
		fmt.Fprintf(w, "\t%s", m.Label())
	}
	fmt.Fprintln(w)
	for _, sr := range reports {
		r := sr.Report
		fmt.Fprintf(w, "%d\t%s\t%d", sr.ID, r.Timestamp.Format(render.TimeLayout), r.Executions)
		for _, m := range benchmark.DefaultMethods {
			if v, ok := r.Averages[m]; ok {
				fmt.Fprintf(w, "\t%s", render.Millis(v))
			} else {
				fmt.Fprint(w, "\t-")
			}
		}
		fmt.Fprintln(w)
	}
	w.Flush()

	if len(reports) > 1 {
		printComparison(cmd, reports[1].Report, reports[0].Report)
	}
	return nil
}
