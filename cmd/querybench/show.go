package main

import (
	"fmt"
	"os"

	"querybench/internal/render"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newShowCmd())
}

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [file]",
		Short: "Render a Markdown report in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runShow,
	}
	cmd.Flags().IntP("width", "w", 80, "Wrap width")
	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := currentConfig()
	if err != nil {
		return err
	}

	path := cfg.Output.Markdown
	if len(args) == 1 {
		path = args[0]
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	width, _ := cmd.Flags().GetInt("width")
	out, err := render.Preview(string(data), width, cfg.NoColor)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
