package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"querybench/internal/metrics"
	"querybench/internal/simulate"
	"querybench/internal/telemetry"
	"querybench/internal/web"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newServeCmd())
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the simulated benchmark over HTTP",
		Long: `Starts the benchmark API:

  POST /api/benchmark  run one simulated trial
  GET  /api/health     health check
  GET  /               landing page
  GET  /metrics        Prometheus metrics`,
		RunE: runServe,
	}
	cmd.Flags().String("host", "", "Bind host (default from server.host)")
	cmd.Flags().IntP("port", "p", 0, "Bind port (default from server.port)")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := currentConfig()
	if err != nil {
		return err
	}
	fs := cmd.Flags()
	cfg.Server.Host = stringFlagOr(fs, "host", cfg.Server.Host)
	cfg.Server.Port = intFlagOr(fs, "port", cfg.Server.Port)

	sampler, err := newSamplerFunc()
	if err != nil {
		return fmt.Errorf("failed to create benchmark service: %w", err)
	}

	if svc, ok := sampler.(*simulate.Service); ok {
		for _, p := range svc.Profiles() {
			telemetry.LogInfo("simulated method",
				"method", p.Method, "min_ms", p.Min, "max_ms", p.Max, "delay", p.Delay.String())
		}
	}

	srv := web.NewServer(sampler, metrics.NewMetrics(nil), cfg.Server.Addr())
	telemetry.LogInfo("benchmark API configured", "addr", srv.Addr())

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "Benchmark API listening on http://%s\n", srv.Addr())

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Server stopped")
	return <-errCh
}
