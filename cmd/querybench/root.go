package main

import (
	"fmt"
	"io"
	"os"

	"querybench/internal/config"
	"querybench/internal/telemetry"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var exit = os.Exit
var cfgFile string
var logCloser io.Closer

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "querybench",
	Short: "Simulated query latency comparison of Web3.js, The Graph and MongoDB",
	Long: `querybench simulates query latencies for three data access methods
(Web3.js, The Graph and MongoDB), aggregates them into averages and speedups
relative to Web3.js, and renders the result to the console, report.json and
RESULTS.md. It can also serve the simulated benchmark over HTTP.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\n=== CRITICAL ERROR: Command Execution Panic ===\n")
			fmt.Fprintf(os.Stderr, "Error: %v\n", r)
			exit(1)
		}
	}()

	err := rootCmd.Execute()
	if logCloser != nil {
		logCloser.Close()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'querybench --help' for usage.")
		exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored console output")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("no_color", rootCmd.PersistentFlags().Lookup("no-color"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if err := config.Load(cfgFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exit(1)
		return
	}

	cfg, err := config.Current()
	if err == nil {
		err = config.Validate(cfg)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exit(1)
		return
	}

	logCloser = telemetry.InitLogger(telemetry.LoggerOptions{
		Debug:  cfg.Verbose,
		File:   cfg.Log.File,
		Format: cfg.Log.Format,
	})
	telemetry.LogDebug("configuration loaded", "file", viper.ConfigFileUsed())
}

// currentConfig returns the active settings, falling back to defaults when
// initConfig has not run (commands built directly in tests).
func currentConfig() (config.Config, error) {
	config.SetDefaults()
	return config.Current()
}
