package main

import (
	"time"

	"github.com/spf13/pflag"
)

// Flag helpers: an unset flag yields the configured fallback.

func stringFlagOr(fs *pflag.FlagSet, name, fallback string) string {
	if !fs.Changed(name) {
		return fallback
	}
	v, err := fs.GetString(name)
	if err != nil {
		return fallback
	}
	return v
}

func intFlagOr(fs *pflag.FlagSet, name string, fallback int) int {
	if !fs.Changed(name) {
		return fallback
	}
	v, err := fs.GetInt(name)
	if err != nil {
		return fallback
	}
	return v
}

func durationFlagOr(fs *pflag.FlagSet, name string, fallback time.Duration) time.Duration {
	if !fs.Changed(name) {
		return fallback
	}
	v, err := fs.GetDuration(name)
	if err != nil {
		return fallback
	}
	return v
}

// addOutputFlags registers the flags shared by commands that publish a report.
func addOutputFlags(fs *pflag.FlagSet) {
	fs.String("json", "", "JSON report path (default from output.json)")
	fs.String("markdown", "", "Markdown report path (default from output.markdown)")
	fs.Duration("delay", 0, "Pause before printing the report (default from report.delay)")
	fs.Bool("save", false, "Save the report to history (implied when store.type is set)")
}
