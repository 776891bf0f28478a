// flameparse profiles a Python program with py-spy, attributes samples to
// functions and modules, and can hand the hottest function to an LLM for an
// automated rewrite.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "flameparse",
	Short:         "py-spy output analysis and hotspot refactoring",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var verbose bool

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	cobra.OnInitialize(func() {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	})

	if err := rootCmd.Execute(); err != nil {
		echoError(err.Error())
		os.Exit(1)
	}
}
