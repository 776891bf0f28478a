package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"flameparse/internal/analyzer"
	"flameparse/internal/pyspy"
)

var (
	reportFilename string
	reportRaw      bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render the analysis report from a saved py-spy capture",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&reportFilename, "filename", "f", "profile_cli.txt", "saved py-spy raw output")
	reportCmd.Flags().BoolVarP(&reportRaw, "raw", "r", false, "dump the full structured report as JSON")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	report, err := analyzeProfile(reportFilename)
	if err != nil {
		return err
	}
	return renderReport(report, reportRaw)
}

// analyzeProfile runs the full parse and reduces the errors to what the CLI
// surfaces: missing capture file fails the command, a missing refactor target
// is only a warning.
func analyzeProfile(path string) (*analyzer.Report, error) {
	report, err := analyzer.Analyze(path)
	switch {
	case errors.Is(err, pyspy.ErrProfileNotFound):
		return nil, err
	case errors.Is(err, analyzer.ErrNoTarget):
		echoWarning("Could not find a function to refactor")
		return report, nil
	case err != nil:
		return nil, err
	}
	return report, nil
}

func renderReport(report *analyzer.Report, raw bool) error {
	if raw {
		return analyzer.RenderRaw(os.Stdout, report)
	}
	analyzer.Render(os.Stdout, report)
	return nil
}
