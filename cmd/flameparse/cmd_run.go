package main

import (
	"github.com/spf13/cobra"

	"flameparse/internal/spy"
)

var (
	runPath    string
	runOutput  string
	runSamples int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Profile a Python script and render the analysis report",
	RunE:  runRun,
}

func init() {
	runCmd.Flags().StringVarP(&runPath, "path", "p", "", "Python script to profile")
	runCmd.Flags().StringVarP(&runOutput, "output-filename", "o", "profile_cli.txt", "file for the raw py-spy output")
	runCmd.Flags().IntVarP(&runSamples, "samples", "s", 1000, "py-spy sampling rate")
	_ = runCmd.MarkFlagRequired("path")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	if err := spy.Record(cmd.Context(), runPath, runOutput, runSamples); err != nil {
		return err
	}
	echoSuccess("Profile recorded successfully")

	report, err := analyzeProfile(runOutput)
	if err != nil {
		return err
	}
	echoSuccess("Parsed py-spy output successfully")
	return renderReport(report, false)
}
