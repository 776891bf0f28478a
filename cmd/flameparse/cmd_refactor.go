package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"flameparse/internal/analyzer"
	"flameparse/internal/config"
	"flameparse/internal/gitops"
	"flameparse/internal/llm"
	"flameparse/internal/pysrc"
	"flameparse/internal/spy"
)

var (
	refactorPath    string
	refactorOutput  string
	refactorSamples int
	refactorAPIKey  string
	refactorApply   bool
)

var refactorCmd = &cobra.Command{
	Use:   "refactor",
	Short: "Profile a script and rewrite its hottest function with an LLM",
	RunE:  runRefactor,
}

func init() {
	refactorCmd.Flags().StringVarP(&refactorPath, "path", "p", "", "Python script to profile")
	refactorCmd.Flags().StringVarP(&refactorOutput, "output-filename", "o", "profile_cli.txt", "file for the raw py-spy output")
	refactorCmd.Flags().IntVarP(&refactorSamples, "samples", "s", 1000, "py-spy sampling rate")
	refactorCmd.Flags().StringVar(&refactorAPIKey, "api-key", "", "DeepSeek API key")
	refactorCmd.Flags().BoolVar(&refactorApply, "apply", false, "apply the rewrite through the git workflow instead of printing it")
	_ = refactorCmd.MarkFlagRequired("path")
	_ = refactorCmd.MarkFlagRequired("api-key")
	rootCmd.AddCommand(refactorCmd)
}

func runRefactor(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if err := spy.Record(ctx, refactorPath, refactorOutput, refactorSamples); err != nil {
		return err
	}
	echoSuccess("Profile recorded successfully")

	report, err := analyzer.Analyze(refactorOutput)
	if err != nil {
		if errors.Is(err, analyzer.ErrNoTarget) {
			return fmt.Errorf("could not find a function to refactor: %w", err)
		}
		return err
	}
	echoSuccess("Parsed py-spy output successfully")

	target := report.FunctionTotals[0].Function
	client := llm.NewClient(refactorAPIKey)
	refactored, err := client.RefactorFunction(ctx, report.SourceCode)
	if err != nil {
		return err
	}

	if !refactorApply {
		echoUsual("Original source:")
		echoWarning(report.SourceCode + "\n")
		echoUsual("Refactored code:")
		echoSuccess(refactored)
		return nil
	}

	module := report.ModuleDistribution[0].Module
	source, err := os.ReadFile(module)
	if err != nil {
		return fmt.Errorf("reading module %s: %w", module, err)
	}
	updated, err := pysrc.ReplaceFunction(source, target, refactored)
	if err != nil {
		return err
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}
	token, err := cfg.GitHubToken()
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return fmt.Errorf("config file not created, run: flameparse config")
		}
		return err
	}

	commitURL, err := gitops.Apply(ctx, ".", module, target, updated, token)
	if err != nil {
		return err
	}
	echoSuccess("Commit created: " + commitURL)
	return nil
}
