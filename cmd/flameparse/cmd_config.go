package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"flameparse/internal/config"
)

var configToken string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Initialize or update the stored GitHub token",
	RunE:  runConfig,
}

func init() {
	configCmd.Flags().StringVar(&configToken, "token", "", "GitHub token (prompted when omitted)")
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.New()
	if err != nil {
		return err
	}

	if cfg.Exists() && configToken == "" {
		echoWarning("A config file with a GitHub token already exists. It will be overwritten.")
		if !confirm("Continue?") {
			return nil
		}
	}

	token := configToken
	if token == "" {
		token = prompt("Enter GitHub token: ")
	}
	if token == "" {
		return fmt.Errorf("no token provided")
	}

	if err := cfg.SetGitHubToken(token); err != nil {
		return err
	}
	echoSuccess("Token saved successfully")
	return nil
}

func prompt(label string) string {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func confirm(label string) bool {
	answer := strings.ToLower(prompt(label + " [y/N] "))
	return answer == "y" || answer == "yes"
}
