package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	baseURL string
	apiKey  string
	env     string
	format  string
	quiet   bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "adcheck",
	Short: "CLI tool for airworthiness directive applicability",
	Long: `Adcheck is a command-line tool for the airworthiness directive service.

It extracts applicability rules from directive documents, lists stored
directives, and evaluates aircraft configurations against them.

Examples:
  adcheck extract ad-2025-0254.txt --env prod
  adcheck list --env prod
  adcheck get EASA-2025-0254R1 --env prod
  adcheck evaluate --model A320-214 --msn 4211 --mod "mod 24591"
  adcheck verify fleet.json expectations.json --env prod`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags available to all commands
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Base URL of the adcheck API")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "API key for authentication")
	rootCmd.PersistentFlags().StringVar(&env, "env", "", "Environment (dev, staging, prod)")
	rootCmd.PersistentFlags().StringVar(&format, "format", "table", "Output format (table, json, yaml)")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "Suppress output")
}
