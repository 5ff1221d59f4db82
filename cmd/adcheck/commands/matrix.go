package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/airworthy/adcheck/internal/cli"
	"github.com/airworthy/adcheck/internal/client"
	"github.com/airworthy/adcheck/internal/report"
)

var matrixCmd = &cobra.Command{
	Use:   "matrix <fleet-file>",
	Short: "Evaluate a fleet against all stored directives",
	Long: `Evaluate every aircraft in a fleet file against all directives stored
in the service and print the resulting applicability matrix.

Examples:
  adcheck matrix fleet.json --env prod
  adcheck matrix fleet.json --format json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fleet, err := loadFleet(args[0])
		if err != nil {
			return err
		}

		envCfg, _, err := cli.GetEnvConfig(env, baseURL, apiKey)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		c := client.NewClient(envCfg.BaseURL, envCfg.APIKey)
		directives, err := c.ListDirectives(context.Background())
		if err != nil {
			return fmt.Errorf("failed to list directives: %w", err)
		}

		matrix := report.BuildMatrix(fleet, directives)

		if quiet {
			return nil
		}
		switch cli.OutputFormat(format) {
		case cli.FormatJSON:
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(matrix)
		default:
			return report.RenderMatrix(os.Stdout, matrix)
		}
	},
}

func init() {
	rootCmd.AddCommand(matrixCmd)
}
