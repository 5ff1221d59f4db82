package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/airworthy/adcheck/internal/cli"
	"github.com/airworthy/adcheck/internal/client"
)

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Extract a directive from a text document",
	Long: `Extract the applicability rule and metadata from a directive document
and store it in the service. The file must contain the directive as plain
text; PDF decoding is out of scope.

Examples:
  adcheck extract ad-2025-0254.txt --env prod
  adcheck extract ad-2025-23-53.txt --env prod --format json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read document: %w", err)
		}

		envCfg, _, err := cli.GetEnvConfig(env, baseURL, apiKey)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		c := client.NewClient(envCfg.BaseURL, envCfg.APIKey)

		result, err := c.Extract(context.Background(), string(text))
		if err != nil {
			return fmt.Errorf("failed to extract directive: %w", err)
		}

		if !quiet {
			for _, warning := range result.Warnings {
				fmt.Fprintf(os.Stderr, "Warning: %s\n", warning)
			}
			return cli.PrintDirective(&result.Directive, cli.OutputFormat(format))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
}
