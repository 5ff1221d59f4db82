package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/airworthy/adcheck/internal/cli"
	"github.com/airworthy/adcheck/internal/client"
)

var getCmd = &cobra.Command{
	Use:   "get <directive-id>",
	Short: "Get a stored directive",
	Long: `Get details of a specific directive by its identifier.

Examples:
  adcheck get EASA-2025-0254R1 --env prod
  adcheck get FAA-2025-23-53 --env prod --format json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		envCfg, _, err := cli.GetEnvConfig(env, baseURL, apiKey)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		c := client.NewClient(envCfg.BaseURL, envCfg.APIKey)

		d, err := c.GetDirective(context.Background(), id)
		if err != nil {
			return fmt.Errorf("failed to get directive: %w", err)
		}

		if !quiet {
			return cli.PrintDirective(d, cli.OutputFormat(format))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
}
