package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/airworthy/adcheck/internal/cli"
	"github.com/airworthy/adcheck/internal/client"
	"github.com/airworthy/adcheck/internal/rules"
)

var listAuthority string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored directives",
	Long: `List all directives stored in the service.

Examples:
  adcheck list --env prod
  adcheck list --env prod --format json
  adcheck list --env prod --authority EASA`,
	RunE: func(cmd *cobra.Command, args []string) error {
		envCfg, _, err := cli.GetEnvConfig(env, baseURL, apiKey)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		c := client.NewClient(envCfg.BaseURL, envCfg.APIKey)

		directives, err := c.ListDirectives(context.Background())
		if err != nil {
			return fmt.Errorf("failed to list directives: %w", err)
		}

		if listAuthority != "" {
			var filtered []rules.Directive
			for _, d := range directives {
				if string(d.Authority) == listAuthority {
					filtered = append(filtered, d)
				}
			}
			directives = filtered
		}

		if !quiet {
			if len(directives) == 0 {
				fmt.Println("No directives found")
				return nil
			}
			return cli.PrintDirectives(directives, cli.OutputFormat(format))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listAuthority, "authority", "", "Show only directives from this authority (FAA, EASA)")
}
