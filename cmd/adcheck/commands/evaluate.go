package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/airworthy/adcheck/internal/cli"
	"github.com/airworthy/adcheck/internal/client"
	"github.com/airworthy/adcheck/internal/rules"
)

var (
	evaluateModel      string
	evaluateMSN        int
	evaluateMods       []string
	evaluateDirectives []string
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate an aircraft against stored directives",
	Long: `Evaluate an aircraft configuration against the directives stored in the
service and report which ones affect it, with reasons.

Examples:
  adcheck evaluate --model A320-214 --msn 4211
  adcheck evaluate --model A320-214 --msn 4211 --mod "mod 24591"
  adcheck evaluate --model MD-11F --msn 48500 --directive FAA-2025-23-53`,
	RunE: func(cmd *cobra.Command, args []string) error {
		aircraft, err := rules.NewAircraftConfig(evaluateModel, evaluateMSN, evaluateMods)
		if err != nil {
			return fmt.Errorf("invalid aircraft: %w", err)
		}

		envCfg, _, err := cli.GetEnvConfig(env, baseURL, apiKey)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		c := client.NewClient(envCfg.BaseURL, envCfg.APIKey)

		result, err := c.Evaluate(context.Background(), aircraft, evaluateDirectives)
		if err != nil {
			return fmt.Errorf("evaluation failed: %w", err)
		}

		if !quiet {
			if len(result.Decisions) == 0 {
				fmt.Println("No directives evaluated")
				return nil
			}
			return cli.PrintDecisions(result.Decisions, cli.OutputFormat(format))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().StringVar(&evaluateModel, "model", "", "Aircraft model, e.g. A320-214")
	evaluateCmd.Flags().IntVar(&evaluateMSN, "msn", 0, "Manufacturer serial number")
	evaluateCmd.Flags().StringSliceVar(&evaluateMods, "mod", nil, "Embodied modification or service bulletin (repeatable)")
	evaluateCmd.Flags().StringSliceVar(&evaluateDirectives, "directive", nil, "Restrict evaluation to these directive IDs (repeatable)")
	_ = evaluateCmd.MarkFlagRequired("model")
	_ = evaluateCmd.MarkFlagRequired("msn")
}
