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
	"github.com/airworthy/adcheck/internal/rules"
)

// fleetRecord is one line of a fleet file; the aircraft fields are flat
// so operators can export them straight from their fleet database.
type fleetRecord struct {
	Registration  string   `json:"registration"`
	Model         string   `json:"aircraftModel"`
	MSN           int      `json:"msn"`
	Modifications []string `json:"modificationsApplied"`
}

var verifyCmd = &cobra.Command{
	Use:   "verify <fleet-file> <expectations-file>",
	Short: "Verify fleet decisions against expected outcomes",
	Long: `Evaluate every aircraft in a fleet file against the stored directives
and compare the decisions with an expectations file. Exits non-zero when
any expectation fails.

The fleet file is a JSON array of aircraft:
  [{"registration": "D-AIUA", "aircraftModel": "A320-214", "msn": 4211,
    "modificationsApplied": ["mod 24591"]}]

The expectations file is a JSON array of expected outcomes:
  [{"registration": "D-AIUA", "directiveId": "EASA-2025-0254R1",
    "affected": false}]

Examples:
  adcheck verify fleet.json expectations.json --env prod
  adcheck verify fleet.json expectations.json --format json`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		fleet, err := loadFleet(args[0])
		if err != nil {
			return err
		}

		var expectations []report.Expectation
		if err := readJSONFile(args[1], &expectations); err != nil {
			return fmt.Errorf("failed to load expectations: %w", err)
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
		verification := report.Verify(matrix, expectations)

		if !quiet {
			switch cli.OutputFormat(format) {
			case cli.FormatJSON:
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(verification); err != nil {
					return err
				}
			default:
				if err := report.RenderVerification(os.Stdout, verification); err != nil {
					return err
				}
			}
		}

		if !verification.OK() {
			return fmt.Errorf("%d expectation(s) failed", verification.Failed)
		}
		return nil
	},
}

func loadFleet(path string) ([]report.FleetEntry, error) {
	var records []fleetRecord
	if err := readJSONFile(path, &records); err != nil {
		return nil, fmt.Errorf("failed to load fleet: %w", err)
	}

	fleet := make([]report.FleetEntry, 0, len(records))
	for _, rec := range records {
		aircraft, err := rules.NewAircraftConfig(rec.Model, rec.MSN, rec.Modifications)
		if err != nil {
			return nil, fmt.Errorf("invalid aircraft %s: %w", rec.Registration, err)
		}
		fleet = append(fleet, report.FleetEntry{Registration: rec.Registration, Aircraft: aircraft})
	}
	return fleet, nil
}

func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
