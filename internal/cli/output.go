package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/airworthy/adcheck/internal/engine"
	"github.com/airworthy/adcheck/internal/rules"
)

// OutputFormat specifies the output format for CLI commands
type OutputFormat string

const (
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
	FormatYAML  OutputFormat = "yaml"
)

// PrintDirectives outputs directives in the specified format
func PrintDirectives(directives []rules.Directive, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return printJSON(map[string][]rules.Directive{"directives": directives})
	case FormatYAML:
		return printYAML(directives)
	case FormatTable:
		return printDirectiveTable(directives)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// PrintDirective outputs a single directive in the specified format
func PrintDirective(d *rules.Directive, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return printJSON(d)
	case FormatYAML:
		return printYAML(d)
	case FormatTable:
		return printDirectiveTable([]rules.Directive{*d})
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// PrintDecisions outputs applicability decisions in the specified format
func PrintDecisions(decisions []engine.DirectiveDecision, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return printJSON(map[string][]engine.DirectiveDecision{"decisions": decisions})
	case FormatYAML:
		return printYAML(decisions)
	case FormatTable:
		return printDecisionTable(decisions)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func printJSON(data interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func printYAML(data interface{}) error {
	encoder := yaml.NewEncoder(os.Stdout)
	defer encoder.Close()
	encoder.SetIndent(2)
	return encoder.Encode(data)
}

func printDirectiveTable(directives []rules.Directive) error {
	table := tablewriter.NewWriter(os.Stdout)

	table.Header("Directive", "Authority", "Models", "Serials", "Exclusions", "Effective")

	for _, d := range directives {
		models := strings.Join(d.Rule.ApplicableModels, ", ")
		if len(models) > 40 {
			models = models[:37] + "..."
		}

		table.Append(
			d.DirectiveID,
			string(d.Authority),
			models,
			formatSerials(d.Rule.Serials),
			fmt.Sprintf("%d", len(d.Rule.Exclusions)),
			d.EffectiveDate,
		)
	}

	return table.Render()
}

func formatSerials(p rules.SerialPredicate) string {
	switch p.Kind {
	case rules.SerialRange:
		return fmt.Sprintf("%d-%d", p.Lo, p.Hi)
	case rules.SerialSet:
		return fmt.Sprintf("%d listed", len(p.Values))
	default:
		return "all"
	}
}

func printDecisionTable(decisions []engine.DirectiveDecision) error {
	table := tablewriter.NewWriter(os.Stdout)

	table.Header("Directive", "Affected", "Reason")

	for _, d := range decisions {
		affected := "no"
		if d.Decision.Affected {
			affected = "YES"
		}
		table.Append(d.DirectiveID, affected, d.Decision.Reason)
	}

	return table.Render()
}
