package report

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
)

// RenderMatrix renders the matrix as a table with one row per aircraft
// and one AFFECTED/clear column per directive.
func RenderMatrix(w io.Writer, m *Matrix) error {
	table := tablewriter.NewWriter(w)

	header := make([]any, 0, len(m.DirectiveIDs)+2)
	header = append(header, "Registration", "Aircraft")
	for _, id := range m.DirectiveIDs {
		header = append(header, id)
	}
	table.Header(header...)

	for _, row := range m.Rows {
		cells := make([]any, 0, len(row.Decisions)+2)
		cells = append(cells,
			row.Registration,
			fmt.Sprintf("%s MSN %d", row.Aircraft.Model, row.Aircraft.MSN),
		)
		byID := make(map[string]bool, len(row.Decisions))
		for _, d := range row.Decisions {
			byID[d.DirectiveID] = d.Decision.Affected
		}
		for _, id := range m.DirectiveIDs {
			if byID[id] {
				cells = append(cells, "AFFECTED")
			} else {
				cells = append(cells, "clear")
			}
		}
		table.Append(cells...)
	}

	return table.Render()
}

// RenderVerification renders per-check outcomes followed by a summary line.
func RenderVerification(w io.Writer, v *Verification) error {
	table := tablewriter.NewWriter(w)
	table.Header("Registration", "Directive", "Want", "Got", "Result", "Reason")

	for _, c := range v.Checks {
		result := "PASS"
		if !c.Pass {
			result = "FAIL"
		}
		got := fmt.Sprintf("%v", c.Got)
		if c.Missing {
			got = "-"
		}
		table.Append(c.Registration, c.DirectiveID, fmt.Sprintf("%v", c.Want), got, result, c.Reason)
	}

	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d passed, %d failed\n", v.Passed, v.Failed)
	return err
}
