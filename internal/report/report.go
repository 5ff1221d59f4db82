package report

import (
	"fmt"

	"github.com/airworthy/adcheck/internal/engine"
	"github.com/airworthy/adcheck/internal/rules"
)

// FleetEntry is one aircraft in a fleet file, identified by registration.
type FleetEntry struct {
	Registration string                `json:"registration"`
	Aircraft     *rules.AircraftConfig `json:"aircraft"`
}

// Row holds every directive decision for one aircraft.
type Row struct {
	Registration string                     `json:"registration"`
	Aircraft     rules.AircraftConfig       `json:"aircraft"`
	Decisions    []engine.DirectiveDecision `json:"decisions"`
}

// Matrix is the fleet-by-directive evaluation result. Rows keep fleet
// order; each row's decisions keep directive order, so identical inputs
// render identically.
type Matrix struct {
	DirectiveIDs []string `json:"directiveIds"`
	Rows         []Row    `json:"rows"`
}

// BuildMatrix evaluates every fleet aircraft against every directive.
// A directive whose rule fails evaluation for one aircraft does not stop
// the rest of the matrix.
func BuildMatrix(fleet []FleetEntry, directives []rules.Directive) *Matrix {
	ids := make([]string, 0, len(directives))
	for _, d := range directives {
		ids = append(ids, d.DirectiveID)
	}

	m := &Matrix{DirectiveIDs: ids, Rows: make([]Row, 0, len(fleet))}
	for _, entry := range fleet {
		m.Rows = append(m.Rows, Row{
			Registration: entry.Registration,
			Aircraft:     *entry.Aircraft,
			Decisions:    engine.EvaluateAll(entry.Aircraft, directives, nil),
		})
	}
	return m
}

// Expectation is one expected outcome in a verification file.
type Expectation struct {
	Registration string `json:"registration"`
	DirectiveID  string `json:"directiveId"`
	Affected     bool   `json:"affected"`
}

// Check is the outcome of comparing one expectation against the matrix.
type Check struct {
	Registration string `json:"registration"`
	DirectiveID  string `json:"directiveId"`
	Want         bool   `json:"want"`
	Got          bool   `json:"got"`
	Reason       string `json:"reason"`
	Pass         bool   `json:"pass"`
	Missing      bool   `json:"missing,omitempty"`
}

// Verification compares a matrix against expected outcomes.
type Verification struct {
	Checks []Check `json:"checks"`
	Passed int     `json:"passed"`
	Failed int     `json:"failed"`
}

// OK reports whether every expectation held.
func (v *Verification) OK() bool { return v.Failed == 0 }

// Verify checks each expectation against the matrix. An expectation that
// names an unknown registration or directive fails with Missing set
// rather than aborting the run.
func Verify(m *Matrix, expectations []Expectation) *Verification {
	decisions := make(map[string]engine.Decision, len(m.Rows)*len(m.DirectiveIDs))
	for _, row := range m.Rows {
		for _, d := range row.Decisions {
			decisions[row.Registration+"\x00"+d.DirectiveID] = d.Decision
		}
	}

	v := &Verification{Checks: make([]Check, 0, len(expectations))}
	for _, exp := range expectations {
		check := Check{
			Registration: exp.Registration,
			DirectiveID:  exp.DirectiveID,
			Want:         exp.Affected,
		}
		got, ok := decisions[exp.Registration+"\x00"+exp.DirectiveID]
		if !ok {
			check.Missing = true
			check.Reason = fmt.Sprintf("no decision for %s / %s in matrix", exp.Registration, exp.DirectiveID)
		} else {
			check.Got = got.Affected
			check.Reason = got.Reason
			check.Pass = got.Affected == exp.Affected
		}
		v.Checks = append(v.Checks, check)
		if check.Pass {
			v.Passed++
		} else {
			v.Failed++
		}
	}
	return v
}
