// Package engine decides whether a directive's applicability rule affects
// an aircraft configuration. Evaluation is pure and total: any well-formed
// DirectiveRule/AircraftConfig pair produces a decision plus a
// human-readable reason, and repeated calls with identical inputs return
// identical output.
package engine

import (
	"github.com/airworthy/adcheck/internal/rules"
)

// IsAffected computes the applicability decision for one aircraft against
// one directive rule.
//
// Precedence: inclusion tests (model AND serial number) are strict AND;
// exclusion clauses are OR across the list; exclusion always overrides
// inclusion. The model gate is the only short-circuit on the inclusion
// side: exact match against the rule's stored model strings, no fuzzy
// family matching.
func IsAffected(aircraft *rules.AircraftConfig, rule *rules.DirectiveRule) Decision {
	if !modelListed(aircraft.Model, rule.ApplicableModels) {
		return Decision{Affected: false, Reason: ReasonModelNotListed}
	}

	if !rule.Serials.Matches(aircraft.MSN) {
		return Decision{Affected: false, Reason: ReasonSerialOutside}
	}

	for _, clause := range rule.Exclusions {
		if !clause.AppliesTo(aircraft.Model) {
			continue
		}
		if aircraft.HasModification(clause.Identifier) {
			return Decision{
				Affected:      false,
				Reason:        reasonExcludedPrefix + clause.Identifier,
				MatchedClause: clause.Identifier,
			}
		}
	}

	return Decision{Affected: true, Reason: ReasonApplicable}
}

// EvaluateAll evaluates one aircraft against a list of directives,
// preserving input order. When onlyIDs is non-empty, directives whose ID
// is not listed are skipped.
func EvaluateAll(aircraft *rules.AircraftConfig, directives []rules.Directive, onlyIDs []string) []DirectiveDecision {
	var filter map[string]struct{}
	if len(onlyIDs) > 0 {
		filter = make(map[string]struct{}, len(onlyIDs))
		for _, id := range onlyIDs {
			filter[id] = struct{}{}
		}
	}

	decisions := make([]DirectiveDecision, 0, len(directives))
	for i := range directives {
		d := &directives[i]
		if filter != nil {
			if _, ok := filter[d.DirectiveID]; !ok {
				continue
			}
		}
		decisions = append(decisions, DirectiveDecision{
			DirectiveID: d.DirectiveID,
			Decision:    IsAffected(aircraft, &d.Rule),
		})
	}
	return decisions
}

func modelListed(model string, applicable []string) bool {
	for _, m := range applicable {
		if m == model {
			return true
		}
	}
	return false
}
