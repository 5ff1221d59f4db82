package engine

// Reason strings attached to every decision. The reason is part of the
// engine's contract, not a debug nicety: callers record it for audit.
const (
	ReasonModelNotListed = "model not in applicability list"
	ReasonSerialOutside  = "MSN outside applicability"
	ReasonApplicable     = "applicable, no exclusion matched"

	reasonExcludedPrefix = "excluded by "
)

// Decision is the deterministic output of IsAffected.
type Decision struct {
	Affected bool   `json:"affected"`
	Reason   string `json:"reason"`

	// MatchedClause carries the identifier of the exclusion clause that
	// fired, when one did. When several clauses match, the first in
	// stored order is reported; the boolean outcome does not depend on
	// clause order.
	MatchedClause string `json:"matchedClause,omitempty"`
}

// DirectiveDecision pairs a decision with the directive it was made for,
// used by batch evaluation.
type DirectiveDecision struct {
	DirectiveID string   `json:"directiveId"`
	Decision    Decision `json:"decision"`
}
