package rules

import "time"

// Authority identifies the regulator that issued a directive. The tag also
// selects which parsing grammar applies to the directive's source text.
type Authority string

const (
	AuthorityFAA     Authority = "FAA"
	AuthorityEASA    Authority = "EASA"
	AuthorityUnknown Authority = "UNKNOWN"
)

// PredicateKind discriminates the serial-number predicate variants.
type PredicateKind string

const (
	SerialAll   PredicateKind = "all"
	SerialRange PredicateKind = "range"
	SerialSet   PredicateKind = "set"
)

// SerialPredicate restricts a directive to a subset of manufacturer serial
// numbers. The zero value is not valid; use one of the constructors.
type SerialPredicate struct {
	Kind   PredicateKind `json:"kind"`
	Lo     int           `json:"lo,omitempty"`
	Hi     int           `json:"hi,omitempty"`
	Values []int         `json:"values,omitempty"`
}

// AllSerials returns the predicate matching every MSN.
func AllSerials() SerialPredicate {
	return SerialPredicate{Kind: SerialAll}
}

// RangeSerials returns the predicate matching lo <= msn <= hi, inclusive
// on both ends.
func RangeSerials(lo, hi int) SerialPredicate {
	return SerialPredicate{Kind: SerialRange, Lo: lo, Hi: hi}
}

// SetSerials returns the predicate matching exactly the listed MSNs.
func SetSerials(values ...int) SerialPredicate {
	return SerialPredicate{Kind: SerialSet, Values: values}
}

// Matches reports whether the predicate admits the given MSN.
func (p SerialPredicate) Matches(msn int) bool {
	switch p.Kind {
	case SerialRange:
		return p.Lo <= msn && msn <= p.Hi
	case SerialSet:
		for _, v := range p.Values {
			if v == msn {
				return true
			}
		}
		return false
	default:
		// SerialAll, and anything unrecognised, admits every MSN.
		return true
	}
}

// ClauseKind discriminates exclusion clause types.
type ClauseKind string

const (
	ClauseModification    ClauseKind = "modification"
	ClauseServiceBulletin ClauseKind = "service_bulletin"
)

// EmbodimentContext records whether an exclusion clause requires the
// modification to have been embodied in production or in service. It is
// carried through for audit purposes but does not participate in matching:
// aircraft modification records do not currently distinguish context.
type EmbodimentContext string

const (
	EmbodimentProduction  EmbodimentContext = "production"
	EmbodimentService     EmbodimentContext = "service"
	EmbodimentUnspecified EmbodimentContext = "unspecified"
)

// ExclusionClause is one "except those on which ..." condition. Clauses
// within one directive combine with OR: an aircraft matching any clause is
// excluded regardless of how many clauses exist.
type ExclusionClause struct {
	Kind       ClauseKind        `json:"kind"`
	Identifier string            `json:"identifier"`
	Embodiment EmbodimentContext `json:"embodiment"`

	// AppliesToModels narrows the clause to a subset of the directive's
	// applicable models. When empty the clause is directive-wide. The
	// parser only populates this from an explicit scoping signal in the
	// source text, never from domain knowledge.
	AppliesToModels []string `json:"appliesToModels,omitempty"`
}

// AppliesTo reports whether the clause applies to the given (normalized)
// aircraft model.
func (c ExclusionClause) AppliesTo(model string) bool {
	if len(c.AppliesToModels) == 0 {
		return true
	}
	for _, m := range c.AppliesToModels {
		if m == model {
			return true
		}
	}
	return false
}

// DirectiveRule is one authority's applicability statement for one
// directive. Instances are created once during extraction and are read-only
// inputs to evaluation thereafter.
type DirectiveRule struct {
	Authority        Authority         `json:"authority"`
	DirectiveID      string            `json:"directiveId"`
	ApplicableModels []string          `json:"applicableModels"`
	Serials          SerialPredicate   `json:"serials"`
	Exclusions       []ExclusionClause `json:"exclusions"`

	// Warnings holds non-fatal parse diagnostics, e.g. an "except" clause
	// that matched neither the modification nor the service-bulletin
	// pattern and was dropped.
	Warnings []string `json:"warnings,omitempty"`
}

// Directive is the full extracted record: document metadata plus the
// applicability rule.
type Directive struct {
	DirectiveID      string        `json:"directiveId"`
	Authority        Authority     `json:"authority"`
	EffectiveDate    string        `json:"effectiveDate,omitempty"`
	Subject          string        `json:"subject,omitempty"`
	Manufacturer     string        `json:"manufacturer,omitempty"`
	Rule             DirectiveRule `json:"rule"`
	RelatedBulletins []string      `json:"relatedBulletins,omitempty"`
	ExtractedAt      time.Time     `json:"extractedAt"`
}
