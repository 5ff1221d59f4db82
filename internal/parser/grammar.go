package parser

import (
	"regexp"

	"github.com/airworthy/adcheck/internal/rules"
)

// Each authority registers its own section-header and identifier patterns,
// selected by the authority tag at parse time. This keeps the parser a
// small constrained grammar (section -> sentence -> clause list) rather
// than ad hoc string search, and makes adding an authority a data change.
type grammar struct {
	authority rules.Authority

	// section isolates the applicability block; submatch 1 is the body.
	section *regexp.Regexp

	// directiveID matches the authority's AD numbering; submatch 1 is the
	// bare number.
	directiveID *regexp.Regexp

	// idPrefix is prepended to the bare number to form the stored ID.
	idPrefix string

	// hasMSNLanguage records whether this authority's known phrasing set
	// contains MSN clauses at all. When it does, a missing MSN clause is
	// fatal; when it does not, absence defaults to the ALL predicate.
	hasMSNLanguage bool
}

var grammars = map[rules.Authority]grammar{
	rules.AuthorityEASA: {
		authority: rules.AuthorityEASA,
		// EASA ADs carry a literal "Applicability" heading, terminated by
		// the next standard heading.
		section:        regexp.MustCompile(`(?is)\bApplicability:?\s*(.*?)(?:\n\s*(?:Definitions|Reason|Required\s+Action(?:\(s\))?|Compliance)\s*:|\z)`),
		directiveID:    regexp.MustCompile(`AD\s+(?:No\.?\s*:?\s*)?(\d{4}[-\x{2013}]\d{4}(?:R\d+)?)`),
		idPrefix:       "EASA-",
		hasMSNLanguage: true,
	},
	rules.AuthorityFAA: {
		authority: rules.AuthorityFAA,
		// FAA ADs have no standalone heading; the applicability paragraph
		// is keyed by its lettered-paragraph phrasing.
		section:        regexp.MustCompile(`(?is)\(\w\)\s+Applicability\s*\.?\s*(.*?)(?:\(\w\)\s+(?:Subject|Unsafe\s+Condition|Compliance)|\z)`),
		directiveID:    regexp.MustCompile(`AD\s+(\d{4}[-\x{2013}]\d{2}[-\x{2013}]\d{2,4})`),
		idPrefix:       "FAA-",
		hasMSNLanguage: false,
	},
}

// Model designation patterns shared across grammars. Matching against
// aircraft is exact-string on the normalized designations; these patterns
// only harvest candidates from source text.
var (
	airbusModelRx = regexp.MustCompile(`\bA3(?:19|20|21)-\d{3}[A-Z]?\b`)
	mdDcModelRx   = regexp.MustCompile(`\b(?:MD|DC)-\d{1,2}(?:-\d{1,3})?[A-Z]?\b`)
)

// Serial-number clause patterns.
var (
	msnAllRx   = regexp.MustCompile(`(?i)\ball\s+(?:manufacturer\s+serial\s+numbers|msns?)\b`)
	appliesAllRx = regexp.MustCompile(`(?i)\bapplies\s+to\s+all\b`)
	msnRangeRx = regexp.MustCompile(`(?i)\bmsn\s+(\d{1,6})\s*(?:through|thru|to|up\s+to\s+and\s+including|[-\x{2013}])\s*(\d{1,6})\b`)
	msnListRx  = regexp.MustCompile(`(?i)\bmsns?\s+(\d{1,6}(?:\s*,\s*\d{1,6})+)\b`)
)

// Exclusion clause patterns.
var (
	exceptRx     = regexp.MustCompile(`(?i)\bexcept\b`)
	modClauseRx  = regexp.MustCompile(`(?i)\bmod(?:ification)?\s*(?:\(mod\)\s*)?(\d{4,6})\b`)
	sbClauseRx   = regexp.MustCompile(`(?i)\b(?:sb\s+)?(a3\d{2}-\d{2}-\d{4})(?:\s+(?:at\s+)?rev(?:ision)?\s*(\d+))?\b`)
	embodiedRx   = regexp.MustCompile(`(?i)\bembodied\s+in\s+(production|service)\b`)
	clauseScopeRx = regexp.MustCompile(`(?i)\b(?:for|on)\s+(A3(?:19|20|21)(?:-\d{3}[A-Z]?)?)\s*(?:aeroplanes|aircraft)?\b`)
)
