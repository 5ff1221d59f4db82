// Package parser turns raw airworthiness-directive text into structured
// applicability rules. Parsing is deterministic: the same input always
// yields a byte-identical rule, with exclusion clauses in first-occurrence
// order.
package parser

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/airworthy/adcheck/internal/rules"
)

// Parse isolates the applicability section of text using the authority's
// grammar and produces a populated DirectiveRule. The returned rule has an
// empty DirectiveID; ExtractDocument fills it from document metadata, and
// direct callers set it themselves.
//
// Failure modes are the typed ParseError kinds; an unclassifiable "except"
// clause is not a failure — the clause is dropped and a warning is
// recorded on the rule.
func Parse(text string, authority rules.Authority) (*rules.DirectiveRule, error) {
	g, ok := grammars[authority]
	if !ok {
		return nil, &ParseError{
			Kind:      ErrAuthorityUnknown,
			Authority: authority,
			Detail:    fmt.Sprintf("no grammar registered for authority %q", authority),
		}
	}

	m := g.section.FindStringSubmatch(text)
	if m == nil {
		return nil, &ParseError{
			Kind:      ErrSectionNotFound,
			Authority: authority,
			Detail:    "applicability section header not located",
			Span:      excerpt(text),
		}
	}
	section := m[1]

	models := extractModels(section)
	if len(models) == 0 {
		return nil, &ParseError{
			Kind:      ErrNoModels,
			Authority: authority,
			Detail:    "no aircraft model designations matched in applicability section",
			Span:      excerpt(section),
		}
	}

	serials, err := parseSerialPredicate(section, g)
	if err != nil {
		return nil, err
	}

	clauses, warnings := parseExclusions(section, models)

	rule := &rules.DirectiveRule{
		Authority:        authority,
		ApplicableModels: models,
		Serials:          serials,
		Exclusions:       clauses,
		Warnings:         warnings,
	}
	if err := rules.ValidateRule(*rule); err != nil {
		return nil, err
	}
	return rule, nil
}

// extractModels harvests model designations from the section in
// first-occurrence order, deduplicated and normalized.
func extractModels(section string) []string {
	type hit struct {
		pos   int
		token string
	}
	var hits []hit
	for _, rx := range []*regexp.Regexp{airbusModelRx, mdDcModelRx} {
		for _, loc := range rx.FindAllStringIndex(section, -1) {
			hits = append(hits, hit{pos: loc[0], token: section[loc[0]:loc[1]]})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })

	tokens := make([]string, 0, len(hits))
	for _, h := range hits {
		tokens = append(tokens, h.token)
	}
	return rules.NormalizeModels(tokens)
}

func parseSerialPredicate(section string, g grammar) (rules.SerialPredicate, error) {
	if m := msnRangeRx.FindStringSubmatch(section); m != nil {
		lo, _ := strconv.Atoi(m[1])
		hi, _ := strconv.Atoi(m[2])
		return rules.RangeSerials(lo, hi), nil
	}

	if m := msnListRx.FindStringSubmatch(section); m != nil {
		parts := strings.Split(m[1], ",")
		values := make([]int, 0, len(parts))
		for _, p := range parts {
			v, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil {
				continue
			}
			values = append(values, v)
		}
		if len(values) > 0 {
			return rules.SetSerials(values...), nil
		}
	}

	if msnAllRx.MatchString(section) || appliesAllRx.MatchString(section) {
		return rules.AllSerials(), nil
	}

	// No MSN clause recognised. Defaulting to ALL is only safe when the
	// authority's phrasing set contains no MSN language at all; otherwise
	// the omission means extraction failed.
	if g.hasMSNLanguage {
		return rules.SerialPredicate{}, &ParseError{
			Kind:      ErrNoSerialPredicate,
			Authority: g.authority,
			Detail:    "no MSN clause recognised and the grammar expects one",
			Span:      excerpt(section),
		}
	}
	return rules.AllSerials(), nil
}

// parseExclusions walks the section's "except" clauses: each keyword
// opens a clause that runs to the next "except", sentence terminator, or
// end of section. Clauses are classified modification-first, then
// service bulletin; anything else is dropped with a warning.
func parseExclusions(section string, applicableModels []string) ([]rules.ExclusionClause, []string) {
	var (
		clauses  []rules.ExclusionClause
		warnings []string
	)

	for _, span := range splitExceptClauses(section) {
		clause, warning := classifyClause(span, applicableModels)
		if warning != "" {
			warnings = append(warnings, warning)
			continue
		}
		clauses = append(clauses, clause)
	}
	return clauses, warnings
}

func splitExceptClauses(section string) []string {
	locs := exceptRx.FindAllStringIndex(section, -1)
	spans := make([]string, 0, len(locs))
	for i, loc := range locs {
		start := loc[1]
		end := len(section)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		body := section[start:end]
		if cut := clauseTerminator(body); cut >= 0 {
			body = body[:cut]
		}
		body = strings.TrimSpace(strings.Trim(strings.TrimSpace(body), ",;"))
		if body != "" {
			spans = append(spans, body)
		}
	}
	return spans
}

// clauseTerminator returns the index of the first sentence terminator in
// body, or -1. A period only terminates when followed by whitespace or
// end of text, so dotted abbreviations inside a clause survive.
func clauseTerminator(body string) int {
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case ';':
			return i
		case '.':
			if i+1 == len(body) || body[i+1] == ' ' || body[i+1] == '\n' {
				return i
			}
		case '\n':
			if i+1 < len(body) && body[i+1] == '\n' {
				return i
			}
		}
	}
	return -1
}

func classifyClause(span string, applicableModels []string) (rules.ExclusionClause, string) {
	embodiment := rules.EmbodimentUnspecified
	if m := embodiedRx.FindStringSubmatch(span); m != nil {
		embodiment = rules.EmbodimentContext(strings.ToLower(m[1]))
	}

	var clause rules.ExclusionClause
	if m := modClauseRx.FindStringSubmatch(span); m != nil {
		clause = rules.ExclusionClause{
			Kind:       rules.ClauseModification,
			Identifier: "mod " + m[1],
			Embodiment: embodiment,
		}
	} else if m := sbClauseRx.FindStringSubmatch(span); m != nil {
		id := "SB " + strings.ToUpper(m[1])
		if m[2] != "" {
			id += " Rev " + m[2]
		}
		clause = rules.ExclusionClause{
			Kind:       rules.ClauseServiceBulletin,
			Identifier: id,
			Embodiment: embodiment,
		}
	} else {
		return rules.ExclusionClause{}, fmt.Sprintf("exclusion clause dropped, matched neither modification nor service-bulletin pattern: %q", excerpt(span))
	}

	clause.AppliesToModels = scopeClause(span, applicableModels)
	return clause, ""
}

// scopeClause narrows a clause to specific models when the clause text
// itself names them ("mod 24977 for A321 aeroplanes"). A full designation
// scopes to that model; a bare family token scopes to every applicable
// model of that family. Scoping tokens that resolve to no applicable
// model are ignored rather than guessed at, leaving the clause
// directive-wide.
func scopeClause(span string, applicableModels []string) []string {
	var scoped []string
	for _, m := range clauseScopeRx.FindAllStringSubmatch(span, -1) {
		token := rules.NormalizeModel(m[1])
		for _, model := range applicableModels {
			if model == token || strings.HasPrefix(model, token+"-") {
				scoped = appendUnique(scoped, model)
			}
		}
	}
	return scoped
}

func appendUnique(list []string, s string) []string {
	for _, have := range list {
		if have == s {
			return list
		}
	}
	return append(list, s)
}
