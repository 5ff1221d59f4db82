package parser

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/airworthy/adcheck/internal/rules"
)

var (
	effectiveDateRx = regexp.MustCompile(`(?i)effective\s+(?:date)?[:\s]*([\d]{1,2}\s+\w+\s+\d{4}|\w+\s+\d{1,2},?\s+\d{4}|\d{4}-\d{2}-\d{2})`)
	subjectRx       = regexp.MustCompile(`(?:Subject|ATA\s+Chapter)\s*[:\s]+\d+[,\s]*(.*)`)
	relatedSBRx     = regexp.MustCompile(`(?i)\b(?:sb\s+)?(a3\d{2}-\d{2}-\d{4})\b`)
)

// DetectAuthority classifies the issuing authority from document text.
func DetectAuthority(text string) rules.Authority {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "federal aviation administration"):
		return rules.AuthorityFAA
	case strings.Contains(lower, "european union aviation safety agency"),
		strings.Contains(lower, "easa"):
		return rules.AuthorityEASA
	default:
		return rules.AuthorityUnknown
	}
}

// ExtractDocument converts a full directive document (already converted to
// plain text by the document-acquisition collaborator) into a Directive:
// authority, directive ID, metadata, and the parsed applicability rule.
func ExtractDocument(text string) (*rules.Directive, error) {
	authority := DetectAuthority(text)
	if authority == rules.AuthorityUnknown {
		return nil, &ParseError{
			Kind:      ErrAuthorityUnknown,
			Authority: authority,
			Detail:    "document names neither FAA nor EASA",
			Span:      excerpt(text),
		}
	}

	g := grammars[authority]
	id := extractDirectiveID(text, g)
	if id == "" {
		return nil, &ParseError{
			Kind:      ErrNoDirectiveID,
			Authority: authority,
			Detail:    "no directive identifier matched the authority's numbering pattern",
			Span:      excerpt(text),
		}
	}

	rule, err := Parse(text, authority)
	if err != nil {
		return nil, err
	}
	rule.DirectiveID = id

	return &rules.Directive{
		DirectiveID:      id,
		Authority:        authority,
		EffectiveDate:    extractEffectiveDate(text),
		Subject:          extractSubject(text),
		Manufacturer:     inferManufacturer(rule.ApplicableModels),
		Rule:             *rule,
		RelatedBulletins: extractRelatedBulletins(text),
		ExtractedAt:      time.Now().UTC(),
	}, nil
}

func extractDirectiveID(text string, g grammar) string {
	m := g.directiveID.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return g.idPrefix + strings.ReplaceAll(m[1], "–", "-")
}

func extractEffectiveDate(text string) string {
	if m := effectiveDateRx.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func extractSubject(text string) string {
	if m := subjectRx.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// extractRelatedBulletins collects every service-bulletin reference in the
// document, not just those in exclusion clauses. Sorted for stable output.
func extractRelatedBulletins(text string) []string {
	seen := make(map[string]struct{})
	for _, m := range relatedSBRx.FindAllStringSubmatch(text, -1) {
		seen["SB "+strings.ToUpper(m[1])] = struct{}{}
	}
	if len(seen) == 0 {
		return nil
	}
	out := make([]string, 0, len(seen))
	for sb := range seen {
		out = append(out, sb)
	}
	sort.Strings(out)
	return out
}

func inferManufacturer(models []string) string {
	for _, m := range models {
		switch {
		case strings.HasPrefix(m, "A3"):
			return "Airbus S.A.S."
		case strings.HasPrefix(m, "MD-"), strings.HasPrefix(m, "DC-"):
			return "Boeing (McDonnell Douglas)"
		}
	}
	return ""
}
