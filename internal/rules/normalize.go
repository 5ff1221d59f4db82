package rules

import (
	"regexp"
	"strings"
)

// Token normalization. Authority documents vary casing and whitespace for
// modification and service-bulletin references ("Modification 24591",
// "mod  24591", "sb a320-57-1089 rev 04"). Normalizing both rule
// identifiers and aircraft modification lists to one canonical form at
// construction time lets later comparisons be exact string equality.

var (
	whitespaceRx = regexp.MustCompile(`\s+`)
	modTokenRx   = regexp.MustCompile(`(?i)^mod(?:ification)?\s*(?:\(mod\)\s*)?(\d{4,6})$`)
	sbTokenRx    = regexp.MustCompile(`(?i)^(?:airbus\s+)?(?:sb\s+)?(a3\d{2}-\d{2}-\d{4})(?:\s+(?:at\s+)?rev(?:ision)?\s*(\d+))?$`)
)

// NormalizeToken canonicalizes a modification or service-bulletin
// identifier: "mod <number>" for modifications, "SB <number>[ Rev <n>]"
// for service bulletins. Tokens matching neither pattern are returned with
// whitespace collapsed, so unknown identifiers still compare consistently.
func NormalizeToken(token string) string {
	t := whitespaceRx.ReplaceAllString(strings.TrimSpace(token), " ")

	if m := modTokenRx.FindStringSubmatch(t); m != nil {
		return "mod " + m[1]
	}
	if m := sbTokenRx.FindStringSubmatch(t); m != nil {
		id := "SB " + strings.ToUpper(m[1])
		if m[2] != "" {
			id += " Rev " + m[2]
		}
		return id
	}
	return t
}

// NormalizeModel canonicalizes an aircraft model designation: trimmed,
// upper-cased, with spaces and en-dashes folded to "-".
func NormalizeModel(model string) string {
	m := strings.ToUpper(strings.TrimSpace(model))
	m = strings.ReplaceAll(m, "–", "-")
	m = whitespaceRx.ReplaceAllString(m, "-")
	return m
}

// NormalizeModels applies NormalizeModel to every element, preserving
// order and dropping duplicates (first occurrence wins).
func NormalizeModels(models []string) []string {
	out := make([]string, 0, len(models))
	seen := make(map[string]struct{}, len(models))
	for _, m := range models {
		n := NormalizeModel(m)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
