package rules

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by ValidateRule and NewAircraftConfig.
var (
	ErrNoApplicableModels = errors.New("no applicable models")
	ErrInvalidPredicate   = errors.New("invalid serial predicate")
	ErrInvalidClause      = errors.New("invalid exclusion clause")
	ErrInvalidAircraft    = errors.New("invalid aircraft config")
)

// ValidateRule performs strict validation of a DirectiveRule.
// It is a pure function: it never mutates r and has no side effects.
//
// An empty model list always fails: it means extraction failed and must be
// reported, never silently treated as "applies to nothing" or "applies to
// everything".
func ValidateRule(r DirectiveRule) error {
	if len(r.ApplicableModels) == 0 {
		return fmt.Errorf("%w: directive %s", ErrNoApplicableModels, r.DirectiveID)
	}

	if err := validatePredicate(r.Serials); err != nil {
		return err
	}

	for i, c := range r.Exclusions {
		if err := validateClause(i, c, r.ApplicableModels); err != nil {
			return err
		}
	}

	return nil
}

func validatePredicate(p SerialPredicate) error {
	switch p.Kind {
	case SerialAll:
		return nil
	case SerialRange:
		if p.Lo > p.Hi {
			return fmt.Errorf("%w: range lo %d > hi %d", ErrInvalidPredicate, p.Lo, p.Hi)
		}
		return nil
	case SerialSet:
		if len(p.Values) == 0 {
			return fmt.Errorf("%w: set predicate with no values", ErrInvalidPredicate)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidPredicate, p.Kind)
	}
}

func validateClause(i int, c ExclusionClause, models []string) error {
	if c.Kind != ClauseModification && c.Kind != ClauseServiceBulletin {
		return fmt.Errorf("%w: exclusion[%d] kind %q is not supported", ErrInvalidClause, i, c.Kind)
	}
	if c.Identifier == "" {
		return fmt.Errorf("%w: exclusion[%d] identifier must not be empty", ErrInvalidClause, i)
	}

	// AppliesToModels, when set, must be a subset of the directive's
	// applicable models.
	for _, scoped := range c.AppliesToModels {
		if !containsString(models, scoped) {
			return fmt.Errorf("%w: exclusion[%d] scoped to %q which is not an applicable model", ErrInvalidClause, i, scoped)
		}
	}
	return nil
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
