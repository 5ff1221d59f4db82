package rules

import "fmt"

// AircraftConfig is the query subject for directive evaluation: one
// airframe's model, serial number, and applied modifications. Instances
// are created per query via NewAircraftConfig and are immutable
// thereafter; malformed configs are rejected here, never inside the
// evaluation engine.
type AircraftConfig struct {
	Model         string   `json:"aircraftModel"`
	MSN           int      `json:"msn"`
	Modifications []string `json:"modificationsApplied,omitempty"`
}

// NewAircraftConfig builds a validated, normalized aircraft configuration.
// The model and every modification token are canonicalized so evaluation
// can use exact string comparison. The modifications list may mix
// modification and service-bulletin identifiers; the evaluator tests
// token membership without distinguishing kind.
func NewAircraftConfig(model string, msn int, modifications []string) (*AircraftConfig, error) {
	normalized := NormalizeModel(model)
	if normalized == "" {
		return nil, fmt.Errorf("%w: aircraft model must not be empty", ErrInvalidAircraft)
	}
	if msn < 0 {
		return nil, fmt.Errorf("%w: MSN %d must not be negative", ErrInvalidAircraft, msn)
	}

	mods := make([]string, 0, len(modifications))
	seen := make(map[string]struct{}, len(modifications))
	for _, raw := range modifications {
		token := NormalizeToken(raw)
		if token == "" {
			continue
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		mods = append(mods, token)
	}

	return &AircraftConfig{Model: normalized, MSN: msn, Modifications: mods}, nil
}

// HasModification reports whether the aircraft carries the given
// (canonical) identifier token.
func (a *AircraftConfig) HasModification(identifier string) bool {
	for _, m := range a.Modifications {
		if m == identifier {
			return true
		}
	}
	return false
}
