package core

import (
	"fmt"
	"strings"
)

// =============================================================================
// Tier
// =============================================================================

// Tier is the enforcement strength of a guideline.
type Tier int

// Guideline tiers, strongest first.
const (
	// TierRequired guidelines break the build when violated.
	TierRequired Tier = iota
	// TierRecommended guidelines are surfaced to the developer without failing.
	TierRecommended
	// TierOptional guidelines are listed for discoverability but inert.
	TierOptional
)

// Tiers lists every tier from strongest to weakest.
var Tiers = []Tier{TierRequired, TierRecommended, TierOptional}

// String returns the upper-case label used in annotations.
func (t Tier) String() string {
	switch t {
	case TierRequired:
		return "REQUIRED"
	case TierRecommended:
		return "RECOMMENDED"
	case TierOptional:
		return "OPTIONAL"
	default:
		return "UNKNOWN"
	}
}

// Valid reports whether t is one of the declared tiers.
func (t Tier) Valid() bool {
	return t >= TierRequired && t <= TierOptional
}

// StrongerThan reports whether t enforces more strictly than other.
func (t Tier) StrongerThan(other Tier) bool {
	return t < other
}

// ParseTier converts a label to a Tier, ignoring case.
// Returns TierOptional and false if the label is unknown.
func ParseTier(s string) (Tier, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "REQUIRED":
		return TierRequired, true
	case "RECOMMENDED":
		return TierRecommended, true
	case "OPTIONAL":
		return TierOptional, true
	default:
		return TierOptional, false
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t Tier) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid Tier(%d)", int(t))
	}
	return []byte(strings.ToLower(t.String())), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tier) UnmarshalText(b []byte) error {
	v, ok := ParseTier(string(b))
	if !ok {
		return fmt.Errorf("unknown tier %q", b)
	}
	*t = v
	return nil
}
