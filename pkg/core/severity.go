package core

import (
	"fmt"
	"strings"
)

// =============================================================================
// Severity
// =============================================================================

// Severity is the level a rendered directive applies to its lints.
type Severity int

// Severity levels for directives.
const (
	// SeverityDeny fails the build on any violation.
	SeverityDeny Severity = iota
	// SeverityWarn reports violations without failing the build.
	SeverityWarn
	// SeverityInert renders the directive commented out.
	SeverityInert
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityDeny:
		return "deny"
	case SeverityWarn:
		return "warn"
	case SeverityInert:
		return "inert"
	default:
		return "unknown"
	}
}

// Active reports whether directives at this severity take effect.
func (s Severity) Active() bool {
	return s == SeverityDeny || s == SeverityWarn
}

// Attribute returns the lint level keyword used inside the attribute.
// Inert directives keep the level they would have once adopted.
func (s Severity) Attribute() string {
	if s == SeverityDeny {
		return "deny"
	}
	return "warn"
}

// ParseSeverity converts a string to a Severity value.
// Returns the severity and true if valid, or SeverityWarn and false if invalid.
func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToLower(s) {
	case "deny":
		return SeverityDeny, true
	case "warn":
		return SeverityWarn, true
	case "inert":
		return SeverityInert, true
	default:
		return SeverityWarn, false
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	if s < SeverityDeny || s > SeverityInert {
		return nil, fmt.Errorf("cannot marshal invalid Severity(%d)", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(b []byte) error {
	v, ok := ParseSeverity(string(b))
	if !ok {
		return fmt.Errorf("unknown severity %q", b)
	}
	*s = v
	return nil
}

// SeverityFor maps a tier to the severity its enabled directives render at.
// The switch is exhaustive over Tier; adding a tier without extending it
// panics on first use.
func SeverityFor(t Tier) Severity {
	switch t {
	case TierRequired:
		return SeverityDeny
	case TierRecommended:
		return SeverityWarn
	case TierOptional:
		return SeverityInert
	default:
		panic(fmt.Sprintf("core: no severity for tier %d", int(t)))
	}
}
