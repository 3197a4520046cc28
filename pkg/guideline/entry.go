package guideline

import (
	"regexp"
	"slices"
	"strings"

	"github.com/leapstack-labs/lintattrs/pkg/core"
	"golang.org/x/text/unicode/norm"
)

// Entry is one guideline in the catalog.
type Entry struct {
	ID         string    // Stable guideline code, e.g. "G.VAR.02"
	Tier       core.Tier // Enforcement strength
	Directives []string  // Lint names controlled by this guideline, e.g. "clippy::unwrap_used"
	Enabled    bool      // Disabled entries are rendered commented out
	Rationale  string    // Carried into the annotation above the directive
}

// Severity returns the severity the entry renders at.
// Disabled entries are always inert.
func (e Entry) Severity() core.Severity {
	if !e.Enabled {
		return core.SeverityInert
	}
	return core.SeverityFor(e.Tier)
}

// Active reports whether the entry's directives take effect.
func (e Entry) Active() bool {
	return e.Severity().Active()
}

// Group returns the thematic section encoded in the ID, e.g. "TYP.FLT" for
// "G.TYP.FLT.03". IDs that don't follow the X.SECTION.NN shape have no group.
func (e Entry) Group() string {
	parts := strings.Split(e.ID, ".")
	if len(parts) < 3 {
		return ""
	}
	return strings.Join(parts[1:len(parts)-1], ".")
}

func (e Entry) clone() Entry {
	e.Directives = slices.Clone(e.Directives)
	return e
}

// lintPath matches a lint name as accepted inside a lint attribute.
var lintPath = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(::[A-Za-z_][A-Za-z0-9_]*)*$`)

// ValidDirective reports whether name can be placed in a lint attribute.
func ValidDirective(name string) bool {
	return lintPath.MatchString(name)
}

// normalizeRationale makes equal text byte-identical: NFC, LF line endings,
// no surrounding whitespace.
func normalizeRationale(s string) string {
	s = norm.NFC.String(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.TrimSpace(s)
}
