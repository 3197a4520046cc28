package emit

import (
	"io"
	"slices"
	"strings"

	"github.com/leapstack-labs/lintattrs/pkg/core"
)

// Fragment is the rendered form of one guideline entry.
type Fragment struct {
	ID         string
	Tier       core.Tier
	Severity   core.Severity // SeverityInert when the attribute is commented out
	Directives []string
	Text       string // annotation and attribute lines, newline terminated
}

// Active reports whether the fragment's attribute takes effect.
func (f Fragment) Active() bool {
	return f.Severity.Active()
}

// DirectiveBlock is the rendered, ready-to-splice output of the emitter.
// The zero value is an empty block.
type DirectiveBlock struct {
	header    string
	fragments []Fragment
}

// String returns the block text.
func (b DirectiveBlock) String() string {
	var sb strings.Builder
	_, _ = b.WriteTo(&sb)
	return sb.String()
}

// Bytes returns the block text.
func (b DirectiveBlock) Bytes() []byte {
	return []byte(b.String())
}

// WriteTo writes the block text to w.
func (b DirectiveBlock) WriteTo(w io.Writer) (int64, error) {
	var total int64
	write := func(s string) error {
		n, err := io.WriteString(w, s)
		total += int64(n)
		return err
	}

	if b.header != "" {
		if err := write(b.header); err != nil {
			return total, err
		}
		if len(b.fragments) > 0 {
			if err := write("\n"); err != nil {
				return total, err
			}
		}
	}
	for _, f := range b.fragments {
		if err := write(f.Text); err != nil {
			return total, err
		}
	}
	return total, nil
}

// IsEmpty reports whether the block renders to no text.
func (b DirectiveBlock) IsEmpty() bool {
	return b.header == "" && len(b.fragments) == 0
}

// Fragments returns the rendered entries in catalog order.
func (b DirectiveBlock) Fragments() []Fragment {
	out := make([]Fragment, len(b.fragments))
	for i, f := range b.fragments {
		f.Directives = slices.Clone(f.Directives)
		out[i] = f
	}
	return out
}

// Directives returns the lint names rendered at the given severity, in
// catalog order.
func (b DirectiveBlock) Directives(sev core.Severity) []string {
	var out []string
	for _, f := range b.fragments {
		if f.Severity == sev {
			out = append(out, f.Directives...)
		}
	}
	return out
}
