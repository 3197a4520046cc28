package guideline

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/lintattrs/pkg/core"
)

// Reference is a documentation link rendered in the block banner.
type Reference struct {
	Label string
	URL   string
}

// Registry is an immutable, ordered guideline catalog.
type Registry struct {
	entries    []Entry
	index      map[string]int // ID -> position in entries
	references []Reference
}

// Option configures a Registry at construction.
type Option func(*Registry)

// WithReferences attaches documentation links to the registry.
func WithReferences(refs ...Reference) Option {
	return func(r *Registry) {
		r.references = append(r.references, refs...)
	}
}

// New validates entries and returns a frozen Registry.
// On failure no Registry is returned and the error is a *ValidationError.
func New(entries []Entry, opts ...Option) (*Registry, error) {
	reg := &Registry{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}

	// directive -> index of the active entry that owns it
	owners := make(map[string]int)

	for i, in := range entries {
		e := in.clone()
		e.ID = strings.TrimSpace(e.ID)
		e.Rationale = normalizeRationale(e.Rationale)

		if err := checkEntry(i, e); err != nil {
			return nil, err
		}

		if prev, ok := reg.index[e.ID]; ok {
			return nil, &ValidationError{
				Kind:   ErrDuplicateGuideline,
				Index:  i,
				ID:     e.ID,
				Reason: fmt.Sprintf("already declared by entry %d", prev),
			}
		}

		if e.Active() {
			for _, d := range e.Directives {
				if prev, ok := owners[d]; ok {
					return nil, &ValidationError{
						Kind:      ErrConflictingDirective,
						Index:     i,
						ID:        e.ID,
						Directive: d,
						Reason: fmt.Sprintf("already set to %s by %s",
							reg.entries[prev].Severity(), reg.entries[prev].ID),
					}
				}
				owners[d] = i
			}
		}

		reg.index[e.ID] = i
		reg.entries = append(reg.entries, e)
	}

	for _, opt := range opts {
		opt(reg)
	}

	return reg, nil
}

// MustNew is like New but panics on error. Use it for literal catalogs only.
func MustNew(entries []Entry, opts ...Option) *Registry {
	reg, err := New(entries, opts...)
	if err != nil {
		panic(fmt.Sprintf("guideline: %v", err))
	}
	return reg
}

func checkEntry(i int, e Entry) error {
	if e.ID == "" {
		return &ValidationError{Kind: ErrMalformedGuideline, Index: i, Reason: "empty id"}
	}
	if !e.Tier.Valid() {
		return &ValidationError{
			Kind:   ErrMalformedGuideline,
			Index:  i,
			ID:     e.ID,
			Reason: fmt.Sprintf("unknown tier %d", int(e.Tier)),
		}
	}
	if len(e.Directives) == 0 {
		return &ValidationError{Kind: ErrMalformedGuideline, Index: i, ID: e.ID, Reason: "empty directive name"}
	}

	seen := make(map[string]bool, len(e.Directives))
	for _, d := range e.Directives {
		if d == "" {
			return &ValidationError{Kind: ErrMalformedGuideline, Index: i, ID: e.ID, Reason: "empty directive name"}
		}
		if !ValidDirective(d) {
			return &ValidationError{
				Kind:      ErrMalformedGuideline,
				Index:     i,
				ID:        e.ID,
				Directive: d,
				Reason:    "not a lint path",
			}
		}
		if seen[d] {
			return &ValidationError{
				Kind:      ErrMalformedGuideline,
				Index:     i,
				ID:        e.ID,
				Directive: d,
				Reason:    "listed twice",
			}
		}
		seen[d] = true
	}
	return nil
}

// Entries returns a copy of the catalog in declared order.
func (r *Registry) Entries() []Entry {
	if r == nil {
		return nil
	}
	out := make([]Entry, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.clone()
	}
	return out
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.entries)
}

// Lookup returns the entry with the given ID.
func (r *Registry) Lookup(id string) (Entry, bool) {
	if r == nil {
		return Entry{}, false
	}
	i, ok := r.index[id]
	if !ok {
		return Entry{}, false
	}
	return r.entries[i].clone(), true
}

// Enabled returns the enabled entries in declared order.
func (r *Registry) Enabled() []Entry {
	return r.filter(func(e Entry) bool { return e.Enabled })
}

// ByTier returns the entries of one tier in declared order.
func (r *Registry) ByTier(t core.Tier) []Entry {
	return r.filter(func(e Entry) bool { return e.Tier == t })
}

// References returns the documentation links attached to the registry.
func (r *Registry) References() []Reference {
	if r == nil {
		return nil
	}
	out := make([]Reference, len(r.references))
	copy(out, r.references)
	return out
}

func (r *Registry) filter(keep func(Entry) bool) []Entry {
	if r == nil {
		return nil
	}
	var out []Entry
	for _, e := range r.entries {
		if keep(e) {
			out = append(out, e.clone())
		}
	}
	return out
}
