package guideline

import (
	"errors"
	"testing"

	"github.com/leapstack-labs/lintattrs/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(id string, tier core.Tier, directives ...string) Entry {
	return Entry{ID: id, Tier: tier, Directives: directives, Enabled: true, Rationale: "why " + id}
}

func TestNew_PreservesOrder(t *testing.T) {
	reg, err := New([]Entry{
		entry("G.B.01", core.TierOptional, "no_b"),
		entry("G.A.01", core.TierRequired, "no_a"),
		entry("G.C.01", core.TierRecommended, "no_c"),
	})
	require.NoError(t, err)

	var ids []string
	for _, e := range reg.Entries() {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"G.B.01", "G.A.01", "G.C.01"}, ids)
	assert.Equal(t, 3, reg.Len())
}

func TestNew_Empty(t *testing.T) {
	reg, err := New(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, reg.Len())
	assert.Empty(t, reg.Entries())
}

func TestNew_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
		kind    error
		index   int
	}{
		{
			name:    "empty id",
			entries: []Entry{entry("", core.TierRequired, "no_foo")},
			kind:    ErrMalformedGuideline,
		},
		{
			name:    "blank id",
			entries: []Entry{entry("   ", core.TierRequired, "no_foo")},
			kind:    ErrMalformedGuideline,
		},
		{
			name:    "no directives",
			entries: []Entry{entry("G.A", core.TierRequired)},
			kind:    ErrMalformedGuideline,
		},
		{
			name:    "empty directive name",
			entries: []Entry{entry("G.A", core.TierRequired, "")},
			kind:    ErrMalformedGuideline,
		},
		{
			name:    "directive not a lint path",
			entries: []Entry{entry("G.A", core.TierRequired, "clippy::unwrap_used)]")},
			kind:    ErrMalformedGuideline,
		},
		{
			name:    "directive listed twice",
			entries: []Entry{entry("G.A", core.TierRequired, "no_foo", "no_foo")},
			kind:    ErrMalformedGuideline,
		},
		{
			name:    "unknown tier",
			entries: []Entry{entry("G.A", core.Tier(42), "no_foo")},
			kind:    ErrMalformedGuideline,
		},
		{
			name: "duplicate id",
			entries: []Entry{
				entry("G.A", core.TierRequired, "no_foo"),
				entry("G.A", core.TierOptional, "no_bar"),
			},
			kind:  ErrDuplicateGuideline,
			index: 1,
		},
		{
			name: "two active entries on one directive",
			entries: []Entry{
				entry("G.A", core.TierRequired, "no_foo"),
				entry("G.B", core.TierRecommended, "no_bar", "no_foo"),
			},
			kind:  ErrConflictingDirective,
			index: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, err := New(tt.entries)
			require.Error(t, err)
			assert.Nil(t, reg, "no registry on failure")
			assert.ErrorIs(t, err, tt.kind)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.index, verr.Index)
			assert.NotEmpty(t, verr.Reason)
		})
	}
}

func TestNew_InertEntriesMayShareDirective(t *testing.T) {
	disabled := entry("G.B", core.TierRequired, "no_foo")
	disabled.Enabled = false

	_, err := New([]Entry{
		entry("G.A", core.TierRecommended, "no_foo"),
		entry("G.C", core.TierOptional, "no_foo"),
		disabled,
	})
	require.NoError(t, err)
}

func TestNew_NormalizesRationale(t *testing.T) {
	e := entry("G.A", core.TierRequired, "no_foo")
	// "e" followed by a combining acute accent
	e.Rationale = "  Cafe\u0301 rule\r\nsecond line \n"

	reg, err := New([]Entry{e})
	require.NoError(t, err)

	got, ok := reg.Lookup("G.A")
	require.True(t, ok)
	assert.Equal(t, "Caf\u00e9 rule\nsecond line", got.Rationale)
}

func TestRegistry_IsImmutable(t *testing.T) {
	src := []Entry{entry("G.A", core.TierRequired, "no_foo")}
	reg, err := New(src)
	require.NoError(t, err)

	// Mutating the input after construction has no effect.
	src[0].Directives[0] = "changed"
	src[0].ID = "changed"

	// Mutating a returned copy has no effect either.
	out := reg.Entries()
	out[0].Directives[0] = "changed"
	out[0].Enabled = false

	got, ok := reg.Lookup("G.A")
	require.True(t, ok)
	assert.Equal(t, []string{"no_foo"}, got.Directives)
	assert.True(t, got.Enabled)
}

func TestRegistry_Queries(t *testing.T) {
	off := entry("G.D", core.TierRecommended, "no_d")
	off.Enabled = false

	reg, err := New([]Entry{
		entry("G.A", core.TierRequired, "no_a"),
		entry("G.B", core.TierOptional, "no_b"),
		entry("G.C", core.TierRequired, "no_c"),
		off,
	}, WithReferences(Reference{Label: "docs", URL: "https://example.com"}))
	require.NoError(t, err)

	t.Run("lookup missing", func(t *testing.T) {
		_, ok := reg.Lookup("G.Z")
		assert.False(t, ok)
	})

	t.Run("by tier", func(t *testing.T) {
		req := reg.ByTier(core.TierRequired)
		require.Len(t, req, 2)
		assert.Equal(t, "G.A", req[0].ID)
		assert.Equal(t, "G.C", req[1].ID)
	})

	t.Run("enabled", func(t *testing.T) {
		assert.Len(t, reg.Enabled(), 3)
	})

	t.Run("references", func(t *testing.T) {
		refs := reg.References()
		require.Len(t, refs, 1)
		assert.Equal(t, "docs", refs[0].Label)
	})
}

func TestRegistry_NilSafe(t *testing.T) {
	var reg *Registry
	assert.Equal(t, 0, reg.Len())
	assert.Nil(t, reg.Entries())
	assert.Nil(t, reg.References())
	_, ok := reg.Lookup("G.A")
	assert.False(t, ok)
}

func TestMustNew_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustNew([]Entry{entry("", core.TierRequired, "no_foo")})
	})
}

func TestEntry_Severity(t *testing.T) {
	tests := []struct {
		tier    core.Tier
		enabled bool
		want    core.Severity
	}{
		{core.TierRequired, true, core.SeverityDeny},
		{core.TierRecommended, true, core.SeverityWarn},
		{core.TierOptional, true, core.SeverityInert},
		{core.TierRequired, false, core.SeverityInert},
		{core.TierRecommended, false, core.SeverityInert},
		{core.TierOptional, false, core.SeverityInert},
	}

	for _, tt := range tests {
		t.Run(tt.tier.String(), func(t *testing.T) {
			e := Entry{ID: "G.A", Tier: tt.tier, Directives: []string{"x"}, Enabled: tt.enabled}
			assert.Equal(t, tt.want, e.Severity())
			assert.Equal(t, tt.want.Active(), e.Active())
		})
	}
}

func TestEntry_Severity_DisabledUnknownTier(t *testing.T) {
	e := Entry{ID: "G.A", Tier: core.Tier(42), Directives: []string{"x"}, Enabled: false}

	assert.NotPanics(t, func() {
		assert.Equal(t, core.SeverityInert, e.Severity())
		assert.False(t, e.Active())
	})
}

func TestEntry_Group(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"G.VAR.02", "VAR"},
		{"G.TYP.FLT.03", "TYP.FLT"},
		{"G.UNS.SAS.02", "UNS.SAS"},
		{"G.A", ""},
		{"custom", ""},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, Entry{ID: tt.id}.Group())
		})
	}
}

func TestValidDirective(t *testing.T) {
	valid := []string{"non_ascii_idents", "clippy::unwrap_used", "_x", "a::b::c"}
	invalid := []string{"", "clippy::", "::x", "1abc", "a b", "a, b", "clippy:unwrap", "x)]"}

	for _, v := range valid {
		assert.True(t, ValidDirective(v), v)
	}
	for _, v := range invalid {
		assert.False(t, ValidDirective(v), v)
	}
}
