package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/lintattrs/internal/cli/config"
	"github.com/leapstack-labs/lintattrs/internal/cli/testutil"
	"github.com/leapstack-labs/lintattrs/pkg/core"
	"github.com/leapstack-labs/lintattrs/pkg/emit"
	"github.com/leapstack-labs/lintattrs/pkg/guideline"
)

func TestCalculateHealthScore(t *testing.T) {
	tests := []struct {
		name     string
		checks   []HealthCheck
		expected int
	}{
		{
			name:     "no checks returns 100",
			checks:   nil,
			expected: 100,
		},
		{
			name: "all passing returns 100",
			checks: []HealthCheck{
				{RuleID: "LA01", Status: statusPass},
				{RuleID: "LA02", Status: statusPass},
			},
			expected: 100,
		},
		{
			name: "warnings cost 10 each",
			checks: []HealthCheck{
				{RuleID: "LA01", Status: statusPass},
				{RuleID: "LC01", Status: statusWarn, IssueCount: 2},
			},
			expected: 80,
		},
		{
			name: "errors count double",
			checks: []HealthCheck{
				{RuleID: "LB01", Status: statusError, IssueCount: 1},
			},
			expected: 80,
		},
		{
			name: "many issues clamp to 0",
			checks: []HealthCheck{
				{RuleID: "LC01", Status: statusWarn, IssueCount: 20},
				{RuleID: "LC02", Status: statusError, IssueCount: 3},
			},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, calculateHealthScore(tt.checks))
		})
	}
}

func TestGetRecommendation(t *testing.T) {
	for _, id := range []string{"LA01", "LA02", "LA03", "LB01", "LC01", "LC02"} {
		assert.NotEmpty(t, getRecommendation(id), "expected recommendation for %s", id)
	}
	assert.Empty(t, getRecommendation("UNKNOWN"))
}

func TestGenerateRecommendations(t *testing.T) {
	checks := []HealthCheck{
		{RuleID: "LA01", Status: statusWarn, IssueCount: 1},
		{RuleID: "LB01", Status: statusError, IssueCount: 1},
		{RuleID: "LC01", Status: statusPass},
	}

	recommendations := generateRecommendations(checks)

	require.Len(t, recommendations, 2)
	assert.Contains(t, recommendations[0], "lintattrs init")
	assert.Contains(t, recommendations[1], "lintattrs render")
}

func TestMentionsLint(t *testing.T) {
	src := "#![deny(clippy::unwrap_used)]\n#![warn(\n    missing_docs,\n)]\n"

	assert.True(t, mentionsLint(src, "clippy::unwrap_used"))
	assert.True(t, mentionsLint(src, "missing_docs"))
	assert.False(t, mentionsLint(src, "unwrap_used"), "a path suffix is not the lint")
	assert.False(t, mentionsLint(src, "clippy::unwrap"), "a prefix is not the lint")
}

func TestCheckNoAllowOverride(t *testing.T) {
	block := emit.Render(guideline.Default(), emit.Options{NoHeader: true})
	denied := block.Directives(core.SeverityDeny)
	require.NotEmpty(t, denied)

	src := "#![allow(\n    dead_code,\n    " + denied[0] + ",\n)]\n"
	c := checkNoAllowOverride("src/lib.rs", src, block)

	assert.Equal(t, statusError, c.Status)
	assert.Equal(t, 1, c.IssueCount)
	assert.Contains(t, c.Details[0], denied[0])

	c = checkNoAllowOverride("src/lib.rs", "#![allow(dead_code)]\n", block)
	assert.Equal(t, statusPass, c.Status)
}

func TestDiagnose_BareCrate(t *testing.T) {
	dir := testutil.SetupTestProject(t, "")

	cfg := config.Default()
	cfg.ProjectRoot = dir
	out := diagnose(cfg, "", emit.RenderGuidelines())

	byID := make(map[string]HealthCheck)
	for _, c := range out.HealthChecks {
		byID[c.RuleID] = c
	}

	assert.Equal(t, statusWarn, byID["LA01"].Status, "no config file")
	assert.Equal(t, statusError, byID["LA02"].Status, "no Cargo.toml")
	assert.Equal(t, statusWarn, byID["LA03"].Status, "render.out unset")
	assert.NotContains(t, byID, "LB01", "freshness is only checked with render.out")
	assert.Equal(t, statusWarn, byID["LC01"].Status, "lib.rs carries no directives")
	assert.Equal(t, statusPass, byID["LC02"].Status)

	assert.Equal(t, "src/lib.rs", out.Summary.CrateRoot)
	assert.Equal(t, guideline.Default().Len(), out.Summary.Guidelines)
	assert.Equal(t, out.Summary.Guidelines, out.Summary.Deny+out.Summary.Warn+out.Summary.Inert)
	assert.Equal(t, 0, out.Score)
	assert.NotEmpty(t, out.Recommendations)

	assert.Equal(t, "setup", out.HealthChecks[0].Group)
	assert.Equal(t, "crate", out.HealthChecks[len(out.HealthChecks)-1].Group)
}

func TestDiagnose_AdoptedCrate(t *testing.T) {
	dir := testutil.SetupTestProject(t, "")
	block := emit.RenderGuidelines()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "Cargo.toml"), []byte("[package]\nname = \"demo\"\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "lints.rs"), block.Bytes(), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "lib.rs"), []byte(block.String()+"\npub fn answer() -> u32 {\n    42\n}\n"), 0o600))

	cfg := config.Default()
	cfg.ProjectRoot = dir
	cfg.Render.Out = filepath.Join(dir, "src", "lints.rs")
	out := diagnose(cfg, filepath.Join(dir, "lintattrs.yaml"), block)

	for _, c := range out.HealthChecks {
		assert.Equal(t, statusPass, c.Status, "%s: %v", c.RuleID, c.Details)
	}
	assert.Equal(t, 100, out.Score)
	assert.Zero(t, out.IssueCount)
	assert.Empty(t, out.Recommendations)
}

func TestCheckBlockFresh(t *testing.T) {
	dir := testutil.SetupTestProject(t, "")
	out := filepath.Join(dir, "src", "lints.rs")
	require.NoError(t, os.WriteFile(out, []byte("#![deny(warnings)]\n"), 0o600))

	c := checkBlockFresh(out, emit.RenderGuidelines().String())
	assert.Equal(t, statusError, c.Status)
	assert.Contains(t, c.Details[0], "differs at line 1")

	c = checkBlockFresh(filepath.Join(dir, "missing.rs"), "x")
	assert.Equal(t, statusError, c.Status)
	assert.Contains(t, c.Details[0], "does not exist")
}

func TestDoctorCommand_JSON(t *testing.T) {
	testutil.SetupTestProject(t, "render:\n  out: src/lints.rs\n")

	stdout, _, err := execute(NewDoctorCommand(), "--format", "json")
	require.NoError(t, err)

	var out DoctorOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Contains(t, out.Summary.Output, "lints.rs")
	assert.NotEmpty(t, out.HealthChecks)
	assert.Positive(t, out.IssueCount)
}

func TestDoctorCommand_Markdown(t *testing.T) {
	testutil.SetupTestProject(t, "")

	stdout, _, err := execute(NewDoctorCommand(), "--format", "markdown")
	require.NoError(t, err)

	assert.Contains(t, stdout, "# Lint Directive Health Report")
	assert.Contains(t, stdout, "### Setup")
	assert.Contains(t, stdout, "**[ERROR]** LA02: Cargo manifest")
	assert.Contains(t, stdout, "## Recommendations")
	testutil.AssertValidMarkdown(t, stdout)
}

func TestDoctorCommand_Text(t *testing.T) {
	testutil.SetupTestProject(t, "")

	stdout, _, err := execute(NewDoctorCommand(), "--format", "text")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Lint Directive Health Report")
	assert.Contains(t, stdout, "Health Score:")
	testutil.AssertNoANSI(t, stdout)
}
