package commands

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/leapstack-labs/lintattrs/internal/cli/config"
	"github.com/leapstack-labs/lintattrs/internal/cli/output"
	"github.com/leapstack-labs/lintattrs/internal/cli/testutil"
	logtest "github.com/leapstack-labs/lintattrs/internal/testutil"
	"github.com/leapstack-labs/lintattrs/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func testCommandContext(t *testing.T, tr *testutil.TestRenderer) *CommandContext {
	t.Helper()
	return &CommandContext{
		Cfg:      config.Default(),
		Logger:   logtest.NewTestLogger(t),
		Renderer: tr.Renderer,
	}
}

func TestListGuidelines_Modes(t *testing.T) {
	tests := []struct {
		name string
		tr   *testutil.TestRenderer
		mode output.OutputMode
	}{
		{"auto piped", testutil.NewTestRendererAuto(), output.ModeMarkdown},
		{"text tty", testutil.NewTestRendererText(), output.ModeText},
		{"json", testutil.NewTestRendererJSON(), output.ModeJSON},
		{"yaml", testutil.NewTestRendererYAML(), output.ModeYAML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmdCtx := testCommandContext(t, tt.tr)
			require.NoError(t, listGuidelines(cmdCtx, &RulesOptions{}))

			assert.Equal(t, tt.mode, tt.tr.EffectiveMode())
			testutil.AssertOutputMode(t, tt.tr, tt.mode)
			assert.Contains(t, tt.tr.Output(), "G.UNS.SAS.02")
		})
	}
}

func TestListGuidelines_TierFilterFromConfig(t *testing.T) {
	tr := testutil.NewTestRendererYAML()
	cmdCtx := testCommandContext(t, tr)
	cmdCtx.Cfg.Rules.Tiers = []core.Tier{core.TierRecommended}

	require.NoError(t, listGuidelines(cmdCtx, &RulesOptions{}))

	var res struct {
		Guidelines []struct {
			Tier string `yaml:"tier"`
		} `yaml:"guidelines"`
		Count RulesCount `yaml:"count"`
	}
	require.NoError(t, yaml.Unmarshal(tr.Out.Bytes(), &res))
	require.NotEmpty(t, res.Guidelines)
	for _, g := range res.Guidelines {
		assert.Equal(t, "recommended", g.Tier)
	}
	assert.Equal(t, res.Count.Total, res.Count.Recommended)
}

func TestShowGuideline_RespectsWidth(t *testing.T) {
	tr := testutil.NewTestRendererJSON()
	cmdCtx := testCommandContext(t, tr)
	cmdCtx.Cfg.Render.Width = 40

	require.NoError(t, showGuideline(cmdCtx, "G.VAR.03"))

	var info GuidelineInfo
	require.NoError(t, json.Unmarshal(tr.Out.Bytes(), &info))
	for _, line := range strings.Split(strings.TrimRight(info.Rendered, "\n"), "\n") {
		assert.LessOrEqual(t, len(line), 40, line)
	}
	assert.Contains(t, info.Rendered, "#![warn(\n    clippy::shadow_reuse,")
}

func TestPrintCheckResult(t *testing.T) {
	stale := CheckResult{File: "lints.rs", Line: 3, Got: "#![warn(x)]", Want: "#![deny(x)]"}

	t.Run("markdown", func(t *testing.T) {
		tr := testutil.NewTestRendererAuto()
		require.NoError(t, printCheckResult(tr.Renderer, stale))
		testutil.AssertOutputMode(t, tr, output.ModeMarkdown)
		assert.Contains(t, tr.Output(), "```diff\n- #![warn(x)]\n+ #![deny(x)]\n```")
	})

	t.Run("text", func(t *testing.T) {
		tr := testutil.NewTestRenderer(output.ModeText, false)
		require.NoError(t, printCheckResult(tr.Renderer, stale))
		testutil.AssertNoANSI(t, tr.Output())
		assert.Contains(t, tr.Output(), "first difference at line 3")
		assert.Contains(t, tr.Output(), "lintattrs render --out lints.rs")
	})

	t.Run("fresh yaml", func(t *testing.T) {
		tr := testutil.NewTestRendererYAML()
		require.NoError(t, printCheckResult(tr.Renderer, CheckResult{File: "lints.rs", Fresh: true}))
		assert.Equal(t, "file: lints.rs\nfresh: true\n", tr.Output())
	})
}
