package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/lintattrs/internal/cli/output"
	"github.com/leapstack-labs/lintattrs/pkg/core"
	"github.com/leapstack-labs/lintattrs/pkg/emit"
	"github.com/leapstack-labs/lintattrs/pkg/guideline"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Details bool   // Show rationale column
	Format  string // Output format
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [guideline-id]",
		Short: "List catalog guidelines",
		Long: `List the guidelines in the catalog, in the order they are rendered.

Each guideline shows its tier, the lint level it renders at and the lints
it controls. Filters can also be set under rules: in lintattrs.yaml.

Output adapts to environment:
  - Terminal: Styled table
  - Piped/Scripted: Markdown format
  - JSON/YAML: Machine-readable format`,
		Example: `  # List all guidelines
  lintattrs rules

  # Show one guideline and the directive it renders
  lintattrs rules G.TYP.01

  # Only required and recommended guidelines
  lintattrs rules --tier required,recommended

  # Everything about data types, as JSON
  lintattrs rules --group TYP --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			cmdCtx.WithFormat(cmd, opts.Format)

			if len(args) > 0 {
				return showGuideline(cmdCtx, args[0])
			}
			return listGuidelines(cmdCtx, opts)
		},
	}

	cmd.Flags().StringSlice("tier", nil, "Filter by tier: required, recommended, optional")
	cmd.Flags().StringP("group", "g", "", "Filter by group, e.g. TYP or TYP.FLT")
	cmd.Flags().BoolVarP(&opts.Details, "details", "d", false, "Show the rationale of each guideline")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json, yaml")

	_ = cmd.RegisterFlagCompletionFunc("tier", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"required", "recommended", "optional"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// GuidelineInfo is the machine-readable form of a catalog entry.
type GuidelineInfo struct {
	ID         string        `json:"id" yaml:"id"`
	Tier       core.Tier     `json:"tier" yaml:"tier"`
	Severity   core.Severity `json:"severity" yaml:"severity"`
	Enabled    bool          `json:"enabled" yaml:"enabled"`
	Directives []string      `json:"directives" yaml:"directives"`
	Group      string        `json:"group,omitempty" yaml:"group,omitempty"`
	Section    string        `json:"section,omitempty" yaml:"section,omitempty"`
	Rationale  string        `json:"rationale,omitempty" yaml:"rationale,omitempty"`
	Rendered   string        `json:"rendered,omitempty" yaml:"rendered,omitempty"`
}

// RulesCount tallies listed guidelines by tier.
type RulesCount struct {
	Required    int `json:"required" yaml:"required"`
	Recommended int `json:"recommended" yaml:"recommended"`
	Optional    int `json:"optional" yaml:"optional"`
	Total       int `json:"total" yaml:"total"`
}

// RulesOutput is the JSON/YAML output structure for the guideline listing.
type RulesOutput struct {
	Guidelines []GuidelineInfo `json:"guidelines" yaml:"guidelines"`
	Count      RulesCount      `json:"count" yaml:"count"`
}

func newGuidelineInfo(e guideline.Entry) GuidelineInfo {
	return GuidelineInfo{
		ID:         e.ID,
		Tier:       e.Tier,
		Severity:   e.Severity(),
		Enabled:    e.Enabled,
		Directives: e.Directives,
		Group:      e.Group(),
		Section:    guideline.SectionName(e.Group()),
		Rationale:  e.Rationale,
	}
}

func countByTier(entries []guideline.Entry) RulesCount {
	var c RulesCount
	for _, e := range entries {
		switch e.Tier {
		case core.TierRequired:
			c.Required++
		case core.TierRecommended:
			c.Recommended++
		case core.TierOptional:
			c.Optional++
		}
	}
	c.Total = len(entries)
	return c
}

// filterGuidelines keeps catalog order. A group filter matches the group
// itself and any subgroup, so TYP admits TYP.FLT.
func filterGuidelines(entries []guideline.Entry, cmdCtx *CommandContext) []guideline.Entry {
	group := cmdCtx.Cfg.Rules.Group
	var filtered []guideline.Entry
	for _, e := range entries {
		if !cmdCtx.Cfg.WantsTier(e.Tier) {
			continue
		}
		if group != "" && e.Group() != group && !strings.HasPrefix(e.Group(), group+".") {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered
}

func listGuidelines(cmdCtx *CommandContext, opts *RulesOptions) error {
	r := cmdCtx.Renderer
	entries := filterGuidelines(guideline.Default().Entries(), cmdCtx)
	cmdCtx.Logger.Debug("listing guidelines", "count", len(entries))

	switch r.EffectiveMode() {
	case output.ModeJSON, output.ModeYAML:
		out := RulesOutput{
			Guidelines: make([]GuidelineInfo, 0, len(entries)),
			Count:      countByTier(entries),
		}
		for _, e := range entries {
			out.Guidelines = append(out.Guidelines, newGuidelineInfo(e))
		}
		return encodeMachine(r, out)
	case output.ModeMarkdown:
		return listGuidelinesMarkdown(r, entries, opts.Details)
	default:
		return listGuidelinesText(r, entries, opts.Details)
	}
}

func guidelineTable(r *output.Renderer, entries []guideline.Entry, details bool, styled bool) table.Writer {
	titleCaser := cases.Title(language.English)

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)

	header := table.Row{"ID", "Tier", "Level", "Lints", "Section"}
	if details {
		header = append(header, "Rationale")
	}
	t.AppendHeader(header)

	for _, e := range entries {
		level := e.Severity().String()
		if styled {
			level = severityStyle(r.Styles(), e.Severity()).Render(level)
		}
		row := table.Row{
			e.ID,
			titleCaser.String(strings.ToLower(e.Tier.String())),
			level,
			strings.Join(e.Directives, "\n"),
			guideline.SectionName(e.Group()),
		}
		if details {
			row = append(row, e.Rationale)
		}
		t.AppendRow(row)
	}
	return t
}

func listGuidelinesText(r *output.Renderer, entries []guideline.Entry, details bool) error {
	styles := r.Styles()
	c := countByTier(entries)

	r.Println("")
	r.Println(styles.Header1.Render(fmt.Sprintf("Guidelines (%d required, %d recommended, %d optional)",
		c.Required, c.Recommended, c.Optional)))
	r.Println("")

	if len(entries) == 0 {
		r.Println(styles.Muted.Render("No guidelines match the filters"))
		return nil
	}

	guidelineTable(r, entries, details, true).Render()

	r.Println("")
	r.Println(styles.Muted.Render("Use 'lintattrs rules <guideline-id>' to see the rendered directive"))
	r.Println("")
	return nil
}

func listGuidelinesMarkdown(r *output.Renderer, entries []guideline.Entry, details bool) error {
	r.Println("# Guidelines")
	r.Println("")

	if len(entries) == 0 {
		r.Println("_No guidelines match the filters._")
		return nil
	}

	guidelineTable(r, entries, details, false).RenderMarkdown()
	r.Println("")
	return nil
}

func showGuideline(cmdCtx *CommandContext, id string) error {
	r := cmdCtx.Renderer

	e, ok := guideline.Default().Lookup(strings.ToUpper(strings.TrimSpace(id)))
	if !ok {
		return fmt.Errorf("guideline %q not found", id)
	}

	block, err := emit.RenderEntries([]guideline.Entry{e}, emit.Options{
		Width:    cmdCtx.Cfg.Render.Width,
		NoHeader: true,
	})
	if err != nil {
		return fmt.Errorf("render %s: %w", e.ID, err)
	}

	info := newGuidelineInfo(e)
	info.Rendered = block.String()

	switch r.EffectiveMode() {
	case output.ModeJSON, output.ModeYAML:
		return encodeMachine(r, info)
	case output.ModeMarkdown:
		return showGuidelineMarkdown(r, info)
	default:
		return showGuidelineText(r, info)
	}
}

func showGuidelineText(r *output.Renderer, info GuidelineInfo) error {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render(info.ID))
	r.Println("")

	r.Printf("  %s: %s\n", styles.Bold.Render("Tier"), info.Tier.String())
	r.Printf("  %s: %s\n", styles.Bold.Render("Level"), severityStyle(styles, info.Severity).Render(info.Severity.String()))
	r.Printf("  %s: %s\n", styles.Bold.Render("Section"), info.Section)
	r.Printf("  %s: %t\n", styles.Bold.Render("Enabled"), info.Enabled)
	r.Println("")

	if info.Rationale != "" {
		r.Println(styles.Bold.Render("Rationale"))
		for _, line := range strings.Split(info.Rationale, "\n") {
			r.Println("  " + line)
		}
		r.Println("")
	}

	r.Println(styles.Bold.Render("Rendered"))
	for _, line := range strings.Split(strings.TrimRight(info.Rendered, "\n"), "\n") {
		r.Println(styles.Muted.Render("  " + line))
	}
	r.Println("")
	return nil
}

func showGuidelineMarkdown(r *output.Renderer, info GuidelineInfo) error {
	r.Printf("# %s\n\n", info.ID)
	r.Printf("**Tier:** %s | **Level:** `%s` | **Section:** %s\n\n", info.Tier.String(), info.Severity.String(), info.Section)

	if info.Rationale != "" {
		r.Println(info.Rationale)
		r.Println("")
	}

	r.Println("```rust")
	r.Printf("%s", info.Rendered)
	r.Println("```")
	return nil
}

// encodeMachine writes v as indented JSON or YAML.
func encodeMachine(r *output.Renderer, v any) error {
	if r.EffectiveMode() == output.ModeYAML {
		return r.YAML(v)
	}
	return r.JSON(v)
}

// Helper functions

func severityStyle(styles *output.Styles, sev core.Severity) lipgloss.Style {
	switch sev {
	case core.SeverityDeny:
		return styles.Error
	case core.SeverityWarn:
		return styles.Warning
	default:
		return styles.Muted
	}
}
