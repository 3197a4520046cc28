package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/lintattrs/internal/cli/config"
	"github.com/leapstack-labs/lintattrs/internal/cli/output"
	"github.com/leapstack-labs/lintattrs/pkg/core"
	"github.com/leapstack-labs/lintattrs/pkg/emit"
	"github.com/leapstack-labs/lintattrs/pkg/guideline"
	"github.com/spf13/cobra"
)

// Health check statuses.
const (
	statusPass  = "pass"
	statusWarn  = "warn"
	statusError = "error"
)

// crateRoots are the files a crate-level attribute must live in, in lookup order.
var crateRoots = []string{"src/lib.rs", "src/main.rs"}

// allowAttr matches inner allow attributes, possibly spanning lines.
var allowAttr = regexp.MustCompile(`(?s)#!\[\s*allow\s*\((.*?)\)\s*\]`)

// DoctorOptions holds options for the doctor command.
type DoctorOptions struct {
	Format string // Output format: text, markdown, json, yaml
}

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	opts := &DoctorOptions{}
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check how well a crate has adopted the directive block",
		Long: `Inspect the crate around lintattrs.yaml and report adoption problems.

The doctor command checks:
- Setup (config file, Cargo.toml, render.out)
- Block (the generated file exists and is up to date)
- Crate (the crate root carries every active directive and does not
  allow what the block denies)

It ends with a health score (0-100) and recommendations.`,
		Example: `  # Run health check
  lintattrs doctor

  # Output as JSON
  lintattrs doctor --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json, yaml")
	addRenderFlags(cmd)

	return cmd
}

// DoctorOutput is the machine-readable output for the doctor command.
type DoctorOutput struct {
	Summary         CrateSummary  `json:"summary" yaml:"summary"`
	HealthChecks    []HealthCheck `json:"health_checks" yaml:"health_checks"`
	Score           int           `json:"score" yaml:"score"`
	Recommendations []string      `json:"recommendations" yaml:"recommendations"`
	IssueCount      int           `json:"issue_count" yaml:"issue_count"`
}

// CrateSummary describes the crate and the block it should carry.
type CrateSummary struct {
	Root       string `json:"root" yaml:"root"`
	ConfigFile string `json:"config_file,omitempty" yaml:"config_file,omitempty"`
	CrateRoot  string `json:"crate_root,omitempty" yaml:"crate_root,omitempty"`
	Output     string `json:"output,omitempty" yaml:"output,omitempty"`
	Guidelines int    `json:"guidelines" yaml:"guidelines"`
	Deny       int    `json:"deny" yaml:"deny"`
	Warn       int    `json:"warn" yaml:"warn"`
	Inert      int    `json:"inert" yaml:"inert"`
}

// HealthCheck represents a single health check result.
type HealthCheck struct {
	RuleID     string   `json:"rule_id" yaml:"rule_id"`
	Name       string   `json:"name" yaml:"name"`
	Group      string   `json:"group" yaml:"group"`
	Status     string   `json:"status" yaml:"status"` // "pass", "warn", "error"
	IssueCount int      `json:"issue_count" yaml:"issue_count"`
	Details    []string `json:"details,omitempty" yaml:"details,omitempty"`
}

func runDoctor(cmd *cobra.Command, opts *DoctorOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	cmdCtx.WithFormat(cmd, opts.Format)

	cfg := cmdCtx.Cfg
	r := cmdCtx.Renderer

	block := emit.Render(guideline.Default(), cfg.EmitOptions())
	out := diagnose(cfg, config.GetConfigFileUsed(), block)
	cmdCtx.Logger.Debug("doctor finished", "root", out.Summary.Root, "issues", out.IssueCount, "score", out.Score)

	switch r.EffectiveMode() {
	case output.ModeJSON, output.ModeYAML:
		return encodeMachine(r, out)
	case output.ModeMarkdown:
		return renderDoctorMarkdown(r, out)
	default:
		return renderDoctorText(r, out)
	}
}

// diagnose runs every health check against the crate at cfg.ProjectRoot.
func diagnose(cfg *config.Config, configFile string, block emit.DirectiveBlock) *DoctorOutput {
	root := cfg.ProjectRoot
	if root == "" {
		root = "."
	}

	summary := CrateSummary{
		Root:       root,
		ConfigFile: configFile,
		Output:     cfg.Render.Out,
	}
	for _, f := range block.Fragments() {
		summary.Guidelines++
		switch f.Severity {
		case core.SeverityDeny:
			summary.Deny++
		case core.SeverityWarn:
			summary.Warn++
		default:
			summary.Inert++
		}
	}

	crateRoot, crateSrc := readCrateRoot(root)
	if crateRoot != "" {
		summary.CrateRoot = crateRoot
	}

	checks := []HealthCheck{
		checkConfigFile(configFile),
		checkManifest(root),
		checkOutputConfigured(cfg.Render.Out),
	}
	if cfg.Render.Out != "" {
		checks = append(checks, checkBlockFresh(cfg.Render.Out, block.String()))
	}
	checks = append(checks,
		checkDirectivesAdopted(crateRoot, crateSrc, block),
		checkNoAllowOverride(crateRoot, crateSrc, block),
	)

	sort.SliceStable(checks, func(i, j int) bool {
		return groupOrder(checks[i].Group) < groupOrder(checks[j].Group)
	})

	issues := 0
	for _, c := range checks {
		issues += c.IssueCount
	}

	return &DoctorOutput{
		Summary:         summary,
		HealthChecks:    checks,
		Score:           calculateHealthScore(checks),
		Recommendations: generateRecommendations(checks),
		IssueCount:      issues,
	}
}

func groupOrder(group string) int {
	switch group {
	case "setup":
		return 0
	case "block":
		return 1
	default:
		return 2
	}
}

func newCheck(id, name, group string) HealthCheck {
	return HealthCheck{RuleID: id, Name: name, Group: group, Status: statusPass}
}

func (c *HealthCheck) fail(status, detail string) {
	c.IssueCount++
	c.Details = append(c.Details, detail)
	if c.Status != statusError {
		c.Status = status
	}
}

func checkConfigFile(configFile string) HealthCheck {
	c := newCheck("LA01", "Configuration file", "setup")
	if configFile == "" {
		c.fail(statusWarn, "no lintattrs.yaml found")
	}
	return c
}

func checkManifest(root string) HealthCheck {
	c := newCheck("LA02", "Cargo manifest", "setup")
	if _, err := os.Stat(filepath.Join(root, "Cargo.toml")); err != nil {
		c.fail(statusError, "no Cargo.toml in "+root)
	}
	return c
}

func checkOutputConfigured(out string) HealthCheck {
	c := newCheck("LA03", "Output file configured", "setup")
	if out == "" {
		c.fail(statusWarn, "render.out is not set")
	}
	return c
}

func checkBlockFresh(path, want string) HealthCheck {
	c := newCheck("LB01", "Directive block up to date", "block")
	got, err := os.ReadFile(path)
	if err != nil {
		c.fail(statusError, path+" does not exist")
		return c
	}
	if res := compareBlock(path, string(got), want); !res.Fresh {
		c.fail(statusError, fmt.Sprintf("%s differs at line %d", path, res.Line))
	}
	return c
}

// checkDirectivesAdopted reports active directives the crate root never names.
func checkDirectivesAdopted(crateRoot, src string, block emit.DirectiveBlock) HealthCheck {
	c := newCheck("LC01", "Crate root carries active directives", "crate")
	if crateRoot == "" {
		c.fail(statusError, "no src/lib.rs or src/main.rs")
		return c
	}
	for _, sev := range []core.Severity{core.SeverityDeny, core.SeverityWarn} {
		for _, d := range block.Directives(sev) {
			if !mentionsLint(src, d) {
				c.fail(statusWarn, fmt.Sprintf("%s (%s) missing from %s", d, sev, crateRoot))
			}
		}
	}
	return c
}

// checkNoAllowOverride reports crate-level allows that cancel a denied lint.
func checkNoAllowOverride(crateRoot, src string, block emit.DirectiveBlock) HealthCheck {
	c := newCheck("LC02", "No crate-level allow overrides", "crate")
	if crateRoot == "" {
		return c
	}

	allowed := make(map[string]bool)
	for _, m := range allowAttr.FindAllStringSubmatch(src, -1) {
		for _, name := range strings.Split(m[1], ",") {
			if name = strings.TrimSpace(name); name != "" {
				allowed[name] = true
			}
		}
	}
	for _, d := range block.Directives(core.SeverityDeny) {
		if allowed[d] {
			c.fail(statusError, fmt.Sprintf("%s allows %s, which the block denies", crateRoot, d))
		}
	}
	return c
}

func readCrateRoot(root string) (string, string) {
	for _, rel := range crateRoots {
		data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
		if err == nil {
			return rel, string(data)
		}
	}
	return "", ""
}

// mentionsLint reports whether src contains name as a whole lint path.
func mentionsLint(src, name string) bool {
	re := regexp.MustCompile(`(^|[^A-Za-z0-9_:])` + regexp.QuoteMeta(name) + `($|[^A-Za-z0-9_:])`)
	return re.MatchString(src)
}

// calculateHealthScore computes a health score from 0-100.
// Each issue costs 10 points; errors count double.
func calculateHealthScore(checks []HealthCheck) int {
	if len(checks) == 0 {
		return 100
	}

	score := 100.0
	const basePenalty = 10.0

	for _, check := range checks {
		switch check.Status {
		case statusError:
			score -= float64(check.IssueCount) * basePenalty * 2
		case statusWarn:
			score -= float64(check.IssueCount) * basePenalty
		}
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return int(score)
}

// generateRecommendations creates actionable recommendations based on findings.
func generateRecommendations(checks []HealthCheck) []string {
	var recommendations []string
	seen := make(map[string]bool)

	for _, check := range checks {
		if check.IssueCount == 0 {
			continue
		}

		rec := getRecommendation(check.RuleID)
		if rec != "" && !seen[rec] {
			recommendations = append(recommendations, rec)
			seen[rec] = true
		}
	}

	return recommendations
}

// getRecommendation returns a recommendation for a specific check.
func getRecommendation(ruleID string) string {
	switch ruleID {
	case "LA01":
		return "Run 'lintattrs init' to create lintattrs.yaml"
	case "LA02":
		return "Run lintattrs from the crate directory or pass --config"
	case "LA03":
		return "Set render.out so 'lintattrs check' can guard the block in CI"
	case "LB01":
		return "Run 'lintattrs render' to regenerate the directive block"
	case "LC01":
		return "Splice the rendered block at the top of the crate root"
	case "LC02":
		return "Remove crate-level allows for denied lints; allow them on the item instead"
	default:
		return ""
	}
}

func renderDoctorText(r *output.Renderer, out *DoctorOutput) error {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render("Lint Directive Health Report"))
	r.Println(styles.Muted.Render(strings.Repeat("=", 55)))
	r.Println("")

	r.Println(styles.Header2.Render("Crate Summary"))
	r.Printf("   Root: %s\n", out.Summary.Root)
	r.Printf("   Guidelines: %d | Deny: %d | Warn: %d | Inert: %d\n",
		out.Summary.Guidelines, out.Summary.Deny, out.Summary.Warn, out.Summary.Inert)
	r.Println("")

	r.Println(styles.Header2.Render("Health Checks"))
	r.Println("")

	currentGroup := ""
	titleCaser := cases.Title(language.English)
	for _, check := range out.HealthChecks {
		if check.Group != currentGroup {
			currentGroup = check.Group
			r.Println(styles.Bold.Render("   " + titleCaser.String(currentGroup)))
			r.Println(styles.Muted.Render("   " + strings.Repeat("-", 40)))
		}

		icon := styles.StatusSuccess.String()
		switch check.Status {
		case statusWarn:
			icon = styles.StatusWarning.String()
		case statusError:
			icon = styles.StatusFailed.String()
		}

		status := fmt.Sprintf("%s %s: %s", icon, check.RuleID, check.Name)
		if check.IssueCount > 0 {
			status += fmt.Sprintf(" (%d issues)", check.IssueCount)
		}
		r.Println("   " + status)

		// Show first 3 details for issues
		for i, detail := range check.Details {
			if i >= 3 {
				r.Println(styles.Muted.Render(fmt.Sprintf("       ... and %d more", len(check.Details)-3)))
				break
			}
			r.Println(styles.Muted.Render("       - " + detail))
		}
	}
	r.Println("")

	r.Println(styles.Muted.Render(strings.Repeat("=", 55)))
	scoreStyle := styles.Success
	if out.Score < 70 {
		scoreStyle = styles.Warning
	}
	if out.Score < 50 {
		scoreStyle = styles.Error
	}
	r.Printf("   Health Score: %s\n", scoreStyle.Render(fmt.Sprintf("%d/100", out.Score)))
	r.Println("")

	if len(out.Recommendations) > 0 {
		r.Println(styles.Header2.Render("Recommendations"))
		for i, rec := range out.Recommendations {
			r.Printf("   %d. %s\n", i+1, rec)
		}
		r.Println("")
	}

	return nil
}

func renderDoctorMarkdown(r *output.Renderer, out *DoctorOutput) error {
	r.Header(1, "Lint Directive Health Report")

	r.Header(2, "Crate Summary")
	r.Printf("- **Root**: %s\n", out.Summary.Root)
	if out.Summary.CrateRoot != "" {
		r.Printf("- **Crate root**: %s\n", out.Summary.CrateRoot)
	}
	r.Printf("- **Guidelines**: %d\n", out.Summary.Guidelines)
	r.Printf("- **Deny**: %d\n", out.Summary.Deny)
	r.Printf("- **Warn**: %d\n", out.Summary.Warn)
	r.Printf("- **Inert**: %d\n", out.Summary.Inert)
	r.Println("")

	r.Header(2, "Health Checks")

	currentGroup := ""
	titleCaser := cases.Title(language.English)
	for _, check := range out.HealthChecks {
		if check.Group != currentGroup {
			currentGroup = check.Group
			r.Header(3, titleCaser.String(currentGroup))
		}

		r.Printf("- **[%s]** %s: %s", strings.ToUpper(check.Status), check.RuleID, check.Name)
		if check.IssueCount > 0 {
			r.Printf(" (%d issues)", check.IssueCount)
		}
		r.Println("")

		for _, detail := range check.Details {
			r.Printf("  - %s\n", detail)
		}
	}
	r.Println("")

	r.Header(2, "Health Score")
	r.Printf("**%d/100**\n", out.Score)
	r.Println("")

	if len(out.Recommendations) > 0 {
		r.Header(2, "Recommendations")
		for i, rec := range out.Recommendations {
			r.Printf("%d. %s\n", i+1, rec)
		}
		r.Println("")
	}

	return nil
}
