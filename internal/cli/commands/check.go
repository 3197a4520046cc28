package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/leapstack-labs/lintattrs/internal/cli/output"
	"github.com/leapstack-labs/lintattrs/pkg/emit"
	"github.com/leapstack-labs/lintattrs/pkg/guideline"
	"github.com/spf13/cobra"
)

// ErrStale is returned by check when a file does not hold the current block.
var ErrStale = errors.New("directive block is stale")

// CheckResult describes how a file compares with the freshly rendered block.
type CheckResult struct {
	File  string `json:"file" yaml:"file"`
	Fresh bool   `json:"fresh" yaml:"fresh"`
	Line  int    `json:"line,omitempty" yaml:"line,omitempty"` // first differing line, 1-based
	Got   string `json:"got,omitempty" yaml:"got,omitempty"`
	Want  string `json:"want,omitempty" yaml:"want,omitempty"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Verify a committed directive block is up to date",
		Long: `Re-render the guideline catalog and compare it with a file.

The file defaults to render.out from lintattrs.yaml. Render settings
(--width, --no-header) must match the ones the file was generated with.
Exits non-zero and reports the first differing line when the file is stale.`,
		Example: `  # Check the configured output file
  lintattrs check

  # Check an explicit file in CI
  lintattrs check src/lints.rs`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCheck,
	}

	addRenderFlags(cmd)

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	cfg := cmdCtx.Cfg

	path := cfg.Render.Out
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return errors.New("no file to check: pass one or set render.out in lintattrs.yaml")
	}

	got, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	want := emit.Render(guideline.Default(), cfg.EmitOptions()).String()
	result := compareBlock(path, string(got), want)
	cmdCtx.Logger.Debug("checked directive block", "path", path, "fresh", result.Fresh)

	if err := printCheckResult(cmdCtx.Renderer, result); err != nil {
		return err
	}
	if !result.Fresh {
		return fmt.Errorf("%s: %w", path, ErrStale)
	}
	return nil
}

// compareBlock finds the first line where got and want differ. Line endings
// are normalized so a checkout with CRLF conversion still compares fresh.
func compareBlock(file, got, want string) CheckResult {
	got = strings.ReplaceAll(got, "\r\n", "\n")
	if got == want {
		return CheckResult{File: file, Fresh: true}
	}

	gotLines := strings.Split(got, "\n")
	wantLines := strings.Split(want, "\n")

	i := 0
	for i < len(gotLines) && i < len(wantLines) && gotLines[i] == wantLines[i] {
		i++
	}

	res := CheckResult{File: file, Line: i + 1}
	if i < len(gotLines) {
		res.Got = gotLines[i]
	}
	if i < len(wantLines) {
		res.Want = wantLines[i]
	}
	return res
}

func printCheckResult(r *output.Renderer, res CheckResult) error {
	switch r.EffectiveMode() {
	case output.ModeJSON, output.ModeYAML:
		return encodeMachine(r, res)
	case output.ModeMarkdown:
		if res.Fresh {
			r.Printf("`%s` is up to date\n", res.File)
			return nil
		}
		r.Printf("`%s` is stale (first difference at line %d)\n\n", res.File, res.Line)
		r.Println("```diff")
		r.Println("- " + res.Got)
		r.Println("+ " + res.Want)
		r.Println("```")
		return nil
	default:
		styles := r.Styles()
		if res.Fresh {
			r.Println(styles.Success.Render(res.File + " is up to date"))
			return nil
		}
		r.Println(styles.Error.Render(fmt.Sprintf("%s is stale (first difference at line %d)", res.File, res.Line)))
		r.Println(styles.Muted.Render("- " + res.Got))
		r.Println(styles.Success.Render("+ " + res.Want))
		r.Println("")
		r.Println(styles.Muted.Render(fmt.Sprintf("Run 'lintattrs render --out %s' to regenerate", res.File)))
		return nil
	}
}
