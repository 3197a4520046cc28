package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/lintattrs/internal/cli/config"
	"github.com/leapstack-labs/lintattrs/internal/cli/output"
	intconfig "github.com/leapstack-labs/lintattrs/internal/config"
	"github.com/leapstack-labs/lintattrs/pkg/emit"
	"github.com/leapstack-labs/lintattrs/pkg/guideline"
	"github.com/spf13/cobra"
)

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Set up lintattrs for a crate",
		Long: `Set up lintattrs for a crate.

This creates:
  - lintattrs.yaml with the default render settings
  - src/lints.rs holding the rendered directive block

Splice the block at the top of src/lib.rs or src/main.rs, then run
'lintattrs check' in CI to keep it current.`,
		Example: `  # Initialize the crate in the current directory
  lintattrs init

  # Initialize another crate
  lintattrs init crates/core

  # Overwrite an existing lintattrs.yaml
  lintattrs init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			mode := output.ModeAuto
			if format, err := cmd.Flags().GetString("output"); err == nil && format != "" {
				mode = output.Mode(format)
			}
			r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

			return runInit(r, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")

	return cmd
}

func runInit(r *output.Renderer, dir string, force bool) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	configPath := filepath.Join(dir, intconfig.ConfigFileName)
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("%s already exists. Use --force to overwrite", intconfig.ConfigFileName)
	}

	if err := copyTemplate("default", dir, force); err != nil {
		return fmt.Errorf("failed to initialize crate: %w", err)
	}

	// Render with the settings just written so the new crate starts fresh.
	cfg, err := config.LoadConfig(configPath, nil)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", configPath, err)
	}
	block := emit.Render(guideline.Default(), cfg.EmitOptions())
	if _, err := writeFileAtomic(cfg.Render.Out, block.Bytes()); err != nil {
		return err
	}

	files, err := listTemplateFiles("default")
	if err != nil {
		return err
	}

	r.Header(2, "Configuration")
	for _, f := range files {
		r.StatusLine(f, "success", "")
	}
	r.Println("")

	r.Header(2, "Directive block")
	rel, err := filepath.Rel(cfg.ProjectRoot, cfg.Render.Out)
	if err != nil {
		rel = cfg.Render.Out
	}
	r.StatusLine(filepath.ToSlash(rel), "success", fmt.Sprintf("(%d guidelines)", len(block.Fragments())))

	r.Println("")
	r.Success("lintattrs initialized!")
	r.Println("")
	r.Println("Next steps:")
	r.Println("  1. Splice " + filepath.ToSlash(rel) + " at the top of src/lib.rs or src/main.rs")
	r.Println("  2. Run 'lintattrs doctor' to verify the crate")
	r.Println("  3. Run 'lintattrs check' in CI to keep the block current")

	return nil
}
