package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/lintattrs/pkg/emit"
	"github.com/leapstack-labs/lintattrs/pkg/guideline"
	"github.com/spf13/cobra"
)

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the lint directive block",
		Long: `Render the guideline catalog as a block of crate-level lint attributes.

Required guidelines become #![deny(...)], recommended ones #![warn(...)].
Optional guidelines are written commented out so they can be adopted by
removing the comment marker. Splice the block at the top of lib.rs or
main.rs, before any item.

Without --out the block goes to stdout. With --out the file is replaced
atomically and left untouched when already up to date.

The block carries no #![allow(...)] attributes. Crates that relied on
clippy::disallowed_names or clippy::blanket_clippy_restriction_lints being
allowed keep that by adding their own #![allow(...)] after the block.`,
		Example: `  # Print the block
  lintattrs render

  # Write it next to the crate root
  lintattrs render --out src/lints.rs

  # Narrower comments, no banner
  lintattrs render --width 80 --no-header`,
		Args: cobra.NoArgs,
		RunE: runRender,
	}

	cmd.Flags().String("out", "", "Write the block to this file instead of stdout")
	addRenderFlags(cmd)

	return cmd
}

func runRender(cmd *cobra.Command, _ []string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	cfg := cmdCtx.Cfg
	logger := cmdCtx.Logger

	block := emit.Render(guideline.Default(), cfg.EmitOptions())
	logger.Debug("rendered directive block",
		"fragments", len(block.Fragments()),
		"width", cfg.Render.Width,
		"header", cfg.Render.Header)

	if cfg.Render.Out == "" {
		if _, err := block.WriteTo(cmd.OutOrStdout()); err != nil {
			return fmt.Errorf("write block: %w", err)
		}
		return nil
	}

	changed, err := writeFileAtomic(cfg.Render.Out, block.Bytes())
	if err != nil {
		return err
	}
	if !changed {
		logger.Info("directive block up to date", "path", cfg.Render.Out)
		return nil
	}
	logger.Info("wrote directive block", "path", cfg.Render.Out, "bytes", len(block.Bytes()))
	return nil
}

// writeFileAtomic replaces path with data through a temp file in the same
// directory. It reports false without writing when path already holds data.
func writeFileAtomic(path string, data []byte) (bool, error) {
	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, data) {
		return false, nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return false, fmt.Errorf("create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".lintattrs-*.tmp")
	if err != nil {
		return false, fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return false, fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return false, fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil { //nolint:gosec // generated source is world-readable
		return false, fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return false, fmt.Errorf("replace %s: %w", path, err)
	}
	return true, nil
}
