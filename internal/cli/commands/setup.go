package commands

import (
	"log/slog"
	"slices"

	"github.com/leapstack-labs/lintattrs/internal/cli/config"
	"github.com/leapstack-labs/lintattrs/internal/cli/output"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext builds the dependencies for cmd. The root command stores
// the loaded config in the command context; a command run on its own loads
// it from its flags instead.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	ctx := cmd.Context()

	loaded, ok := config.FromContext(ctx)
	if !ok {
		var err error
		loaded, err = config.LoadConfig("", cmd.Flags())
		if err != nil {
			return nil, err
		}
	}

	// Commands may adjust their copy without touching the shared config.
	cfg := *loaded
	cfg.Rules.Tiers = slices.Clone(loaded.Rules.Tiers)

	return &CommandContext{
		Cfg:      &cfg,
		Logger:   config.GetLogger(ctx),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat)),
	}, nil
}

// WithFormat replaces the renderer when a command-level format is given.
func (c *CommandContext) WithFormat(cmd *cobra.Command, format string) {
	if format == "" {
		return
	}
	c.Renderer = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(format))
}

// addRenderFlags registers the flags that shape the rendered block.
func addRenderFlags(cmd *cobra.Command) {
	cmd.Flags().Int("width", 0, "Wrap annotation comments at this many columns (default 120)")
	cmd.Flags().Bool("no-header", false, "Omit the reference link banner")
}
