package config

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/lintattrs/internal/cli/output"
)

// Validate checks the loaded configuration and normalizes the group filter.
func (c *Config) Validate() error {
	if !output.OutputMode(c.OutputFormat).Valid() {
		return fmt.Errorf("invalid output format %q (want one of auto, text, markdown, json, yaml)", c.OutputFormat)
	}
	if c.Render.Width < 0 {
		return fmt.Errorf("render.width must not be negative, got %d", c.Render.Width)
	}
	for _, t := range c.Rules.Tiers {
		if !t.Valid() {
			return fmt.Errorf("rules.tiers: unknown tier %d", int(t))
		}
	}
	c.Rules.Group = strings.ToUpper(strings.TrimSpace(c.Rules.Group))
	return nil
}
