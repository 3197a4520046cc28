// Package config holds project-level configuration constants and config file
// discovery shared by the CLI and any other front end.
package config

import "github.com/leapstack-labs/lintattrs/pkg/emit"

// Config file names, in lookup order.
const (
	ConfigFileName    = "lintattrs.yaml"
	ConfigFileNameAlt = "lintattrs.yml"
)

// EnvPrefix is the prefix of environment variables read as configuration.
const EnvPrefix = "LINTATTRS_"

// Default configuration values.
const (
	DefaultOutput = "auto" // TTY=text, non-TTY=markdown
	DefaultWidth  = emit.DefaultWidth
	DefaultHeader = true
)

// Defaults returns the default configuration as a flat koanf key map.
func Defaults() map[string]any {
	return map[string]any{
		"verbose":       false,
		"output":        DefaultOutput,
		"render.out":    "",
		"render.width":  DefaultWidth,
		"render.header": DefaultHeader,
		"rules.tiers":   []string{},
		"rules.group":   "",
	}
}
