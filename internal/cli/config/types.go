// Package config loads lintattrs CLI configuration.
//
// Settings are layered with koanf, highest precedence first: explicitly set
// flags, LINTATTRS_ environment variables, the lintattrs.yaml file found in
// the project root, and built-in defaults.
package config

import (
	intconfig "github.com/leapstack-labs/lintattrs/internal/config"
	"github.com/leapstack-labs/lintattrs/pkg/core"
	"github.com/leapstack-labs/lintattrs/pkg/emit"
)

// Config holds all CLI configuration options.
type Config struct {
	Verbose      bool         `koanf:"verbose"`
	OutputFormat string       `koanf:"output"`
	Render       RenderConfig `koanf:"render"`
	Rules        RulesConfig  `koanf:"rules"`

	// ProjectRoot is the directory holding the config file, or the working
	// directory when there is none. Not read from any source.
	ProjectRoot string `koanf:"-"`
}

// RenderConfig controls how the directive block is rendered and where it goes.
type RenderConfig struct {
	Out    string `koanf:"out"` // empty means stdout
	Width  int    `koanf:"width"`
	Header bool   `koanf:"header"`
}

// RulesConfig filters the rules listing.
type RulesConfig struct {
	Tiers []core.Tier `koanf:"tiers"` // empty means all tiers
	Group string      `koanf:"group"`
}

// Default returns the configuration used when nothing else is loaded.
func Default() *Config {
	return &Config{
		OutputFormat: intconfig.DefaultOutput,
		Render: RenderConfig{
			Width:  intconfig.DefaultWidth,
			Header: intconfig.DefaultHeader,
		},
	}
}

// EmitOptions converts the render settings to emitter options.
func (c *Config) EmitOptions() emit.Options {
	return emit.Options{
		Width:    c.Render.Width,
		NoHeader: !c.Render.Header,
	}
}

// WantsTier reports whether the rules filter admits tier t.
func (c *Config) WantsTier(t core.Tier) bool {
	if len(c.Rules.Tiers) == 0 {
		return true
	}
	for _, want := range c.Rules.Tiers {
		if want == t {
			return true
		}
	}
	return false
}
