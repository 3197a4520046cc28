package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	intconfig "github.com/leapstack-labs/lintattrs/internal/config"
)

// ConfigField represents a configuration key.
type ConfigField struct {
	Key         string
	Type        string
	Description string
}

// configDescriptions documents every key in intconfig.Defaults.
var configDescriptions = map[string]ConfigField{
	"verbose":       {Type: "bool", Description: "Log debug details to stderr"},
	"output":        {Type: "string", Description: "Report format: auto, text, markdown, json, yaml"},
	"render.out":    {Type: "string", Description: "File the directive block is written to, relative to lintattrs.yaml"},
	"render.width":  {Type: "int", Description: "Column at which annotation comments wrap (minimum 40)"},
	"render.header": {Type: "bool", Description: "Emit the reference link banner"},
	"rules.tiers":   {Type: "[]string", Description: "Tiers listed by the rules command: required, recommended, optional"},
	"rules.group":   {Type: "string", Description: "Section listed by the rules command, e.g. ERR or TYP.FLT"},
}

// getConfigSchema returns the documented keys in sorted order.
func getConfigSchema() []ConfigField {
	defaults := intconfig.Defaults()
	fields := make([]ConfigField, 0, len(defaults))
	for key := range defaults {
		f, ok := configDescriptions[key]
		if !ok {
			log.Fatalf("config key %q has no description", key)
		}
		f.Key = key
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].Key < fields[j].Key })
	return fields
}

// envName returns the environment variable for a config key.
func envName(key string) string {
	return intconfig.EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func envRows() [][]string {
	var rows [][]string
	for _, f := range getConfigSchema() {
		rows = append(rows, []string{InlineCode(envName(f.Key)), InlineCode(f.Key)})
	}
	return rows
}

func defaultString(v any) string {
	switch v := v.(type) {
	case string:
		if v == "" {
			return "-"
		}
		return InlineCode(v)
	case []string:
		if len(v) == 0 {
			return "-"
		}
		return InlineCode(strings.Join(v, ","))
	default:
		return InlineCode(fmt.Sprint(v))
	}
}

// generateConfigDocs generates the configuration reference page.
func generateConfigDocs(outDir string) error {
	log.Printf("Generating configuration docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	w := NewMarkdownWriter()

	w.Frontmatter("Configuration", "lintattrs configuration reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph(fmt.Sprintf("lintattrs reads %s (or %s) from the crate root, searching parent directories when run from a subdirectory.",
		InlineCode(intconfig.ConfigFileName), InlineCode(intconfig.ConfigFileNameAlt)))

	w.Header(2, "Keys")
	defaults := intconfig.Defaults()
	var rows [][]string
	for _, f := range getConfigSchema() {
		rows = append(rows, []string{InlineCode(f.Key), f.Type, defaultString(defaults[f.Key]), f.Description})
	}
	w.Table([]string{"Key", "Type", "Default", "Description"}, rows)

	w.Header(2, "Precedence")
	w.BulletList([]string{
		"Command-line flags",
		fmt.Sprintf("Environment variables (%s prefix)", InlineCode(intconfig.EnvPrefix)),
		InlineCode(intconfig.ConfigFileName),
		"Built-in defaults",
	})

	w.Header(2, "Example")
	w.CodeBlock("yaml", `output: auto
render:
  out: src/lints.rs
  width: 100
  header: true
rules:
  tiers: [required]
  group: ERR`)

	if err := os.WriteFile(filepath.Join(outDir, "configuration.md"), w.Bytes(), 0600); err != nil {
		return err
	}
	log.Printf("  Generated configuration.md")
	return nil
}
