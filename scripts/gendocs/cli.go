package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/leapstack-labs/lintattrs/internal/cli"
	"github.com/leapstack-labs/lintattrs/internal/cli/config"
	intconfig "github.com/leapstack-labs/lintattrs/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// commandGroups orders the index by what a command does to the crate.
var commandGroups = []struct {
	title    string
	commands []string
}{
	{"Generate", []string{"init", "render"}},
	{"Verify", []string{"check", "doctor"}},
	{"Inspect", []string{"rules"}},
}

// generateCLIDocs writes index.md and one page per command.
func generateCLIDocs(outDir string) error {
	log.Printf("Generating CLI docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	rootCmd := cli.NewRootCmd()

	if err := os.WriteFile(filepath.Join(outDir, "index.md"), cliIndex(rootCmd), 0600); err != nil {
		return fmt.Errorf("failed to generate index: %w", err)
	}
	log.Printf("  Generated index.md")

	for _, cmd := range documented(rootCmd) {
		if err := os.WriteFile(filepath.Join(outDir, cmd.Name()+".md"), commandPage(cmd), 0600); err != nil {
			return fmt.Errorf("failed to generate page for %s: %w", cmd.Name(), err)
		}
		log.Printf("  Generated %s.md", cmd.Name())
	}

	return nil
}

func documented(root *cobra.Command) []*cobra.Command {
	var out []*cobra.Command
	for _, cmd := range root.Commands() {
		if cmd.Hidden || cmd.Name() == "help" || cmd.Name() == "__complete" {
			continue
		}
		out = append(out, cmd)
	}
	return out
}

// cliIndex renders the overview: commands by purpose, then how every
// setting can be supplied.
func cliIndex(root *cobra.Command) []byte {
	w := NewMarkdownWriter()

	w.Frontmatter("CLI Reference", "Commands and settings of the lintattrs CLI")
	w.GeneratedMarker()

	w.Header(1, "CLI Reference")
	w.Paragraph(root.Long)

	byName := make(map[string]*cobra.Command)
	for _, cmd := range documented(root) {
		byName[cmd.Name()] = cmd
	}

	listed := make(map[string]bool)
	for _, g := range commandGroups {
		w.Header(2, g.title)
		var rows [][]string
		for _, name := range g.commands {
			cmd, ok := byName[name]
			if !ok {
				continue
			}
			listed[name] = true
			rows = append(rows, []string{commandLink(cmd), cleanDescription(cmd.Short)})
		}
		w.Table([]string{"Command", "Description"}, rows)
	}

	var other [][]string
	for _, cmd := range documented(root) {
		if !listed[cmd.Name()] {
			other = append(other, []string{commandLink(cmd), cleanDescription(cmd.Short)})
		}
	}
	if len(other) > 0 {
		w.Header(2, "Other")
		w.Table([]string{"Command", "Description"}, other)
	}

	w.Header(2, "Settings")
	w.Paragraph(fmt.Sprintf("Each setting can come from a flag, a %s variable or %s. The leftmost source wins.",
		InlineCode(intconfig.EnvPrefix+"*"), InlineCode(intconfig.ConfigFileName)))
	w.Table([]string{"Flag", "Environment", "Key", "Default"}, settingRows())

	w.Header(2, "In CI")
	w.Paragraph("Commit the rendered block and fail the build when the catalog moves on:")
	w.CodeBlock("bash", `lintattrs check            # uses render.out from lintattrs.yaml
lintattrs check src/lints.rs`)
	w.Paragraph(fmt.Sprintf("%s exits 1 and prints the first differing line when the file is stale. %s never fails the build.",
		InlineCode("check"), InlineCode("doctor")))

	return w.Bytes()
}

func commandLink(cmd *cobra.Command) string {
	return fmt.Sprintf("[%s](/cli/%s)", InlineCode(cmd.Name()), cmd.Name())
}

// settingRows lists every config key with the flag that sets it, if any.
func settingRows() [][]string {
	flagFor := make(map[string]string)
	for flag, key := range config.FlagKeys() {
		flagFor[key] = flag
	}

	defaults := intconfig.Defaults()
	keys := make([]string, 0, len(defaults))
	for key := range defaults {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	rows := make([][]string, 0, len(keys))
	for _, key := range keys {
		flag := "-"
		if f, ok := flagFor[key]; ok {
			flag = InlineCode("--" + f)
		}
		rows = append(rows, []string{flag, InlineCode(envName(key)), InlineCode(key), defaultString(defaults[key])})
	}
	return rows
}

// commandPage renders one command: usage, its own flags with the config
// key each one sets, inherited flags and examples.
func commandPage(cmd *cobra.Command) []byte {
	w := NewMarkdownWriter()

	w.Frontmatter("lintattrs "+cmd.Name(), cmd.Short)
	w.GeneratedMarker()

	w.Header(1, "lintattrs "+cmd.Name())
	if cmd.Long != "" {
		w.Paragraph(cmd.Long)
	} else {
		w.Paragraph(cmd.Short)
	}

	w.Header(2, "Usage")
	w.CodeBlock("bash", "lintattrs "+strings.TrimPrefix(cmd.UseLine(), "lintattrs "))

	if cmd.HasLocalFlags() {
		w.Header(2, "Options")
		writeFlagsTable(w, cmd.LocalFlags())
	}
	if cmd.HasInheritedFlags() {
		w.Header(2, "Global Options")
		writeFlagsTable(w, cmd.InheritedFlags())
	}

	if cmd.Example != "" {
		w.Header(2, "Examples")
		w.CodeBlock("bash", dedent(cmd.Example))
	}

	return w.Bytes()
}

// writeFlagsTable lists flags with the config key they override.
func writeFlagsTable(w *MarkdownWriter, flags *pflag.FlagSet) {
	keys := config.FlagKeys()

	var rows [][]string
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		name := InlineCode("--" + f.Name)
		if f.Shorthand != "" {
			name += ", " + InlineCode("-"+f.Shorthand)
		}
		key := "-"
		if k, ok := keys[f.Name]; ok {
			key = InlineCode(k)
		}
		rows = append(rows, []string{name, key, cleanDescription(f.Usage)})
	})

	w.Table([]string{"Flag", "Key", "Description"}, rows)
}

// dedent strips the indentation cobra examples share.
func dedent(s string) string {
	lines := strings.Split(strings.Trim(s, "\n"), "\n")
	indent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent == -1 || n < indent {
			indent = n
		}
	}
	for i, line := range lines {
		if len(line) >= indent && indent > 0 {
			lines[i] = line[indent:]
		}
	}
	return strings.Join(lines, "\n")
}
