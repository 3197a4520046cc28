package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/lintattrs/pkg/core"
	"github.com/leapstack-labs/lintattrs/pkg/emit"
	"github.com/leapstack-labs/lintattrs/pkg/guideline"
)

// generateGuidelineDocs generates the guideline catalog pages.
func generateGuidelineDocs(outDir string) error {
	log.Printf("Generating guideline docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	reg := guideline.Default()

	if err := os.WriteFile(filepath.Join(outDir, "index.md"), guidelineIndex(reg), 0600); err != nil {
		return err
	}
	log.Printf("  Generated index.md")

	if err := os.WriteFile(filepath.Join(outDir, "catalog.md"), guidelineCatalog(reg), 0600); err != nil {
		return err
	}
	log.Printf("  Generated catalog.md")

	return nil
}

// guidelineIndex renders the overview page.
func guidelineIndex(reg *guideline.Registry) []byte {
	w := NewMarkdownWriter()

	w.Frontmatter("Guidelines", "Tiered Rust coding guidelines rendered by lintattrs")
	w.GeneratedMarker()

	w.Header(1, "Guidelines")
	w.Paragraph(fmt.Sprintf("The catalog holds %s: %d required, %d recommended and %d optional.",
		Bold(fmt.Sprintf("%d guidelines", reg.Len())),
		len(reg.ByTier(core.TierRequired)), len(reg.ByTier(core.TierRecommended)), len(reg.ByTier(core.TierOptional))))

	w.Header(2, "Tiers")
	w.Table(
		[]string{"Tier", "Attribute", "Effect"},
		[][]string{
			{InlineCode("required"), InlineCode("#![deny(...)]"), "Violations fail the build"},
			{InlineCode("recommended"), InlineCode("#![warn(...)]"), "Violations are reported as warnings"},
			{InlineCode("optional"), InlineCode("// #![warn(...)]"), "Written commented out for teams to adopt"},
		},
	)
	w.Paragraph("Disabled guidelines are always written commented out and marked " + InlineCode("(disabled)") + ".")

	w.Header(2, "References")
	var refs []string
	for _, ref := range reg.References() {
		refs = append(refs, fmt.Sprintf("[%s](%s)", ref.Label, ref.URL))
	}
	w.BulletList(refs)

	w.Header(2, "Sections")
	var rows [][]string
	for _, g := range sections(reg) {
		rows = append(rows, []string{
			fmt.Sprintf("[%s](/guidelines/catalog#%s)", guideline.SectionName(g.name), strings.ToLower(g.name)),
			InlineCode(g.name),
			fmt.Sprint(len(g.entries)),
		})
	}
	w.Table([]string{"Section", "Prefix", "Guidelines"}, rows)

	return w.Bytes()
}

// guidelineCatalog renders every guideline with its rendered attribute.
func guidelineCatalog(reg *guideline.Registry) []byte {
	w := NewMarkdownWriter()

	w.Frontmatter("Guideline Catalog", "Every guideline and the lint attribute it renders to")
	w.GeneratedMarker()

	w.Header(1, "Guideline Catalog")

	opts := emit.Options{NoHeader: true}
	for _, g := range sections(reg) {
		w.Line(fmt.Sprintf("## %s {#%s}", guideline.SectionName(g.name), strings.ToLower(g.name)))
		w.Newline()

		for _, e := range g.entries {
			w.Line(fmt.Sprintf("### %s {#%s}", e.ID, strings.ToLower(strings.ReplaceAll(e.ID, ".", "-"))))
			w.Newline()
			status := e.Tier.String()
			if !e.Enabled {
				status += ", disabled"
			}
			w.Line(fmt.Sprintf("**Tier:** %s", InlineCode(status)))
			w.Newline()
			if e.Rationale != "" {
				w.Paragraph(e.Rationale)
			}
			block, err := emit.RenderEntries([]guideline.Entry{e}, opts)
			if err != nil {
				log.Fatalf("render %s: %v", e.ID, err)
			}
			w.CodeBlock("rust", block.String())
		}
	}

	return w.Bytes()
}

type section struct {
	name    string
	entries []guideline.Entry
}

// sections groups entries by the first segment of their group, in catalog order.
func sections(reg *guideline.Registry) []section {
	var out []section
	index := make(map[string]int)
	for _, e := range reg.Entries() {
		name, _, _ := strings.Cut(e.Group(), ".")
		i, ok := index[name]
		if !ok {
			i = len(out)
			index[name] = i
			out = append(out, section{name: name})
		}
		out[i].entries = append(out[i].entries, e)
	}
	return out
}
