package emit

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/lintattrs/pkg/core"
	"github.com/leapstack-labs/lintattrs/pkg/guideline"
)

const (
	commentPrefix = "// "
	attrIndent    = "    "
)

// RenderGuidelines renders the organization catalog with default options.
func RenderGuidelines() DirectiveBlock {
	return Render(guideline.Default(), Options{})
}

// Render renders reg into a DirectiveBlock. A nil or empty registry yields
// a block with at most the reference banner.
func Render(reg *guideline.Registry, opts Options) DirectiveBlock {
	opts = opts.withDefaults()

	var block DirectiveBlock
	if !opts.NoHeader {
		block.header = renderHeader(reg.References())
	}

	entries := reg.Entries()
	block.fragments = make([]Fragment, 0, len(entries))
	for _, e := range entries {
		block.fragments = append(block.fragments, renderEntry(e, opts.Width))
	}
	return block
}

// RenderEntries validates entries and renders them. On a validation error
// it returns the empty block and the error; no partial output is produced.
func RenderEntries(entries []guideline.Entry, opts Options, regOpts ...guideline.Option) (DirectiveBlock, error) {
	reg, err := guideline.New(entries, regOpts...)
	if err != nil {
		return DirectiveBlock{}, fmt.Errorf("render guidelines: %w", err)
	}
	return Render(reg, opts), nil
}

func renderHeader(refs []guideline.Reference) string {
	var sb strings.Builder
	for _, ref := range refs {
		label := sanitizeLine(ref.Label)
		url := sanitizeLine(ref.URL)
		fmt.Fprintf(&sb, "%s-------- %s: %s --------\n", commentPrefix, label, url)
	}
	return sb.String()
}

func renderEntry(e guideline.Entry, width int) Fragment {
	sev := e.Severity()
	level := core.SeverityFor(e.Tier).Attribute()

	var sb strings.Builder
	for _, line := range annotation(e, width) {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	prefix := ""
	if !sev.Active() {
		prefix = commentPrefix
	}
	for _, line := range attribute(level, e.Directives, width-len(prefix)) {
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	return Fragment{
		ID:         e.ID,
		Tier:       e.Tier,
		Severity:   sev,
		Directives: e.Directives,
		Text:       sb.String(),
	}
}

// annotation returns the comment lines preceding an attribute:
// "// [TIER] ID rationale", wrapped at width.
func annotation(e guideline.Entry, width int) []string {
	head := fmt.Sprintf("[%s] %s", e.Tier, e.ID)
	if !e.Enabled && e.Tier != core.TierOptional {
		head += " (disabled)"
	}

	paragraphs := splitLines(e.Rationale)
	if len(paragraphs) == 0 {
		return []string{commentPrefix + head}
	}

	var lines []string
	for i, p := range paragraphs {
		words := strings.Fields(sanitizeLine(p))
		if i == 0 {
			words = append(strings.Fields(head), words...)
		}
		lines = append(lines, wrapComment(words, width)...)
	}
	return lines
}

// attribute renders "#![level(a, b)]" on one line when it fits, otherwise
// one lint per line.
func attribute(level string, directives []string, width int) []string {
	single := fmt.Sprintf("#![%s(%s)]", level, strings.Join(directives, ", "))
	if len(directives) == 1 || len(single) <= width {
		return []string{single}
	}

	lines := make([]string, 0, len(directives)+2)
	lines = append(lines, fmt.Sprintf("#![%s(", level))
	for i, d := range directives {
		sep := ","
		if i == len(directives)-1 {
			sep = ""
		}
		lines = append(lines, attrIndent+d+sep)
	}
	lines = append(lines, ")]")
	return lines
}
