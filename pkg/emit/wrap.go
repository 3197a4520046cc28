package emit

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// splitLines breaks free text into lines, treating the Unicode line and
// paragraph separators like '\n'. A blank line is kept as an empty entry.
func splitLines(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	s = strings.NewReplacer("\r\n", "\n", "\r", "\n", "\u2028", "\n", "\u2029", "\n").Replace(s)
	return strings.Split(s, "\n")
}

// sanitizeLine replaces control characters so text can't escape a line
// comment.
func sanitizeLine(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) || r == '\u2028' || r == '\u2029' {
			return ' '
		}
		return r
	}, s)
}

// wrapComment greedily packs words into "// "-prefixed lines no wider than
// width. A single word longer than width gets a line of its own.
func wrapComment(words []string, width int) []string {
	if len(words) == 0 {
		return []string{strings.TrimSpace(commentPrefix)}
	}

	var (
		lines []string
		cur   strings.Builder
		n     int
	)
	flush := func() {
		lines = append(lines, cur.String())
		cur.Reset()
		n = 0
	}

	for _, w := range words {
		wn := utf8.RuneCountInString(w)
		if n > 0 && n+1+wn > width {
			flush()
		}
		if n == 0 {
			cur.WriteString(commentPrefix)
			n = len(commentPrefix)
		} else {
			cur.WriteByte(' ')
			n++
		}
		cur.WriteString(w)
		n += wn
	}
	flush()
	return lines
}
