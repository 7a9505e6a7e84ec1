package blocks

import (
	"strings"
	"unicode/utf8"
)

// Paragraph is one non-empty source line in the logical coordinate
// space. Records are built once per parse pass and never modified.
type Paragraph struct {
	LogicalIndex int    // dense 0-based index over non-empty lines
	PhysicalLine int    // 0-based source line number
	Text         string // trimmed line
	StartOffset  int    // characters of preceding paragraph text
}

// Paragraphs returns a record for every line that is non-empty after
// trimming. Offsets count characters (runes), not bytes.
func Paragraphs(content string) []Paragraph {
	var out []Paragraph
	offset := 0
	for i, line := range SplitLines(content) {
		text := strings.TrimSpace(line)
		if text == "" {
			continue
		}
		out = append(out, Paragraph{
			LogicalIndex: len(out),
			PhysicalLine: i,
			Text:         text,
			StartOffset:  offset,
		})
		offset += utf8.RuneCountInString(text)
	}
	return out
}

// Excerpt returns the first n characters of the paragraph text.
func (p Paragraph) Excerpt(n int) string {
	if utf8.RuneCountInString(p.Text) <= n {
		return p.Text
	}
	runes := []rune(p.Text)
	return string(runes[:n]) + "..."
}
