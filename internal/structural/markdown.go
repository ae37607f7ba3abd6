package structural

import (
	"strings"

	"github.com/codescope/codescope/pkg/types"
)

// MarkdownParser treats ATX headings as structural boundaries. Each heading
// opens a section node that runs to the next heading or end of input. Text
// before the first heading is not claimed, leaving it as a gap for the
// caller's filler handling.
type MarkdownParser struct{}

// NewMarkdownParser creates a new MarkdownParser instance
func NewMarkdownParser() *MarkdownParser {
	return &MarkdownParser{}
}

// Language returns the language tag handled by this parser
func (p *MarkdownParser) Language() string {
	return "markdown"
}

// Parse extracts heading-delimited section boundaries. Markdown always
// parses; a document with no headings simply yields no nodes.
func (p *MarkdownParser) Parse(text string) ([]types.Node, error) {
	var nodes []types.Node

	runeOff := 0
	sectionStart := -1
	sectionName := ""

	for _, line := range splitLines(text) {
		if isHeading(line) {
			if sectionStart >= 0 {
				nodes = append(nodes, types.Node{
					Kind:        types.NodeSection,
					Name:        sectionName,
					StartOffset: sectionStart,
					EndOffset:   runeOff,
				})
			}
			sectionStart = runeOff
			sectionName = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "#"))
		}
		runeOff += len([]rune(line))
	}

	if sectionStart >= 0 && runeOff > sectionStart {
		nodes = append(nodes, types.Node{
			Kind:        types.NodeSection,
			Name:        sectionName,
			StartOffset: sectionStart,
			EndOffset:   runeOff,
		})
	}

	return nodes, nil
}

// isHeading reports whether a line is an ATX heading: one to six '#' runes
// followed by a space
func isHeading(line string) bool {
	trimmed := strings.TrimLeft(line, "#")
	hashes := len(line) - len(trimmed)
	return hashes >= 1 && hashes <= 6 && strings.HasPrefix(trimmed, " ")
}

// splitLines splits text into lines with their trailing newline preserved,
// so that concatenating the lines reconstructs the text
func splitLines(text string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lines = append(lines, text[start:i+1])
			start = i + 1
		}
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}
