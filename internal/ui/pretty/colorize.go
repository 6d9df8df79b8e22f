package pretty

import (
	"strings"

	"github.com/yaklabco/gobrackets/pkg/query"
)

// Colorize renders text with every bracket styled by its nesting level.
// brackets must be in document order, as queries return them.
func (s *Styles) Colorize(text string, brackets []query.BracketInfo) string {
	starts := lineStarts(text)

	var builder strings.Builder

	builder.Grow(len(text))

	written := 0
	for _, b := range brackets {
		line := b.Start.Lines()
		if line >= len(starts) {
			break
		}

		start := starts[line] + b.Start.Columns()
		end := start + len(b.Text)

		if start < written || end > len(text) {
			continue
		}

		builder.WriteString(text[written:start])
		builder.WriteString(s.Bracket(text[start:end], b.Level, b.Unmatched))
		written = end
	}

	builder.WriteString(text[written:])

	return builder.String()
}

func lineStarts(text string) []int {
	starts := []int{0}

	for i := range len(text) {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}

	return starts
}
