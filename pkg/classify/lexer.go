package classify

import (
	"sort"
	"strings"

	"github.com/yaklabco/gobrackets/pkg/length"
)

// Lexer finds the non-code spans of a document.
type Lexer interface {
	// Name identifies the lexer in logs.
	Name() string

	// Spans returns the non-code spans of text sorted by start.
	Spans(text string) ([]Span, error)
}

// For returns the lexer for a language id, falling back to matching the
// file name. It reports false when no lexer is known, in which case every
// position should be treated as code.
//
//nolint:ireturn // callers only need the Lexer behaviour
func For(language, filename string) (Lexer, bool) {
	if strings.EqualFold(language, "markdown") || strings.EqualFold(language, "md") {
		return NewMarkdown(), true
	}

	if lexer, ok := NewChroma(language, filename); ok {
		return lexer, true
	}

	return nil, false
}

// offsetIndex converts byte offsets of one text into lengths.
type offsetIndex struct {
	starts []int
}

func newOffsetIndex(text string) offsetIndex {
	starts := make([]int, 1, strings.Count(text, "\n")+1)
	for i := range len(text) {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}

	return offsetIndex{starts: starts}
}

func (o offsetIndex) length(offset int) length.Length {
	line := sort.Search(len(o.starts), func(i int) bool { return o.starts[i] > offset }) - 1
	return length.FromLineColumn(line, offset-o.starts[line])
}
