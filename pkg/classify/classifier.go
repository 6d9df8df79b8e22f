package classify

import (
	"slices"

	"github.com/yaklabco/gobrackets/pkg/document"
)

// Classifier holds the current classification of one document.
//
// Until the first Update every position is code. Update re-lexes the text
// and reports which lines changed classification, which is what a document
// model needs to refresh its token-aware tree.
type Classifier struct {
	lexer Lexer
	index *Index
	ready bool
}

// New returns a classifier backed by lexer. A nil lexer classifies every
// position as code.
func New(lexer Lexer) *Classifier {
	return &Classifier{lexer: lexer, index: NewIndex(nil)}
}

// Lexer returns the backing lexer, or nil.
//
//nolint:ireturn // the lexer is chosen by the caller
func (c *Classifier) Lexer() Lexer {
	return c.lexer
}

// Ready reports whether Update has run at least once.
func (c *Classifier) Ready() bool {
	return c.ready
}

// Index returns the current span index.
func (c *Classifier) Index() *Index {
	return c.index
}

// IsCode implements tokenizer.Classifier.
func (c *Classifier) IsCode(line, column int) bool {
	return c.index.IsCode(line, column)
}

// Update classifies text and returns the 1-based line ranges whose
// classification differs from the previous state of the same text.
func (c *Classifier) Update(text string) ([]document.LineRange, error) {
	return c.UpdateAfter(text, nil)
}

// UpdateAfter classifies text after the host applied changes to the text
// the classifier last saw. A line is reported when its classification
// differs from that of the line it moved from. The first and last line of
// every change are always reported because nodes reused on either side of
// the change still carry their old classification.
func (c *Classifier) UpdateAfter(text string, changes []document.ContentChange) ([]document.LineRange, error) {
	wasReady := c.ready
	c.ready = true

	if c.lexer == nil {
		return nil, nil
	}

	spans, err := c.lexer.Spans(text)
	if err != nil {
		return nil, err
	}

	next := NewIndex(spans)
	before, after := c.index.lineSegments(), next.lineSegments()
	c.index = next

	if !wasReady {
		changes = nil
	}

	return toRanges(changedLines(before, after, shiftsOf(changes))), nil
}

func changedLines(before, after map[int][][2]int, shifts []lineShift) []int {
	set := make(map[int]struct{})

	for _, sh := range shifts {
		set[sh.newStart] = struct{}{}
		set[sh.newEnd] = struct{}{}
	}

	check := func(line int) {
		if _, done := set[line]; done {
			return
		}

		old, ok := toOld(shifts, line)
		if ok && !slices.Equal(after[line], before[old]) {
			set[line] = struct{}{}
		}
	}

	for line := range after {
		check(line)
	}

	for old := range before {
		if line, ok := toNew(shifts, old); ok {
			check(line)
		}
	}

	lines := make([]int, 0, len(set))
	for line := range set {
		lines = append(lines, line)
	}

	slices.Sort(lines)

	return lines
}

func toRanges(lines []int) []document.LineRange {
	var out []document.LineRange

	for _, line := range lines {
		n := line + 1
		if last := len(out) - 1; last >= 0 && out[last].To+1 == n {
			out[last].To = n
			continue
		}

		out = append(out, document.LineRange{From: n, To: n})
	}

	return out
}

func sortSpans(spans []Span) {
	slices.SortStableFunc(spans, func(a, b Span) int {
		switch {
		case a.Start < b.Start:
			return -1
		case a.Start > b.Start:
			return 1
		default:
			return 0
		}
	})
}
