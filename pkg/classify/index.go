// Package classify tells code apart from comments and string literals so
// the token-aware tokenizer can ignore brackets that are not code.
package classify

import (
	"github.com/tidwall/btree"

	"github.com/yaklabco/gobrackets/pkg/length"
)

// SpanKind describes why a span is not code.
type SpanKind uint8

// Span kinds.
const (
	SpanComment SpanKind = iota
	SpanString
	SpanVerbatim
)

// String implements fmt.Stringer.
func (k SpanKind) String() string {
	switch k {
	case SpanComment:
		return "comment"
	case SpanString:
		return "string"
	default:
		return "verbatim"
	}
}

// Span is a half-open non-code region [Start, End).
type Span struct {
	Start length.Length
	End   length.Length
	Kind  SpanKind
}

// Index is an immutable set of non-overlapping spans keyed by their end
// offset, answering point lookups in logarithmic time.
type Index struct {
	tree btree.Map[length.Length, Span]
}

// NewIndex builds an index from spans sorted by start. Overlapping or
// touching spans of the same kind are merged; empty spans are dropped.
func NewIndex(spans []Span) *Index {
	ix := &Index{}

	var pending Span

	has := false
	for _, s := range spans {
		if s.End <= s.Start {
			continue
		}

		if has && s.Start <= pending.End && s.Kind == pending.Kind {
			pending.End = max(pending.End, s.End)
			continue
		}

		if has {
			ix.tree.Set(pending.End, pending)
		}

		pending, has = s, true
	}

	if has {
		ix.tree.Set(pending.End, pending)
	}

	return ix
}

// Len returns the number of spans.
func (ix *Index) Len() int {
	return ix.tree.Len()
}

// SpanAt returns the span containing offset.
func (ix *Index) SpanAt(offset length.Length) (Span, bool) {
	iter := ix.tree.Iter()
	if !iter.Seek(offset) {
		return Span{}, false
	}

	// Spans are half-open, so one ending exactly at offset does not hold it.
	if iter.Key() == offset && !iter.Next() {
		return Span{}, false
	}

	if span := iter.Value(); span.Start <= offset {
		return span, true
	}

	return Span{}, false
}

// IsCode implements tokenizer.Classifier.
func (ix *Index) IsCode(line, column int) bool {
	_, inSpan := ix.SpanAt(length.FromLineColumn(line, column))
	return !inSpan
}

// Spans returns the spans in document order.
func (ix *Index) Spans() []Span {
	out := make([]Span, 0, ix.tree.Len())
	ix.tree.Scan(func(_ length.Length, span Span) bool {
		out = append(out, span)
		return true
	})

	return out
}

// lineSegments returns, per zero-based line, the column ranges covered by
// spans. Lines without spans are absent.
func (ix *Index) lineSegments() map[int][][2]int {
	out := make(map[int][][2]int)

	const eol = int(^uint32(0) >> 1)

	ix.tree.Scan(func(_ length.Length, span Span) bool {
		first, last := span.Start.Lines(), span.End.Lines()
		for line := first; line <= last; line++ {
			from, to := 0, eol
			if line == first {
				from = span.Start.Columns()
			}

			if line == last {
				to = span.End.Columns()
			}

			if from < to {
				out[line] = append(out[line], [2]int{from, to})
			}
		}

		return true
	})

	return out
}
