// Package query reports the bracket occurrences of a tree inside a range,
// each annotated with its nesting level.
package query

import (
	"github.com/yaklabco/gobrackets/pkg/ast"
	"github.com/yaklabco/gobrackets/pkg/densekey"
	"github.com/yaklabco/gobrackets/pkg/length"
)

// BracketInfo is one bracket occurrence.
type BracketInfo struct {
	Start length.Length
	End   length.Length
	Text  string
	Role  ast.Role
	Keys  densekey.Set

	// Level is the zero-based nesting depth. Both brackets of a pair share
	// a level and the pair's content sits one level deeper.
	Level int

	// Unmatched is set for brackets without a partner. Their level is the
	// depth they sit at.
	Unmatched bool
}

// Range returns the 1-based range of the bracket.
func (b BracketInfo) Range() length.Range {
	return length.ToRange(b.Start, b.End)
}

// Sink receives bracket occurrences in document order.
type Sink interface {
	Accept(info BracketInfo)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(info BracketInfo)

// Accept implements Sink.
func (f SinkFunc) Accept(info BracketInfo) { f(info) }

// Stats describes the work done by one query.
type Stats struct {
	// Visited counts tree nodes entered.
	Visited int

	// Emitted counts brackets handed to the sink.
	Emitted int
}

// BracketsInRange returns the brackets overlapping [start, end).
func BracketsInRange(root *ast.Node, start, end length.Length) []BracketInfo {
	var out []BracketInfo

	Collect(root, start, end, SinkFunc(func(info BracketInfo) {
		out = append(out, info)
	}))

	return out
}

// InRange is BracketsInRange over a 1-based range.
func InRange(root *ast.Node, r length.Range) []BracketInfo {
	start, end := length.RangeToLengths(r)
	return BracketsInRange(root, start, end)
}

// Collect streams the brackets overlapping [start, end) into sink. Subtrees
// entirely outside the range are skipped without being entered.
func Collect(root *ast.Node, start, end length.Length, sink Sink) Stats {
	c := &collector{start: start, end: end, sink: sink}
	if root != nil && c.overlaps(length.Zero, root.Length()) {
		c.visit(root, length.Zero, 0)
	}

	return c.stats
}

type collector struct {
	start, end length.Length
	sink       Sink
	stats      Stats
}

func (c *collector) overlaps(nodeStart, nodeEnd length.Length) bool {
	return nodeStart < c.end && nodeEnd > c.start
}

func (c *collector) emit(n *ast.Node, offset length.Length, level int, unmatched bool) {
	end := length.Add(offset, n.Length())
	if !c.overlaps(offset, end) {
		return
	}

	c.stats.Emitted++
	c.sink.Accept(BracketInfo{
		Start:     offset,
		End:       end,
		Text:      n.Text(),
		Role:      n.Role(),
		Keys:      n.Keys(),
		Level:     level,
		Unmatched: unmatched,
	})
}

// visit walks n, which starts at offset and overlaps the query. depth is the
// number of pairs enclosing n.
func (c *collector) visit(n *ast.Node, offset length.Length, depth int) {
	c.stats.Visited++

	switch n.Kind() {
	case ast.KindText:
	case ast.KindBracket:
		c.emit(n, offset, depth, true)
	case ast.KindPair:
		open := n.Open()
		c.emit(open, offset, depth, false)

		childOffset := length.Add(offset, open.Length())
		if content := n.Content(); content != nil {
			contentEnd := length.Add(childOffset, content.Length())
			if c.overlaps(childOffset, contentEnd) {
				c.visit(content, childOffset, depth+1)
			}

			childOffset = contentEnd
		}

		c.emit(n.Close(), childOffset, depth, false)
	case ast.KindList:
		childOffset := offset
		for _, child := range n.Children() {
			if childOffset >= c.end {
				return
			}

			childEnd := length.Add(childOffset, child.Length())
			if c.overlaps(childOffset, childEnd) {
				c.visit(child, childOffset, depth)
			}

			childOffset = childEnd
		}
	}
}
