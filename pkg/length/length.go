// Package length provides opaque text offsets measured in lines and columns.
//
// A Length is a (lineDelta, columnDelta) pair packed into a single uint64 so
// that values are cheap to copy, add and compare. Lengths double as offsets:
// the offset of a position is the length of the text that precedes it.
//
// Only '\n' terminates a line. Columns count bytes.
package length

import (
	"fmt"
	"strings"
)

const columnBits = 32

const columnMask = 1<<columnBits - 1

// Length is a packed (lines, columns) value.
//
// Lengths are totally ordered by (lines, columns), which is exactly the
// numeric order of the packed representation, so the built-in comparison
// operators can be used directly.
type Length uint64

// Zero is the empty length and the additive identity.
const Zero Length = 0

// FromLineColumn builds a Length from a line delta and a column count.
// Negative arguments are treated as zero.
func FromLineColumn(lines, columns int) Length {
	if lines < 0 {
		lines = 0
	}

	if columns < 0 {
		columns = 0
	}

	return Length(uint64(lines)<<columnBits | uint64(columns)&columnMask)
}

// Of returns the length of the given text.
func Of(text string) Length {
	lines := strings.Count(text, "\n")
	if lines == 0 {
		return FromLineColumn(0, len(text))
	}

	return FromLineColumn(lines, len(text)-strings.LastIndexByte(text, '\n')-1)
}

// Lines returns the number of line breaks spanned by l.
func (l Length) Lines() int {
	return int(uint64(l) >> columnBits)
}

// Columns returns the column count of l on its last line.
func (l Length) Columns() int {
	return int(uint64(l) & columnMask)
}

// IsZero reports whether l is the empty length.
func (l Length) IsZero() bool {
	return l == Zero
}

// String implements fmt.Stringer.
func (l Length) String() string {
	return fmt.Sprintf("%d:%d", l.Lines(), l.Columns())
}

// Add concatenates two lengths. The result keeps a's columns only when b
// does not span a line break. Add is associative but not commutative.
func Add(a, b Length) Length {
	bLines := b.Lines()
	if bLines == 0 {
		return FromLineColumn(a.Lines(), a.Columns()+b.Columns())
	}

	return FromLineColumn(a.Lines()+bLines, b.Columns())
}

// Diff returns the length of the text between the offsets from and to.
// It returns Zero when to precedes from.
func Diff(from, to Length) Length {
	if to <= from {
		return Zero
	}

	fromLines, toLines := from.Lines(), to.Lines()
	if fromLines == toLines {
		return FromLineColumn(0, to.Columns()-from.Columns())
	}

	return FromLineColumn(toLines-fromLines, to.Columns())
}

// Compare returns -1, 0 or +1 depending on whether a is less than, equal to
// or greater than b.
func Compare(a, b Length) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Less reports whether a < b.
func Less(a, b Length) bool { return a < b }

// LessOrEqual reports whether a <= b.
func LessOrEqual(a, b Length) bool { return a <= b }

// GreaterOrEqual reports whether a >= b.
func GreaterOrEqual(a, b Length) bool { return a >= b }

// Min returns the smaller of a and b.
func Min(a, b Length) Length {
	if a < b {
		return a
	}

	return b
}
