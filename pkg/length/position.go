package length

import "fmt"

// Position is a 1-based line and column in a document.
type Position struct {
	Line   int
	Column int
}

// IsValid reports whether both coordinates are positive.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

// String implements fmt.Stringer.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Before reports whether p comes strictly before other.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}

	return p.Column < other.Column
}

// Range is a half-open span [Start, End) of positions.
type Range struct {
	Start Position
	End   Position
}

// IsValid reports whether both ends are valid and Start does not follow End.
func (r Range) IsValid() bool {
	return r.Start.IsValid() && r.End.IsValid() && !r.End.Before(r.Start)
}

// IsEmpty reports whether the range covers no text.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// String implements fmt.Stringer.
func (r Range) String() string {
	return fmt.Sprintf("[%s, %s)", r.Start, r.End)
}

// ToPosition converts an offset into a 1-based position.
func ToPosition(offset Length) Position {
	return Position{Line: offset.Lines() + 1, Column: offset.Columns() + 1}
}

// FromPosition converts a 1-based position into an offset.
// Coordinates below 1 are clamped.
func FromPosition(p Position) Length {
	return FromLineColumn(p.Line-1, p.Column-1)
}

// ToRange converts a pair of offsets into a Range.
func ToRange(start, end Length) Range {
	return Range{Start: ToPosition(start), End: ToPosition(end)}
}

// RangeToLengths converts a Range back into its start and end offsets.
func RangeToLengths(r Range) (Length, Length) {
	return FromPosition(r.Start), FromPosition(r.End)
}
