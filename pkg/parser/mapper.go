package parser

import "github.com/yaklabco/gobrackets/pkg/length"

// mappedEdit is an edit with its extent in both documents.
type mappedEdit struct {
	oldStart, oldEnd length.Length
	newStart, newEnd length.Length
}

// positionMapper translates offsets in the new document back to the previous
// document. Queries must be made with non-decreasing offsets.
type positionMapper struct {
	edits []mappedEdit
	next  int
}

// newPositionMapper takes a batch ordered bottom-to-top and sweeps it in
// document order.
func newPositionMapper(edits []TextEditInfo) *positionMapper {
	mapped := make([]mappedEdit, len(edits))

	prevOldEnd, prevNewEnd := length.Zero, length.Zero
	for i := range edits {
		e := edits[len(edits)-1-i]

		newStart := length.Add(prevNewEnd, length.Diff(prevOldEnd, e.Start))
		newEnd := length.Add(newStart, e.NewLength)

		mapped[i] = mappedEdit{
			oldStart: e.Start,
			oldEnd:   e.End,
			newStart: newStart,
			newEnd:   newEnd,
		}

		prevOldEnd, prevNewEnd = e.End, newEnd
	}

	return &positionMapper{edits: mapped}
}

func (m *positionMapper) advance(offset length.Length) {
	for m.next < len(m.edits) && m.edits[m.next].newEnd <= offset {
		m.next++
	}
}

// oldOffset maps a new-document offset to the previous document. Offsets
// inside replaced text map to positions past the edit start, where no node
// can be reused.
func (m *positionMapper) oldOffset(offset length.Length) length.Length {
	m.advance(offset)

	if m.next == 0 {
		return offset
	}

	prev := m.edits[m.next-1]

	return length.Add(prev.oldEnd, length.Diff(prev.newEnd, offset))
}

// distanceToNextChange returns how far offset is from the next pending
// edit. It reports false when no edit remains.
func (m *positionMapper) distanceToNextChange(offset length.Length) (length.Length, bool) {
	m.advance(offset)

	if m.next >= len(m.edits) {
		return length.Zero, false
	}

	return length.Diff(offset, m.edits[m.next].newStart), true
}
