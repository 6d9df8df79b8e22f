package parser

import (
	"errors"
	"fmt"

	"github.com/yaklabco/gobrackets/pkg/length"
)

// Errors returned for edits that violate the batch contract.
var (
	ErrInvalidEdit     = errors.New("edit start is after edit end")
	ErrEditOutOfBounds = errors.New("edit ends beyond the previous document")
)

// TextEditInfo describes one replacement in previous-document coordinates.
type TextEditInfo struct {
	// Start is the offset where the replaced text begins.
	Start length.Length

	// End is the offset just past the replaced text.
	End length.Length

	// NewLength is the length of the replacement text.
	NewLength length.Length
}

// NewTextEditInfo returns an edit replacing [start, end) with text of
// length newLength.
func NewTextEditInfo(start, end, newLength length.Length) TextEditInfo {
	return TextEditInfo{Start: start, End: end, NewLength: newLength}
}

// String implements fmt.Stringer.
func (e TextEditInfo) String() string {
	return fmt.Sprintf("[%s, %s) -> %s", e.Start, e.End, e.NewLength)
}

func validateEdits(edits []TextEditInfo, docLength length.Length) error {
	for i, e := range edits {
		if e.Start > e.End {
			return fmt.Errorf("edit %d %s: %w", i, e, ErrInvalidEdit)
		}

		if e.End > docLength {
			return fmt.Errorf("edit %d %s beyond %s: %w", i, e, docLength, ErrEditOutOfBounds)
		}
	}

	return nil
}
