package textbuf

import (
	"fmt"

	"github.com/yaklabco/gobrackets/pkg/length"
)

// TextEdit replaces the text in Range with NewText.
type TextEdit struct {
	Range   length.Range
	NewText string
}

// Replace returns an edit replacing [start, end).
func Replace(start, end length.Position, newText string) TextEdit {
	return TextEdit{Range: length.Range{Start: start, End: end}, NewText: newText}
}

// Insert returns an edit inserting text at pos.
func Insert(pos length.Position, text string) TextEdit {
	return Replace(pos, pos, text)
}

// Delete returns an edit removing [start, end).
func Delete(start, end length.Position) TextEdit {
	return Replace(start, end, "")
}

// ValidationError describes an edit that does not fit the buffer.
type ValidationError struct {
	Edit    TextEdit
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid edit %s: %s", e.Edit.Range, e.Message)
}

// ConflictError describes overlapping edits in one batch.
type ConflictError struct {
	Edit1 TextEdit
	Edit2 TextEdit
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlapping edits: %s and %s", e.Edit1.Range, e.Edit2.Range)
}
