package document

import (
	"github.com/yaklabco/gobrackets/pkg/length"
	"github.com/yaklabco/gobrackets/pkg/tokenizer"
)

// TextSource is the host's live view of the document.
type TextSource interface {
	tokenizer.LineSource

	// Text returns the full current text.
	Text() string
}

// ContentChange replaces Range, given in coordinates of the document before
// the change batch, with Text.
type ContentChange struct {
	Range length.Range
	Text  string
}

// ChangeEvent is one batch of content changes, ordered bottom-to-top.
type ChangeEvent struct {
	Changes []ContentChange
}

// LineRange is an inclusive range of 1-based line numbers.
type LineRange struct {
	From int
	To   int
}

// ClassificationEvent reports that the host re-classified some lines.
// Complete is set once background classification has finished.
type ClassificationEvent struct {
	Ranges   []LineRange
	Complete bool
}

// Classification describes how far the host's classification has got when
// a document is opened.
type Classification uint8

// Classification states at open time.
const (
	// ClassificationPending means no line has been classified yet.
	ClassificationPending Classification = iota

	// ClassificationPartial means some lines are classified.
	ClassificationPartial

	// ClassificationComplete means every line is classified.
	ClassificationComplete
)
