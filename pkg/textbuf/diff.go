package textbuf

import (
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/yaklabco/gobrackets/pkg/document"
)

// DiffEdits returns the edits that turn the current content into text.
// Adjacent deletions and insertions are folded into single replacements.
func (b *Buffer) DiffEdits(text string) []TextEdit {
	if text == b.content {
		return nil
	}

	diffs := diffText(b.content, text)

	var (
		edits   []TextEdit
		pending bool
		start   int
		end     int
		insert  string
	)

	flush := func() {
		if pending {
			edits = append(edits, Replace(b.Position(start), b.Position(end), insert))
		}

		pending, insert = false, ""
	}

	cursor := 0
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			flush()
			cursor += len(d.Text)
		case diffmatchpatch.DiffDelete:
			if !pending {
				pending, start = true, cursor
			}

			cursor += len(d.Text)
			end = cursor
		case diffmatchpatch.DiffInsert:
			if !pending {
				pending, start, end = true, cursor, cursor
			}

			insert += d.Text
		}
	}

	flush()

	return edits
}

// diffText diffs by character when both texts are valid UTF-8. The
// character diff decodes runes, so other input is diffed by whole lines,
// which hands back the original bytes untouched.
func diffText(from, to string) []diffmatchpatch.Diff {
	dmp := diffmatchpatch.New()

	if utf8.ValidString(from) && utf8.ValidString(to) {
		diffs := dmp.DiffMain(from, to, false)
		return dmp.DiffCleanupMerge(dmp.DiffCleanupSemanticLossless(diffs))
	}

	src, dst, lines := dmp.DiffLinesToRunes(from, to)

	return dmp.DiffCharsToLines(dmp.DiffMainRunes(src, dst, false), lines)
}

// SetText replaces the content with text and returns the minimal change
// event describing the difference.
func (b *Buffer) SetText(text string) (document.ChangeEvent, error) {
	return b.Apply(b.DiffEdits(text))
}
