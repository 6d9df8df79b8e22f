package textbuf

import (
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/gobrackets/pkg/document"
)

type resolvedEdit struct {
	edit       TextEdit
	start, end int
}

func (b *Buffer) resolve(edits []TextEdit) ([]resolvedEdit, error) {
	out := make([]resolvedEdit, 0, len(edits))

	for _, e := range edits {
		start, ok := b.Offset(e.Range.Start)
		if !ok {
			return nil, &ValidationError{Edit: e, Message: fmt.Sprintf("start %s is outside the buffer", e.Range.Start)}
		}

		end, ok := b.Offset(e.Range.End)
		if !ok {
			return nil, &ValidationError{Edit: e, Message: fmt.Sprintf("end %s is outside the buffer", e.Range.End)}
		}

		if end < start {
			return nil, &ValidationError{Edit: e, Message: "end is before start"}
		}

		out = append(out, resolvedEdit{edit: e, start: start, end: end})
	}

	slices.SortStableFunc(out, func(x, y resolvedEdit) int {
		if x.start != y.start {
			return x.start - y.start
		}

		return x.end - y.end
	})

	for i := 1; i < len(out); i++ {
		if out[i].start < out[i-1].end {
			return nil, &ConflictError{Edit1: out[i-1].edit, Edit2: out[i].edit}
		}
	}

	return out, nil
}

// Apply applies a batch of non-overlapping edits, all expressed in the
// coordinates of the current content. It returns the change event to feed
// to a document model, with changes ordered bottom-to-top.
func (b *Buffer) Apply(edits []TextEdit) (document.ChangeEvent, error) {
	if len(edits) == 0 {
		return document.ChangeEvent{}, nil
	}

	resolved, err := b.resolve(edits)
	if err != nil {
		return document.ChangeEvent{}, err
	}

	delta := 0
	for _, r := range resolved {
		delta += len(r.edit.NewText) - (r.end - r.start)
	}

	var out strings.Builder
	out.Grow(len(b.content) + delta)

	cursor := 0
	for _, r := range resolved {
		out.WriteString(b.content[cursor:r.start])
		out.WriteString(r.edit.NewText)
		cursor = r.end
	}

	out.WriteString(b.content[cursor:])

	changes := make([]document.ContentChange, 0, len(resolved))
	for _, r := range slices.Backward(resolved) {
		changes = append(changes, document.ContentChange{Range: r.edit.Range, Text: r.edit.NewText})
	}

	b.reset(out.String())
	b.version++

	return document.ChangeEvent{Changes: changes}, nil
}
