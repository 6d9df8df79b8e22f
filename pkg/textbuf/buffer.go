// Package textbuf provides an in-memory text buffer that serves as the
// document source for a bracket model and turns edits into change events.
package textbuf

import (
	"sort"

	"github.com/yaklabco/gobrackets/pkg/length"
)

// lineInfo locates one line in the buffer content.
type lineInfo struct {
	start int
	eol   int // offset of the '\n', or len(content) for the last line
}

// Buffer is a mutable text document with a line index.
// It is not safe for concurrent use.
type Buffer struct {
	content string
	lines   []lineInfo
	version int
}

// New returns a buffer holding text.
func New(text string) *Buffer {
	b := &Buffer{}
	b.reset(text)

	return b
}

func (b *Buffer) reset(text string) {
	b.content = text
	b.lines = buildLines(text)
}

func buildLines(content string) []lineInfo {
	lines := make([]lineInfo, 0, 16)

	lineStart := 0
	for idx := range len(content) {
		if content[idx] == '\n' {
			lines = append(lines, lineInfo{start: lineStart, eol: idx})
			lineStart = idx + 1
		}
	}

	return append(lines, lineInfo{start: lineStart, eol: len(content)})
}

// Text returns the full content.
func (b *Buffer) Text() string { return b.content }

// Len returns the content size in bytes.
func (b *Buffer) Len() int { return len(b.content) }

// Version counts the edit batches applied so far.
func (b *Buffer) Version() int { return b.version }

// LineCount returns the number of lines. An empty buffer has one line.
func (b *Buffer) LineCount() int { return len(b.lines) }

// Line returns the zero-based line i without its terminator.
func (b *Buffer) Line(i int) string {
	if i < 0 || i >= len(b.lines) {
		return ""
	}

	l := b.lines[i]

	return b.content[l.start:l.eol]
}

// Length returns the length of the whole content.
func (b *Buffer) Length() length.Length {
	last := len(b.lines) - 1
	return length.FromLineColumn(last, b.lines[last].eol-b.lines[last].start)
}

// Offset converts a 1-based position to a byte offset. A column may point
// just past the end of its line.
func (b *Buffer) Offset(p length.Position) (int, bool) {
	if p.Line < 1 || p.Line > len(b.lines) || p.Column < 1 {
		return 0, false
	}

	l := b.lines[p.Line-1]

	offset := l.start + p.Column - 1
	if offset > l.eol {
		return 0, false
	}

	return offset, true
}

// Position converts a byte offset to a 1-based position. Offsets past the
// end clamp to the end of the content.
func (b *Buffer) Position(offset int) length.Position {
	offset = min(max(offset, 0), len(b.content))

	idx := sort.Search(len(b.lines), func(i int) bool {
		return b.lines[i].eol >= offset
	})

	if idx >= len(b.lines) {
		idx = len(b.lines) - 1
	}

	return length.Position{Line: idx + 1, Column: offset - b.lines[idx].start + 1}
}
