package tokenizer

import "strings"

// snapshot is an immutable text with a line index.
type snapshot struct {
	text   string
	starts []int
}

func newSnapshot(text string) *snapshot {
	starts := make([]int, 1, strings.Count(text, "\n")+1)
	for i := range len(text) {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}

	return &snapshot{text: text, starts: starts}
}

func (s *snapshot) LineCount() int { return len(s.starts) }

func (s *snapshot) Line(i int) string {
	if i < 0 || i >= len(s.starts) {
		return ""
	}

	if i == len(s.starts)-1 {
		return s.text[s.starts[i]:]
	}

	return s.text[s.starts[i] : s.starts[i+1]-1]
}

// Fast tokenizes a full text snapshot and accepts every bracket occurrence.
type Fast struct {
	*scanner
}

// NewFast returns a tokenizer over text.
func NewFast(text string, brackets *Brackets) *Fast {
	return &Fast{scanner: newScanner(newSnapshot(text), brackets, nil)}
}
