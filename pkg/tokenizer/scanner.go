package tokenizer

import (
	"github.com/yaklabco/gobrackets/pkg/ast"
	"github.com/yaklabco/gobrackets/pkg/length"
)

// scanner is the line-oriented core shared by both tokenizers.
type scanner struct {
	brackets *Brackets
	lines    LineSource
	accept   func(line, column int) bool

	total  length.Length
	offset length.Length

	peeked    Token
	hasPeeked bool
	peekedOK  bool
}

func newScanner(lines LineSource, brackets *Brackets, accept func(line, column int) bool) *scanner {
	count := lines.LineCount()

	total := length.Zero
	if count > 0 {
		total = length.FromLineColumn(count-1, len(lines.Line(count-1)))
	}

	return &scanner{
		brackets: brackets,
		lines:    lines,
		accept:   accept,
		total:    total,
	}
}

func (s *scanner) Offset() length.Length { return s.offset }

func (s *scanner) Length() length.Length { return s.total }

func (s *scanner) Peek() (Token, bool) {
	if !s.hasPeeked {
		s.peeked, s.peekedOK = s.scan()
		s.hasPeeked = true
	}

	return s.peeked, s.peekedOK
}

func (s *scanner) Read() (Token, bool) {
	tok, ok := s.Peek()
	if ok {
		s.offset = length.Add(s.offset, tok.Length)
	}

	s.hasPeeked = false

	return tok, ok
}

func (s *scanner) Skip(l length.Length) {
	s.offset = length.Min(length.Add(s.offset, l), s.total)
	s.hasPeeked = false
}

// scan produces the token at the current offset without moving it.
func (s *scanner) scan() (Token, bool) {
	if s.offset >= s.total {
		return Token{}, false
	}

	lineIdx, col := s.offset.Lines(), s.offset.Columns()
	line := s.lines.Line(lineIdx)

	from := col
	for {
		start, br, ok := s.brackets.Find(line, from)
		if !ok {
			break
		}

		if s.accept != nil && !s.accept(lineIdx, start) {
			from = start + len(br.Text)
			continue
		}

		if start == col {
			kind := KindOpening
			if br.Role == ast.RoleClosing {
				kind = KindClosing
			}

			return Token{Kind: kind, Length: br.Node.Length(), Keys: br.Keys, Node: br.Node}, true
		}

		return textToken(length.FromLineColumn(0, start-col)), true
	}

	if lineIdx < s.lines.LineCount()-1 {
		return textToken(length.FromLineColumn(1, 0)), true
	}

	return textToken(length.FromLineColumn(0, len(line)-col)), true
}

func textToken(l length.Length) Token {
	return Token{Kind: KindText, Length: l, Node: ast.NewText(l)}
}
