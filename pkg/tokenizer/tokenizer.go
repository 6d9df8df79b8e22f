// Package tokenizer turns document text into a lazy stream of bracket and
// text tokens for the incremental parser.
//
// Two implementations share one line scanner. The fast tokenizer works on a
// full text snapshot and accepts every bracket. The token-aware tokenizer
// reads lines from the host and asks a Classifier whether each bracket
// candidate sits in code, so brackets inside comments and strings become
// text.
//
// A text token never extends past the end of its line, which keeps
// re-tokenization after an edit local to the edited lines.
package tokenizer

import (
	"github.com/yaklabco/gobrackets/pkg/ast"
	"github.com/yaklabco/gobrackets/pkg/densekey"
	"github.com/yaklabco/gobrackets/pkg/length"
)

// Kind classifies a token.
type Kind uint8

// Token kinds.
const (
	KindText Kind = iota
	KindOpening
	KindClosing
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindOpening:
		return "Opening"
	case KindClosing:
		return "Closing"
	default:
		return "Text"
	}
}

// Token is one element of the token stream.
type Token struct {
	Kind   Kind
	Length length.Length

	// Keys is empty for text tokens.
	Keys densekey.Set

	// Node is the leaf the parser places in the tree for this token.
	Node *ast.Node
}

// Tokenizer is a cursor over a token stream.
type Tokenizer interface {
	// Offset returns the position of the next token.
	Offset() length.Length

	// Length returns the length of the whole document.
	Length() length.Length

	// Peek returns the next token without consuming it. It reports false at
	// the end of the document.
	Peek() (Token, bool)

	// Read consumes and returns the next token.
	Read() (Token, bool)

	// Skip advances the cursor by l without producing tokens. Skipping past
	// the end clamps to the document length.
	Skip(l length.Length)
}

// LineSource provides document lines without their line terminator.
type LineSource interface {
	LineCount() int
	Line(i int) string
}

// Classifier reports whether the byte at a zero-based line and column is
// code, as opposed to a comment or string literal.
type Classifier interface {
	IsCode(line, column int) bool
}

// ClassifierFunc adapts a function to the Classifier interface.
type ClassifierFunc func(line, column int) bool

// IsCode implements Classifier.
func (f ClassifierFunc) IsCode(line, column int) bool {
	return f(line, column)
}
