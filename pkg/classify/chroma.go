package classify

import (
	"fmt"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/yaklabco/gobrackets/pkg/length"
)

// Chroma finds comments and string literals with a chroma lexer.
type Chroma struct {
	lexer chroma.Lexer
}

// NewChroma returns the chroma lexer registered for language, or else the
// one matching filename.
func NewChroma(language, filename string) (*Chroma, bool) {
	var lexer chroma.Lexer
	if language != "" {
		lexer = lexers.Get(language)
	}

	if lexer == nil && filename != "" {
		lexer = lexers.Match(filename)
	}

	if lexer == nil {
		return nil, false
	}

	return &Chroma{lexer: chroma.Coalesce(lexer)}, true
}

// Name implements Lexer.
func (c *Chroma) Name() string {
	return c.lexer.Config().Name
}

// Spans implements Lexer.
func (c *Chroma) Spans(text string) ([]Span, error) {
	iterator, err := c.lexer.Tokenise(&chroma.TokeniseOptions{State: "root"}, text)
	if err != nil {
		return nil, fmt.Errorf("tokenise with %s: %w", c.Name(), err)
	}

	var spans []Span

	offset := length.Zero
	at := 0
	for _, tok := range iterator.Tokens() {
		// Token values are decoded text, so every invalid byte of the
		// source reads back as U+FFFD. Consume the source itself instead.
		next := skipRunes(text, at, utf8.RuneCountInString(tok.Value))
		end := length.Add(offset, length.Of(text[at:next]))

		if kind, ok := spanKind(tok.Type); ok && next > at {
			spans = append(spans, Span{Start: offset, End: end, Kind: kind})
		}

		offset, at = end, next
	}

	return spans, nil
}

// skipRunes returns the byte offset n runes past at. An invalid byte counts
// as one rune. Runes the lexer appended past the end of text are ignored.
func skipRunes(text string, at, n int) int {
	for ; n > 0 && at < len(text); n-- {
		_, size := utf8.DecodeRuneInString(text[at:])
		at += size
	}

	return at
}

// spanKind maps chroma token types onto non-code kinds. Preprocessor lines
// and string interpolation delimiters stay code.
func spanKind(t chroma.TokenType) (SpanKind, bool) {
	switch {
	case t.InSubCategory(chroma.CommentPreproc):
		return 0, false
	case t.InCategory(chroma.Comment):
		return SpanComment, true
	case t == chroma.LiteralStringInterpol:
		return 0, false
	case t.InSubCategory(chroma.LiteralString):
		return SpanString, true
	default:
		return 0, false
	}
}
