package classify

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Markdown treats code spans, code blocks and raw HTML as non-code so that
// brackets in prose are matched but brackets in embedded code are not.
type Markdown struct {
	md goldmark.Markdown
}

// NewMarkdown returns a GFM Markdown lexer.
func NewMarkdown() *Markdown {
	return &Markdown{md: goldmark.New(goldmark.WithExtensions(extension.GFM))}
}

// Name implements Lexer.
func (m *Markdown) Name() string {
	return "markdown"
}

// Spans implements Lexer.
func (m *Markdown) Spans(content string) ([]Span, error) {
	source := []byte(content)
	doc := m.md.Parser().Parse(text.NewReader(source), parser.WithContext(parser.NewContext()))
	offsets := newOffsetIndex(content)

	var spans []Span

	add := func(seg text.Segment) {
		if seg.Stop > seg.Start {
			spans = append(spans, Span{
				Start: offsets.length(seg.Start),
				End:   offsets.length(seg.Stop),
				Kind:  SpanVerbatim,
			})
		}
	}

	addLines := func(n ast.Node) {
		lines := n.Lines()
		for i := range lines.Len() {
			add(lines.At(i))
		}
	}

	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock:
			addLines(node)
			return ast.WalkSkipChildren, nil
		case *ast.CodeSpan:
			for child := node.FirstChild(); child != nil; child = child.NextSibling() {
				if t, ok := child.(*ast.Text); ok {
					add(t.Segment)
				}
			}

			return ast.WalkSkipChildren, nil
		case *ast.RawHTML:
			for i := range node.Segments.Len() {
				add(node.Segments.At(i))
			}

			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}

	sortSpans(spans)

	return spans, nil
}
