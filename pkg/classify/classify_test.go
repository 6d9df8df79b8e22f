package classify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gobrackets/pkg/classify"
	"github.com/yaklabco/gobrackets/pkg/document"
	"github.com/yaklabco/gobrackets/pkg/length"
)

func span(l1, c1, l2, c2 int) classify.Span {
	return classify.Span{Start: length.FromLineColumn(l1, c1), End: length.FromLineColumn(l2, c2), Kind: classify.SpanString}
}

func TestIndexLookup(t *testing.T) {
	t.Parallel()

	ix := classify.NewIndex([]classify.Span{span(0, 2, 0, 5), span(1, 0, 3, 1)})

	assert.Equal(t, 2, ix.Len())
	assert.True(t, ix.IsCode(0, 1))
	assert.False(t, ix.IsCode(0, 2))
	assert.False(t, ix.IsCode(0, 4))
	assert.True(t, ix.IsCode(0, 5), "spans are half-open")
	assert.False(t, ix.IsCode(2, 40))
	assert.True(t, ix.IsCode(3, 1))
	assert.True(t, ix.IsCode(9, 0))
}

func TestIndexMergesTouchingSpans(t *testing.T) {
	t.Parallel()

	ix := classify.NewIndex([]classify.Span{span(0, 0, 0, 2), span(0, 2, 0, 4), span(0, 6, 0, 6)})

	require.Equal(t, 1, ix.Len())
	assert.Equal(t, length.FromLineColumn(0, 4), ix.Spans()[0].End)
}

func TestChromaGo(t *testing.T) {
	t.Parallel()

	lexer, ok := classify.For("go", "")
	require.True(t, ok)

	c := classify.New(lexer)
	src := "x := \"(\" // )\ny := f(1)\n"

	assert.True(t, c.IsCode(0, 6), "everything is code before the first update")

	changed, err := c.Update(src)
	require.NoError(t, err)
	assert.Equal(t, []document.LineRange{{From: 1, To: 1}}, changed)

	assert.False(t, c.IsCode(0, 6), "bracket inside string literal")
	assert.False(t, c.IsCode(0, 12), "bracket inside line comment")
	assert.True(t, c.IsCode(1, 6))
	assert.True(t, c.Ready())

	changed, err = c.Update(src)
	require.NoError(t, err)
	assert.Empty(t, changed)
}

func TestChromaSpansCountSourceBytes(t *testing.T) {
	t.Parallel()

	lexer, ok := classify.For("go", "")
	require.True(t, ok)

	c := classify.New(lexer)

	_, err := c.Update("s := \"\xff\xfe(\" // \u00e9)\nx := f(1)\n")
	require.NoError(t, err)

	assert.False(t, c.IsCode(0, 8), "bracket inside string literal")
	assert.True(t, c.IsCode(0, 10), "space after the string literal")
	assert.False(t, c.IsCode(0, 16), "bracket inside line comment")
	assert.True(t, c.IsCode(1, 6))
}

func TestChromaReportsShiftedLines(t *testing.T) {
	t.Parallel()

	lexer, ok := classify.NewChroma("", "main.c")
	require.True(t, ok)

	c := classify.New(lexer)

	_, err := c.Update("a();\nb();\nc();\n")
	require.NoError(t, err)

	changed, err := c.Update("/* a();\nb();\n*/ c();\n")
	require.NoError(t, err)
	assert.Equal(t, []document.LineRange{{From: 1, To: 3}}, changed)
}

func TestMarkdown(t *testing.T) {
	t.Parallel()

	lexer, ok := classify.For("markdown", "README.md")
	require.True(t, ok)

	c := classify.New(lexer)
	src := "See (this) and `f(x)`.\n\n```go\nfunc() {\n```\n"

	_, err := c.Update(src)
	require.NoError(t, err)

	assert.True(t, c.IsCode(0, 4), "prose brackets count")
	assert.False(t, c.IsCode(0, 17), "code span")
	assert.False(t, c.IsCode(3, 7), "fenced block")
}

func TestUnknownLanguage(t *testing.T) {
	t.Parallel()

	_, ok := classify.For("no-such-language", "file.unknown-ext")
	assert.False(t, ok)

	c := classify.New(nil)
	changed, err := c.Update("(\"x\")")
	require.NoError(t, err)
	assert.Empty(t, changed)
	assert.True(t, c.IsCode(0, 1))
}

func TestUpdateAfterFollowsMovedLines(t *testing.T) {
	t.Parallel()

	lexer, ok := classify.For("go", "")
	require.True(t, ok)

	c := classify.New(lexer)

	_, err := c.Update("x := 1\ny := \"(\"\n")
	require.NoError(t, err)

	insert := document.ContentChange{
		Range: length.Range{Start: length.Position{Line: 1, Column: 1}, End: length.Position{Line: 1, Column: 1}},
		Text:  "z := 2\n",
	}

	changed, err := c.UpdateAfter("z := 2\nx := 1\ny := \"(\"\n", []document.ContentChange{insert})
	require.NoError(t, err)

	// Only the edited lines; the string literal moved with its line.
	assert.Equal(t, []document.LineRange{{From: 1, To: 2}}, changed)
	assert.False(t, c.IsCode(2, 6))
}

func TestUpdateAfterReportsNewlyCommentedLines(t *testing.T) {
	t.Parallel()

	lexer, ok := classify.NewChroma("c", "")
	require.True(t, ok)

	c := classify.New(lexer)

	_, err := c.Update("a();\nb();\nc();\n")
	require.NoError(t, err)

	at := func(line, col int) length.Range {
		p := length.Position{Line: line, Column: col}
		return length.Range{Start: p, End: p}
	}

	changes := []document.ContentChange{
		{Range: at(3, 5), Text: " */"},
		{Range: at(1, 1), Text: "/* "},
	}

	changed, err := c.UpdateAfter("/* a();\nb();\nc(); */\n", changes)
	require.NoError(t, err)
	assert.Equal(t, []document.LineRange{{From: 1, To: 3}}, changed)
	assert.False(t, c.IsCode(1, 1))
}
