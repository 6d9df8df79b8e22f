package textbuf_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gobrackets/pkg/ast"
	"github.com/yaklabco/gobrackets/pkg/catalog"
	"github.com/yaklabco/gobrackets/pkg/densekey"
	"github.com/yaklabco/gobrackets/pkg/document"
	"github.com/yaklabco/gobrackets/pkg/length"
	"github.com/yaklabco/gobrackets/pkg/parser"
	"github.com/yaklabco/gobrackets/pkg/textbuf"
	"github.com/yaklabco/gobrackets/pkg/tokenizer"
)

func pos(line, col int) length.Position {
	return length.Position{Line: line, Column: col}
}

func TestLines(t *testing.T) {
	t.Parallel()

	b := textbuf.New("ab\n\ncd")

	assert.Equal(t, 3, b.LineCount())
	assert.Equal(t, "ab", b.Line(0))
	assert.Empty(t, b.Line(1))
	assert.Equal(t, "cd", b.Line(2))
	assert.Empty(t, b.Line(7))
	assert.Equal(t, length.Of(b.Text()), b.Length())

	empty := textbuf.New("")
	assert.Equal(t, 1, empty.LineCount())
	assert.Equal(t, length.Zero, empty.Length())
}

func TestOffsetAndPosition(t *testing.T) {
	t.Parallel()

	b := textbuf.New("ab\ncd")

	offset, ok := b.Offset(pos(2, 2))
	require.True(t, ok)
	assert.Equal(t, 4, offset)

	offset, ok = b.Offset(pos(1, 3))
	require.True(t, ok, "column may point at the line end")
	assert.Equal(t, 2, offset)

	_, ok = b.Offset(pos(1, 5))
	assert.False(t, ok)

	_, ok = b.Offset(pos(3, 1))
	assert.False(t, ok)

	assert.Equal(t, pos(1, 3), b.Position(2))
	assert.Equal(t, pos(2, 1), b.Position(3))
	assert.Equal(t, pos(2, 3), b.Position(99))
}

func TestApply(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name  string
		text  string
		edits []textbuf.TextEdit
		want  string
	}

	tests := []testCase{
		{name: "no edits", text: "hello", want: "hello"},
		{name: "insert", text: "hello", edits: []textbuf.TextEdit{textbuf.Insert(pos(1, 6), " world")}, want: "hello world"},
		{name: "delete across lines", text: "a\nb\nc", edits: []textbuf.TextEdit{textbuf.Delete(pos(1, 2), pos(3, 1))}, want: "ac"},
		{
			name: "unsorted batch",
			text: "(a)(b)",
			edits: []textbuf.TextEdit{
				textbuf.Replace(pos(1, 5), pos(1, 6), "x"),
				textbuf.Replace(pos(1, 2), pos(1, 3), "y"),
			},
			want: "(y)(x)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := textbuf.New(tt.text)
			_, err := b.Apply(tt.edits)
			require.NoError(t, err)
			assert.Equal(t, tt.want, b.Text())
		})
	}
}

func TestApplyEventIsBottomToTop(t *testing.T) {
	t.Parallel()

	b := textbuf.New("one\ntwo\nthree")

	ev, err := b.Apply([]textbuf.TextEdit{
		textbuf.Insert(pos(1, 1), "["),
		textbuf.Insert(pos(3, 6), "]"),
	})
	require.NoError(t, err)

	require.Len(t, ev.Changes, 2)
	assert.Equal(t, 3, ev.Changes[0].Range.Start.Line)
	assert.Equal(t, 1, ev.Changes[1].Range.Start.Line)
	assert.Equal(t, 1, b.Version())
}

func TestApplyRejectsBadEdits(t *testing.T) {
	t.Parallel()

	b := textbuf.New("abc")

	_, err := b.Apply([]textbuf.TextEdit{textbuf.Delete(pos(1, 1), pos(2, 1))})

	var verr *textbuf.ValidationError
	require.True(t, errors.As(err, &verr))

	_, err = b.Apply([]textbuf.TextEdit{
		textbuf.Delete(pos(1, 1), pos(1, 3)),
		textbuf.Delete(pos(1, 2), pos(1, 4)),
	})

	var cerr *textbuf.ConflictError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "abc", b.Text())
	assert.Zero(t, b.Version())
}

func TestSetTextDrivesModel(t *testing.T) {
	t.Parallel()

	brackets, _ := tokenizer.Compile(catalog.Default().Pairs("go", nil), densekey.NewProvider())

	b := textbuf.New("func main() {\n\tx := f(1)\n}\n")
	m, err := document.Open(b, nil, brackets, document.Options{Classification: document.ClassificationComplete})
	require.NoError(t, err)

	updated := "func main() {\n\tx := f(g[1], 2)\n\ty := {}\n}\n"
	ev, err := b.SetText(updated)
	require.NoError(t, err)
	require.NotEmpty(t, ev.Changes)
	assert.Equal(t, updated, b.Text())

	require.NoError(t, m.HandleContentChanged(ev))

	scratch, err := parser.Parse(tokenizer.NewFast(updated, brackets), nil, nil)
	require.NoError(t, err)
	assert.True(t, ast.Equal(scratch, m.Tree()), "want:\n%s\ngot:\n%s", ast.Dump(scratch), ast.Dump(m.Tree()))

	ev, err = b.SetText(updated)
	require.NoError(t, err)
	assert.Empty(t, ev.Changes)
}

func TestSetTextPreservesBytes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		from string
		to   string
	}{
		{"multibyte", "h\u00e9llo (x)", "h\u00e9llo [x]"},
		{"invalid byte before edit", "a\xffb(c)", "a\xffb(cd)"},
		{"inserted invalid bytes", "abc", "a\xfe\xffc"},
		{"invalid bytes removed", "(\xff)\n{\xfe}\n", "()\n{}\n"},
		{"latin-1 lines", "caf\xe9 (\n[x]\n)\n", "caf\xe9 (\n[x, y]\n\xe0 )\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := textbuf.New(tt.from)

			ev, err := b.SetText(tt.to)
			require.NoError(t, err)
			assert.NotEmpty(t, ev.Changes)
			assert.Equal(t, tt.to, b.Text())
			assert.Empty(t, b.DiffEdits(tt.to))
		})
	}
}
