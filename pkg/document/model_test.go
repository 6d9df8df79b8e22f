package document_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gobrackets/pkg/ast"
	"github.com/yaklabco/gobrackets/pkg/catalog"
	"github.com/yaklabco/gobrackets/pkg/densekey"
	"github.com/yaklabco/gobrackets/pkg/document"
	"github.com/yaklabco/gobrackets/pkg/length"
	"github.com/yaklabco/gobrackets/pkg/parser"
	"github.com/yaklabco/gobrackets/pkg/tokenizer"
)

type source struct {
	text string
}

func (s *source) Text() string      { return s.text }
func (s *source) LineCount() int    { return len(strings.Split(s.text, "\n")) }
func (s *source) Line(i int) string { return strings.Split(s.text, "\n")[i] }

// stringClassifier treats everything between double quotes as non-code once
// ready is set.
type stringClassifier struct {
	src   *source
	ready bool
}

func (c *stringClassifier) IsCode(line, column int) bool {
	if !c.ready {
		return true
	}

	text := c.src.Line(line)
	inString := false

	for i := range column {
		if text[i] == '"' {
			inString = !inString
		}
	}

	return !inString
}

func goBrackets(t *testing.T) *tokenizer.Brackets {
	t.Helper()

	b, warnings := tokenizer.Compile(catalog.Default().Pairs("go", nil), densekey.NewProvider())
	require.Empty(t, warnings)

	return b
}

func whole(text string) length.Range {
	return length.ToRange(length.Zero, length.Of(text))
}

func TestConvergenceDropsBracketsInStrings(t *testing.T) {
	t.Parallel()

	src := &source{text: "x := \"(\"\nf()\n"}
	cls := &stringClassifier{src: src}

	m, err := document.Open(src, cls, goBrackets(t), document.Options{})
	require.NoError(t, err)

	notifications := 0
	m.OnDidChange(func() { notifications++ })

	assert.Equal(t, document.StateInitial, m.State())
	assert.Same(t, m.FastTree(), m.TokenAwareTree(), "unclassified document shares one tree")

	before := m.BracketsInRange(whole(src.text))
	require.Len(t, before, 3)
	assert.True(t, before[0].Unmatched)
	assert.Equal(t, length.FromLineColumn(0, 6), before[0].Start)

	cls.ready = true
	require.NoError(t, m.HandleClassificationChanged(document.ClassificationEvent{
		Ranges: []document.LineRange{{From: 1, To: 1}},
	}))

	assert.Equal(t, document.StateInitial, m.State())
	assert.Zero(t, notifications)
	assert.Len(t, m.BracketsInRange(whole(src.text)), 3, "fast tree still served")

	require.NoError(t, m.HandleClassificationChanged(document.ClassificationEvent{Complete: true}))

	assert.Equal(t, document.StateConverged, m.State())
	assert.Nil(t, m.FastTree())
	assert.Equal(t, 1, notifications)

	after := m.BracketsInRange(whole(src.text))
	require.Len(t, after, 2)
	assert.False(t, after[0].Unmatched)
	assert.Equal(t, 1, after[0].Start.Lines())

	require.NoError(t, m.HandleClassificationChanged(document.ClassificationEvent{Complete: true}))
	assert.Equal(t, 1, notifications, "the transition happens once")
}

func TestContentChangeUpdatesBothLineages(t *testing.T) {
	t.Parallel()

	b := goBrackets(t)
	src := &source{text: "a(b)\nc[d]\n"}
	cls := &stringClassifier{src: src, ready: true}

	m, err := document.Open(src, cls, b, document.Options{Classification: document.ClassificationPartial})
	require.NoError(t, err)

	notifications := 0
	unsubscribe := m.OnDidChange(func() { notifications++ })

	// Replace "d" on line 2 with "{e}".
	src.text = "a(b)\nc[{e}]\n"
	err = m.HandleContentChanged(document.ChangeEvent{Changes: []document.ContentChange{{
		Range: length.Range{Start: length.Position{Line: 2, Column: 3}, End: length.Position{Line: 2, Column: 4}},
		Text:  "{e}",
	}}})
	require.NoError(t, err)
	assert.Equal(t, 1, notifications)

	scratch, err := parser.Parse(tokenizer.NewFast(src.text, b), nil, nil)
	require.NoError(t, err)

	assert.True(t, ast.Equal(scratch, m.FastTree()))
	assert.True(t, ast.Equal(scratch, m.TokenAwareTree()))
	assert.Positive(t, m.LastStats().ReusedNodes)

	unsubscribe()
	require.NoError(t, m.HandleContentChanged(document.ChangeEvent{}))
	assert.Equal(t, 1, notifications)
}

func TestOpenWithCompleteClassification(t *testing.T) {
	t.Parallel()

	src := &source{text: `s := "}"`}
	cls := &stringClassifier{src: src, ready: true}

	m, err := document.Open(src, cls, goBrackets(t), document.Options{Classification: document.ClassificationComplete})
	require.NoError(t, err)

	assert.Equal(t, document.StateConverged, m.State())
	assert.Empty(t, m.BracketsInRange(whole(src.text)))
}

func TestInvalidEventsKeepTrees(t *testing.T) {
	t.Parallel()

	src := &source{text: "(a)"}

	m, err := document.Open(src, nil, goBrackets(t), document.Options{})
	require.NoError(t, err)

	tree := m.Tree()

	err = m.HandleContentChanged(document.ChangeEvent{Changes: []document.ContentChange{{
		Range: length.Range{Start: length.Position{Line: 1, Column: 3}, End: length.Position{Line: 1, Column: 1}},
	}}})
	require.ErrorIs(t, err, document.ErrInvalidRange)

	err = m.HandleContentChanged(document.ChangeEvent{Changes: []document.ContentChange{{
		Range: length.Range{Start: length.Position{Line: 1, Column: 1}, End: length.Position{Line: 9, Column: 1}},
	}}})
	require.ErrorIs(t, err, parser.ErrEditOutOfBounds)

	err = m.HandleClassificationChanged(document.ClassificationEvent{Ranges: []document.LineRange{{From: 3, To: 2}}})
	require.ErrorIs(t, err, document.ErrInvalidLineRange)

	assert.Same(t, tree, m.Tree())
}

func TestClassificationRangesBeyondDocument(t *testing.T) {
	t.Parallel()

	src := &source{text: "(\n)"}

	m, err := document.Open(src, nil, goBrackets(t), document.Options{Classification: document.ClassificationPartial})
	require.NoError(t, err)

	require.NoError(t, m.HandleClassificationChanged(document.ClassificationEvent{
		Ranges:   []document.LineRange{{From: 2, To: 40}, {From: 1, To: 1}, {From: 50, To: 60}},
		Complete: true,
	}))

	infos := m.BracketsInRange(whole(src.text))
	require.Len(t, infos, 2)
	assert.False(t, infos[0].Unmatched)
}
