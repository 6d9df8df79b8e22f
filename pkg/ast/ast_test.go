package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gobrackets/pkg/ast"
	"github.com/yaklabco/gobrackets/pkg/densekey"
	"github.com/yaklabco/gobrackets/pkg/length"
)

var (
	parenKeys = densekey.Of(0)
	braceKeys = densekey.Of(1)
)

func openParen() *ast.Node  { return ast.NewBracket("(", ast.RoleOpening, parenKeys) }
func closeParen() *ast.Node { return ast.NewBracket(")", ast.RoleClosing, parenKeys) }
func text(n int) *ast.Node  { return ast.NewText(length.FromLineColumn(0, n)) }

// checkTree verifies the structural invariants of every list in the tree.
func checkTree(t *testing.T, n *ast.Node) {
	t.Helper()

	require.NoError(t, ast.Walk(n, func(node *ast.Node) error {
		if node.Kind() != ast.KindList && node.Kind() != ast.KindPair {
			return nil
		}

		sum := length.Zero
		for _, c := range node.Children() {
			sum = length.Add(sum, c.Length())
		}
		assert.Equal(t, node.Length(), sum, "length is sum of children")

		if node.Kind() == ast.KindList && node.ChildCount() > 0 {
			assert.GreaterOrEqual(t, node.ChildCount(), 2)
			assert.LessOrEqual(t, node.ChildCount(), 3)

			for _, c := range node.Children() {
				assert.Equal(t, node.Height()-1, c.Height(), "uniform child height")
			}
		}

		return nil
	}))
}

func TestNewPair(t *testing.T) {
	t.Parallel()

	content := text(3)
	pair := ast.NewPair(openParen(), content, closeParen())

	assert.Equal(t, ast.KindPair, pair.Kind())
	assert.Equal(t, length.FromLineColumn(0, 5), pair.Length())
	assert.Same(t, content, pair.Content())
	assert.Equal(t, "(", pair.Open().Text())
	assert.Equal(t, ")", pair.Close().Text())
	assert.True(t, pair.Unclosed().IsEmpty())
	assert.True(t, pair.Missing().IsEmpty())

	empty := ast.NewPair(openParen(), nil, closeParen())
	assert.Nil(t, empty.Content())
	assert.Equal(t, 2, empty.ChildCount())
}

func TestBracketSets(t *testing.T) {
	t.Parallel()

	assert.True(t, openParen().Unclosed().Equal(parenKeys))
	assert.True(t, openParen().Missing().IsEmpty())
	assert.True(t, closeParen().Missing().Equal(parenKeys))

	inner := ast.Concat([]*ast.Node{text(1), ast.NewBracket("}", ast.RoleClosing, braceKeys)})
	pair := ast.NewPair(openParen(), inner, closeParen())
	assert.True(t, pair.Missing().Equal(braceKeys), "pair propagates missing closers of its content")
}

func TestConcatKeepsTreeBalanced(t *testing.T) {
	t.Parallel()

	for n := 0; n <= 40; n++ {
		items := make([]*ast.Node, n)
		for i := range items {
			items[i] = text(1)
		}

		got := ast.Concat(items)
		if n == 0 {
			assert.Nil(t, got)
			continue
		}

		checkTree(t, got)
		assert.Equal(t, length.FromLineColumn(0, n), got.Length())
	}
}

func TestConcatMixedHeights(t *testing.T) {
	t.Parallel()

	var big []*ast.Node
	for range 27 {
		big = append(big, text(1))
	}

	tall := ast.Concat(big)
	require.Equal(t, 4, tall.Height())

	got := ast.Concat([]*ast.Node{text(2), tall, text(3), ast.EmptyList(), text(4)})
	checkTree(t, got)
	assert.Equal(t, length.FromLineColumn(0, 36), got.Length())

	left := ast.Concat([]*ast.Node{tall, text(5)})
	checkTree(t, left)
	assert.Equal(t, tall.Height(), left.Height())

	right := ast.Concat([]*ast.Node{text(5), tall})
	checkTree(t, right)
}

func TestConcatSharesUntouchedSubtrees(t *testing.T) {
	t.Parallel()

	var items []*ast.Node
	for range 9 {
		items = append(items, text(1))
	}

	tall := ast.Concat(items)
	grown := ast.Concat([]*ast.Node{tall, text(1)})

	assert.Same(t, tall.Child(0), grown.Child(0))
	assert.Equal(t, 9, tall.Length().Columns(), "original is not modified")
}

func TestEqualIgnoresGrouping(t *testing.T) {
	t.Parallel()

	a := ast.Concat([]*ast.Node{text(1), text(2), openParen(), text(1)})
	b := ast.Concat([]*ast.Node{text(3), ast.Concat([]*ast.Node{openParen(), text(1), ast.NewText(length.Zero)})})

	assert.True(t, ast.Equal(a, b))
	assert.Equal(t, ast.Dump(a), ast.Dump(b))

	c := ast.Concat([]*ast.Node{text(3), closeParen(), text(1)})
	assert.False(t, ast.Equal(a, c))
}

func TestCanBeReused(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name   string
		node   *ast.Node
		opened densekey.Set
		want   bool
	}

	tests := []testCase{
		{name: "text", node: text(2), want: true},
		{name: "empty text", node: ast.NewText(length.Zero), want: false},
		{name: "bracket leaf", node: openParen(), want: false},
		{name: "empty list", node: ast.EmptyList(), want: false},
		{name: "closed pair", node: ast.NewPair(openParen(), text(1), closeParen()), want: true},
		{name: "list with unclosed opener", node: ast.Concat([]*ast.Node{openParen(), text(1)}), want: false},
		{name: "missing closer not opened", node: ast.Concat([]*ast.Node{closeParen(), text(1)}), opened: braceKeys, want: true},
		{name: "missing closer now opened", node: ast.Concat([]*ast.Node{closeParen(), text(1)}), opened: parenKeys, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.node.CanBeReused(tt.opened))
		})
	}
}

func TestUnmatchedAndCount(t *testing.T) {
	t.Parallel()

	pair := ast.NewPair(openParen(), text(1), closeParen())
	root := ast.Concat([]*ast.Node{closeParen(), pair, openParen()})

	unmatched := ast.Unmatched(root)
	require.Len(t, unmatched, 2)
	assert.Equal(t, ast.RoleClosing, unmatched[0].Role())
	assert.Equal(t, ast.RoleOpening, unmatched[1].Role())
	assert.Equal(t, 1, ast.Count(root, ast.KindPair))
}
