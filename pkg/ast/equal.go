package ast

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gobrackets/pkg/length"
)

// flat is the canonical form of a subtree: lists are dissolved, adjacent
// text runs are merged and empty text is dropped.
type flat struct {
	node     *Node
	kind     Kind
	length   length.Length
	children []flat
}

func normalize(n *Node) []flat {
	var out []flat
	return appendNormalized(out, n)
}

func appendNormalized(out []flat, n *Node) []flat {
	if n == nil {
		return out
	}

	switch n.kind {
	case KindText:
		if n.length.IsZero() {
			return out
		}

		if last := len(out) - 1; last >= 0 && out[last].kind == KindText {
			out[last].length = length.Add(out[last].length, n.length)
			return out
		}

		return append(out, flat{kind: KindText, length: n.length})
	case KindBracket:
		return append(out, flat{node: n, kind: KindBracket, length: n.length})
	case KindPair:
		var inner []flat
		for _, c := range n.children {
			inner = appendNormalized(inner, c)
		}

		return append(out, flat{node: n, kind: KindPair, length: n.length, children: inner})
	case KindList:
		for _, c := range n.children {
			out = appendNormalized(out, c)
		}
	}

	return out
}

// Equal reports whether a and b describe the same bracket structure.
//
// List grouping, the way text is split into runs and empty text are
// ignored. Brackets compare by text, role and keys.
func Equal(a, b *Node) bool {
	return equalFlat(normalize(a), normalize(b))
}

func equalFlat(a, b []flat) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		x, y := a[i], b[i]
		if x.kind != y.kind || x.length != y.length {
			return false
		}

		if x.kind == KindBracket {
			if x.node.text != y.node.text || x.node.role != y.node.role || !x.node.keys.Equal(y.node.keys) {
				return false
			}
		}

		if !equalFlat(x.children, y.children) {
			return false
		}
	}

	return true
}

// Dump renders the canonical form of the tree, one node per line.
// Two trees are Equal exactly when their dumps match.
func Dump(n *Node) string {
	var sb strings.Builder
	dumpFlat(&sb, normalize(n), 0)

	return sb.String()
}

func dumpFlat(sb *strings.Builder, items []flat, depth int) {
	indent := strings.Repeat("  ", depth)

	for _, it := range items {
		switch it.kind {
		case KindText:
			fmt.Fprintf(sb, "%sText %s\n", indent, it.length)
		case KindBracket:
			fmt.Fprintf(sb, "%sBracket %q %s %s\n", indent, it.node.text, it.node.role, it.node.keys)
		case KindPair:
			fmt.Fprintf(sb, "%sPair %s\n", indent, it.length)
			dumpFlat(sb, it.children, depth+1)
		case KindList:
		}
	}
}

// DumpRaw renders the tree as stored, including list grouping and heights.
func DumpRaw(n *Node) string {
	var sb strings.Builder

	depth := 0
	//nolint:errcheck // the callbacks never fail
	WalkWithContext(n, func(node *Node) error {
		indent := strings.Repeat("  ", depth)
		depth++

		switch node.kind {
		case KindBracket:
			fmt.Fprintf(&sb, "%sBracket %q %s\n", indent, node.text, node.role)
		case KindList:
			fmt.Fprintf(&sb, "%sList h=%d %s\n", indent, node.height, node.length)
		case KindText, KindPair:
			fmt.Fprintf(&sb, "%s%s %s\n", indent, node.kind, node.length)
		}

		return nil
	}, func(*Node) error {
		depth--
		return nil
	})

	return sb.String()
}
