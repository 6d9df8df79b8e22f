package ast

import (
	"github.com/yaklabco/gobrackets/pkg/densekey"
	"github.com/yaklabco/gobrackets/pkg/length"
)

var emptyList = &Node{kind: KindList}

// NewText returns a text leaf of the given length.
func NewText(l length.Length) *Node {
	return &Node{kind: KindText, length: l}
}

// NewBracket returns a bracket leaf for the token text.
//
// As a standalone leaf an opening bracket is unclosed and a closing bracket
// is missing its opener; both sets are masked once the leaf becomes part of
// a pair.
func NewBracket(text string, role Role, keys densekey.Set) *Node {
	n := &Node{
		kind:   KindBracket,
		role:   role,
		length: length.Of(text),
		text:   text,
		keys:   keys,
	}

	switch role {
	case RoleOpening:
		n.unclosed = keys
	case RoleClosing:
		n.missing = keys
	case RoleNone:
	}

	return n
}

// NewPair returns a matched pair. content may be nil.
func NewPair(open, content, closing *Node) *Node {
	children := []*Node{open, closing}
	l := length.Add(open.length, closing.length)

	var missing densekey.Set

	if content != nil && !(content.kind == KindList && len(content.children) == 0) {
		children = []*Node{open, content, closing}
		l = length.Add(length.Add(open.length, content.length), closing.length)
		missing = content.missing
	}

	return &Node{
		kind:     KindPair,
		length:   l,
		keys:     open.keys,
		missing:  missing,
		children: children,
	}
}

// EmptyList returns the empty list, the root of an empty document.
func EmptyList() *Node {
	return emptyList
}

// newList builds a list from children of the same height.
func newList(children ...*Node) *Node {
	n := &Node{kind: KindList, children: children}
	if len(children) == 0 {
		return n
	}

	n.height = children[0].height + 1
	for _, c := range children {
		n.length = length.Add(n.length, c.length)
		n.missing = n.missing.Union(c.missing)
		n.unclosed = n.unclosed.Union(c.unclosed)
	}

	return n
}
