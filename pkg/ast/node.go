// Package ast defines the immutable bracket-pair tree.
//
// A tree is built from four kinds of node: Text runs, Bracket leaves, Pair
// nodes for matched brackets, and List nodes that group siblings into a
// balanced 2-3 tree. Nodes are never mutated after construction, so one
// subtree may be shared by several roots.
package ast

import (
	"github.com/yaklabco/gobrackets/pkg/densekey"
	"github.com/yaklabco/gobrackets/pkg/length"
)

// Kind classifies an AST node.
type Kind uint8

// Node kinds.
const (
	KindText Kind = iota
	KindBracket
	KindPair
	KindList
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "Text"
	case KindBracket:
		return "Bracket"
	case KindPair:
		return "Pair"
	case KindList:
		return "List"
	default:
		return "Unknown"
	}
}

// Role tells whether a bracket leaf opens or closes a pair.
type Role uint8

// Bracket roles.
const (
	RoleNone Role = iota
	RoleOpening
	RoleClosing
)

// String implements fmt.Stringer.
func (r Role) String() string {
	switch r {
	case RoleOpening:
		return "open"
	case RoleClosing:
		return "close"
	default:
		return "none"
	}
}

// Node is one immutable element of the tree.
type Node struct {
	kind     Kind
	role     Role
	height   int
	length   length.Length
	text     string
	keys     densekey.Set
	missing  densekey.Set
	unclosed densekey.Set
	children []*Node
}

// Kind returns the node kind.
func (n *Node) Kind() Kind { return n.kind }

// Length returns the length of the text covered by the node.
func (n *Node) Length() length.Length { return n.length }

// Role returns the bracket role. It is RoleNone for non-bracket nodes.
func (n *Node) Role() Role { return n.role }

// Text returns the bracket token text for bracket leaves.
func (n *Node) Text() string { return n.text }

// Keys returns the bracket identity keys.
//
// For an opening bracket this is the key of its pair; for a closing bracket
// it is the set of opening keys it may close. A Pair reports the keys of
// its opening bracket.
func (n *Node) Keys() densekey.Set { return n.keys }

// Missing returns the keys of closing brackets inside the node that found
// no opening partner.
func (n *Node) Missing() densekey.Set { return n.missing }

// Unclosed returns the keys of opening brackets inside the node that found
// no closing partner and are not enclosed by a pair.
func (n *Node) Unclosed() densekey.Set { return n.unclosed }

// Height returns the 2-3 tree height. Leaves, pairs and empty lists have
// height zero.
func (n *Node) Height() int { return n.height }

// ChildCount returns the number of children.
func (n *Node) ChildCount() int { return len(n.children) }

// Child returns the i-th child.
func (n *Node) Child(i int) *Node { return n.children[i] }

// Children returns the children. The slice must not be modified.
func (n *Node) Children() []*Node { return n.children }

// IsLeaf reports whether the node is a Text or Bracket leaf.
func (n *Node) IsLeaf() bool {
	return n.kind == KindText || n.kind == KindBracket
}

// Open returns the opening bracket of a pair.
func (n *Node) Open() *Node {
	if n.kind != KindPair {
		return nil
	}

	return n.children[0]
}

// Close returns the closing bracket of a pair.
func (n *Node) Close() *Node {
	if n.kind != KindPair {
		return nil
	}

	return n.children[len(n.children)-1]
}

// Content returns the content between the brackets of a pair, or nil when
// the brackets are adjacent.
func (n *Node) Content() *Node {
	if n.kind != KindPair || len(n.children) != 3 {
		return nil
	}

	return n.children[1]
}

// CanBeReused reports whether the node may be carried over unchanged into a
// tree whose enclosing opened brackets are opened.
//
// Bracket leaves are never reused so that re-pairing is always decided by
// fresh tokens. A node with unclosed openers may gain a partner from later
// text and a node with unmatched closers may now close an enclosing opener.
func (n *Node) CanBeReused(opened densekey.Set) bool {
	if n.length.IsZero() || n.kind == KindBracket {
		return false
	}

	if n.kind == KindList && len(n.children) == 0 {
		return false
	}

	if !n.unclosed.IsEmpty() {
		return false
	}

	return !n.missing.Intersects(opened)
}
