// Package parser builds bracket-pair trees, reusing unchanged subtrees of a
// previous tree after edits.
package parser

import (
	"github.com/yaklabco/gobrackets/pkg/ast"
	"github.com/yaklabco/gobrackets/pkg/densekey"
	"github.com/yaklabco/gobrackets/pkg/length"
	"github.com/yaklabco/gobrackets/pkg/tokenizer"
)

// MaxNestingDepth bounds bracket nesting. Opening brackets nested deeper are
// treated as text.
const MaxNestingDepth = 300

// Stats describes the work done by one parse.
type Stats struct {
	// ReusedNodes counts subtrees taken over from the previous tree.
	ReusedNodes int

	// ReusedLength is the total length of the reused subtrees.
	ReusedLength length.Length

	// Tokens counts tokens read from the tokenizer.
	Tokens int
}

// Parse builds the tree for the document behind tok.
//
// edits describes how the document changed since previous, ordered
// bottom-to-top in previous-document coordinates. A nil previous tree
// forces a full parse. A previous tree with no edits is returned as is.
func Parse(tok tokenizer.Tokenizer, edits []TextEditInfo, previous *ast.Node) (*ast.Node, error) {
	root, _, err := ParseWithStats(tok, edits, previous)
	return root, err
}

// ParseWithStats is Parse that also reports reuse statistics.
func ParseWithStats(tok tokenizer.Tokenizer, edits []TextEditInfo, previous *ast.Node) (*ast.Node, Stats, error) {
	if previous != nil && len(edits) == 0 {
		return previous, Stats{ReusedNodes: 1, ReusedLength: previous.Length()}, nil
	}

	p := &parser{tok: tok}

	if previous != nil {
		if err := validateEdits(edits, previous.Length()); err != nil {
			return nil, Stats{}, err
		}

		p.reader = newNodeReader(previous)
		p.mapper = newPositionMapper(edits)
	}

	root := p.parseList(densekey.Set{}, 0)
	if root == nil {
		root = ast.EmptyList()
	}

	return root, p.stats, nil
}

type parser struct {
	tok    tokenizer.Tokenizer
	reader *nodeReader
	mapper *positionMapper
	stats  Stats
}

func (p *parser) parseList(opened densekey.Set, depth int) *ast.Node {
	var items []*ast.Node

	for {
		if cached := p.readFromCache(opened); cached != nil {
			items = append(items, cached)
			continue
		}

		next, ok := p.tok.Peek()
		if !ok {
			break
		}

		if next.Kind == tokenizer.KindClosing && next.Keys.Intersects(opened) {
			break
		}

		items = append(items, p.parseChild(opened, depth+1)...)
	}

	return ast.Concat(items)
}

// readFromCache returns the longest reusable node of the previous tree at
// the current position, or nil.
func (p *parser) readFromCache(opened densekey.Set) *ast.Node {
	if p.reader == nil {
		return nil
	}

	offset := p.tok.Offset()

	maxLength, bounded := p.mapper.distanceToNextChange(offset)
	if bounded && maxLength.IsZero() {
		return nil
	}

	node := p.reader.readLongestNodeAt(p.mapper.oldOffset(offset), func(n *ast.Node) bool {
		if bounded && n.Length() >= maxLength {
			return false
		}

		return n.CanBeReused(opened)
	})

	if node == nil {
		return nil
	}

	p.stats.ReusedNodes++
	p.stats.ReusedLength = length.Add(p.stats.ReusedLength, node.Length())
	p.tok.Skip(node.Length())

	return node
}

// parseChild consumes one item. An opening bracket with no partner yields
// its leaf followed by the content parsed after it.
func (p *parser) parseChild(opened densekey.Set, depth int) []*ast.Node {
	token, _ := p.tok.Read()
	p.stats.Tokens++

	switch token.Kind {
	case tokenizer.KindOpening:
		if depth > MaxNestingDepth {
			return []*ast.Node{ast.NewText(token.Length)}
		}

		content := p.parseList(opened.Union(token.Keys), depth)

		if next, ok := p.tok.Peek(); ok && next.Kind == tokenizer.KindClosing && next.Keys.Intersects(token.Keys) {
			p.tok.Read()
			p.stats.Tokens++

			return []*ast.Node{ast.NewPair(token.Node, content, next.Node)}
		}

		if content == nil {
			return []*ast.Node{token.Node}
		}

		return []*ast.Node{token.Node, content}
	default:
		return []*ast.Node{token.Node}
	}
}
