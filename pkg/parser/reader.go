package parser

import (
	"github.com/yaklabco/gobrackets/pkg/ast"
	"github.com/yaklabco/gobrackets/pkg/length"
)

// nodeReader walks a previous tree in document order and hands out the
// longest node starting at a given offset that satisfies a predicate.
// Offsets passed to readLongestNodeAt must not decrease.
type nodeReader struct {
	nodes   []*ast.Node
	offsets []length.Length
	idxs    []int
	last    length.Length
}

func newNodeReader(root *ast.Node) *nodeReader {
	return &nodeReader{
		nodes:   []*ast.Node{root},
		offsets: []length.Length{length.Zero},
	}
}

func (r *nodeReader) readLongestNodeAt(offset length.Length, pred func(*ast.Node) bool) *ast.Node {
	if offset < r.last {
		return nil
	}

	r.last = offset

	for len(r.nodes) > 0 {
		cur := r.nodes[len(r.nodes)-1]
		curOffset := r.offsets[len(r.offsets)-1]

		switch {
		case offset < curOffset:
			return nil
		case curOffset < offset:
			if length.Add(curOffset, cur.Length()) <= offset || cur.ChildCount() == 0 {
				r.nextAfterCurrent()
				continue
			}

			r.descend(cur, curOffset)
		default:
			if pred(cur) {
				r.nextAfterCurrent()
				return cur
			}

			if cur.ChildCount() == 0 {
				r.nextAfterCurrent()
				return nil
			}

			r.descend(cur, curOffset)
		}
	}

	return nil
}

func (r *nodeReader) descend(node *ast.Node, offset length.Length) {
	r.nodes = append(r.nodes, node.Child(0))
	r.offsets = append(r.offsets, offset)
	r.idxs = append(r.idxs, 0)
}

// nextAfterCurrent moves to the longest node that follows the current one.
func (r *nodeReader) nextAfterCurrent() {
	for {
		top := len(r.nodes) - 1
		curNode, curOffset := r.nodes[top], r.offsets[top]

		r.nodes = r.nodes[:top]
		r.offsets = r.offsets[:top]

		if len(r.idxs) == 0 {
			return
		}

		parent := r.nodes[len(r.nodes)-1]
		nextIdx := r.idxs[len(r.idxs)-1] + 1

		if nextIdx < parent.ChildCount() {
			r.nodes = append(r.nodes, parent.Child(nextIdx))
			r.offsets = append(r.offsets, length.Add(curOffset, curNode.Length()))
			r.idxs[len(r.idxs)-1] = nextIdx

			return
		}

		r.idxs = r.idxs[:len(r.idxs)-1]
	}
}
