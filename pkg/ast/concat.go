package ast

// Concat joins items, in order, into a single balanced tree.
//
// Items may have different heights. Runs of equal height are first packed
// into 2-3 lists, then the resulting trees are merged pairwise, always
// merging the two neighbours closest in height so the result stays
// shallow. Empty lists are dropped. Concat returns nil for no items.
func Concat(items []*Node) *Node {
	items = dropEmpty(items)

	switch len(items) {
	case 0:
		return nil
	case 1:
		return items[0]
	}

	i := 0
	next := func() *Node {
		if i >= len(items) {
			return nil
		}

		start := i
		height := items[start].height
		i++

		for i < len(items) && items[i].height == height {
			i++
		}

		if i-start >= 2 {
			return concatSameHeight(items[start:i])
		}

		return items[start]
	}

	first := next()
	second := next()

	if second == nil {
		return first
	}

	for item := next(); item != nil; item = next() {
		if heightDiff(first, second) <= heightDiff(second, item) {
			first = concatPair(first, second)
			second = item
		} else {
			second = concatPair(second, item)
		}
	}

	return concatPair(first, second)
}

func dropEmpty(items []*Node) []*Node {
	for _, it := range items {
		if it == nil || (it.kind == KindList && len(it.children) == 0) {
			out := make([]*Node, 0, len(items))

			for _, keep := range items {
				if keep != nil && !(keep.kind == KindList && len(keep.children) == 0) {
					out = append(out, keep)
				}
			}

			return out
		}
	}

	return items
}

// concatSameHeight packs nodes of identical height bottom-up into 2-3 lists.
func concatSameHeight(items []*Node) *Node {
	level := make([]*Node, len(items))
	copy(level, items)

	for len(level) > 3 {
		half := len(level) / 2
		packed := make([]*Node, half)

		for k := range half {
			j := k * 2
			if j+3 == len(level) {
				packed[k] = newList(level[j], level[j+1], level[j+2])
			} else {
				packed[k] = newList(level[j], level[j+1])
			}
		}

		level = packed
	}

	return newList(level...)
}

func heightDiff(a, b *Node) int {
	if a.height > b.height {
		return a.height - b.height
	}

	return b.height - a.height
}

func concatPair(a, b *Node) *Node {
	switch {
	case a.height == b.height:
		return newList(a, b)
	case a.height > b.height:
		return appendNode(a, b)
	default:
		return prependNode(b, a)
	}
}

// appendNode adds node to the right edge of the taller list, copying only
// the nodes along that edge.
func appendNode(list, node *Node) *Node {
	updated, overflow := appendRec(list, node)
	if overflow == nil {
		return updated
	}

	return newList(updated, overflow)
}

func appendRec(list, node *Node) (*Node, *Node) {
	children := list.children
	last := len(children) - 1

	carry := node
	if children[last].height != node.height {
		var updated *Node
		updated, carry = appendRec(children[last], node)

		replaced := make([]*Node, len(children))
		copy(replaced, children)
		replaced[last] = updated
		children = replaced
	}

	if carry == nil {
		return newList(children...), nil
	}

	if len(children) < 3 {
		grown := make([]*Node, 0, len(children)+1)
		grown = append(grown, children...)

		return newList(append(grown, carry)...), nil
	}

	return newList(children[0], children[1]), newList(children[2], carry)
}

// prependNode is the mirror image of appendNode on the left edge.
func prependNode(list, node *Node) *Node {
	updated, overflow := prependRec(list, node)
	if overflow == nil {
		return updated
	}

	return newList(overflow, updated)
}

func prependRec(list, node *Node) (*Node, *Node) {
	children := list.children

	carry := node
	if children[0].height != node.height {
		var updated *Node
		updated, carry = prependRec(children[0], node)

		replaced := make([]*Node, len(children))
		copy(replaced, children)
		replaced[0] = updated
		children = replaced
	}

	if carry == nil {
		return newList(children...), nil
	}

	if len(children) < 3 {
		grown := make([]*Node, 0, len(children)+1)
		grown = append(grown, carry)

		return newList(append(grown, children...)...), nil
	}

	return newList(children[1], children[2]), newList(carry, children[0])
}
