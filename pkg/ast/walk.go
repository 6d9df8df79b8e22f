package ast

// WalkFunc is the function signature for Walk callbacks.
// Return a non-nil error to stop the walk.
type WalkFunc func(n *Node) error

// Walk performs a pre-order traversal of the tree starting at root.
// If walkFunc returns a non-nil error, the walk stops and returns it.
func Walk(root *Node, walkFunc WalkFunc) error {
	if root == nil {
		return nil
	}

	if err := walkFunc(root); err != nil {
		return err
	}

	for _, child := range root.children {
		if err := Walk(child, walkFunc); err != nil {
			return err
		}
	}

	return nil
}

// WalkWithContext performs a traversal with enter and leave callbacks.
// Either callback may be nil.
func WalkWithContext(root *Node, enter, leave WalkFunc) error {
	if root == nil {
		return nil
	}

	if enter != nil {
		if err := enter(root); err != nil {
			return err
		}
	}

	for _, child := range root.children {
		if err := WalkWithContext(child, enter, leave); err != nil {
			return err
		}
	}

	if leave != nil {
		if err := leave(root); err != nil {
			return err
		}
	}

	return nil
}

// FindAll returns all nodes matching the predicate in document order.
func FindAll(root *Node, predicate func(n *Node) bool) []*Node {
	var result []*Node

	//nolint:errcheck // the callback never fails
	Walk(root, func(node *Node) error {
		if predicate(node) {
			result = append(result, node)
		}
		return nil
	})

	return result
}

// Count returns the number of nodes of the given kind.
func Count(root *Node, kind Kind) int {
	return len(FindAll(root, func(n *Node) bool { return n.kind == kind }))
}

// Unmatched returns the bracket leaves that are not part of a pair.
func Unmatched(root *Node) []*Node {
	var result []*Node

	var visit func(n *Node)
	visit = func(n *Node) {
		switch n.kind {
		case KindBracket:
			result = append(result, n)
		case KindPair:
			if c := n.Content(); c != nil {
				visit(c)
			}
		case KindList:
			for _, c := range n.children {
				visit(c)
			}
		case KindText:
		}
	}

	if root != nil {
		visit(root)
	}

	return result
}
