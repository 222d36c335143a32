package treeutil

import "github.com/OpenModelica/modelica-language-server/pkg/synt"

// FindFirst performs a pre-order depth-first search from root and
// returns the first node for which predicate holds, or nil.
func FindFirst(root synt.Node, predicate func(synt.Node) bool) synt.Node {
	if root == nil {
		return nil
	}
	if predicate(root) {
		return root
	}
	for i := 0; i < root.ChildCount(); i++ {
		if found := FindFirst(root.Child(i), predicate); found != nil {
			return found
		}
	}
	return nil
}

// FindParent walks parent pointers upward from node (exclusive) until
// predicate holds or the root is passed, returning the match or nil.
func FindParent(node synt.Node, predicate func(synt.Node) bool) synt.Node {
	if node == nil {
		return nil
	}
	for p := node.Parent(); p != nil; p = p.Parent() {
		if predicate(p) {
			return p
		}
	}
	return nil
}

// ForEach walks root pre-order, calling visit on every node. If visit
// returns false for a node, that node's subtree is pruned.
func ForEach(root synt.Node, visit func(synt.Node) bool) {
	if root == nil {
		return
	}
	if !visit(root) {
		return
	}
	for i := 0; i < root.ChildCount(); i++ {
		ForEach(root.Child(i), visit)
	}
}

// NodeAtOffset returns the innermost (deepest) node whose byte range
// contains offset (end-inclusive, so a cursor right after the last
// character of a token still resolves inside it), or nil if offset
// falls outside root's range entirely.
func NodeAtOffset(root synt.Node, offset uint32) synt.Node {
	if root == nil || offset < root.StartByte() || offset > root.EndByte() {
		return nil
	}

	for i := 0; i < root.ChildCount(); i++ {
		child := root.Child(i)
		if child == nil {
			continue
		}
		if offset >= child.StartByte() && offset <= child.EndByte() {
			if deeper := NodeAtOffset(child, offset); deeper != nil {
				return deeper
			}
		}
	}
	return root
}
