// Package tsnode adapts github.com/tree-sitter/go-tree-sitter's Node and
// Tree types to the pkg/synt.Node and pkg/synt.Tree interfaces the core
// depends on. It and package parser are the only packages in the
// module that import the tree-sitter binding directly; everything else
// (tree helpers, references, the document model, the resolver) sees
// only pkg/synt.
package tsnode

import (
	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/OpenModelica/modelica-language-server/pkg/synt"
)

// Node wraps a *ts.Node so it satisfies synt.Node.
type Node struct {
	n      *ts.Node
	source []byte
}

// Wrap adapts a tree-sitter node. Returns a nil-interface Node when n
// is nil, matching the "nil at the root" contract of synt.Node.Parent.
func Wrap(n *ts.Node, source []byte) synt.Node {
	if n == nil {
		return nil
	}
	return Node{n: n, source: source}
}

func (w Node) Kind() string { return w.n.GrammarName() }

func (w Node) Text() []byte { return w.n.Utf8Text(w.source) }

func (w Node) StartPosition() synt.Point {
	p := w.n.StartPosition()
	return synt.Point{Row: uint32(p.Row), Column: uint32(p.Column)}
}

func (w Node) EndPosition() synt.Point {
	p := w.n.EndPosition()
	return synt.Point{Row: uint32(p.Row), Column: uint32(p.Column)}
}

func (w Node) StartByte() uint32 { return uint32(w.n.StartByte()) }
func (w Node) EndByte() uint32   { return uint32(w.n.EndByte()) }

func (w Node) ChildCount() int { return int(w.n.ChildCount()) }

func (w Node) Child(i int) synt.Node {
	return Wrap(w.n.Child(uint(i)), w.source)
}

func (w Node) NamedChildCount() int { return int(w.n.NamedChildCount()) }

func (w Node) NamedChild(i int) synt.Node {
	return Wrap(w.n.NamedChild(uint(i)), w.source)
}

func (w Node) ChildByFieldName(name string) synt.Node {
	return Wrap(w.n.ChildByFieldName(name), w.source)
}

func (w Node) Parent() synt.Node {
	return Wrap(w.n.Parent(), w.source)
}

func (w Node) IsNamed() bool { return w.n.IsNamed() }

func (w Node) Equal(other synt.Node) bool {
	o, ok := other.(Node)
	if !ok {
		return false
	}
	return w.n.Equal(o.n)
}

// Tree wraps a *ts.Tree so it satisfies synt.Tree.
type Tree struct {
	t      *ts.Tree
	source []byte
}

// WrapTree adapts a tree-sitter tree over the source it was parsed from.
func WrapTree(t *ts.Tree, source []byte) synt.Tree {
	if t == nil {
		return nil
	}
	return &Tree{t: t, source: source}
}

func (t *Tree) RootNode() synt.Node {
	root := t.t.RootNode()
	return Wrap(&root, t.source)
}

func (t *Tree) HasError() bool {
	root := t.t.RootNode()
	return root.HasError()
}

func (t *Tree) Close() {
	if t.t != nil {
		t.t.Close()
	}
}

// Underlying returns the wrapped *ts.Tree, for callers (package parser)
// that need to hand it back into the tree-sitter API as an old-tree hint
// during incremental reparse.
func (t *Tree) Underlying() *ts.Tree { return t.t }

// Edit translates a synt.Edit into the tree-sitter InputEdit and applies
// it to the wrapped tree in place, rebasing node ranges ahead of reparse.
func (t *Tree) Edit(e synt.Edit) {
	t.t.Edit(ts.InputEdit{
		StartByte:      e.StartByte,
		OldEndByte:     e.OldEndByte,
		NewEndByte:     e.NewEndByte,
		StartPosition:  ts.Point{Row: e.StartPosition.Row, Column: e.StartPosition.Column},
		OldEndPosition: ts.Point{Row: e.OldEndPosition.Row, Column: e.OldEndPosition.Column},
		NewEndPosition: ts.Point{Row: e.NewEndPosition.Row, Column: e.NewEndPosition.Column},
	})
}
