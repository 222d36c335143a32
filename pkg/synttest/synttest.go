// Package synttest provides hand-built synt.Node/synt.Tree/synt.Parser
// fakes so the core can be tested without any real tree-sitter grammar,
// by emitting pre-built trees instead of driving a real parse.
package synttest

import "github.com/OpenModelica/modelica-language-server/pkg/synt"

// Node is a hand-built synt.Node.
type Node struct {
	kind  string
	text  []byte
	start synt.Point
	end   synt.Point
	sByte uint32
	eByte uint32
	named bool

	children      []*Node
	namedChildren []*Node
	fields        map[string]*Node
	parent        *Node
}

// New creates a named node of kind spanning [startByte,endByte), with
// the given 0-based start/end positions and verbatim text.
func New(kind, text string, startByte, endByte uint32, start, end synt.Point) *Node {
	return &Node{
		kind:   kind,
		text:   []byte(text),
		sByte:  startByte,
		eByte:  endByte,
		start:  start,
		end:    end,
		named:  true,
		fields: make(map[string]*Node),
	}
}

// Anonymous marks n as an unnamed token (punctuation, keywords).
func (n *Node) Anonymous() *Node {
	n.named = false
	return n
}

// AddChild appends c as a child of n, updating c's parent pointer and
// n's named-children list if c is named.
func (n *Node) AddChild(c *Node) *Node {
	c.parent = n
	n.children = append(n.children, c)
	if c.named {
		n.namedChildren = append(n.namedChildren, c)
	}
	return n
}

// Field attaches c under the given field name and also appends it as a
// regular child, matching tree-sitter's field-as-labeled-child model.
func (n *Node) Field(name string, c *Node) *Node {
	n.fields[name] = c
	n.AddChild(c)
	return n
}

func (n *Node) Kind() string               { return n.kind }
func (n *Node) Text() []byte                { return n.text }
func (n *Node) StartPosition() synt.Point   { return n.start }
func (n *Node) EndPosition() synt.Point     { return n.end }
func (n *Node) StartByte() uint32           { return n.sByte }
func (n *Node) EndByte() uint32             { return n.eByte }
func (n *Node) ChildCount() int             { return len(n.children) }
func (n *Node) NamedChildCount() int        { return len(n.namedChildren) }
func (n *Node) IsNamed() bool               { return n.named }

func (n *Node) Child(i int) synt.Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

func (n *Node) NamedChild(i int) synt.Node {
	if i < 0 || i >= len(n.namedChildren) {
		return nil
	}
	return n.namedChildren[i]
}

func (n *Node) ChildByFieldName(name string) synt.Node {
	c, ok := n.fields[name]
	if !ok {
		return nil
	}
	return c
}

func (n *Node) Parent() synt.Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *Node) Equal(other synt.Node) bool {
	o, ok := other.(*Node)
	return ok && o == n
}

// Tree is a hand-built synt.Tree.
type Tree struct {
	root     *Node
	hasError bool
}

// NewTree wraps root as a tree. Pass hasError=true to simulate a parse
// with syntax errors.
func NewTree(root *Node, hasError bool) *Tree {
	return &Tree{root: root, hasError: hasError}
}

func (t *Tree) RootNode() synt.Node { return t.root }
func (t *Tree) HasError() bool      { return t.hasError }
func (t *Tree) Close()              {}

// Parser is a stub synt.Parser that returns a fixed tree regardless of
// input, or calls a builder function supplied at construction.
type Parser struct {
	Build func(source []byte) (*Tree, error)
}

// Parse implements synt.Parser.
func (p *Parser) Parse(source []byte) (synt.Tree, error) {
	tree, err := p.Build(source)
	if err != nil {
		return nil, err
	}
	return tree, nil
}

// ParseIncremental ignores oldTree/edit and simply rebuilds from source,
// which is sufficient for a stub: production incremental behavior is
// exercised against the real tree-sitter-backed parser in package
// parser, not against this fake.
func (p *Parser) ParseIncremental(source []byte, _ synt.Tree, _ synt.Edit) (synt.Tree, error) {
	return p.Parse(source)
}

func (p *Parser) Close() {}
