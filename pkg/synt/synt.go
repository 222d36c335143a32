// Package synt defines the syntax-node abstraction the rest of the core
// depends on. The concrete parser is an external collaborator: the core
// only ever touches a node's kind, its text slice, its start/end
// positions and byte offsets, its children (all and named), field-name
// lookup, and its parent. Nothing in this package allocates or owns a
// tree; implementations are thin views over whatever the embedding
// parser produced.
package synt

// Point is a (row, column) position, both 0-based. Column is counted
// in bytes, matching tree-sitter's convention.
type Point struct {
	Row    uint32
	Column uint32
}

// Node is the opaque syntax-node handle consumed by tree helpers, the
// document model and the resolver. It is satisfied by the
// tree-sitter-backed adapter in package tsnode for production use, and
// by hand-built fakes in tests (see package synttest) so the core can
// be exercised without any real grammar.
//
// A Node is valid only as long as the Tree that produced it is valid;
// callers must not retain a Node across an edit. Syntax nodes are
// ephemeral.
type Node interface {
	// Kind is the grammar's string tag for this node, e.g.
	// "class_definition" or "IDENT".
	Kind() string

	// Text is the verbatim source slice this node spans.
	Text() []byte

	StartPosition() Point
	EndPosition() Point

	// StartByte and EndByte are 0-based byte offsets into the buffer;
	// EndByte is exclusive.
	StartByte() uint32
	EndByte() uint32

	ChildCount() int
	Child(i int) Node

	NamedChildCount() int
	NamedChild(i int) Node

	// ChildByFieldName returns the child stored under the given field
	// name, or nil if the node has no such field.
	ChildByFieldName(name string) Node

	// Parent returns the enclosing node, or nil at the root.
	Parent() Node

	// IsNamed reports whether this node corresponds to a named rule in
	// the grammar (as opposed to an anonymous token like "." or ";").
	IsNamed() bool

	// Equal reports whether two handles denote the same node in the
	// same tree snapshot. Used by reference/resolved-reference equality
	// checks.
	Equal(other Node) bool
}

// Tree is a parsed syntax tree bound to one text-buffer snapshot.
type Tree interface {
	RootNode() Node
	// HasError reports whether the parse produced any error nodes.
	HasError() bool
	// Close releases resources held by the underlying parser binding.
	// Safe to call on a nil-backed Tree.
	Close()
}

// Parser is the narrow interface the document model depends on for
// parsing and incremental reparse. The concrete implementation (package
// parser) wraps whatever tree-sitter grammar binding the embedding
// application supplies; tests substitute a stub that emits pre-built
// trees instead of driving a real grammar.
type Parser interface {
	// Parse parses source from scratch.
	Parse(source []byte) (Tree, error)

	// ParseIncremental rebases oldTree by edit, then reparses, pulling
	// text from source via the parser's byte-offset read callback.
	ParseIncremental(source []byte, oldTree Tree, edit Edit) (Tree, error)

	Close()
}

// Edit describes a single text replacement, expressed in both byte
// offsets and row/column positions, as required by the incremental
// reparse API of most tree-sitter bindings.
type Edit struct {
	StartByte  uint32
	OldEndByte uint32
	NewEndByte uint32

	StartPosition  Point
	OldEndPosition Point
	NewEndPosition Point
}
