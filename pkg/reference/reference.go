// Package reference defines the three value types that carry a
// symbol path through the resolver: unresolved absolute references,
// unresolved relative references, and resolved references. All three
// share a Kind tag and are compared structurally, never by identity.
package reference

import (
	"strings"

	"github.com/OpenModelica/modelica-language-server/pkg/rerr"
	"github.com/OpenModelica/modelica-language-server/pkg/synt"
)

// Kind prunes lookup: a search for a class never follows extends
// clauses; superclasses are searched only for variable or
// unknown-kind lookups.
type Kind int

const (
	// KindUnknown means the search should accept either a class or a
	// variable declaration.
	KindUnknown Kind = iota
	KindClass
	KindVariable
)

func (k Kind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindVariable:
		return "variable"
	default:
		return "unknown"
	}
}

// Path is a non-empty ordered sequence of identifier strings, compared
// component by component.
type Path []string

// Equal reports structural equality.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

func (p Path) String() string {
	return strings.Join([]string(p), ".")
}

// WithSuffix returns a new path with suffix appended; neither argument
// is mutated.
func (p Path) WithSuffix(suffix ...string) Path {
	out := make(Path, 0, len(p)+len(suffix))
	out = append(out, p...)
	out = append(out, suffix...)
	return out
}

// Prefixes yields every prefix of p, longest first, down to and
// including the empty path.
func (p Path) Prefixes() []Path {
	out := make([]Path, 0, len(p)+1)
	for n := len(p); n >= 0; n-- {
		out = append(out, append(Path(nil), p[:n]...))
	}
	return out
}

func checkNonEmpty(path Path) {
	if len(path) == 0 {
		rerr.Invariant("reference: symbol path must not be empty")
	}
}

// UnresolvedAbsolute is interpreted starting from the set of known
// library roots: the first component names a library, successive
// components descend into it.
type UnresolvedAbsolute struct {
	Symbols Path
	Kind    Kind
}

// NewUnresolvedAbsolute constructs an absolute reference. Panics (via
// rerr.Invariant) if symbols is empty.
func NewUnresolvedAbsolute(symbols Path, kind Kind) UnresolvedAbsolute {
	checkNonEmpty(symbols)
	return UnresolvedAbsolute{Symbols: symbols, Kind: kind}
}

// Equal reports structural equality, symbols and kind both.
func (r UnresolvedAbsolute) Equal(other UnresolvedAbsolute) bool {
	return r.Kind == other.Kind && r.Symbols.Equal(other.Symbols)
}

func (r UnresolvedAbsolute) String() string {
	return "absolute(" + r.Symbols.String() + ", " + r.Kind.String() + ")"
}

// UnresolvedRelative is resolved starting from the innermost lexical
// scope enclosing Anchor. Document and Anchor identify the use site;
// Anchor must belong to Document's current tree.
type UnresolvedRelative struct {
	Symbols  Path
	Kind     Kind
	Document DocumentRef
	Anchor   synt.Node
}

// DocumentRef is the narrow view of a document the reference package
// needs: enough to name it in debug output and hand to the resolver
// without importing package document, so this package depends only on
// rerr and synt.
type DocumentRef interface {
	Path() string
}

// NewUnresolvedRelative constructs a relative reference anchored at
// (doc, anchor). Panics (via rerr.Invariant) if symbols is empty or
// anchor is nil.
func NewUnresolvedRelative(symbols Path, kind Kind, doc DocumentRef, anchor synt.Node) UnresolvedRelative {
	checkNonEmpty(symbols)
	if anchor == nil {
		rerr.Invariant("reference: relative reference requires a non-nil anchor node")
	}
	return UnresolvedRelative{Symbols: symbols, Kind: kind, Document: doc, Anchor: anchor}
}

func (r UnresolvedRelative) String() string {
	doc := ""
	if r.Document != nil {
		doc = r.Document.Path()
	}
	return "relative(" + r.Symbols.String() + ", " + r.Kind.String() + " @ " + doc + ")"
}

// Resolved is the terminal outcome of a successful lookup: a document,
// the syntax node that declares the symbol, the absolute path that was
// resolved, and a mandatory (never unknown) kind.
type Resolved struct {
	Document DocumentRef
	Node     synt.Node
	Symbols  Path
	Kind     Kind
}

// NewResolved constructs a resolved reference. Panics (via
// rerr.Invariant) if symbols is empty, node is nil, or kind is
// KindUnknown — a resolved reference's kind is always known.
func NewResolved(doc DocumentRef, node synt.Node, symbols Path, kind Kind) Resolved {
	checkNonEmpty(symbols)
	if node == nil {
		rerr.Invariant("reference: resolved reference requires a non-nil declaring node")
	}
	if kind == KindUnknown {
		rerr.Invariant("reference: resolved reference kind must not be unknown")
	}
	return Resolved{Document: doc, Node: node, Symbols: symbols, Kind: kind}
}

// Equal reports whether two resolved references name the same symbol
// path, kind, document and declaring node (by node identity within the
// same tree snapshot).
func (r Resolved) Equal(other Resolved) bool {
	if r.Kind != other.Kind || !r.Symbols.Equal(other.Symbols) {
		return false
	}
	if (r.Node == nil) != (other.Node == nil) {
		return false
	}
	if r.Node != nil && !r.Node.Equal(other.Node) {
		return false
	}
	rd, od := "", ""
	if r.Document != nil {
		rd = r.Document.Path()
	}
	if other.Document != nil {
		od = other.Document.Path()
	}
	return rd == od
}

// Unresolved is a tagged union over the two unresolved reference
// variants. The resolver dispatches on IsAbsolute rather than on a
// type hierarchy.
type Unresolved struct {
	absolute *UnresolvedAbsolute
	relative *UnresolvedRelative
}

// Absolute wraps an UnresolvedAbsolute as an Unresolved.
func Absolute(r UnresolvedAbsolute) Unresolved {
	return Unresolved{absolute: &r}
}

// Relative wraps an UnresolvedRelative as an Unresolved.
func Relative(r UnresolvedRelative) Unresolved {
	return Unresolved{relative: &r}
}

// IsAbsolute reports which variant this union holds.
func (u Unresolved) IsAbsolute() bool { return u.absolute != nil }

// AsAbsolute returns the absolute variant, if present.
func (u Unresolved) AsAbsolute() (UnresolvedAbsolute, bool) {
	if u.absolute == nil {
		return UnresolvedAbsolute{}, false
	}
	return *u.absolute, true
}

// AsRelative returns the relative variant, if present.
func (u Unresolved) AsRelative() (UnresolvedRelative, bool) {
	if u.relative == nil {
		return UnresolvedRelative{}, false
	}
	return *u.relative, true
}

// Kind returns the shared kind tag regardless of variant.
func (u Unresolved) Kind() Kind {
	if u.absolute != nil {
		return u.absolute.Kind
	}
	if u.relative != nil {
		return u.relative.Kind
	}
	return KindUnknown
}

func (u Unresolved) String() string {
	if u.absolute != nil {
		return u.absolute.String()
	}
	if u.relative != nil {
		return u.relative.String()
	}
	return "unresolved(<empty>)"
}

func (r Resolved) String() string {
	doc := ""
	if r.Document != nil {
		doc = r.Document.Path()
	}
	return "resolved(" + r.Symbols.String() + ", " + r.Kind.String() + " @ " + doc + ")"
}
