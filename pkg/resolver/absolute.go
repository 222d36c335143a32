package resolver

import (
	"path/filepath"

	"github.com/OpenModelica/modelica-language-server/pkg/document"
	"github.com/OpenModelica/modelica-language-server/pkg/library"
	"github.com/OpenModelica/modelica-language-server/pkg/project"
	"github.com/OpenModelica/modelica-language-server/pkg/reference"
	"github.com/OpenModelica/modelica-language-server/pkg/synt"
	"github.com/OpenModelica/modelica-language-server/pkg/treeutil"
)

// step is one resolved position in the absolute-reference walk.
type step struct {
	doc  *document.Document
	node synt.Node
	kind reference.Kind
}

// resolveAbsolute implements the absolute-reference walk: find the
// owning library, locate its root package class, then advance through
// subfiles, members and superclasses one symbol at a time.
func (r *Resolver) resolveAbsolute(ref reference.UnresolvedAbsolute) (reference.Resolved, bool) {
	symbols := ref.Symbols
	if len(symbols) == 0 {
		return reference.Resolved{}, false
	}

	lib := r.project.LibraryByName(symbols[0])
	if lib == nil {
		return reference.Resolved{}, false
	}

	cur, ok := r.rootPackageClass(lib)
	if !ok {
		return reference.Resolved{}, false
	}

	for i := 1; i < len(symbols); i++ {
		last := i == len(symbols)-1
		wantKind := reference.KindClass
		if last {
			wantKind = ref.Kind
		}

		if cur.kind == reference.KindVariable {
			promoted, ok := r.typeLookup(cur)
			if !ok {
				return reference.Resolved{}, false
			}
			cur = promoted
		}

		next, ok := r.advance(cur, symbols[i], wantKind)
		if !ok {
			return reference.Resolved{}, false
		}
		cur = next
	}

	return reference.NewResolved(cur.doc, cur.node, append(reference.Path{}, symbols...), cur.kind), true
}

// rootPackageClass opens <libRoot>/package.mo and finds the
// class-definition declaring the library's own name.
func (r *Resolver) rootPackageClass(lib *library.Library) (step, bool) {
	path := filepath.Join(lib.RootPath(), "package.mo")
	doc, ok := r.project.GetDocument(path, project.GetOptions{})
	if !ok {
		return step{}, false
	}
	node := findDeclaredClass(doc.Tree().RootNode(), lib.Name())
	if node == nil {
		return step{}, false
	}
	return step{doc: doc, node: node, kind: reference.KindClass}, true
}

// advance performs one transition of the absolute walk: given the
// current resolved step and the next symbol, try the sibling-file
// form, then the member/superclass form within the current class.
func (r *Resolver) advance(cur step, symbol string, wantKind reference.Kind) (step, bool) {
	if next, ok := r.advanceViaSubfile(cur, symbol); ok {
		return next, true
	}
	if next, ok := r.advanceViaMember(cur, symbol, wantKind, true); ok {
		return next, true
	}
	return step{}, false
}

// advanceViaSubfile tries D/symbol.mo then D/symbol/package.mo, where
// D is the directory of the current step's document.
func (r *Resolver) advanceViaSubfile(cur step, symbol string) (step, bool) {
	if cur.kind != reference.KindClass {
		return step{}, false
	}
	dir := filepath.Dir(cur.doc.Path())
	for _, candidate := range []string{
		filepath.Join(dir, symbol+".mo"),
		filepath.Join(dir, symbol, "package.mo"),
	} {
		doc, ok := r.project.GetDocument(candidate, project.GetOptions{})
		if !ok {
			continue
		}
		node := findDeclaredClass(doc.Tree().RootNode(), symbol)
		if node == nil {
			continue
		}
		return step{doc: doc, node: node, kind: reference.KindClass}, true
	}
	return step{}, false
}

// advanceViaMember searches inside cur.node (which must be a
// class-definition) for a member named symbol: first among its own
// element lists, then among its superclasses, unless allowSuperclass
// is false or wantKind is class.
func (r *Resolver) advanceViaMember(cur step, symbol string, wantKind reference.Kind, allowSuperclass bool) (step, bool) {
	if cur.kind != reference.KindClass {
		return step{}, false
	}

	if member, memberKind, ok := findMember(cur.node, symbol); ok {
		return step{doc: cur.doc, node: member, kind: memberKind}, true
	}

	// Superclasses are searched only when the reference being looked
	// up is not itself a class: class names do not traverse extends.
	if !allowSuperclass || wantKind == reference.KindClass {
		return step{}, false
	}

	for _, ext := range extendsClauses(cur.node) {
		superRef, ok := r.resolveExtendsTarget(cur.doc, ext)
		if !ok {
			continue
		}
		if next, ok := r.advanceViaMember(superRef, symbol, wantKind, true); ok {
			return next, true
		}
	}
	return step{}, false
}

// resolveExtendsTarget resolves an extends_clause's type specifier to
// the class it names.
func (r *Resolver) resolveExtendsTarget(doc *document.Document, ext synt.Node) (step, bool) {
	idents, global := treeutil.TypeSpecifierIdentifiers(ext)
	if len(idents) == 0 {
		return step{}, false
	}
	symbols := identTexts(idents)

	var unresolved reference.Unresolved
	if global {
		unresolved = reference.Absolute(reference.NewUnresolvedAbsolute(symbols, reference.KindClass))
	} else {
		unresolved = reference.Relative(reference.NewUnresolvedRelative(symbols, reference.KindClass, doc, ext))
	}

	var resolved reference.Resolved
	var ok bool
	if abs, isAbs := unresolved.AsAbsolute(); isAbs {
		resolved, ok = r.resolveAbsolute(abs)
	} else if rel, isRel := unresolved.AsRelative(); isRel {
		resolved, ok = r.resolveRelative(rel)
	}
	if !ok {
		return step{}, false
	}
	d, _ := resolved.Document.(*document.Document)
	return step{doc: d, node: resolved.Node, kind: resolved.Kind}, true
}

// findDeclaredClass searches root (pre-order) for the first
// class-definition declaring name.
func findDeclaredClass(root synt.Node, name string) synt.Node {
	found := treeutil.FindFirst(root, func(n synt.Node) bool {
		if !treeutil.IsDefinition(n) {
			return false
		}
		return containsName(treeutil.DeclaredIdentifiers(n), name)
	})
	return found
}

// findMember scans every element-list child of class for a
// named-element declaring name, document order, first match wins.
func findMember(class synt.Node, name string) (synt.Node, reference.Kind, bool) {
	var result synt.Node
	var kind reference.Kind
	found := false

	for i := 0; i < class.ChildCount() && !found; i++ {
		child := class.Child(i)
		if child == nil || !treeutil.IsElementList(child) {
			continue
		}
		for j := 0; j < child.NamedChildCount() && !found; j++ {
			elt := child.NamedChild(j)
			if elt == nil {
				continue
			}
			if !containsName(treeutil.DeclaredIdentifiers(elt), name) {
				continue
			}
			node, k, ok := namedElementTarget(elt)
			if !ok {
				continue
			}
			result, kind, found = node, k, true
		}
	}
	return result, kind, found
}

// namedElementTarget picks the node and kind a matched named-element
// (or bare component/class declaration) contributes as a resolved
// step: its class-definition child if present, else its
// component-clause child.
func namedElementTarget(elt synt.Node) (synt.Node, reference.Kind, bool) {
	switch elt.Kind() {
	case treeutil.KindClassDefinition:
		return elt, reference.KindClass, true
	case treeutil.KindComponentClause, treeutil.KindComponentRedeclaration:
		return elt, reference.KindVariable, true
	case treeutil.KindNamedElement:
		if cd := elt.ChildByFieldName(treeutil.FieldClassDefinition); cd != nil {
			return cd, reference.KindClass, true
		}
		if cc := elt.ChildByFieldName(treeutil.FieldComponentClause); cc != nil {
			return cc, reference.KindVariable, true
		}
		return nil, reference.KindUnknown, false
	default:
		return nil, reference.KindUnknown, false
	}
}

// extendsClauses returns class's extends_clause children, in
// declaration order, across its element lists.
func extendsClauses(class synt.Node) []synt.Node {
	var out []synt.Node
	for i := 0; i < class.ChildCount(); i++ {
		child := class.Child(i)
		if child == nil || !treeutil.IsElementList(child) {
			continue
		}
		for j := 0; j < child.NamedChildCount(); j++ {
			elt := child.NamedChild(j)
			if elt != nil && elt.Kind() == treeutil.KindExtendsClause {
				out = append(out, elt)
			}
		}
	}
	return out
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

func identTexts(idents []synt.Node) reference.Path {
	out := make(reference.Path, 0, len(idents))
	for _, id := range idents {
		out = append(out, string(id.Text()))
	}
	return out
}
