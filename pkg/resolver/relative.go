package resolver

import (
	"github.com/OpenModelica/modelica-language-server/pkg/document"
	"github.com/OpenModelica/modelica-language-server/pkg/reference"
	"github.com/OpenModelica/modelica-language-server/pkg/synt"
	"github.com/OpenModelica/modelica-language-server/pkg/treeutil"
)

// resolveRelative converts a relative reference into a sequence of
// candidate absolute references and resolves each in turn, accepting
// the first success. Candidates are generated and tried one at a
// time — the walk stops as soon as one resolves, so later, more
// expensive candidates are never even built.
func (r *Resolver) resolveRelative(ref reference.UnresolvedRelative) (reference.Resolved, bool) {
	doc, ok := ref.Document.(*document.Document)
	if !ok || doc == nil {
		return reference.Resolved{}, false
	}

	classPath := r.enclosingClassPath(doc, ref.Anchor)

	// Local/member lookup: try the innermost enclosing class's own
	// fully-qualified path first, then each enclosing package in turn,
	// up to the library root. The generic absolute walk's own
	// subfile/member/superclass search reproduces the anchor-level
	// local lookups (direct children, element-list members, inherited
	// members) for each prefix automatically.
	for _, prefix := range classPath.Prefixes() {
		candidate := reference.NewUnresolvedAbsolute(prefix.WithSuffix(ref.Symbols...), ref.Kind)
		if resolved, ok := r.resolveAbsolute(candidate); ok {
			return resolved, true
		}
	}

	// Import-clause candidates: collected from every enclosing element
	// list or stored-definitions list, innermost first, each already
	// fully qualified.
	for _, imp := range collectImports(ref.Anchor) {
		candidate, ok := importCandidate(imp, ref.Symbols, ref.Kind)
		if !ok {
			continue
		}
		if resolved, ok := r.resolveAbsolute(candidate); ok {
			return resolved, true
		}
	}

	return reference.Resolved{}, false
}

// enclosingClassPath builds document.within ++ ancestors, where
// ancestors is the list of class-definition ancestors of anchor,
// outermost to innermost.
func (r *Resolver) enclosingClassPath(doc *document.Document, anchor synt.Node) reference.Path {
	var ancestorNames []string
	for n := anchor.Parent(); n != nil; n = n.Parent() {
		if !treeutil.IsDefinition(n) {
			continue
		}
		names := treeutil.DeclaredIdentifiers(n)
		if len(names) == 0 {
			continue
		}
		ancestorNames = append(ancestorNames, names[0])
	}
	// ancestorNames was collected innermost-first; reverse to get
	// outermost-to-innermost.
	for i, j := 0, len(ancestorNames)-1; i < j; i, j = i+1, j-1 {
		ancestorNames[i], ancestorNames[j] = ancestorNames[j], ancestorNames[i]
	}

	path := make(reference.Path, 0, len(doc.WithinPath())+len(ancestorNames))
	path = append(path, doc.WithinPath()...)
	path = append(path, ancestorNames...)
	return path
}

// collectImports walks anchor's ancestor chain, innermost container
// first, gathering import_clause siblings from every element-list or
// stored-definitions list encountered.
func collectImports(anchor synt.Node) []synt.Node {
	var imports []synt.Node
	for n := anchor; n != nil; n = n.Parent() {
		if !isImportContainer(n) {
			continue
		}
		for i := 0; i < n.NamedChildCount(); i++ {
			c := n.NamedChild(i)
			if c != nil && c.Kind() == treeutil.KindImportClause {
				imports = append(imports, c)
			}
		}
	}
	return imports
}

func isImportContainer(n synt.Node) bool {
	if treeutil.IsElementList(n) {
		return true
	}
	switch n.Kind() {
	case treeutil.KindStoredDefinitions, treeutil.KindStoredDefinition:
		return true
	default:
		return false
	}
}

// importCandidate interprets imp as one of the four import forms and,
// if it matches symbols[0] (or is a wildcard), yields the
// corresponding absolute candidate. Only one form matches per clause.
func importCandidate(imp synt.Node, symbols reference.Path, kind reference.Kind) (reference.UnresolvedAbsolute, bool) {
	if len(symbols) == 0 {
		return reference.UnresolvedAbsolute{}, false
	}

	nameNode := imp.ChildByFieldName(treeutil.FieldName)
	if nameNode == nil {
		return reference.UnresolvedAbsolute{}, false
	}
	base := identTexts(treeutil.NameIdentifiers(nameNode))
	if len(base) == 0 {
		return reference.UnresolvedAbsolute{}, false
	}

	if imp.ChildByFieldName(treeutil.FieldWildcard) != nil {
		return reference.NewUnresolvedAbsolute(base.WithSuffix(symbols...), kind), true
	}

	if alias := imp.ChildByFieldName(treeutil.FieldAlias); alias != nil {
		if string(alias.Text()) == symbols[0] {
			return reference.NewUnresolvedAbsolute(base.WithSuffix(symbols[1:]...), kind), true
		}
		return reference.UnresolvedAbsolute{}, false
	}

	if multi := imp.ChildByFieldName(treeutil.FieldImports); multi != nil {
		for i := 0; i < multi.NamedChildCount(); i++ {
			c := multi.NamedChild(i)
			if c != nil && string(c.Text()) == symbols[0] {
				return reference.NewUnresolvedAbsolute(base.WithSuffix(symbols...), kind), true
			}
		}
		return reference.UnresolvedAbsolute{}, false
	}

	// Plain import A.B.C: matches when the last component equals s1.
	if base[len(base)-1] == symbols[0] {
		return reference.NewUnresolvedAbsolute(base.WithSuffix(symbols[1:]...), kind), true
	}
	return reference.UnresolvedAbsolute{}, false
}
