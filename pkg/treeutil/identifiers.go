package treeutil

import (
	"log/slog"

	"github.com/OpenModelica/modelica-language-server/pkg/synt"
)

// DeclaredIdentifiers returns the identifiers that a declaration node
// introduces into its enclosing scope:
//   - class_definition: the class name
//   - component_clause: every name in its declaration list
//   - element-list / stored-definitions: the union over named children
//   - named_element: delegates to its class-definition or
//     component-clause child
//
// Unknown declaration kinds produce the empty sequence and are logged.
func DeclaredIdentifiers(n synt.Node) []string {
	if n == nil {
		return nil
	}

	switch n.Kind() {
	case KindClassDefinition:
		spec := n.ChildByFieldName(FieldClassSpecifier)
		if spec == nil {
			return nil
		}
		ident := spec.ChildByFieldName(FieldIdentifier)
		if ident == nil {
			return nil
		}
		return []string{string(ident.Text())}

	case KindComponentClause:
		list := n.ChildByFieldName(FieldComponentDeclarations)
		if list == nil {
			return nil
		}
		var names []string
		for i := 0; i < list.NamedChildCount(); i++ {
			decl := list.NamedChild(i)
			if decl == nil || decl.Kind() != KindComponentDeclaration {
				continue
			}
			inner := decl.ChildByFieldName(FieldDeclaration)
			if inner == nil {
				continue
			}
			ident := inner.ChildByFieldName(FieldIdentifier)
			if ident != nil {
				names = append(names, string(ident.Text()))
			}
		}
		return names

	case KindComponentRedeclaration:
		if cc := n.ChildByFieldName(FieldComponentClause); cc != nil {
			return DeclaredIdentifiers(cc)
		}
		if cd := n.ChildByFieldName(FieldClassDefinition); cd != nil {
			return DeclaredIdentifiers(cd)
		}
		for i := 0; i < n.NamedChildCount(); i++ {
			c := n.NamedChild(i)
			if c != nil && (c.Kind() == KindComponentClause || c.Kind() == KindClassDefinition) {
				return DeclaredIdentifiers(c)
			}
		}
		return nil

	case KindNamedElement:
		if cd := n.ChildByFieldName(FieldClassDefinition); cd != nil {
			return DeclaredIdentifiers(cd)
		}
		if cc := n.ChildByFieldName(FieldComponentClause); cc != nil {
			return DeclaredIdentifiers(cc)
		}
		return nil

	case KindElementList, KindPublicElementList, KindProtectedElementList, KindStoredDefinitions, KindStoredDefinition:
		var names []string
		for i := 0; i < n.NamedChildCount(); i++ {
			names = append(names, DeclaredIdentifiers(n.NamedChild(i))...)
		}
		return names

	default:
		slog.Default().Debug("declaredIdentifiers: unknown declaration kind", "kind", n.Kind())
		return nil
	}
}

// NameIdentifiers returns the ordered sequence of identifier subnodes
// making up a dotted "name" or "component_reference" node's path.
func NameIdentifiers(n synt.Node) []synt.Node {
	if n == nil {
		return nil
	}
	var idents []synt.Node
	for i := 0; i < n.NamedChildCount(); i++ {
		c := n.NamedChild(i)
		if c != nil && c.Kind() == KindIdent {
			idents = append(idents, c)
		}
	}
	return idents
}

// TypeSpecifierIdentifiers finds the type-specifier descendant of n
// (or treats n itself as one) and returns its dotted identifier path
// plus whether it is rooted at the global scope (a leading ".").
func TypeSpecifierIdentifiers(n synt.Node) (idents []synt.Node, global bool) {
	spec := n
	if spec == nil {
		return nil, false
	}
	if spec.Kind() != KindTypeSpecifier {
		spec = FindFirst(n, func(c synt.Node) bool { return c.Kind() == KindTypeSpecifier })
	}
	if spec == nil {
		return nil, false
	}

	global = spec.ChildByFieldName(FieldGlobal) != nil

	nameNode := spec.ChildByFieldName(FieldName)
	if nameNode == nil {
		return nil, global
	}
	return NameIdentifiers(nameNode), global
}
