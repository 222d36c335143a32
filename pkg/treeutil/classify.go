package treeutil

import "github.com/OpenModelica/modelica-language-server/pkg/synt"

// IsDefinition reports whether n is a class definition.
func IsDefinition(n synt.Node) bool {
	return n != nil && n.Kind() == KindClassDefinition
}

// IsVariableDeclaration reports whether n declares a component
// (variable): a component-clause, a component-redeclaration, or a
// named-element whose class-definition child is absent.
func IsVariableDeclaration(n synt.Node) bool {
	if n == nil {
		return false
	}
	switch n.Kind() {
	case KindComponentClause, KindComponentRedeclaration:
		return true
	case KindNamedElement:
		return n.ChildByFieldName(FieldClassDefinition) == nil
	default:
		return false
	}
}

// IsElementList reports whether n is any element-list variant (plain,
// public, or protected).
func IsElementList(n synt.Node) bool {
	return n != nil && elementListKinds[n.Kind()]
}
