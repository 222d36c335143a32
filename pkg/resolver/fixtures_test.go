package resolver

import (
	"github.com/OpenModelica/modelica-language-server/pkg/synttest"
	"github.com/OpenModelica/modelica-language-server/pkg/treeutil"
)

// Shared fixture-construction helpers for resolver_test.go,
// absolute_scenarios_test.go, import_test.go and cursor_test.go. zp, ident,
// classNode, variableMember, componentReference, fixture,
// newFixture and writeFile live in resolver_test.go.

// classMember builds a bare class_definition for nesting directly
// inside another class's element list (as tree-sitter would, without
// a named_element wrapper).
func classMember(name string) *synttest.Node {
	nameIdent := ident(name, 0, uint32(len(name)))
	spec := synttest.New(treeutil.KindLongClassSpecifier, "", 0, 0, zp(), zp()).
		Field(treeutil.FieldIdentifier, nameIdent)
	return synttest.New(treeutil.KindClassDefinition, "", 0, 0, zp(), zp()).
		Field(treeutil.FieldClassSpecifier, spec)
}

// nameNode builds a dotted "name" node over parts.
func nameNode(parts ...string) *synttest.Node {
	n := synttest.New(treeutil.KindName, "", 0, 0, zp(), zp())
	for _, p := range parts {
		n.AddChild(ident(p, 0, uint32(len(p))))
	}
	return n
}

// typeSpecifier builds a type_specifier node naming the dotted path
// parts, global when global is true.
func typeSpecifier(global bool, parts ...string) *synttest.Node {
	ts := synttest.New(treeutil.KindTypeSpecifier, "", 0, 0, zp(), zp())
	if global {
		ts.Field(treeutil.FieldGlobal, synttest.New("DOT", ".", 0, 0, zp(), zp()).Anonymous())
	}
	ts.Field(treeutil.FieldName, nameNode(parts...))
	return ts
}

// extendsClauseNode builds an extends_clause naming the dotted path
// parts, global when global is true.
func extendsClauseNode(global bool, parts ...string) *synttest.Node {
	ext := synttest.New(treeutil.KindExtendsClause, "", 0, 0, zp(), zp())
	ext.AddChild(typeSpecifier(global, parts...))
	return ext
}

// variableMemberTyped builds a public_element_list containing one
// component_clause member named name, with typeSpec (if non-nil)
// attached under the typeSpecifier field. Returns the list and the
// component_clause node itself.
func variableMemberTyped(name string, typeSpec *synttest.Node) (*synttest.Node, *synttest.Node) {
	nameIdent := ident(name, 0, uint32(len(name)))
	decl := synttest.New(treeutil.KindDeclaration, "", 0, 0, zp(), zp()).Field(treeutil.FieldIdentifier, nameIdent)
	compDecl := synttest.New(treeutil.KindComponentDeclaration, "", 0, 0, zp(), zp()).Field(treeutil.FieldDeclaration, decl)
	compList := synttest.New(treeutil.KindComponentList, "", 0, 0, zp(), zp())
	compList.AddChild(compDecl)
	compClause := synttest.New(treeutil.KindComponentClause, "", 0, 0, zp(), zp()).
		Field(treeutil.FieldComponentDeclarations, compList)
	if typeSpec != nil {
		compClause.Field(treeutil.FieldTypeSpecifier, typeSpec)
	}
	namedElt := synttest.New(treeutil.KindNamedElement, "", 0, 0, zp(), zp()).
		Field(treeutil.FieldComponentClause, compClause)
	list := synttest.New(treeutil.KindPublicElementList, "", 0, 0, zp(), zp())
	list.AddChild(namedElt)
	return list, compClause
}

// importClauseWildcard builds `import <nameParts>.*;`.
func importClauseWildcard(nameParts ...string) *synttest.Node {
	return synttest.New(treeutil.KindImportClause, "", 0, 0, zp(), zp()).
		Field(treeutil.FieldName, nameNode(nameParts...)).
		Field(treeutil.FieldWildcard, synttest.New("STAR", "*", 0, 0, zp(), zp()).Anonymous())
}

// importClauseAlias builds `import <alias> = <nameParts>;`.
func importClauseAlias(alias string, nameParts ...string) *synttest.Node {
	return synttest.New(treeutil.KindImportClause, "", 0, 0, zp(), zp()).
		Field(treeutil.FieldName, nameNode(nameParts...)).
		Field(treeutil.FieldAlias, ident(alias, 0, uint32(len(alias))))
}

// importClauseMulti builds `import <nameParts>.{names...};`.
func importClauseMulti(names []string, nameParts ...string) *synttest.Node {
	importsList := synttest.New("import_list", "", 0, 0, zp(), zp())
	for _, n := range names {
		importsList.AddChild(ident(n, 0, uint32(len(n))))
	}
	return synttest.New(treeutil.KindImportClause, "", 0, 0, zp(), zp()).
		Field(treeutil.FieldName, nameNode(nameParts...)).
		Field(treeutil.FieldImports, importsList)
}

// importClausePlain builds `import <nameParts>;`.
func importClausePlain(nameParts ...string) *synttest.Node {
	return synttest.New(treeutil.KindImportClause, "", 0, 0, zp(), zp()).
		Field(treeutil.FieldName, nameNode(nameParts...))
}
