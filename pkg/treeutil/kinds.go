// Package treeutil provides pure functions over synt.Node: classifying
// declarations, extracting the identifiers a declaration introduces,
// extracting dotted names from type specifiers and component
// references, and generic tree search. Nothing here allocates syntax
// nodes or mutates the tree.
package treeutil

// Node kinds consumed from the parser. Treated as an opaque but closed
// set — any kind not in this vocabulary is foreign to the core and
// classify functions simply return false/empty for it.
const (
	KindStoredDefinitions       = "stored_definitions"
	KindStoredDefinition        = "stored_definition"
	KindWithinClause            = "within_clause"
	KindClassDefinition         = "class_definition"
	KindLongClassSpecifier      = "long_class_specifier"
	KindShortClassSpecifier     = "short_class_specifier"
	KindEnumerationClassSpec    = "enumeration_class_specifier"
	KindDerivativeClassSpec     = "derivative_class_specifier"
	KindExtendsClassSpecifier   = "extends_class_specifier"
	KindElementList             = "element_list"
	KindPublicElementList       = "public_element_list"
	KindProtectedElementList    = "protected_element_list"
	KindNamedElement            = "named_element"
	KindComponentClause         = "component_clause"
	KindComponentDeclaration    = "component_declaration"
	KindComponentRedeclaration  = "component_redeclaration"
	KindComponentList           = "component_list"
	KindDeclaration             = "declaration"
	KindExtendsClause           = "extends_clause"
	KindImportClause            = "import_clause"
	KindTypeSpecifier           = "type_specifier"
	KindName                    = "name"
	KindComponentReference      = "component_reference"
	KindIdent                   = "IDENT"
	KindClassPrefixes           = "class_prefixes"
)

// Field names used for field-based child access.
const (
	FieldClassSpecifier       = "classSpecifier"
	FieldClassPrefixes        = "classPrefixes"
	FieldClassDefinition      = "classDefinition"
	FieldComponentClause      = "componentClause"
	FieldComponentDeclarations = "componentDeclarations"
	FieldDeclaration          = "declaration"
	FieldIdentifier           = "identifier"
	FieldTypeSpecifier        = "typeSpecifier"
	FieldName                 = "name"
	FieldQualifier            = "qualifier"
	FieldWildcard             = "wildcard"
	FieldAlias                = "alias"
	FieldImports               = "imports"
	FieldIndices              = "indices"
	FieldDescriptionString    = "descriptionString"
	FieldGlobal               = "global"
)

// elementListKinds is the closed set of element-list node kinds.
var elementListKinds = map[string]bool{
	KindElementList:          true,
	KindPublicElementList:    true,
	KindProtectedElementList: true,
}

// classSpecifierKinds is the set of class-specifier variants that carry
// a declared identifier directly under field "identifier".
var classSpecifierKinds = map[string]bool{
	KindLongClassSpecifier:    true,
	KindShortClassSpecifier:   true,
	KindEnumerationClassSpec:  true,
	KindDerivativeClassSpec:   true,
	KindExtendsClassSpecifier: true,
}
