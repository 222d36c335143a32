// Package outline implements the single document-outline helper the
// core exposes: flattening the declared class and variable names of
// one syntax tree. Anything beyond this (hover text, documentation extraction,
// rich symbol kinds) is out of scope for the core.
package outline

import (
	"github.com/OpenModelica/modelica-language-server/pkg/document"
	"github.com/OpenModelica/modelica-language-server/pkg/synt"
	"github.com/OpenModelica/modelica-language-server/pkg/treeutil"
)

// Kind distinguishes a class declaration from a variable declaration
// in an outline entry.
type Kind int

const (
	KindClass Kind = iota
	KindVariable
)

// Entry is one flattened declaration: its name, kind, and source
// range.
type Entry struct {
	Name  string
	Kind  Kind
	Start synt.Point
	End   synt.Point
}

// ForDocument flattens every class declaration and every variable
// declaration in doc's current tree, at any nesting depth, into a list
// of outline entries, document order. The subtree of a variable
// declaration is not searched further.
func ForDocument(doc *document.Document) []Entry {
	root := doc.Tree().RootNode()
	if root == nil {
		return nil
	}

	var entries []Entry
	treeutil.ForEach(root, func(n synt.Node) bool {
		switch {
		case treeutil.IsDefinition(n):
			for _, name := range treeutil.DeclaredIdentifiers(n) {
				entries = append(entries, Entry{Name: name, Kind: KindClass, Start: n.StartPosition(), End: n.EndPosition()})
			}
		case treeutil.IsVariableDeclaration(n):
			for _, name := range treeutil.DeclaredIdentifiers(n) {
				entries = append(entries, Entry{Name: name, Kind: KindVariable, Start: n.StartPosition(), End: n.EndPosition()})
			}
			return false
		}
		return true
	})
	return entries
}
