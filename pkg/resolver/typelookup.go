package resolver

import (
	"github.com/OpenModelica/modelica-language-server/pkg/document"
	"github.com/OpenModelica/modelica-language-server/pkg/reference"
	"github.com/OpenModelica/modelica-language-server/pkg/treeutil"
)

// typeLookup extracts the type specifier from a resolved variable
// step's declaring node and resolves it as a class reference. Fails
// (returns ok=false) when the declared type is a builtin scalar or
// otherwise not a class — this is intentional: it is how a reference
// chain through a builtin-typed variable terminates.
func (r *Resolver) typeLookup(v step) (step, bool) {
	idents, global := treeutil.TypeSpecifierIdentifiers(v.node)
	if len(idents) == 0 {
		return step{}, false
	}
	symbols := identTexts(idents)

	var resolved reference.Resolved
	var ok bool
	if global {
		resolved, ok = r.resolveAbsolute(reference.NewUnresolvedAbsolute(symbols, reference.KindClass))
	} else {
		resolved, ok = r.resolveRelative(reference.NewUnresolvedRelative(symbols, reference.KindClass, v.doc, v.node))
	}
	if !ok {
		return step{}, false
	}

	d, _ := resolved.Document.(*document.Document)
	return step{doc: d, node: resolved.Node, kind: resolved.Kind}, true
}
