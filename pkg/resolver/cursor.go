package resolver

import (
	"github.com/OpenModelica/modelica-language-server/pkg/document"
	"github.com/OpenModelica/modelica-language-server/pkg/reference"
	"github.com/OpenModelica/modelica-language-server/pkg/synt"
	"github.com/OpenModelica/modelica-language-server/pkg/treeutil"
)

// IdentifyReferenceAtCursor converts a (line, column) position in doc
// into the unresolved reference under the cursor, if any.
func IdentifyReferenceAtCursor(doc *document.Document, pos synt.Point) (reference.Unresolved, bool) {
	offset := doc.OffsetForPosition(pos)
	root := doc.Tree().RootNode()
	if root == nil {
		return reference.Unresolved{}, false
	}
	start := treeutil.NodeAtOffset(root, offset)
	if start == nil {
		return reference.Unresolved{}, false
	}

	if nameNode := ancestorOfKind(start, treeutil.KindName); nameNode != nil {
		if ref, ok := referenceFromName(doc, nameNode, offset); ok {
			return ref, true
		}
	}
	if crNode := ancestorOfKind(start, treeutil.KindComponentReference); crNode != nil {
		if ref, ok := referenceFromComponentReference(doc, crNode, offset); ok {
			return ref, true
		}
	}
	if identNode := ancestorOfKind(start, treeutil.KindIdent); identNode != nil {
		return reference.Relative(reference.NewUnresolvedRelative(
			reference.Path{string(identNode.Text())}, reference.KindUnknown, doc, identNode)), true
	}
	return reference.Unresolved{}, false
}

func ancestorOfKind(n synt.Node, kind string) synt.Node {
	for ; n != nil; n = n.Parent() {
		if n.Kind() == kind {
			return n
		}
	}
	return nil
}

// referenceFromName extracts the dotted identifier sequence from a
// name node, dropping any identifier starting at or after the cursor
// so typing A.B.|C resolves A.B rather than A.B.C.
func referenceFromName(doc *document.Document, nameNode synt.Node, offset uint32) (reference.Unresolved, bool) {
	idents := treeutil.NameIdentifiers(nameNode)
	if len(idents) == 0 {
		return reference.Unresolved{}, false
	}

	global := false
	if parent := nameNode.Parent(); parent != nil && parent.Kind() == treeutil.KindTypeSpecifier {
		global = parent.ChildByFieldName(treeutil.FieldGlobal) != nil
	}

	kept := dropAfterCursor(idents, offset)
	if len(kept) == 0 {
		return reference.Unresolved{}, false
	}

	symbols := identTexts(kept)
	anchor := kept[len(kept)-1]
	if global {
		return reference.Absolute(reference.NewUnresolvedAbsolute(symbols, reference.KindClass)), true
	}
	return reference.Relative(reference.NewUnresolvedRelative(symbols, reference.KindClass, doc, anchor)), true
}

func referenceFromComponentReference(doc *document.Document, crNode synt.Node, offset uint32) (reference.Unresolved, bool) {
	idents := treeutil.NameIdentifiers(crNode)
	if len(idents) == 0 {
		return reference.Unresolved{}, false
	}
	kept := dropAfterCursor(idents, offset)
	if len(kept) == 0 {
		return reference.Unresolved{}, false
	}
	symbols := identTexts(kept)
	anchor := kept[len(kept)-1]
	return reference.Relative(reference.NewUnresolvedRelative(symbols, reference.KindVariable, doc, anchor)), true
}

// dropAfterCursor drops every identifier starting at or after offset:
// no identifier at or after the cursor is included in the reference.
func dropAfterCursor(idents []synt.Node, offset uint32) []synt.Node {
	kept := make([]synt.Node, 0, len(idents))
	for _, id := range idents {
		if id.StartByte() >= offset {
			continue
		}
		kept = append(kept, id)
	}
	return kept
}
