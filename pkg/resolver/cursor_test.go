package resolver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenModelica/modelica-language-server/pkg/document"
	"github.com/OpenModelica/modelica-language-server/pkg/library"
	"github.com/OpenModelica/modelica-language-server/pkg/reference"
	"github.com/OpenModelica/modelica-language-server/pkg/synt"
	"github.com/OpenModelica/modelica-language-server/pkg/synttest"
	"github.com/OpenModelica/modelica-language-server/pkg/treeutil"
)

// loadFixtureDocument writes text verbatim to a file under a fresh
// temporary library and loads it with a parser that always returns
// root, regardless of the text given — letting the caller build root
// with byte offsets it chooses to match text exactly.
func loadFixtureDocument(t *testing.T, text string, root *synttest.Node) *document.Document {
	t.Helper()
	libRoot := t.TempDir()
	path := filepath.Join(libRoot, "Cursor.mo")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))

	parser := &synttest.Parser{
		Build: func([]byte) (*synttest.Tree, error) {
			return synttest.NewTree(root, false), nil
		},
	}
	lib := library.New(libRoot, false)
	doc, err := document.Load(path, parser, lib, nil)
	require.NoError(t, err)
	return doc
}

// dottedComponentReference builds "A.B.C" as a component_reference
// over three one-byte identifiers separated by single-byte dots, and
// wraps it directly under a stored_definitions root.
func dottedComponentReference() (*synttest.Node, synt.Node) {
	a := ident("A", 0, 1)
	b := ident("B", 2, 3)
	c := ident("C", 4, 5)
	cr := synttest.New(treeutil.KindComponentReference, "A.B.C", 0, 5, zp(), zp())
	cr.AddChild(a)
	cr.AddChild(b)
	cr.AddChild(c)
	root := synttest.New(treeutil.KindStoredDefinitions, "A.B.C", 0, 5, zp(), zp())
	root.AddChild(cr)
	return root, cr
}

func TestIdentifyReferenceAtCursorDropsTrailingComponentAfterCursor(t *testing.T) {
	root, _ := dottedComponentReference()
	doc := loadFixtureDocument(t, "A.B.C", root)

	// Cursor sits right before "C" (offset 4): typing A.B.|C must
	// resolve A.B, not A.B.C.
	unresolved, ok := IdentifyReferenceAtCursor(doc, synt.Point{Row: 0, Column: 4})
	require.True(t, ok)

	rel, isRel := unresolved.AsRelative()
	require.True(t, isRel)
	assert.Equal(t, reference.Path{"A", "B"}, rel.Symbols)
	assert.Equal(t, reference.KindVariable, rel.Kind)
}

func TestIdentifyReferenceAtCursorWholeComponentReference(t *testing.T) {
	root, _ := dottedComponentReference()
	doc := loadFixtureDocument(t, "A.B.C", root)

	// Cursor sits right after the final character: the whole chain is
	// kept since no identifier starts at or after offset 5.
	unresolved, ok := IdentifyReferenceAtCursor(doc, synt.Point{Row: 0, Column: 5})
	require.True(t, ok)

	rel, isRel := unresolved.AsRelative()
	require.True(t, isRel)
	assert.Equal(t, reference.Path{"A", "B", "C"}, rel.Symbols)
}

// dottedGlobalName builds ".A.B" as a type_specifier (global, via
// FieldGlobal) wrapping a "name" node over two one-byte identifiers.
func dottedGlobalName() *synttest.Node {
	a := ident("A", 1, 2)
	b := ident("B", 3, 4)
	name := synttest.New(treeutil.KindName, "A.B", 1, 4, zp(), zp())
	name.AddChild(a)
	name.AddChild(b)
	ts := synttest.New(treeutil.KindTypeSpecifier, ".A.B", 0, 4, zp(), zp()).
		Field(treeutil.FieldGlobal, synttest.New("DOT", ".", 0, 1, zp(), zp()).Anonymous())
	ts.Field(treeutil.FieldName, name)
	root := synttest.New(treeutil.KindStoredDefinitions, ".A.B", 0, 4, zp(), zp())
	root.AddChild(ts)
	return root
}

func TestIdentifyReferenceAtCursorGlobalTypeSpecifierIsAbsolute(t *testing.T) {
	root := dottedGlobalName()
	doc := loadFixtureDocument(t, ".A.B", root)

	unresolved, ok := IdentifyReferenceAtCursor(doc, synt.Point{Row: 0, Column: 4})
	require.True(t, ok)

	abs, isAbs := unresolved.AsAbsolute()
	require.True(t, isAbs)
	assert.Equal(t, reference.Path{"A", "B"}, abs.Symbols)
	assert.Equal(t, reference.KindClass, abs.Kind)
}

// bareIdent builds a single identifier directly under stored_definitions
// with no name/component_reference ancestor at all.
func bareIdent() *synttest.Node {
	id := ident("solo", 0, 4)
	root := synttest.New(treeutil.KindStoredDefinitions, "solo", 0, 4, zp(), zp())
	root.AddChild(id)
	return root
}

func TestIdentifyReferenceAtCursorBareIdentFallback(t *testing.T) {
	root := bareIdent()
	doc := loadFixtureDocument(t, "solo", root)

	unresolved, ok := IdentifyReferenceAtCursor(doc, synt.Point{Row: 0, Column: 2})
	require.True(t, ok)

	rel, isRel := unresolved.AsRelative()
	require.True(t, isRel)
	assert.Equal(t, reference.Path{"solo"}, rel.Symbols)
	assert.Equal(t, reference.KindUnknown, rel.Kind)
}

func TestIdentifyReferenceAtCursorNoNodeAtOffsetFails(t *testing.T) {
	// root's own range covers only the first two bytes; a cursor past
	// that range has no node to identify.
	root := synttest.New(treeutil.KindStoredDefinitions, "A.", 0, 2, zp(), zp())
	doc := loadFixtureDocument(t, "A.B.C", root)

	_, ok := IdentifyReferenceAtCursor(doc, synt.Point{Row: 0, Column: 5})
	assert.False(t, ok)
}
