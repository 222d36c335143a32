package resolver

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenModelica/modelica-language-server/pkg/library"
	"github.com/OpenModelica/modelica-language-server/pkg/project"
	"github.com/OpenModelica/modelica-language-server/pkg/reference"
	"github.com/OpenModelica/modelica-language-server/pkg/synttest"
	"github.com/OpenModelica/modelica-language-server/pkg/treeutil"
)

// TestResolveAbsoluteThroughSubdirectoryPackage exercises
// advanceViaSubfile's D/symbol/package.mo form: TestLibrary.Utilities
// lives at TestLibrary/Utilities/package.mo, not a sibling .mo file.
func TestResolveAbsoluteThroughSubdirectoryPackage(t *testing.T) {
	root := t.TempDir()
	libRoot := filepath.Join(root, "TestLibrary")
	writeFile(t, libRoot, "package.mo", "ROOT")
	writeFile(t, libRoot, filepath.Join("Utilities", "package.mo"), "UTILITIES")

	parser := &synttest.Parser{
		Build: func(source []byte) (*synttest.Tree, error) {
			switch string(source) {
			case "ROOT":
				return synttest.NewTree(classNode("TestLibrary", nil), false), nil
			case "UTILITIES":
				list := synttest.New(treeutil.KindPublicElementList, "", 0, 0, zp(), zp())
				list.AddChild(classMember("Helper"))
				return synttest.NewTree(classNode("Utilities", list), false), nil
			default:
				t.Fatalf("unexpected fixture source %q", source)
				return nil, nil
			}
		},
	}

	proj := project.New(parser, nil)
	lib := library.New(libRoot, false)
	require.NoError(t, lib.Load(parser, nil))
	proj.AddLibrary(lib)

	res := New(proj, nil)
	ref := reference.NewUnresolvedAbsolute(reference.Path{"TestLibrary", "Utilities"}, reference.KindClass)
	resolved, found, err := res.Resolve(reference.Absolute(ref), Declaration)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, reference.KindClass, resolved.Kind)
	assert.Equal(t, filepath.Join(libRoot, "Utilities", "package.mo"), resolved.Document.Path())
	assert.Equal(t, reference.Path{"TestLibrary", "Utilities"}, resolved.Symbols)
}

// TestResolveRelativeLocalVariable exercises the simplest relative
// case: a variable declared in, and referenced from within, the same
// enclosing class — resolved via classPath's own (non-empty) prefix,
// with no subfile traversal involved.
func TestResolveRelativeLocalVariable(t *testing.T) {
	root := t.TempDir()
	libRoot := filepath.Join(root, "TestLibrary")
	writeFile(t, libRoot, "package.mo", "ROOT")

	var anchor *synttest.Node
	parser := &synttest.Parser{
		Build: func(source []byte) (*synttest.Tree, error) {
			list := variableMember("localVar")
			cr := componentReference("localVar")
			list.AddChild(cr)
			anchor = cr
			return synttest.NewTree(classNode("TestLibrary", list), false), nil
		},
	}

	proj := project.New(parser, nil)
	lib := library.New(libRoot, false)
	require.NoError(t, lib.Load(parser, nil))
	proj.AddLibrary(lib)

	doc, ok := proj.GetDocument(filepath.Join(libRoot, "package.mo"), project.GetOptions{})
	require.True(t, ok)

	ref := reference.NewUnresolvedRelative(reference.Path{"localVar"}, reference.KindVariable, doc, anchor)
	resolved, found, err := New(proj, nil).Resolve(reference.Relative(ref), Declaration)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, reference.KindVariable, resolved.Kind)
	assert.Equal(t, reference.Path{"TestLibrary", "localVar"}, resolved.Symbols)
}

// TestResolveAbsoluteBuiltinTypedVariableStopsChain exercises
// typeLookup's intentional termination: a variable declared with a
// type name that resolves to no class (standing in for a builtin
// scalar type like Real) must fail the chain without any special-case
// "is this a builtin" check.
func TestResolveAbsoluteBuiltinTypedVariableStopsChain(t *testing.T) {
	root := t.TempDir()
	libRoot := filepath.Join(root, "TestLibrary")
	writeFile(t, libRoot, "package.mo", "ROOT")

	parser := &synttest.Parser{
		Build: func(source []byte) (*synttest.Tree, error) {
			typeSpec := typeSpecifier(false, "Real")
			list, _ := variableMemberTyped("y", typeSpec)
			return synttest.NewTree(classNode("TestLibrary", list), false), nil
		},
	}

	proj := project.New(parser, nil)
	lib := library.New(libRoot, false)
	require.NoError(t, lib.Load(parser, nil))
	proj.AddLibrary(lib)

	ref := reference.NewUnresolvedAbsolute(reference.Path{"TestLibrary", "y", "field"}, reference.KindVariable)
	_, found, err := New(proj, nil).Resolve(reference.Absolute(ref), Declaration)
	require.NoError(t, err)
	assert.False(t, found)
}

// TestResolveAbsoluteThroughSuperclassMember exercises
// advanceViaMember's superclass branch and resolveExtendsTarget:
// Derived's element list holds only an extends_clause naming Base (a
// sibling file); the member x is declared on Base, not Derived.
func TestResolveAbsoluteThroughSuperclassMember(t *testing.T) {
	root := t.TempDir()
	libRoot := filepath.Join(root, "TestLibrary")
	writeFile(t, libRoot, "package.mo", "ROOT")
	writeFile(t, libRoot, "Base.mo", "BASE")
	writeFile(t, libRoot, "Derived.mo", "DERIVED")

	parser := &synttest.Parser{
		Build: func(source []byte) (*synttest.Tree, error) {
			switch string(source) {
			case "ROOT":
				return synttest.NewTree(classNode("TestLibrary", nil), false), nil
			case "BASE":
				return synttest.NewTree(classNode("Base", variableMember("x")), false), nil
			case "DERIVED":
				list := synttest.New(treeutil.KindPublicElementList, "", 0, 0, zp(), zp())
				list.AddChild(extendsClauseNode(true, "TestLibrary", "Base"))
				return synttest.NewTree(classNode("Derived", list), false), nil
			default:
				t.Fatalf("unexpected fixture source %q", source)
				return nil, nil
			}
		},
	}

	proj := project.New(parser, nil)
	lib := library.New(libRoot, false)
	require.NoError(t, lib.Load(parser, nil))
	proj.AddLibrary(lib)

	res := New(proj, nil)
	ref := reference.NewUnresolvedAbsolute(reference.Path{"TestLibrary", "Derived", "x"}, reference.KindVariable)
	resolved, found, err := res.Resolve(reference.Absolute(ref), Declaration)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, reference.KindVariable, resolved.Kind)
	assert.Equal(t, filepath.Join(libRoot, "Base.mo"), resolved.Document.Path())
	assert.Equal(t, treeutil.KindComponentClause, resolved.Node.Kind())
	// The reported path is the originally requested one, through
	// Derived, not the traversal path through Base.
	assert.Equal(t, reference.Path{"TestLibrary", "Derived", "x"}, resolved.Symbols)
}
