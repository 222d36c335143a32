package library_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenModelica/modelica-language-server/pkg/document"
	"github.com/OpenModelica/modelica-language-server/pkg/library"
	"github.com/OpenModelica/modelica-language-server/pkg/synt"
	"github.com/OpenModelica/modelica-language-server/pkg/synttest"
)

func fakeParser() synt.Parser {
	return &synttest.Parser{
		Build: func(source []byte) (*synttest.Tree, error) {
			root := synttest.New("stored_definitions", string(source), 0, uint32(len(source)), synt.Point{}, synt.Point{})
			return synttest.NewTree(root, false), nil
		},
	}
}

func TestLoadWalksModelicaFiles(t *testing.T) {
	root := t.TempDir()
	write := func(rel, content string) {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	write("package.mo", "package Lib end Lib;")
	write("Sub/Thing.mo", "class Thing end Thing;")
	write("Sub/notes.txt", "ignored")

	lib := library.New(root, true)
	require.NoError(t, lib.Load(fakeParser(), nil))

	assert.Equal(t, 2, lib.Count())
	assert.Equal(t, filepath.Base(root), lib.Name())
	assert.True(t, lib.IsWorkspace())

	_, ok := lib.Get(filepath.Join(root, "Sub", "Thing.mo"))
	assert.True(t, ok)
}

func TestContains(t *testing.T) {
	root := t.TempDir()
	lib := library.New(root, false)

	assert.True(t, lib.Contains(filepath.Join(root, "Thing.mo")))
	assert.False(t, lib.Contains(filepath.Join(filepath.Dir(root), "outside.mo")))
}

func TestPutGetRemove(t *testing.T) {
	root := t.TempDir()
	write := func(rel, content string) string {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}
	path := write("Thing.mo", "class Thing end Thing;")

	lib := library.New(root, false)
	assert.Equal(t, 0, lib.Count())

	doc, err := document.Load(path, fakeParser(), lib, nil)
	require.NoError(t, err)
	lib.Put(path, doc)
	assert.Equal(t, 1, lib.Count())

	_, ok := lib.Get(path)
	assert.True(t, ok)

	assert.True(t, lib.Remove(path))
	assert.False(t, lib.Remove(path))
	assert.Equal(t, 0, lib.Count())
}
