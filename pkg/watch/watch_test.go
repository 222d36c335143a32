package watch_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenModelica/modelica-language-server/pkg/project"
	"github.com/OpenModelica/modelica-language-server/pkg/synt"
	"github.com/OpenModelica/modelica-language-server/pkg/synttest"
	"github.com/OpenModelica/modelica-language-server/pkg/watch"
)

func fakeParser() synt.Parser {
	return &synttest.Parser{
		Build: func(source []byte) (*synttest.Tree, error) {
			root := synttest.New("stored_definitions", string(source), 0, uint32(len(source)), synt.Point{}, synt.Point{})
			return synttest.NewTree(root, false), nil
		},
	}
}

func TestWatcherReloadsWrittenFile(t *testing.T) {
	root := t.TempDir()
	proj := project.New(fakeParser(), nil)

	w, err := watch.New(proj, watch.Options{DebounceDelay: 20 * time.Millisecond}, nil)
	require.NoError(t, err)
	defer w.Stop()
	require.NoError(t, w.Start(root))

	path := filepath.Join(root, "Thing.mo")
	require.NoError(t, os.WriteFile(path, []byte("class Thing end Thing;"), 0o644))

	require.Eventually(t, func() bool {
		doc, ok := proj.GetDocument(path, project.GetOptions{Load: boolPtr(false)})
		return ok && string(doc.Text()) == "class Thing end Thing;"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWatcherRemovesDeletedFile(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "Thing.mo")
	require.NoError(t, os.WriteFile(path, []byte("class Thing end Thing;"), 0o644))

	proj := project.New(fakeParser(), nil)
	_, err := proj.AddDocument(path)
	require.NoError(t, err)

	w, err := watch.New(proj, watch.Options{DebounceDelay: 20 * time.Millisecond}, nil)
	require.NoError(t, err)
	defer w.Stop()
	require.NoError(t, w.Start(root))

	require.NoError(t, os.Remove(path))

	require.Eventually(t, func() bool {
		_, ok := proj.GetDocument(path, project.GetOptions{Load: boolPtr(false)})
		return !ok
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWatcherIgnoresNonModelicaFiles(t *testing.T) {
	root := t.TempDir()
	proj := project.New(fakeParser(), nil)

	w, err := watch.New(proj, watch.Options{DebounceDelay: 20 * time.Millisecond}, nil)
	require.NoError(t, err)
	defer w.Stop()
	require.NoError(t, w.Start(root))

	path := filepath.Join(root, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("ignored"), 0o644))

	time.Sleep(100 * time.Millisecond)
	_, ok := proj.GetDocument(path, project.GetOptions{Load: boolPtr(false)})
	assert.False(t, ok)
}

func boolPtr(b bool) *bool { return &b }
