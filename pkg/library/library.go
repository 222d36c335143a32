// Package library implements the Library component: a directory crawl
// over a Modelica library's .mo files into loaded Documents, keyed by
// filesystem path.
package library

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/OpenModelica/modelica-language-server/pkg/document"
	"github.com/OpenModelica/modelica-language-server/pkg/synt"
)

// modelicaGlob matches every Modelica source file under a library root.
const modelicaGlob = "**/*.mo"

// Library owns a root directory and the set of Documents loaded from
// it. Its name is the basename of its root directory; that name is
// also the first component of every contained document's package
// path.
type Library struct {
	root        string
	name        string
	isWorkspace bool

	mu   sync.RWMutex
	docs map[string]*document.Document
}

// New constructs an empty library rooted at root. isWorkspace is
// carried as metadata only (it does not change resolution behavior).
func New(root string, isWorkspace bool) *Library {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = root
	}
	return &Library{
		root:        abs,
		name:        filepath.Base(abs),
		isWorkspace: isWorkspace,
		docs:        make(map[string]*document.Document),
	}
}

// Name is the basename of the library's root directory.
func (l *Library) Name() string { return l.name }

// RootPath is the library's root directory, implementing
// document.LibraryRef.
func (l *Library) RootPath() string { return l.root }

// IsWorkspace reports whether this library is a user workspace (as
// opposed to an installed library). Metadata only.
func (l *Library) IsWorkspace() bool { return l.isWorkspace }

// Load walks the library root for files matching **/*.mo, parsing
// each one into a Document via parser. Errors reading or parsing
// individual files are collected but do not abort the walk.
func (l *Library) Load(parser synt.Parser, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	var loadErrors []error
	err := filepath.WalkDir(l.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("library walk error", "path", path, "error", err)
			return nil
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(l.root, path)
		if err != nil {
			rel = path
		}
		matched, _ := doublestar.PathMatch(modelicaGlob, filepath.ToSlash(rel))
		if !matched {
			return nil
		}

		doc, err := document.Load(path, parser, l, logger)
		if err != nil {
			logger.Warn("failed to load library document", "path", path, "error", err)
			loadErrors = append(loadErrors, err)
			return nil
		}

		l.mu.Lock()
		l.docs[path] = doc
		l.mu.Unlock()
		return nil
	})
	if err != nil {
		return fmt.Errorf("library: walk %q: %w", l.root, err)
	}
	if len(loadErrors) > 0 {
		logger.Warn("library loaded with errors", "root", l.root, "failed_files", len(loadErrors))
	}
	return nil
}

// Contains reports whether path lies on disk under the library's root.
func (l *Library) Contains(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	rel, err := filepath.Rel(l.root, abs)
	if err != nil {
		return false
	}
	return rel != ".." && !hasDotDotPrefix(rel)
}

func hasDotDotPrefix(rel string) bool {
	rel = filepath.ToSlash(rel)
	return len(rel) >= 3 && rel[:3] == "../"
}

// Get returns the document at path, and whether it was present.
func (l *Library) Get(path string) (*document.Document, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	doc, ok := l.docs[path]
	return doc, ok
}

// Put inserts or replaces the document at path.
func (l *Library) Put(path string, doc *document.Document) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.docs[path] = doc
}

// Remove deletes the document at path, reporting whether it was
// present.
func (l *Library) Remove(path string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.docs[path]; !ok {
		return false
	}
	delete(l.docs, path)
	return true
}

// Documents returns a snapshot of every loaded document's path.
func (l *Library) Documents() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	paths := make([]string, 0, len(l.docs))
	for p := range l.docs {
		paths = append(paths, p)
	}
	return paths
}

// Count returns the number of loaded documents.
func (l *Library) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.docs)
}
