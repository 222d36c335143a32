// Package project implements the Project component: the container
// holding loaded libraries and documents, enforcing library-membership
// invariants and bounding in-memory document count for large installed
// libraries via an LRU eviction policy.
package project

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/OpenModelica/modelica-language-server/pkg/document"
	"github.com/OpenModelica/modelica-language-server/pkg/library"
	"github.com/OpenModelica/modelica-language-server/pkg/rerr"
	"github.com/OpenModelica/modelica-language-server/pkg/synt"
	"github.com/OpenModelica/modelica-language-server/pkg/treeutil"
)

// defaultLRUSize bounds how many fully-parsed documents stay resident
// at once. Installed libraries (the Modelica Standard Library and
// third-party packages) can run to thousands of files; documents
// evicted here are simply reparsed from disk the next time they're
// needed, via GetDocument's load-on-miss behavior.
const defaultLRUSize = 4096

// GetOptions controls GetDocument's miss behavior.
type GetOptions struct {
	// Load, when false, disables the load-on-miss fallback: a document
	// not already resident is reported absent rather than read from
	// disk.
	Load *bool
}

func (o GetOptions) shouldLoad() bool {
	return o.Load == nil || *o.Load
}

// Project owns an ordered list of libraries and a reference to the
// parser shared by every document they contain.
type Project struct {
	parser synt.Parser
	logger *slog.Logger

	mu        sync.RWMutex
	libraries []*library.Library

	recent *lru.Cache[string, *library.Library]
}

// New constructs an empty project bound to parser.
func New(parser synt.Parser, logger *slog.Logger) *Project {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Project{parser: parser, logger: logger}
	cache, err := lru.NewWithEvict(defaultLRUSize, p.onEvict)
	if err != nil {
		// Only returns an error for a non-positive size, which
		// defaultLRUSize never is.
		panic(err)
	}
	p.recent = cache
	return p
}

func (p *Project) onEvict(path string, lib *library.Library) {
	if doc, ok := lib.Get(path); ok {
		doc.Close()
	}
	lib.Remove(path)
	p.logger.Debug("evicted document from in-memory cache", "path", path, "library", lib.Name())
}

// AddLibrary appends library to the project. Library names must be
// unique within a project; a duplicate name is an invariant violation.
func (p *Project) AddLibrary(lib *library.Library) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, existing := range p.libraries {
		if existing.Name() == lib.Name() {
			rerr.Invariant(fmt.Sprintf("project: duplicate library name %q", lib.Name()))
		}
	}
	p.libraries = append(p.libraries, lib)
	for _, path := range lib.Documents() {
		p.recent.Add(path, lib)
	}
}

// Libraries returns a snapshot of the project's libraries, in
// insertion order.
func (p *Project) Libraries() []*library.Library {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]*library.Library(nil), p.libraries...)
}

// LibraryByName returns the unique library with the given name, or nil.
func (p *Project) LibraryByName(name string) *library.Library {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, lib := range p.libraries {
		if lib.Name() == name {
			return lib
		}
	}
	return nil
}

// ownerOf finds the unique library whose root is an ancestor of path.
func (p *Project) ownerOf(path string) *library.Library {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, lib := range p.libraries {
		if lib.Contains(abs) {
			return lib
		}
	}
	return nil
}

// AddDocument locates the unique library whose root is an ancestor of
// path, loads the file, and inserts it under that library. If no
// library matches, the document is loaded as a standalone library
// rooted at its containing directory, but only when the file has no
// within clause naming a package (no clause at all, or a bare
// "within;"); otherwise AddDocument fails since the document cannot be
// placed in any known library.
func (p *Project) AddDocument(path string) (*document.Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	if lib := p.ownerOf(abs); lib != nil {
		if doc, ok := lib.Get(abs); ok {
			return doc, nil
		}
		doc, err := document.Load(abs, p.parser, lib, p.logger)
		if err != nil {
			return nil, fmt.Errorf("project: load %q: %w: %w", abs, rerr.ErrInternal, err)
		}
		lib.Put(abs, doc)
		p.recent.Add(abs, lib)
		return doc, nil
	}

	standalone := library.New(filepath.Dir(abs), false)
	doc, err := document.Load(abs, p.parser, standalone, p.logger)
	if err != nil {
		return nil, fmt.Errorf("project: load %q: %w: %w", abs, rerr.ErrInternal, err)
	}
	within := treeutil.FindFirst(doc.Tree().RootNode(), func(n synt.Node) bool {
		return n.Kind() == treeutil.KindWithinClause
	})
	if within != nil && within.ChildByFieldName(treeutil.FieldName) != nil {
		doc.Close()
		return nil, fmt.Errorf("project: %q does not belong to any known library: %w", abs, rerr.ErrNotFound)
	}

	standalone.Put(abs, doc)
	p.mu.Lock()
	p.libraries = append(p.libraries, standalone)
	p.mu.Unlock()
	p.recent.Add(abs, standalone)
	return doc, nil
}

// GetDocument returns the document at path. On a cache miss it
// attempts AddDocument unless opts.Load is explicitly false.
func (p *Project) GetDocument(path string, opts GetOptions) (*document.Document, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	if lib := p.ownerOf(abs); lib != nil {
		if doc, ok := lib.Get(abs); ok {
			p.recent.Get(abs)
			return doc, true
		}
	}

	if !opts.shouldLoad() {
		return nil, false
	}

	doc, err := p.AddDocument(abs)
	if err != nil {
		if errors.Is(err, rerr.ErrInternal) {
			p.logger.Warn("project: treating load failure as not-found", "path", abs, "error", err)
		}
		return nil, false
	}
	return doc, true
}

// UpdateDocument finds the document at path and updates it in place.
// If text is replacing the whole buffer (r is nil) it performs a
// full-text update; otherwise an incremental update within r.
func (p *Project) UpdateDocument(path string, text string, r *document.Range) bool {
	doc, ok := p.GetDocument(path, GetOptions{})
	if !ok {
		return false
	}
	var err error
	if r == nil {
		err = doc.FullTextUpdate([]byte(text))
	} else {
		err = doc.IncrementalUpdate(*r, text)
	}
	if err != nil {
		p.logger.Warn("update document failed", "path", path, "error", err)
		return false
	}
	return true
}

// RemoveDocument removes the document at path from its library,
// reporting whether anything was removed.
func (p *Project) RemoveDocument(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	lib := p.ownerOf(abs)
	if lib == nil {
		return false
	}
	if doc, ok := lib.Get(abs); ok {
		doc.Close()
	}
	removed := lib.Remove(abs)
	p.recent.Remove(abs)
	return removed
}

// Parser returns the project's shared parser.
func (p *Project) Parser() synt.Parser { return p.parser }
