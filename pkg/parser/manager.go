// Package parser wraps github.com/tree-sitter/go-tree-sitter behind the
// synt.Parser interface the document model depends on. The concrete
// Modelica grammar is an external collaborator: Manager is handed an
// unsafe.Pointer to a compiled tree-sitter language and never hardcodes
// which grammar that is, pooling parsers bound to that one
// caller-supplied language.
package parser

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"unsafe"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/OpenModelica/modelica-language-server/pkg/synt"
	"github.com/OpenModelica/modelica-language-server/pkg/tsnode"
)

// Manager parses Modelica source using a pool of tree-sitter parsers
// bound to a single injected grammar.
type Manager struct {
	pool   *parserPool
	logger *slog.Logger

	mu           sync.Mutex
	parsesCalled atomic.Int64
}

// Config controls Manager construction.
type Config struct {
	// Grammar is the compiled tree-sitter language for Modelica, as an
	// unsafe.Pointer suitable for ts.NewLanguage. Supplied by the
	// embedding application; the core never links a concrete grammar.
	Grammar unsafe.Pointer

	// PoolSize overrides the default CPU-based pool size. Zero means
	// use the default.
	PoolSize int

	Logger *slog.Logger
}

// NewManager constructs a Manager bound to config.Grammar.
func NewManager(config Config) *Manager {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	size := poolSizeWithOverride(config.PoolSize)
	return &Manager{
		pool:   newParserPool(config.Grammar, size, logger),
		logger: logger,
	}
}

// Parse parses source from scratch and returns the resulting tree.
func (m *Manager) Parse(source []byte) (synt.Tree, error) {
	m.parsesCalled.Add(1)

	p, err := m.pool.acquire()
	if err != nil {
		return nil, fmt.Errorf("acquire parser: %w", err)
	}
	defer m.pool.release(p)

	tree := p.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("parser returned nil tree")
	}

	wrapped := tsnode.WrapTree(tree, source)
	if wrapped.HasError() {
		m.logger.Warn("parse tree contains errors")
	}
	return wrapped, nil
}

// ParseIncremental rebases oldTree by edit and reparses, pulling text
// from source through the parser's byte-offset read callback.
func (m *Manager) ParseIncremental(source []byte, oldTree synt.Tree, edit synt.Edit) (synt.Tree, error) {
	wrapped, ok := oldTree.(*tsnode.Tree)
	if !ok || wrapped == nil {
		return nil, fmt.Errorf("ParseIncremental: oldTree was not produced by this parser")
	}
	wrapped.Edit(edit)

	m.parsesCalled.Add(1)

	p, err := m.pool.acquire()
	if err != nil {
		return nil, fmt.Errorf("acquire parser: %w", err)
	}
	defer m.pool.release(p)

	read := func(offset uint32, _ ts.Point) []byte {
		if int(offset) >= len(source) {
			return nil
		}
		end := offset + 4096
		if end > uint32(len(source)) {
			end = uint32(len(source))
		}
		return source[offset:end]
	}

	tree := p.ParseWithOptions(read, wrapped.Underlying(), nil)
	if tree == nil {
		return nil, fmt.Errorf("parser returned nil tree")
	}

	newWrapped := tsnode.WrapTree(tree, source)
	if newWrapped.HasError() {
		m.logger.Warn("incremental reparse produced errors")
	}
	return newWrapped, nil
}

// Close releases the parser pool.
func (m *Manager) Close() {
	m.pool.close()
	m.logger.Info("parser manager closed", "parses_called", m.parsesCalled.Load())
}
