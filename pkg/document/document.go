// Package document implements the parsed text buffer that anchors a
// single Modelica source file: its syntax tree, its derived package
// path, and incremental edit application.
package document

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/edsrzf/mmap-go"

	"github.com/OpenModelica/modelica-language-server/pkg/rerr"
	"github.com/OpenModelica/modelica-language-server/pkg/synt"
)

// mmapThreshold is the file size above which Load memory-maps the file
// instead of reading it into a owned buffer. Small files aren't worth
// the syscall/descriptor overhead; large installed-library sources are.
const mmapThreshold = 32 * 1024

// LibraryRef is the narrow view of a library a document needs: its
// name (the first component of every contained document's package
// path) and its root directory (to compute the package path from a
// file's location).
type LibraryRef interface {
	Name() string
	RootPath() string
}

// Document owns a text buffer, a syntax tree synchronized with that
// buffer, an identity, a library back-reference, and a derived
// package/within path.
type Document struct {
	path    string
	uri     string
	library LibraryRef

	packagePath []string
	withinPath  []string

	parser synt.Parser
	tree   synt.Tree

	text       []byte
	mapped     mmap.MMap
	file       *os.File
	lineStarts []uint32

	version uint64

	logger *slog.Logger
}

// Load reads path's content (memory-mapping it when large), parses it
// with parser, and constructs the Document bound to library.
func Load(path string, parser synt.Parser, library LibraryRef, logger *slog.Logger) (*Document, error) {
	if logger == nil {
		logger = slog.Default()
	}

	text, mapped, file, err := readFile(path, logger)
	if err != nil {
		return nil, fmt.Errorf("document: load %q: %w", path, err)
	}

	tree, err := parser.Parse(text)
	if err != nil {
		if mapped != nil {
			_ = mapped.Unmap()
		}
		if file != nil {
			_ = file.Close()
		}
		return nil, fmt.Errorf("document: parse %q: %w", path, err)
	}

	pkgPath, withinPath := derivePaths(path, library)

	d := &Document{
		path:        path,
		uri:         "file://" + filepath.ToSlash(path),
		library:     library,
		packagePath: pkgPath,
		withinPath:  withinPath,
		parser:      parser,
		tree:        tree,
		text:        text,
		mapped:      mapped,
		file:        file,
		version:     1,
		logger:      logger,
	}
	d.rebuildLineStarts()
	return d, nil
}

func readFile(path string, logger *slog.Logger) (text []byte, mapped mmap.MMap, file *os.File, err error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, nil, err
	}
	if info.Size() < mmapThreshold {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, nil, err
		}
		return data, nil, nil, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, nil, err
	}
	m, mmapErr := mmap.Map(f, mmap.RDONLY, 0)
	if mmapErr != nil {
		logger.Warn("mmap failed, falling back to ReadFile", "path", path, "error", mmapErr)
		_ = f.Close()
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, nil, err
		}
		return data, nil, nil, nil
	}
	return []byte(m), m, f, nil
}

// derivePaths computes the package path and within path of a file from
// its location relative to the library root: <libRoot>/A/B/C.mo has
// package path [libName, A, B, C]; <libRoot>/A/B/package.mo drops its
// own filename, giving [libName, A, B]. The within path drops the
// package path's last component.
func derivePaths(path string, library LibraryRef) (packagePath, withinPath []string) {
	name := library.Name()
	rel, err := filepath.Rel(library.RootPath(), path)
	if err != nil {
		rel = filepath.Base(path)
	}
	rel = filepath.ToSlash(rel)
	segments := strings.Split(rel, "/")

	base := strings.TrimSuffix(segments[len(segments)-1], filepath.Ext(segments[len(segments)-1]))
	dirs := segments[:len(segments)-1]

	pkgPath := make([]string, 0, len(dirs)+2)
	pkgPath = append(pkgPath, name)
	pkgPath = append(pkgPath, dirs...)
	if base != "package" {
		pkgPath = append(pkgPath, base)
	}

	within := make([]string, 0, len(pkgPath))
	if len(pkgPath) > 0 {
		within = append(within, pkgPath[:len(pkgPath)-1]...)
	}
	return pkgPath, within
}

func (d *Document) rebuildLineStarts() {
	starts := []uint32{0}
	for i, b := range d.text {
		if b == '\n' {
			starts = append(starts, uint32(i+1))
		}
	}
	d.lineStarts = starts
}

// Path is the document's absolute filesystem path. Implements
// reference.DocumentRef.
func (d *Document) Path() string { return d.path }

// URI is the document's editor-facing identity.
func (d *Document) URI() string { return d.uri }

// Library returns the owning library.
func (d *Document) Library() LibraryRef { return d.library }

// PackagePath is the sequence of identifiers corresponding to the
// class this file defines.
func (d *Document) PackagePath() []string { return d.packagePath }

// WithinPath is the package path with its last component dropped.
func (d *Document) WithinPath() []string { return d.withinPath }

// Text returns the current buffer contents. Callers must not retain or
// mutate the returned slice across an update.
func (d *Document) Text() []byte { return d.text }

// Version is a counter strictly increasing across updates.
func (d *Document) Version() uint64 { return d.version }

// LineCount returns the number of lines in the buffer.
func (d *Document) LineCount() int { return len(d.lineStarts) }

// Tree returns the current syntax tree.
func (d *Document) Tree() synt.Tree { return d.tree }

// OffsetForPosition converts a (row, column) position into a byte
// offset, clamping to the buffer's bounds.
func (d *Document) OffsetForPosition(pos synt.Point) uint32 {
	row := int(pos.Row)
	if row < 0 {
		row = 0
	}
	if row >= len(d.lineStarts) {
		return uint32(len(d.text))
	}
	offset := d.lineStarts[row] + pos.Column
	if offset > uint32(len(d.text)) {
		offset = uint32(len(d.text))
	}
	return offset
}

// PositionForOffset converts a byte offset into a (row, column)
// position.
func (d *Document) PositionForOffset(offset uint32) synt.Point {
	row := sort.Search(len(d.lineStarts), func(i int) bool {
		return d.lineStarts[i] > offset
	}) - 1
	if row < 0 {
		row = 0
	}
	return synt.Point{Row: uint32(row), Column: offset - d.lineStarts[row]}
}

// closeBacking releases the previous buffer's mmap/file handle, if any.
func (d *Document) closeBacking() {
	if d.mapped != nil {
		_ = d.mapped.Unmap()
		d.mapped = nil
	}
	if d.file != nil {
		_ = d.file.Close()
		d.file = nil
	}
}

// FullTextUpdate replaces the buffer and reparses from scratch,
// producing a fresh tree.
func (d *Document) FullTextUpdate(text []byte) error {
	tree, err := d.parser.Parse(text)
	if err != nil {
		return fmt.Errorf("document: full-text update %q: %w", d.path, err)
	}
	if d.tree != nil {
		d.tree.Close()
	}
	d.closeBacking()

	d.text = append([]byte(nil), text...)
	d.tree = tree
	d.rebuildLineStarts()
	d.version++
	return nil
}

// Range is a half-open (startLine,startCol)-(endLine,endCol) span,
// using 0-based rows and byte columns.
type Range struct {
	Start synt.Point
	End   synt.Point
}

// IncrementalUpdate applies a single text replacement within range,
// rebases the syntax tree via the parser's incremental-edit API, then
// reparses using that tree as a hint.
func (d *Document) IncrementalUpdate(r Range, replacement string) error {
	startOffset := d.OffsetForPosition(r.Start)
	oldEndOffset := d.OffsetForPosition(r.End)
	if oldEndOffset < startOffset {
		rerr.Invariant("document: incremental update range end precedes start")
	}

	newText := make([]byte, 0, len(d.text)-int(oldEndOffset-startOffset)+len(replacement))
	newText = append(newText, d.text[:startOffset]...)
	newText = append(newText, replacement...)
	newText = append(newText, d.text[oldEndOffset:]...)

	newEndOffset := startOffset + uint32(len(replacement))

	edit := synt.Edit{
		StartByte:      startOffset,
		OldEndByte:     oldEndOffset,
		NewEndByte:     newEndOffset,
		StartPosition:  r.Start,
		OldEndPosition: r.End,
		NewEndPosition: d.positionAfterInsert(r.Start, replacement),
	}

	newTree, err := d.parser.ParseIncremental(newText, d.tree, edit)
	if err != nil {
		return fmt.Errorf("document: incremental update %q: %w", d.path, err)
	}

	if d.tree != nil {
		d.tree.Close()
	}
	d.closeBacking()

	d.text = newText
	d.tree = newTree
	d.rebuildLineStarts()
	d.version++
	return nil
}

// positionAfterInsert computes the end position of replacement text
// inserted starting at start.
func (d *Document) positionAfterInsert(start synt.Point, replacement string) synt.Point {
	newlines := strings.Count(replacement, "\n")
	if newlines == 0 {
		return synt.Point{Row: start.Row, Column: start.Column + uint32(len(replacement))}
	}
	lastLine := replacement[strings.LastIndex(replacement, "\n")+1:]
	return synt.Point{Row: start.Row + uint32(newlines), Column: uint32(len(lastLine))}
}

// Close releases the document's tree and any mmap'd buffer.
func (d *Document) Close() {
	if d.tree != nil {
		d.tree.Close()
		d.tree = nil
	}
	d.closeBacking()
}
