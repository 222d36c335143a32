// Package watch is an external collaborator, never called by the
// resolver itself, that turns filesystem change notifications into
// calls on a project: write/create debounce into a full-text
// UpdateDocument, remove/rename into RemoveDocument.
package watch

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/OpenModelica/modelica-language-server/pkg/project"
)

// Options controls Watcher behavior.
type Options struct {
	// DebounceDelay groups rapid writes to the same file into a single
	// reload. Zero selects the default of 200ms.
	DebounceDelay time.Duration

	// IgnoreDirs lists directory basenames never descended into, e.g.
	// version-control metadata.
	IgnoreDirs []string
}

func (o Options) withDefaults() Options {
	if o.DebounceDelay <= 0 {
		o.DebounceDelay = 200 * time.Millisecond
	}
	if o.IgnoreDirs == nil {
		o.IgnoreDirs = []string{".git"}
	}
	return o
}

// Watcher watches a library root for .mo file changes and replays
// them onto a project.
type Watcher struct {
	fs      *fsnotify.Watcher
	project *project.Project
	logger  *slog.Logger
	options Options

	debounceMu sync.Mutex
	timers     map[string]*time.Timer

	stopOnce sync.Once
	stopCh   chan struct{}
}

// New creates a Watcher over proj. Call Start to begin watching a
// root directory.
func New(proj *project.Project, options Options, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create watcher: %w", err)
	}
	return &Watcher{
		fs:      fsWatcher,
		project: proj,
		logger:  logger,
		options: options.withDefaults(),
		timers:  make(map[string]*time.Timer),
		stopCh:  make(chan struct{}),
	}, nil
}

// Start adds rootPath and every non-ignored subdirectory to the
// watch set, then begins the background event loop.
func (w *Watcher) Start(rootPath string) error {
	err := filepath.WalkDir(rootPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if w.shouldIgnore(path) {
			return filepath.SkipDir
		}
		if err := w.fs.Add(path); err != nil {
			w.logger.Warn("watch: failed to watch directory", "path", path, "error", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("watch: walk %q: %w", rootPath, err)
	}

	go w.eventLoop()
	w.logger.Info("watcher started", "root", rootPath)
	return nil
}

// Stop terminates the event loop and closes the underlying fsnotify
// watcher. Safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		_ = w.fs.Close()
	})
}

func (w *Watcher) eventLoop() {
	for {
		select {
		case <-w.stopCh:
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Error("watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if w.shouldIgnore(event.Name) {
		return
	}
	if !strings.HasSuffix(event.Name, ".mo") {
		return
	}

	switch {
	case event.Op&(fsnotify.Write|fsnotify.Create) != 0:
		w.debounceReload(event.Name)
	case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		w.project.RemoveDocument(event.Name)
	}
}

func (w *Watcher) debounceReload(path string) {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if t, ok := w.timers[path]; ok {
		t.Stop()
	}
	w.timers[path] = time.AfterFunc(w.options.DebounceDelay, func() {
		w.reload(path)
		w.debounceMu.Lock()
		delete(w.timers, path)
		w.debounceMu.Unlock()
	})
}

func (w *Watcher) reload(path string) {
	content, err := os.ReadFile(path)
	if err != nil {
		w.logger.Warn("watch: failed to read changed file", "path", path, "error", err)
		return
	}
	if !w.project.UpdateDocument(path, string(content), nil) {
		if _, err := w.project.AddDocument(path); err != nil {
			w.logger.Warn("watch: failed to load new file", "path", path, "error", err)
		}
	}
}

func (w *Watcher) shouldIgnore(path string) bool {
	base := filepath.Base(path)
	for _, dir := range w.options.IgnoreDirs {
		if base == dir {
			return true
		}
	}
	return false
}
