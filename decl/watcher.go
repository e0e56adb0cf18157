package decl

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatcherConfig configures the declaration file watcher.
type WatcherConfig struct {
	// Roots are the directories to watch recursively.
	Roots []string

	// Debounce is how long to wait for further changes before emitting
	// events, collapsing editor save bursts.
	Debounce time.Duration

	// Logger for watcher lifecycle and event logging.
	Logger *slog.Logger
}

// Event is a debounced declaration file change.
type Event struct {
	Path string
	Op   Op
}

// Op indicates the type of file operation.
type Op string

const (
	OpCreate Op = "create"
	OpModify Op = "modify"
	OpDelete Op = "delete"
)

// Watcher watches directory trees for declaration file changes. Events
// are debounced: rapid successive writes to one file emit one event.
type Watcher struct {
	config  WatcherConfig
	watcher *fsnotify.Watcher
	logger  *slog.Logger

	// Debouncing: collect changes before emitting.
	pendingMu sync.Mutex
	pending   map[string]fsnotify.Op

	events chan Event
}

// NewWatcher creates a declaration file watcher.
func NewWatcher(config WatcherConfig) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if config.Debounce == 0 {
		config.Debounce = 100 * time.Millisecond
	}

	return &Watcher{
		config:  config,
		watcher: fsw,
		logger:  logger,
		pending: make(map[string]fsnotify.Op),
		events:  make(chan Event, 16),
	}, nil
}

// Events returns the channel of watch events. It is closed when the
// watcher stops.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Start begins watching the configured roots. The event channel closes
// when ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	for _, root := range w.config.Roots {
		if err := w.addWatchesRecursive(root); err != nil {
			return err
		}
	}

	go w.processEvents(ctx)

	w.logger.Info("declaration watcher started",
		"roots", w.config.Roots,
		"debounce", w.config.Debounce)
	return nil
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

// addWatchesRecursive adds watches to all directories under root,
// skipping hidden and vendor directories.
func (w *Watcher) addWatchesRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}

		base := filepath.Base(path)
		if path != root && (base == "vendor" || strings.HasPrefix(base, ".")) {
			return filepath.SkipDir
		}

		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("failed to watch directory", "path", path, "error", err)
		} else {
			w.logger.Debug("watching directory", "path", path)
		}
		return nil
	})
}

// processEvents handles fsnotify events with debouncing. It owns the
// events channel and closes it on exit.
func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.events)

	ticker := time.NewTicker(w.config.Debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watcher error", "error", err)

		case <-ticker.C:
			w.flushPending()
		}
	}
}

// handleFSEvent accumulates a single fsnotify event.
func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	path := event.Name

	if !IsDeclPath(path) {
		// Watch newly created directories so declarations added later
		// are picked up.
		if event.Has(fsnotify.Create) {
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				w.handleNewDirectory(path)
			}
		}
		return
	}

	w.pendingMu.Lock()
	w.pending[path] = event.Op
	w.pendingMu.Unlock()

	w.logger.Debug("declaration change detected", "path", path, "op", event.Op.String())
}

// handleNewDirectory adds a watch to a newly created directory.
func (w *Watcher) handleNewDirectory(path string) {
	base := filepath.Base(path)
	if base == "vendor" || strings.HasPrefix(base, ".") {
		return
	}

	if err := w.watcher.Add(path); err != nil {
		w.logger.Warn("failed to watch new directory", "path", path, "error", err)
	} else {
		w.logger.Debug("added watch for new directory", "path", path)
	}
}

// flushPending emits accumulated changes.
func (w *Watcher) flushPending() {
	w.pendingMu.Lock()
	if len(w.pending) == 0 {
		w.pendingMu.Unlock()
		return
	}
	toEmit := w.pending
	w.pending = make(map[string]fsnotify.Op)
	w.pendingMu.Unlock()

	for path, op := range toEmit {
		event := Event{Path: path}

		switch {
		case op.Has(fsnotify.Remove) || op.Has(fsnotify.Rename):
			event.Op = OpDelete
		default:
			if _, err := os.Stat(path); os.IsNotExist(err) {
				event.Op = OpDelete
			} else if op.Has(fsnotify.Create) {
				event.Op = OpCreate
			} else {
				event.Op = OpModify
			}
		}

		w.sendEvent(event)
	}
}

// sendEvent sends an event without blocking the debounce loop.
func (w *Watcher) sendEvent(event Event) {
	select {
	case w.events <- event:
		w.logger.Debug("sent watch event", "path", event.Path, "op", event.Op)
	default:
		w.logger.Warn("event channel full, dropping event", "path", event.Path)
	}
}
