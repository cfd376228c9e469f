package audio

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/jmylchreest/toastui/internal/sound"
)

// Watcher watches the user sounds directory and invalidates cached buffers
// when a sound file changes.
type Watcher struct {
	watcher    *fsnotify.Watcher
	dir        string
	invalidate func(name string)
	logger     *slog.Logger
	done       chan struct{}
	mu         sync.Mutex
	running    bool
	watching   bool
}

// NewWatcher creates a watcher for dir. invalidate receives the path of
// every changed sound file.
func NewWatcher(dir string, invalidate func(name string), logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		watcher:    watcher,
		dir:        dir,
		invalidate: invalidate,
		logger:     logger,
		done:       make(chan struct{}),
	}, nil
}

// Start begins watching. A missing directory leaves the watcher idle.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}
	w.running = true

	if w.dir == "" {
		return nil
	}
	if _, err := os.Stat(w.dir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			w.logger.Debug("sounds directory does not exist, not watching", "dir", w.dir)
			return nil
		}
		return err
	}
	if err := w.watcher.Add(w.dir); err != nil {
		return err
	}
	w.watching = true

	go w.watch(ctx)
	return nil
}

// Dir returns the watched directory.
func (w *Watcher) Dir() string {
	return w.dir
}

// Watching reports whether the directory is being watched.
func (w *Watcher) Watching() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.watching
}

func (w *Watcher) watch(ctx context.Context) {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !isSoundFile(event.Name) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				w.logger.Debug("sound file changed", "file", event.Name, "op", event.Op.String())
				w.invalidate(event.Name)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("sounds watcher error", "error", err)

		case <-ctx.Done():
			return

		case <-w.done:
			return
		}
	}
}

func isSoundFile(name string) bool {
	return slices.Contains(sound.Extensions, strings.ToLower(filepath.Ext(name)))
}

// Stop stops the watcher. It is safe to call more than once.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	select {
	case <-w.done:
		return nil
	default:
	}
	close(w.done)
	w.running = false
	w.watching = false
	return w.watcher.Close()
}
