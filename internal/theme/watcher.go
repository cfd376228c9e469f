package theme

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultPollInterval is how often a user theme file is checked for changes.
const DefaultPollInterval = time.Second

// Watcher polls a user theme file and reports new CSS when it changes.
// Embedded themes are never watched.
type Watcher struct {
	mu       sync.Mutex
	logger   *slog.Logger
	theme    *Theme
	interval time.Duration
	onChange func(css string)
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewWatcher creates a watcher for theme. onChange receives the reloaded CSS
// on the watcher goroutine.
func NewWatcher(theme *Theme, onChange func(css string), logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		logger:   logger,
		theme:    theme,
		interval: DefaultPollInterval,
		onChange: onChange,
	}
}

// SetPollInterval sets the polling interval. It takes effect on the next Start.
func (w *Watcher) SetPollInterval(interval time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if interval > 0 {
		w.interval = interval
	}
}

// Start begins polling until ctx is cancelled or Stop is called.
// It reports whether polling was started.
func (w *Watcher) Start(ctx context.Context) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cancel != nil || w.theme == nil || w.theme.Embedded {
		return false
	}

	ctx, w.cancel = context.WithCancel(ctx)
	w.done = make(chan struct{})
	go w.loop(ctx, w.interval, w.done)

	w.logger.Debug("theme watcher started", "path", w.theme.Path, "interval", w.interval)
	return true
}

// Stop stops polling and waits for the goroutine to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	cancel, done := w.cancel, w.done
	w.cancel, w.done = nil, nil
	w.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	w.logger.Debug("theme watcher stopped")
}

// IsRunning returns whether the watcher is currently polling.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cancel != nil
}

func (w *Watcher) loop(ctx context.Context, interval time.Duration, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.check()
		}
	}
}

func (w *Watcher) check() {
	changed, err := w.theme.Reload()
	if err != nil {
		w.logger.Debug("failed to reload theme", "path", w.theme.Path, "error", err)
		return
	}
	if changed {
		w.logger.Info("theme file changed, reloading", "path", w.theme.Path)
		if w.onChange != nil {
			w.onChange(w.theme.CSS)
		}
	}
}
