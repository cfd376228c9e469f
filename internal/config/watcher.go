package config

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"
)

// DefaultPollInterval is how often Watcher checks the config file.
const DefaultPollInterval = time.Second

// Watcher polls the config file and reloads it when its modification
// time moves forward. Invalid files are reported and the last good
// config is kept.
type Watcher struct {
	mu     sync.RWMutex
	logger *slog.Logger

	path         string
	lastModTime  time.Time
	current      *Config
	pollInterval time.Duration

	onReload func(cfg *Config)
	onError  func(err error)

	stopCh chan struct{}
	doneCh chan struct{}

	running bool
}

// NewWatcher creates a Watcher for the config file at path. An empty
// path watches ConfigPath().
func NewWatcher(path string, logger *slog.Logger) *Watcher {
	if path == "" {
		path = ConfigPath()
	}
	return &Watcher{
		logger:       logger,
		path:         path,
		pollInterval: DefaultPollInterval,
	}
}

// SetPollInterval sets the polling interval for file changes.
func (w *Watcher) SetPollInterval(interval time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pollInterval = interval
}

// OnReload sets the callback run with each successfully reloaded config.
func (w *Watcher) OnReload(fn func(cfg *Config)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onReload = fn
}

// OnError sets the callback run when a changed file fails to load.
func (w *Watcher) OnError(fn func(err error)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onError = fn
}

// Start begins polling. initial is the config currently in use.
func (w *Watcher) Start(ctx context.Context, initial *Config) {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.current = initial

	if info, err := os.Stat(w.path); err == nil {
		w.lastModTime = info.ModTime()
	}

	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	interval := w.pollInterval
	w.mu.Unlock()

	go w.watchLoop(ctx, interval)

	w.logger.Debug("config watcher started", "path", w.path, "interval", interval)
}

// Stop stops polling and waits for the loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	close(w.stopCh)
	w.mu.Unlock()

	<-w.doneCh
	w.logger.Debug("config watcher stopped")
}

// Current returns the last successfully loaded config.
func (w *Watcher) Current() *Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

func (w *Watcher) watchLoop(ctx context.Context, interval time.Duration) {
	defer close(w.doneCh)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.checkForChanges()
		}
	}
}

func (w *Watcher) checkForChanges() {
	w.mu.RLock()
	onReload := w.onReload
	onError := w.onError
	lastModTime := w.lastModTime
	w.mu.RUnlock()

	info, err := os.Stat(w.path)
	if err != nil {
		if !os.IsNotExist(err) {
			w.logger.Debug("failed to stat config file", "path", w.path, "error", err)
		}
		return
	}

	modTime := info.ModTime()
	if !modTime.After(lastModTime) {
		return
	}

	w.mu.Lock()
	w.lastModTime = modTime
	w.mu.Unlock()

	cfg, err := LoadConfig(w.path)
	if err != nil {
		w.logger.Warn("config file changed but failed to load", "path", w.path, "error", err)
		if onError != nil {
			onError(err)
		}
		return
	}

	w.mu.Lock()
	w.current = cfg
	w.mu.Unlock()

	w.logger.Info("config reloaded", "path", w.path)
	if onReload != nil {
		onReload(cfg)
	}
}
