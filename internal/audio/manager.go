package audio

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gen2brain/beeep"

	"github.com/jmylchreest/toastui/internal/config"
	"github.com/jmylchreest/toastui/internal/model"
	"github.com/jmylchreest/toastui/internal/sound"
)

// player is the playback backend used by Manager.
type player interface {
	Play(src sound.Source) error
	Preload(src sound.Source) error
	SetVolume(volume float64)
	InvalidateCache(name string)
	ClearCache()
	Close()
}

// Manager resolves toast sounds and plays them in the background.
type Manager struct {
	mu       sync.RWMutex
	logger   *slog.Logger
	player   player
	resolver *sound.Resolver
	watcher  *Watcher
	ctx      context.Context
	enabled  bool
	beep     func() error
	wg       sync.WaitGroup
}

// Option configures a Manager.
type Option func(*Manager)

// WithPlayer replaces the speaker-backed player.
func WithPlayer(p player) Option {
	return func(m *Manager) {
		if p != nil {
			m.player = p
		}
	}
}

// WithBeeper replaces the fallback bell rung when playback fails.
func WithBeeper(fn func() error) Option {
	return func(m *Manager) {
		if fn != nil {
			m.beep = fn
		}
	}
}

func systemBeep() error {
	return beeep.Beep(beeep.DefaultFreq, beeep.DefaultDuration)
}

// NewManager creates an audio manager from cfg. A nil cfg uses the defaults.
func NewManager(cfg *config.Config, logger *slog.Logger, opts ...Option) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	m := &Manager{
		logger: logger,
		beep:   systemBeep,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.player == nil {
		m.player = NewPlayer(logger)
	}
	m.apply(cfg)
	return m
}

func (m *Manager) apply(cfg *config.Config) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.enabled = cfg.Audio.Enabled
	m.resolver = sound.NewResolver(cfg.SoundsPath())
	m.player.SetVolume(float64(cfg.Audio.Volume) / 100.0)
}

// Start watches the sounds directory so edited files are decoded again.
// A missing directory is not an error.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.watcher != nil {
		return nil
	}
	w, err := m.startWatcher(ctx, m.resolver.Dir())
	if err != nil {
		return err
	}
	m.ctx = ctx
	m.watcher = w
	m.logger.Debug("audio manager started", "sounds_dir", w.Dir(), "watching", w.Watching())
	return nil
}

func (m *Manager) startWatcher(ctx context.Context, dir string) (*Watcher, error) {
	w, err := NewWatcher(dir, m.player.InvalidateCache, m.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create sounds watcher: %w", err)
	}
	if err := w.Start(ctx); err != nil {
		_ = w.Stop()
		return nil, fmt.Errorf("failed to watch sounds directory: %w", err)
	}
	return w, nil
}

// restartWatcher moves a running watcher to the resolver's directory.
func (m *Manager) restartWatcher() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.watcher == nil || m.watcher.Dir() == m.resolver.Dir() {
		return
	}
	_ = m.watcher.Stop()
	m.watcher = nil

	w, err := m.startWatcher(m.ctx, m.resolver.Dir())
	if err != nil {
		m.logger.Warn("failed to watch new sounds directory", "dir", m.resolver.Dir(), "error", err)
		return
	}
	m.watcher = w
	m.logger.Debug("sounds watcher moved", "sounds_dir", w.Dir(), "watching", w.Watching())
}

// WatchedDir returns the directory being watched, or "" before Start.
func (m *Manager) WatchedDir() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.watcher == nil {
		return ""
	}
	return m.watcher.Dir()
}

// Preload resolves s and decodes it ahead of Play. Disabled audio skips
// decoding but still reports a missing asset.
func (m *Manager) Preload(s model.Sound) error {
	m.mu.RLock()
	resolver := m.resolver
	enabled := m.enabled
	m.mu.RUnlock()

	src, err := resolver.Resolve(s)
	if err != nil {
		return err
	}
	if !enabled {
		return nil
	}
	if err := m.player.Preload(src); err != nil {
		return fmt.Errorf("failed to decode %s: %w", src.Name, err)
	}
	return nil
}

// Play resolves s and starts playing it. Only resolution errors are returned;
// playback failures are logged and answered with a bell.
func (m *Manager) Play(s model.Sound) error {
	m.mu.RLock()
	resolver := m.resolver
	enabled := m.enabled
	m.mu.RUnlock()

	src, err := resolver.Resolve(s)
	if err != nil {
		return err
	}
	if !enabled {
		m.logger.Debug("audio disabled, not playing", "sound", s)
		return nil
	}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		if err := m.player.Play(src); err != nil {
			m.logger.Warn("failed to play sound, ringing bell instead", "sound", src.Name, "error", err)
			if err := m.beep(); err != nil {
				m.logger.Debug("bell failed", "error", err)
			}
		}
	}()
	return nil
}

// Wait blocks until every started playback call has returned.
func (m *Manager) Wait() {
	m.wg.Wait()
}

// UpdateConfig applies a reloaded configuration and drops cached sounds.
func (m *Manager) UpdateConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	m.player.ClearCache()
	m.apply(cfg)
	m.restartWatcher()
	m.logger.Debug("audio manager config updated")
}

// Stop shuts down the watcher and the player.
func (m *Manager) Stop() {
	m.mu.Lock()
	w := m.watcher
	m.watcher = nil
	m.mu.Unlock()

	if w != nil {
		_ = w.Stop()
	}
	m.wg.Wait()
	m.player.Close()
	m.logger.Debug("audio manager stopped")
}
