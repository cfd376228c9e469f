package display

import (
	"context"
	"log/slog"
	"sync"

	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/toastui/internal/config"
	"github.com/jmylchreest/toastui/internal/layout"
	"github.com/jmylchreest/toastui/internal/placement"
	"github.com/jmylchreest/toastui/internal/theme"
	"github.com/jmylchreest/toastui/internal/toast"
)

// Renderer materializes toasts as GTK windows. All methods except Invoke
// must be called on the GTK main thread.
type Renderer struct {
	app     *gtk.Application
	config  *config.Config
	logger  *slog.Logger
	display *gdk.Display

	mu       sync.Mutex
	provider *gtk.CSSProvider
	theme    *theme.Theme
	watcher  *theme.Watcher

	layerShell bool
	monitor    *gdk.Monitor
	origin     placement.Point
}

var _ toast.Renderer = (*Renderer)(nil)

// NewRenderer creates a renderer for app.
func NewRenderer(app *gtk.Application, cfg *config.Config, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Renderer{
		app:      app,
		config:   cfg,
		logger:   logger,
		provider: gtk.NewCSSProvider(),
	}
}

// Start connects to the default display, applies the configured theme and
// watches it for changes.
func (r *Renderer) Start(ctx context.Context) error {
	r.display = gdk.DisplayGetDefault()
	if r.display == nil {
		return &DisplayError{Message: "no display available"}
	}

	r.layerShell = layershell.IsSupported()
	if !r.layerShell {
		r.logger.Warn("layer-shell not supported, toasts will be placed by the window manager")
	}

	r.monitor = selectMonitor(r.display, r.config.Display.Monitor, r.logger)

	r.loadTheme()
	gtk.StyleContextAddProviderForDisplay(r.display, r.provider, gtk.STYLE_PROVIDER_PRIORITY_APPLICATION)
	r.startHotReload(ctx)

	r.logger.Debug("display renderer started", "layer_shell", r.layerShell, "theme", r.theme.Name)
	return nil
}

func (r *Renderer) loadTheme() {
	t, err := theme.Resolve(r.config.Theme.Name, config.ThemesDir())
	if err != nil {
		r.logger.Warn("theme not found, using default", "theme", r.config.Theme.Name, "error", err)
		t = theme.NewDefaultTheme()
	}

	r.mu.Lock()
	r.theme = t
	r.provider.LoadFromString(t.CSS)
	r.mu.Unlock()
}

func (r *Renderer) startHotReload(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.watcher = theme.NewWatcher(r.theme, func(css string) {
		glib.IdleAdd(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.provider.LoadFromString(css)
			r.logger.Info("hot-reloaded theme", "name", r.theme.Name)
		})
	}, r.logger)
	if !r.watcher.Start(ctx) {
		r.logger.Debug("not watching bundled theme", "name", r.theme.Name)
	}
}

// Stop stops theme hot-reload and detaches the theme provider.
func (r *Renderer) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.watcher != nil {
		r.watcher.Stop()
		r.watcher = nil
	}
	if r.display != nil {
		gtk.StyleContextRemoveProviderForDisplay(r.display, r.provider)
	}
}

// Render creates the hidden window for tree.
func (r *Renderer) Render(tree *layout.Tree, win toast.Window, events toast.Events) (toast.Surface, error) {
	if r.display == nil {
		return nil, &DisplayError{Message: "renderer not started"}
	}
	return newPopup(r, tree, win, events), nil
}

// Screen returns the selected monitor's geometry with the configured insets.
func (r *Renderer) Screen() (placement.Screen, error) {
	if r.monitor == nil {
		r.monitor = selectMonitor(r.display, r.config.Display.Monitor, r.logger)
	}
	if r.monitor == nil {
		return placement.Screen{}, &DisplayError{Message: "no monitor available"}
	}

	bounds := monitorRect(r.monitor)
	r.origin = placement.Point{X: bounds.X, Y: bounds.Y}
	return placement.Screen{Bounds: bounds, Insets: r.config.Display.Insets}, nil
}

// Invoke queues fn on the GTK main loop.
func (r *Renderer) Invoke(fn func()) {
	glib.IdleAdd(fn)
}

// DisplayError represents a display-related error.
type DisplayError struct {
	Message string
	Cause   error
}

func (e *DisplayError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *DisplayError) Unwrap() error {
	return e.Cause
}
