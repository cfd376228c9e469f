package display

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/glib/v2"

	"github.com/jmylchreest/toastui/internal/config"
)

// AppID is the application ID registered with GTK.
const AppID = "io.github.jmylchreest.toastui"

// App runs the GTK main loop for a single toast session.
type App struct {
	app      *adw.Application
	cfg      *config.Config
	logger   *slog.Logger
	renderer *Renderer
	held     bool
}

// NewApp creates the libadwaita application.
func NewApp(cfg *config.Config, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &App{
		app:    adw.NewApplication(AppID, 0),
		cfg:    cfg,
		logger: logger,
	}
}

// Run starts the main loop and calls activate on the UI thread once the
// renderer is ready. An activate error quits the loop and is returned.
// The loop keeps running until Quit is called.
func (a *App) Run(ctx context.Context, activate func(r *Renderer) error) error {
	var runErr error

	a.app.ConnectActivate(func() {
		if a.renderer != nil {
			a.logger.Warn("application already running")
			return
		}
		a.app.Hold()
		a.held = true

		r := NewRenderer(&a.app.Application, a.cfg, a.logger)
		if err := r.Start(ctx); err != nil {
			runErr = err
			a.Quit()
			return
		}
		a.renderer = r

		if err := activate(r); err != nil {
			runErr = err
			a.Quit()
		}
	})

	a.app.ConnectShutdown(func() {
		a.logger.Debug("application shutting down")
		if a.renderer != nil {
			a.renderer.Stop()
		}
	})

	stop := context.AfterFunc(ctx, func() {
		glib.IdleAdd(a.Quit)
	})
	defer stop()

	// GTK must not see the CLI's own flags.
	if status := a.app.Run(os.Args[:1]); status != 0 && runErr == nil {
		runErr = &DisplayError{Message: fmt.Sprintf("application exited with status %d", status)}
	}
	return runErr
}

// Quit releases the hold taken in Run and stops the main loop.
// Call it on the UI thread.
func (a *App) Quit() {
	if a.held {
		a.held = false
		a.app.Release()
	}
	a.app.Quit()
}
