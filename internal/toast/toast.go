// Package toast builds and runs toast notification windows.
//
// A Builder captures the request and presentation settings without touching
// any UI. Build hands the captured Definition to a Renderer, which materializes the
// window; the returned Widget owns the auto-dismiss timer and the close
// lifecycle.
package toast

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jmylchreest/toastui/internal/animation"
	"github.com/jmylchreest/toastui/internal/dismiss"
	"github.com/jmylchreest/toastui/internal/layout"
	"github.com/jmylchreest/toastui/internal/model"
	"github.com/jmylchreest/toastui/internal/placement"
)

// ErrNoRenderer is returned when Build is called without a renderer.
var ErrNoRenderer = errors.New("no renderer")

// Renderer is a host backend (GTK window, terminal) that materializes toasts.
// Render, Screen and every Surface method are called on the UI thread.
type Renderer interface {
	// Render creates a hidden, undecorated, always-on-top window for tree.
	Render(tree *layout.Tree, win Window, events Events) (Surface, error)
	// Screen returns the bounds and insets of the monitor toasts appear on.
	Screen() (placement.Screen, error)
	// Invoke runs fn on the UI thread. It may be called from any goroutine.
	Invoke(fn func())
}

// Window describes the window a Renderer should create.
type Window struct {
	// Name is unique per toast and usable as a CSS/widget name.
	Name   string
	Width  int
	Config model.NotificationConfig
	// Icon holds the encoded image, nil when no icon is shown.
	Icon []byte
}

// Events are the callbacks a Surface reports user interaction through.
// They must be invoked on the UI thread.
type Events struct {
	// Press reports a click on an ok or cancel button with the current input values.
	Press func(button layout.ElementType, values model.Values)
	// Hover reports the pointer entering (true) or leaving (false) the window.
	Hover func(inside bool)
	// Dismiss reports a close request that did not come from a button.
	Dismiss func()
}

// Surface is one materialized toast window.
type Surface interface {
	// ContentHeight returns the natural height of the content in pixels.
	ContentHeight() int
	Move(p placement.Point)
	SetOpacity(v float64)
	Present()
	// Values returns the current text input and combo box values.
	Values() model.Values
	// Animate plays a, then calls done (which may be nil) on the UI thread.
	Animate(a animation.Animation, done func())
	Close()
}

// IconLoader loads icon bytes from a path or URL.
type IconLoader interface {
	Load(ctx context.Context, raw string) ([]byte, error)
}

// SoundPlayer plays a toast sound. An error means the sound could not be
// resolved; playback itself is asynchronous.
type SoundPlayer interface {
	Play(s model.Sound) error
}

// CloseReason records why a toast closed.
type CloseReason = dismiss.Reason

// Close reasons.
const (
	ReasonExpired   = dismiss.ReasonExpired
	ReasonOK        = dismiss.ReasonOK
	ReasonCancel    = dismiss.ReasonCancel
	ReasonDismissed = dismiss.ReasonDismissed
)

type options struct {
	logger        *slog.Logger
	scheduler     dismiss.Scheduler
	durations     dismiss.Durations
	geometry      placement.Geometry
	animationTime time.Duration
	template      *layout.LayoutConfig
	iconLoader    IconLoader
	soundPlayer   SoundPlayer
	onClosed      func(CloseReason)
}

func defaultOptions() options {
	return options{
		logger:        slog.Default(),
		scheduler:     dismiss.System(),
		durations:     dismiss.DefaultDurations(),
		geometry:      placement.DefaultGeometry(),
		animationTime: animation.DefaultDuration,
	}
}

// Option configures Build.
type Option func(*options)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithScheduler sets the scheduler used for auto-dismiss timers.
func WithScheduler(s dismiss.Scheduler) Option {
	return func(o *options) {
		if s != nil {
			o.scheduler = s
		}
	}
}

// WithDurations overrides the SHORT and LONG auto-dismiss delays.
func WithDurations(ds dismiss.Durations) Option {
	return func(o *options) { o.durations = ds }
}

// WithGeometry overrides the window width, margin and bottom allowance.
func WithGeometry(g placement.Geometry) Option {
	return func(o *options) { o.geometry = g }
}

// WithAnimationDuration sets the open/close animation length.
func WithAnimationDuration(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.animationTime = d
		}
	}
}

// WithTemplate sets the layout template. Nil selects the default layout.
func WithTemplate(t *layout.LayoutConfig) Option {
	return func(o *options) { o.template = t }
}

// WithIconLoader sets the icon loader. Without one, icons are not shown.
func WithIconLoader(l IconLoader) Option {
	return func(o *options) { o.iconLoader = l }
}

// WithSoundPlayer sets the sound player. Without one, toasts are silent.
func WithSoundPlayer(p SoundPlayer) Option {
	return func(o *options) { o.soundPlayer = p }
}

// WithOnClosed registers a callback run on the UI thread after the window closes.
func WithOnClosed(fn func(CloseReason)) Option {
	return func(o *options) { o.onClosed = fn }
}
