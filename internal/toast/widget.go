package toast

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/oklog/ulid/v2"

	"github.com/jmylchreest/toastui/internal/animation"
	"github.com/jmylchreest/toastui/internal/dismiss"
	"github.com/jmylchreest/toastui/internal/layout"
	"github.com/jmylchreest/toastui/internal/model"
	"github.com/jmylchreest/toastui/internal/placement"
)

// Widget is a built toast.
//
// Its methods are safe to call from any goroutine; window changes are
// marshalled onto the UI thread through Renderer.Invoke.
type Widget struct {
	id       string
	name     string
	request  model.NotificationRequest
	config   model.NotificationConfig
	tree     *layout.Tree
	width    int
	position placement.Point

	renderer Renderer
	surface  Surface
	opts     options
	logger   *slog.Logger

	guard    dismiss.Guard
	visible  atomic.Bool
	done     chan struct{}
	doneOnce sync.Once
}

// New builds a toast from def on r. It must be called on the UI thread.
func New(def Definition, r Renderer, opts ...Option) (*Widget, error) {
	return NewContext(context.Background(), def, r, opts...)
}

// NewContext is New with a context bounding the icon fetch.
func NewContext(ctx context.Context, def Definition, r Renderer, opts ...Option) (*Widget, error) {
	if r == nil {
		return nil, ErrNoRenderer
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	id := ulid.Make().String()
	w := &Widget{
		id:       id,
		name:     "toast-" + strings.ToLower(id),
		request:  def.Request.Clone(),
		config:   def.Config.Normalize(),
		renderer: r,
		opts:     o,
		logger:   o.logger.With("toast_id", id),
		done:     make(chan struct{}),
	}

	iconData := w.loadIcon(ctx)

	w.tree = layout.Assemble(o.template, layout.Input{
		Request: w.request,
		Config:  w.config,
		HasIcon: iconData != nil,
	})

	w.width = o.geometry.Width
	if w.tree.Width > 0 {
		w.width = w.tree.Width
	}

	surface, err := r.Render(w.tree, Window{
		Name:   w.name,
		Width:  w.width,
		Config: w.config,
		Icon:   iconData,
	}, w.events())
	if err != nil {
		return nil, fmt.Errorf("failed to render toast: %w", err)
	}
	w.surface = surface

	screen, err := r.Screen()
	if err != nil {
		surface.Close()
		return nil, fmt.Errorf("failed to query screen: %w", err)
	}
	geo := o.geometry
	geo.Width = w.width
	w.position = placement.Resolve(w.config.Position, screen, geo, surface.ContentHeight())
	surface.Move(w.position)

	if o.soundPlayer != nil {
		if err := o.soundPlayer.Play(w.config.Sound); err != nil {
			surface.Close()
			return nil, fmt.Errorf("failed to play sound %s: %w", w.config.Sound, err)
		}
	}

	if w.guard.Schedule(o.scheduler, o.durations, w.config.Durability, w.expire) {
		w.logger.Debug("auto-dismiss scheduled", "delay", w.guard.Delay())
	}

	surface.SetOpacity(w.config.BackgroundOpacity)
	surface.Present()
	w.visible.Store(true)
	surface.Animate(w.animation(animation.PhaseOpen), nil)

	w.logger.Debug("toast shown",
		"position", w.config.Position,
		"x", w.position.X,
		"y", w.position.Y,
		"durability", w.config.Durability,
	)
	return w, nil
}

func (w *Widget) loadIcon(ctx context.Context) []byte {
	if !w.config.HasIcon() || w.opts.iconLoader == nil {
		return nil
	}
	data, err := w.opts.iconLoader.Load(ctx, w.config.IconPathOrURL)
	if err != nil {
		w.logger.Warn("failed to load icon, showing toast without it",
			"icon", w.config.IconPathOrURL, "error", err)
		return nil
	}
	return data
}

func (w *Widget) events() Events {
	return Events{
		Press:   w.press,
		Hover:   w.hover,
		Dismiss: func() { w.requestClose(ReasonDismissed, nil) },
	}
}

func (w *Widget) animation(phase animation.Phase) animation.Animation {
	return animation.New(w.config.Animation, phase, w.config.Position, w.width, w.opts.animationTime)
}

// expire runs on the scheduler's goroutine.
func (w *Widget) expire() {
	w.renderer.Invoke(func() { w.requestClose(ReasonExpired, nil) })
}

func (w *Widget) press(button layout.ElementType, values model.Values) {
	switch button {
	case layout.ElementTypeOK:
		w.requestClose(ReasonOK, handler(w.request.OK, values))
	case layout.ElementTypeCancel:
		w.requestClose(ReasonCancel, handler(w.request.Cancel, values))
	default:
		w.logger.Debug("ignoring press on unknown element", "element", button)
	}
}

func handler(a *model.Action, values model.Values) func() {
	if a == nil || a.Handler == nil {
		return nil
	}
	return func() { a.Handler(values) }
}

func (w *Widget) hover(inside bool) {
	if w.guard.Fired() {
		return
	}
	if inside {
		w.surface.SetOpacity(1)
	} else {
		w.surface.SetOpacity(w.config.BackgroundOpacity)
	}
}

// requestClose starts the close animation once. before runs only for the
// accepted request. Must be called on the UI thread.
func (w *Widget) requestClose(reason CloseReason, before func()) {
	if !w.guard.Fire(reason) {
		return
	}
	w.logger.Debug("closing toast", "reason", reason)

	if before != nil {
		before()
	}
	w.surface.Animate(w.animation(animation.PhaseClose), w.finish)
}

func (w *Widget) finish() {
	w.doneOnce.Do(func() {
		w.surface.Close()
		w.visible.Store(false)
		close(w.done)
		if w.opts.onClosed != nil {
			w.opts.onClosed(w.guard.Reason())
		}
	})
}

// ID returns the toast's unique identifier.
func (w *Widget) ID() string {
	return w.id
}

// Name returns the window name given to the renderer.
func (w *Widget) Name() string {
	return w.name
}

// Request returns a copy of the toast's content.
func (w *Widget) Request() model.NotificationRequest {
	return w.request.Clone()
}

// Config returns the normalized presentation settings.
func (w *Widget) Config() model.NotificationConfig {
	return w.config
}

// Tree returns the assembled layout.
func (w *Widget) Tree() *layout.Tree {
	return w.tree
}

// Position returns the window's top-left corner.
func (w *Widget) Position() placement.Point {
	return w.position
}

// Values returns the current input values. Call it on the UI thread.
func (w *Widget) Values() model.Values {
	return w.surface.Values()
}

// Visible reports whether the window is on screen.
func (w *Widget) Visible() bool {
	return w.visible.Load()
}

// Closing reports whether a close has been requested.
func (w *Widget) Closing() bool {
	return w.guard.Fired()
}

// Show presents the window again if it is hidden and not closing.
// It is a no-op while the toast is visible.
func (w *Widget) Show() {
	w.renderer.Invoke(func() {
		if w.visible.Load() || w.guard.Fired() {
			return
		}
		w.surface.Present()
		w.visible.Store(true)
	})
}

// Close dismisses the toast with the close animation.
func (w *Widget) Close() {
	w.renderer.Invoke(func() { w.requestClose(ReasonDismissed, nil) })
}

// Done is closed once the window is gone.
func (w *Widget) Done() <-chan struct{} {
	return w.done
}
