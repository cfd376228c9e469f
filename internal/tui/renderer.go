package tui

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmylchreest/toastui/internal/config"
	"github.com/jmylchreest/toastui/internal/layout"
	"github.com/jmylchreest/toastui/internal/placement"
	"github.com/jmylchreest/toastui/internal/toast"
)

// Renderer draws toasts inside a running BubbleTea program. Render, Screen
// and Quit run on the program's update loop; Invoke may be called anywhere.
type Renderer struct {
	model *Model
	send  func(tea.Msg)

	mu      sync.Mutex
	pending []func()
	wake    chan struct{}
	done    chan struct{}
	start   sync.Once
	stop    sync.Once
}

var _ toast.Renderer = (*Renderer)(nil)

// NewRenderer creates a renderer for m delivering work through send,
// usually (*tea.Program).Send.
func NewRenderer(m *Model, send func(tea.Msg)) *Renderer {
	return &Renderer{
		model: m,
		send:  send,
		wake:  make(chan struct{}, 1),
		done:  make(chan struct{}),
	}
}

func (r *Renderer) Render(tree *layout.Tree, win toast.Window, events toast.Events) (toast.Surface, error) {
	return r.model.add(tree, win, events), nil
}

func (r *Renderer) Screen() (placement.Screen, error) {
	return r.model.screen(), nil
}

// Invoke queues fn on the update loop. Queued functions run in call order.
// It never blocks, so it is safe to call from inside a handler.
func (r *Renderer) Invoke(fn func()) {
	r.start.Do(func() { go r.drain() })

	r.mu.Lock()
	r.pending = append(r.pending, fn)
	r.mu.Unlock()

	select {
	case r.wake <- struct{}{}:
	default:
	}
}

// Stop ends delivery of queued functions.
func (r *Renderer) Stop() {
	r.stop.Do(func() { close(r.done) })
}

// drain is the only caller of send, so messages reach the program in the
// order they were queued.
func (r *Renderer) drain() {
	for {
		select {
		case <-r.done:
			return
		case <-r.wake:
		}
		for {
			r.mu.Lock()
			if len(r.pending) == 0 {
				r.mu.Unlock()
				break
			}
			fn := r.pending[0]
			r.pending = r.pending[1:]
			r.mu.Unlock()

			r.send(invokeMsg(fn))
		}
	}
}

// Quit ends the program after the current update.
func (r *Renderer) Quit() {
	r.model.quit = true
}

// Run starts a full-screen program and calls activate on its update loop.
// It returns when the program exits.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger, activate func(r *Renderer) error) error {
	m := NewModel(cfg, logger)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)
	r := NewRenderer(m, p.Send)
	defer r.Stop()

	var activateErr error
	r.Invoke(func() {
		if err := activate(r); err != nil {
			activateErr = err
			r.Quit()
		}
	})

	_, err := p.Run()
	if activateErr != nil {
		return activateErr
	}
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
