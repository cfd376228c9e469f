// Package tui renders toasts in the terminal with BubbleTea.
//
// Screen space is mapped to cells at CellWidth x CellHeight pixels, so the
// placement rules used for desktop windows apply unchanged.
package tui

import (
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"

	"github.com/jmylchreest/toastui/internal/config"
	"github.com/jmylchreest/toastui/internal/dismiss"
	"github.com/jmylchreest/toastui/internal/layout"
	"github.com/jmylchreest/toastui/internal/placement"
	"github.com/jmylchreest/toastui/internal/toast"
)

// Pixel size of one terminal cell.
const (
	CellWidth  = 8
	CellHeight = 16
)

const (
	frameInterval = time.Second / 30
	clockInterval = time.Second
)

// Fallback terminal size when it cannot be queried.
const (
	defaultCols = 80
	defaultRows = 24
)

type (
	invokeMsg func()
	frameMsg  time.Time
	clockMsg  time.Time
)

type styles struct {
	card          lipgloss.Style
	icon          lipgloss.Style
	title         lipgloss.Style
	message       lipgloss.Style
	appName       lipgloss.Style
	field         lipgloss.Style
	fieldFocused  lipgloss.Style
	button        lipgloss.Style
	buttonFocused lipgloss.Style
	footer        lipgloss.Style
}

func defaultStyles() styles {
	button := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#626262"))
	field := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("8"))

	return styles{
		card:          lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		icon:          lipgloss.NewStyle().Bold(true),
		title:         lipgloss.NewStyle().Bold(true),
		message:       lipgloss.NewStyle(),
		appName:       lipgloss.NewStyle().Faint(true),
		field:         field,
		fieldFocused:  field.BorderForeground(lipgloss.Color("10")),
		button:        button,
		buttonFocused: button.Reverse(true),
		footer:        lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// Model is the BubbleTea model holding every toast on screen.
type Model struct {
	cfg       *config.Config
	logger    *slog.Logger
	durations dismiss.Durations
	keys      KeyMap
	help      help.Model
	styles    styles

	width  int
	height int

	cards   []*card
	ticking bool
	quit    bool

	now func() time.Time
}

var _ tea.Model = (*Model)(nil)

// NewModel creates an empty model.
func NewModel(cfg *config.Config, logger *slog.Logger) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Model{
		cfg:       cfg,
		logger:    logger,
		durations: cfg.Durations(),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		styles:    defaultStyles(),
		now:       time.Now,
	}
}

func (m *Model) Init() tea.Cmd {
	return clockTick()
}

func clockTick() tea.Cmd {
	return tea.Tick(clockInterval, func(t time.Time) tea.Msg { return clockMsg(t) })
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case invokeMsg:
		msg()

	case frameMsg:
		m.ticking = false
		m.advance(time.Time(msg))

	case clockMsg:
		cmd = clockTick()

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		cmd = m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
	}

	m.prune()
	if m.quit {
		return m, tea.Quit
	}
	return m, tea.Batch(cmd, m.frameCmd())
}

// frameCmd schedules the next animation frame while any card animates.
func (m *Model) frameCmd() tea.Cmd {
	if m.ticking {
		return nil
	}
	if !slices.ContainsFunc(m.cards, func(c *card) bool { return c.running != nil }) {
		return nil
	}
	m.ticking = true
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m *Model) advance(now time.Time) {
	// done callbacks may add or close cards
	for _, c := range slices.Clone(m.cards) {
		c.advance(now)
	}
}

func (m *Model) prune() {
	m.cards = slices.DeleteFunc(m.cards, func(c *card) bool { return c.closed })
}

// active returns the most recent card taking input.
func (m *Model) active() *card {
	for i := len(m.cards) - 1; i >= 0; i-- {
		if c := m.cards[i]; c.presented && !c.closed {
			return c
		}
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	c := m.active()
	if c == nil {
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Next):
		c.setFocus(c.focus + 1)
	case key.Matches(msg, m.keys.Prev):
		c.setFocus(c.focus - 1)
	case key.Matches(msg, m.keys.Left) && c.focused() == layout.ElementTypeComboBox:
		c.cycleOption(-1)
	case key.Matches(msg, m.keys.Right) && c.focused() == layout.ElementTypeComboBox:
		c.cycleOption(1)
	case key.Matches(msg, m.keys.Press):
		switch f := c.focused(); f {
		case layout.ElementTypeOK, layout.ElementTypeCancel:
			c.press(f)
		default:
			if c.has(layout.ElementTypeOK) {
				c.press(layout.ElementTypeOK)
			}
		}
	case key.Matches(msg, m.keys.Cancel):
		if c.has(layout.ElementTypeCancel) {
			c.press(layout.ElementTypeCancel)
		} else {
			c.dismiss()
		}
	default:
		if c.hasInput && c.focused() == layout.ElementTypeTextInput {
			var cmd tea.Cmd
			c.input, cmd = c.input.Update(msg)
			return cmd
		}
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	for _, c := range m.cards {
		if c.presented && !c.closed {
			c.setHover(c.contains(msg.X, msg.Y))
		}
	}
}

// add creates a card for a new toast.
func (m *Model) add(tree *layout.Tree, win toast.Window, events toast.Events) *card {
	c := newCard(m, tree, win, events)
	m.cards = append(m.cards, c)
	return c
}

// size returns the terminal size in cells.
func (m *Model) size() (cols, rows int) {
	if m.width > 0 && m.height > 0 {
		return m.width, m.height
	}
	if w, h, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 && h > 0 {
		return w, h
	}
	return defaultCols, defaultRows
}

// screen maps the terminal to pixels. The bottom row is kept for help.
func (m *Model) screen() placement.Screen {
	cols, rows := m.size()
	insets := m.cfg.Display.Insets
	insets.Bottom += CellHeight
	return placement.Screen{
		Bounds: placement.Rect{Width: cols * CellWidth, Height: rows * CellHeight},
		Insets: insets,
	}
}

func (m *Model) View() string {
	cols, rows := m.size()
	lines := make([]string, max(rows-1, 0))

	visible := slices.Clone(m.cards)
	visible = slices.DeleteFunc(visible, func(c *card) bool { return !c.presented || c.closed })
	slices.SortStableFunc(visible, func(a, b *card) int { return a.pos.Y - b.pos.Y })

	for _, c := range visible {
		s := c.view()
		if s == "" {
			continue
		}
		col, row, _ := c.origin()
		for i, line := range strings.Split(s, "\n") {
			r := row + i
			if r < 0 || r >= len(lines) {
				continue
			}
			lines[r] = padTo(lines[r], min(col, cols)) + line
		}
	}

	lines = append(lines, m.help.View(m.keys))
	return strings.Join(lines, "\n")
}

// Cards returns the number of toasts on screen.
func (m *Model) Cards() int {
	return len(m.cards)
}
