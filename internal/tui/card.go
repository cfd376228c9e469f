package tui

import (
	"math"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/toastui/internal/animation"
	"github.com/jmylchreest/toastui/internal/layout"
	"github.com/jmylchreest/toastui/internal/model"
	"github.com/jmylchreest/toastui/internal/placement"
	"github.com/jmylchreest/toastui/internal/toast"
)

// runningAnimation is an animation in progress on a card.
type runningAnimation struct {
	anim  animation.Animation
	start time.Time
	done  func()
}

// card is one toast drawn in the terminal.
type card struct {
	m      *Model
	tree   *layout.Tree
	win    toast.Window
	events toast.Events

	input    textinput.Model
	hasInput bool
	options  []string
	selected int
	hasCombo bool

	focusables []layout.ElementType
	focus      int

	pos       placement.Point
	opacity   float64
	presented bool
	hovering  bool
	closed    bool
	deadline  time.Time

	running *runningAnimation
	frame   animation.Frame
}

var _ toast.Surface = (*card)(nil)

func newCard(m *Model, tree *layout.Tree, win toast.Window, events toast.Events) *card {
	c := &card{
		m:       m,
		tree:    tree,
		win:     win,
		events:  events,
		opacity: 1,
		frame:   animation.Identity(),
	}

	tree.Walk(func(n *layout.Node) {
		switch n.Type {
		case layout.ElementTypeTextInput:
			c.hasInput = true
			c.input = textinput.New()
			c.input.Prompt = ""
			c.input.Placeholder = "type here"
			c.input.Width = c.innerCols() - 4
		case layout.ElementTypeComboBox:
			c.hasCombo = true
			c.options = append([]string(nil), n.Options...)
			c.selected = max(slices.Index(c.options, n.Selected), 0)
		case layout.ElementTypeOK, layout.ElementTypeCancel:
		default:
			return
		}
		c.focusables = append(c.focusables, n.Type)
	})
	c.setFocus(0)
	return c
}

// cols returns the card width in terminal cells.
func (c *card) cols() int {
	return max(c.win.Width/CellWidth, 12)
}

// innerCols is the content width inside border and padding.
func (c *card) innerCols() int {
	return c.cols() - 4
}

func (c *card) focused() layout.ElementType {
	if len(c.focusables) == 0 {
		return ""
	}
	return c.focusables[c.focus]
}

func (c *card) setFocus(i int) {
	if len(c.focusables) == 0 {
		return
	}
	n := len(c.focusables)
	c.focus = ((i % n) + n) % n
	if c.hasInput {
		if c.focused() == layout.ElementTypeTextInput {
			c.input.Focus()
		} else {
			c.input.Blur()
		}
	}
}

func (c *card) cycleOption(delta int) {
	if len(c.options) == 0 {
		return
	}
	n := len(c.options)
	c.selected = ((c.selected+delta)%n + n) % n
}

func (c *card) has(t layout.ElementType) bool {
	return slices.Contains(c.focusables, t)
}

func (c *card) press(button layout.ElementType) {
	if c.closed || c.events.Press == nil {
		return
	}
	c.events.Press(button, c.Values())
}

func (c *card) dismiss() {
	if c.closed || c.events.Dismiss == nil {
		return
	}
	c.events.Dismiss()
}

func (c *card) setHover(inside bool) {
	if c.hovering == inside {
		return
	}
	c.hovering = inside
	if c.events.Hover != nil {
		c.events.Hover(inside)
	}
}

// advance steps the running animation. It returns true while one is running.
func (c *card) advance(now time.Time) bool {
	r := c.running
	if r == nil {
		return false
	}
	t := r.anim.Progress(now.Sub(r.start))
	c.frame = r.anim.At(t)
	if t < 1 {
		return true
	}
	c.running = nil
	if r.done != nil {
		r.done()
	}
	return c.running != nil
}

func (c *card) ContentHeight() int {
	return lipgloss.Height(c.box()) * CellHeight
}

func (c *card) Move(p placement.Point) {
	c.pos = p
}

func (c *card) SetOpacity(v float64) {
	c.opacity = v
}

func (c *card) Present() {
	if c.presented {
		return
	}
	c.presented = true
	if d, ok := c.m.durations.For(c.win.Config.Durability); ok {
		c.deadline = c.m.now().Add(d)
	}
}

func (c *card) Values() model.Values {
	var v model.Values
	if c.hasInput {
		v.Text = c.input.Value()
	}
	if c.hasCombo && c.selected < len(c.options) {
		v.Selected = c.options[c.selected]
	}
	return v
}

func (c *card) Animate(a animation.Animation, done func()) {
	if prev := c.running; prev != nil && prev.done != nil {
		c.running = nil
		prev.done()
	}
	c.running = &runningAnimation{anim: a, start: c.m.now(), done: done}
	c.frame = a.At(0)
}

func (c *card) Close() {
	c.closed = true
	c.running = nil
}

// origin returns the top-left cell of the card including the slide offset,
// and the number of visible columns.
func (c *card) origin() (col, row, visible int) {
	col = c.pos.X / CellWidth
	row = c.pos.Y / CellHeight
	visible = c.cols()

	shift := int(math.Round(math.Abs(c.frame.TranslateX) / CellWidth))
	if shift > 0 {
		visible = max(visible-shift, 0)
		if !c.win.Config.Position.IsLeft() {
			col += c.cols() - visible
		}
	}
	return col, row, visible
}

// contains reports whether the cell x, y is inside the drawn card.
func (c *card) contains(x, y int) bool {
	col, row, visible := c.origin()
	h := lipgloss.Height(c.box())
	return x >= col && x < col+visible && y >= row && y < row+h
}

// view renders the card as it should appear now.
func (c *card) view() string {
	_, _, visible := c.origin()
	if visible == 0 || c.frame.Opacity < 0.05 {
		return ""
	}

	s := c.box()
	if visible < c.cols() {
		s = lipgloss.NewStyle().MaxWidth(visible).Render(s)
	}

	effective := c.frame.Opacity * c.opacity
	if c.hovering {
		effective = c.frame.Opacity
	}
	if effective < 0.5 || (c.running != nil && c.running.anim.Property == animation.PropertyRotate) {
		s = lipgloss.NewStyle().Faint(true).Render(s)
	}
	return s
}

// box renders the bordered card at rest.
func (c *card) box() string {
	cfg := c.win.Config
	var parts []string
	for _, n := range c.tree.Nodes {
		if s := c.renderNode(n, c.innerCols()); s != "" {
			parts = append(parts, s)
		}
	}
	if !c.deadline.IsZero() {
		left := humanize.RelTime(c.m.now(), c.deadline, "left", "")
		parts = append(parts, c.m.styles.footer.Render("closes, "+left))
	}

	style := c.m.styles.card.
		BorderForeground(lipgloss.Color(cfg.BackgroundColor)).
		Width(c.cols() - 2)
	if c.hovering {
		style = style.BorderStyle(lipgloss.ThickBorder())
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (c *card) renderNode(n *layout.Node, width int) string {
	cfg := c.win.Config
	st := c.m.styles

	switch n.Type {
	case layout.ElementTypeHeader:
		var parts []string
		used := 0
		for _, child := range n.Children {
			if child.Type == layout.ElementTypeIcon {
				s := c.renderNode(child, width)
				used += lipgloss.Width(s) + 1
				parts = append(parts, s, " ")
			}
		}
		for _, child := range n.Children {
			if child.Type != layout.ElementTypeIcon {
				if s := c.renderNode(child, width-used); s != "" {
					parts = append(parts, s)
				}
			}
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, parts...)

	case layout.ElementTypeBox, layout.ElementTypeInputs:
		var parts []string
		for _, child := range n.Children {
			if s := c.renderNode(child, width); s != "" {
				parts = append(parts, s)
			}
		}
		if n.Attr("orientation", "") == "horizontal" {
			return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
		}
		return lipgloss.JoinVertical(lipgloss.Left, parts...)

	case layout.ElementTypeIcon:
		glyph := "●"
		if n.Border == model.BorderSquare {
			glyph = "■"
		}
		return st.icon.Foreground(lipgloss.Color(cfg.TitleColor)).Render(glyph)

	case layout.ElementTypeTitle:
		return st.title.Foreground(lipgloss.Color(cfg.TitleColor)).Width(width).Render(n.Text)

	case layout.ElementTypeMessage:
		return st.message.Foreground(lipgloss.Color(cfg.MessageColor)).Width(width).Render(n.Text)

	case layout.ElementTypeAppName:
		return st.appName.Foreground(lipgloss.Color(cfg.MessageColor)).Width(width).Render(n.Text)

	case layout.ElementTypeTextInput:
		style := st.field
		if c.focused() == n.Type {
			style = st.fieldFocused
		}
		return style.Width(width - 2).Render(c.input.View())

	case layout.ElementTypeComboBox:
		if len(c.options) == 0 {
			return ""
		}
		style := st.field
		if c.focused() == n.Type {
			style = st.fieldFocused
		}
		return style.Render("‹ " + c.options[c.selected] + " ›")

	case layout.ElementTypeActions:
		var buttons []string
		for _, child := range n.Children {
			if s := c.renderNode(child, width); s != "" {
				buttons = append(buttons, s)
			}
		}
		row := lipgloss.JoinHorizontal(lipgloss.Top, intersperse(buttons, " ")...)
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, row)

	case layout.ElementTypeOK, layout.ElementTypeCancel:
		style := st.button
		if c.focused() == n.Type {
			style = st.buttonFocused
		}
		return style.Render(n.Text)
	}
	return ""
}

func intersperse(items []string, sep string) []string {
	if len(items) < 2 {
		return items
	}
	out := make([]string, 0, 2*len(items)-1)
	for i, s := range items {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, s)
	}
	return out
}

// padTo right-pads s with spaces to the given cell width.
func padTo(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
