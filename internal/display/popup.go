package display

import (
	"log/slog"
	"slices"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/toastui/internal/animation"
	"github.com/jmylchreest/toastui/internal/layout"
	"github.com/jmylchreest/toastui/internal/model"
	"github.com/jmylchreest/toastui/internal/placement"
	"github.com/jmylchreest/toastui/internal/theme"
	"github.com/jmylchreest/toastui/internal/toast"
)

// Default icon edge length when the template does not set one.
const defaultIconSize = 80

// popup is one toast window.
type popup struct {
	r      *Renderer
	logger *slog.Logger
	name   string
	width  int
	icon   []byte
	events toast.Events

	window *gtk.Window
	root   *gtk.Box

	// style holds the per-toast colors; frame holds the current animation frame.
	style *gtk.CSSProvider
	frame *gtk.CSSProvider

	entry   *gtk.Entry
	combo   *gtk.DropDown
	options []string

	anim   *adw.TimedAnimation
	closed bool
}

var _ toast.Surface = (*popup)(nil)

func newPopup(r *Renderer, tree *layout.Tree, win toast.Window, events toast.Events) *popup {
	p := &popup{
		r:      r,
		logger: r.logger.With("toast", win.Name),
		name:   win.Name,
		width:  win.Width,
		icon:   win.Icon,
		events: events,
		style:  gtk.NewCSSProvider(),
		frame:  gtk.NewCSSProvider(),
	}

	p.window = gtk.NewWindow()
	p.window.SetApplication(r.app)
	p.window.SetDecorated(false)
	p.window.SetResizable(false)
	p.window.SetDefaultSize(win.Width, -1)
	p.window.SetSizeRequest(win.Width, -1)
	p.window.AddCSSClass(theme.ClassWindow)

	if r.layerShell {
		layershell.InitForWindow(p.window)
		layershell.SetLayer(p.window, layershell.LayerShellLayerOverlay)
		layershell.SetExclusiveZone(p.window, 0)
		layershell.SetKeyboardMode(p.window, layershell.LayerShellKeyboardModeOnDemand)
		layershell.SetNamespace(p.window, "toastui")
		layershell.SetAnchor(p.window, layershell.LayerShellEdgeTop, true)
		layershell.SetAnchor(p.window, layershell.LayerShellEdgeLeft, true)
		if r.monitor != nil {
			layershell.SetMonitor(p.window, r.monitor)
		}
	}

	p.buildUI(tree)

	p.style.LoadFromString(theme.Stylesheet(p.name, win.Config))
	p.frame.LoadFromString(animation.Identity().CSS("#" + p.name))
	gtk.StyleContextAddProviderForDisplay(r.display, p.style, gtk.STYLE_PROVIDER_PRIORITY_APPLICATION+1)
	gtk.StyleContextAddProviderForDisplay(r.display, p.frame, gtk.STYLE_PROVIDER_PRIORITY_APPLICATION+2)

	p.connectSignals()
	return p
}

// buildUI constructs the widget hierarchy from the assembled tree.
func (p *popup) buildUI(tree *layout.Tree) {
	p.root = gtk.NewBox(gtk.OrientationVertical, 8)
	p.root.SetName(p.name)
	p.root.AddCSSClass(theme.ClassToast)

	for _, n := range tree.Nodes {
		if w := p.buildNode(n); w != nil {
			p.root.Append(w)
		}
	}

	p.window.SetChild(p.root)
}

func (p *popup) buildNode(n *layout.Node) gtk.Widgetter {
	switch n.Type {
	case layout.ElementTypeHeader:
		return p.buildContainer(n, gtk.OrientationHorizontal, 12, theme.ClassHeader)
	case layout.ElementTypeBox:
		orientation := gtk.OrientationVertical
		if n.Attr("orientation", "") == "horizontal" {
			orientation = gtk.OrientationHorizontal
		}
		box := p.buildContainer(n, orientation, 4, theme.ClassBox)
		box.SetHExpand(true)
		box.SetVAlign(gtk.AlignCenter)
		return box
	case layout.ElementTypeInputs:
		return p.buildContainer(n, gtk.OrientationVertical, 6, theme.ClassInputs)
	case layout.ElementTypeActions:
		box := p.buildContainer(n, gtk.OrientationHorizontal, 6, theme.ClassActions)
		box.SetHAlign(gtk.AlignEnd)
		return box
	case layout.ElementTypeIcon:
		return p.buildIcon(n)
	case layout.ElementTypeTitle:
		return p.buildLabel(n, theme.ClassTitle, false)
	case layout.ElementTypeMessage:
		return p.buildLabel(n, theme.ClassMessage, true)
	case layout.ElementTypeAppName:
		return p.buildLabel(n, theme.ClassAppName, false)
	case layout.ElementTypeTextInput:
		p.entry = gtk.NewEntry()
		p.entry.AddCSSClass(theme.ClassEntry)
		p.entry.SetHExpand(true)
		return p.entry
	case layout.ElementTypeComboBox:
		return p.buildCombo(n)
	case layout.ElementTypeOK, layout.ElementTypeCancel:
		return p.buildButton(n)
	default:
		p.logger.Debug("skipping unknown element", "element", n.Type)
		return nil
	}
}

func (p *popup) buildContainer(n *layout.Node, orientation gtk.Orientation, spacing int, class string) *gtk.Box {
	box := gtk.NewBox(orientation, n.IntAttr("spacing", spacing))
	box.AddCSSClass(class)
	for _, child := range n.Children {
		if w := p.buildNode(child); w != nil {
			box.Append(w)
		}
	}
	return box
}

func (p *popup) buildIcon(n *layout.Node) gtk.Widgetter {
	if len(p.icon) == 0 {
		return nil
	}
	texture, err := gdk.NewTextureFromBytes(glib.NewBytes(p.icon))
	if err != nil {
		p.logger.Warn("failed to decode icon", "error", err)
		return nil
	}

	size := n.IntAttr("size", defaultIconSize)
	pic := gtk.NewPictureForPaintable(texture)
	pic.SetContentFit(gtk.ContentFitCover)
	pic.SetSizeRequest(size, size)
	pic.SetHAlign(gtk.AlignStart)
	pic.SetVAlign(gtk.AlignCenter)
	pic.SetOverflow(gtk.OverflowHidden)
	pic.AddCSSClass(theme.ClassIcon)
	pic.AddCSSClass(theme.BorderClass(n.Border))
	return pic
}

func (p *popup) buildLabel(n *layout.Node, class string, wrap bool) gtk.Widgetter {
	lbl := gtk.NewLabel(n.Text)
	lbl.AddCSSClass(class)
	lbl.SetXAlign(0)
	if wrap {
		lbl.SetWrap(true)
		lbl.SetMaxWidthChars(40)
	} else {
		lbl.SetEllipsize(3) // PANGO_ELLIPSIZE_END
	}
	return lbl
}

func (p *popup) buildCombo(n *layout.Node) gtk.Widgetter {
	p.options = append([]string(nil), n.Options...)
	p.combo = gtk.NewDropDownFromStrings(p.options)
	p.combo.AddCSSClass(theme.ClassCombo)
	if i := slices.Index(p.options, n.Selected); i >= 0 {
		p.combo.SetSelected(uint(i))
	}
	return p.combo
}

func (p *popup) buildButton(n *layout.Node) gtk.Widgetter {
	kind := n.Type
	btn := gtk.NewButtonWithLabel(n.Text)
	btn.AddCSSClass(theme.ClassButton)
	btn.AddCSSClass("toast-" + string(kind))
	btn.ConnectClicked(func() {
		if p.closed || p.events.Press == nil {
			return
		}
		p.events.Press(kind, p.Values())
	})
	return btn
}

// connectSignals sets up hover and dismiss handling.
func (p *popup) connectSignals() {
	motionCtrl := gtk.NewEventControllerMotion()
	motionCtrl.ConnectEnter(func(x, y float64) {
		p.root.AddCSSClass(theme.ClassHovering)
		if p.events.Hover != nil {
			p.events.Hover(true)
		}
	})
	motionCtrl.ConnectLeave(func() {
		p.root.RemoveCSSClass(theme.ClassHovering)
		if p.events.Hover != nil {
			p.events.Hover(false)
		}
	})
	p.window.AddController(motionCtrl)

	// Right click dismisses without running a handler.
	clickCtrl := gtk.NewGestureClick()
	clickCtrl.SetButton(3)
	clickCtrl.ConnectReleased(func(nPress int, x, y float64) {
		if p.events.Dismiss != nil {
			p.events.Dismiss()
		}
	})
	p.window.AddController(clickCtrl)

	p.window.ConnectCloseRequest(func() bool {
		if p.closed {
			return false
		}
		if p.events.Dismiss != nil {
			p.events.Dismiss()
		}
		return true
	})
}

func (p *popup) ContentHeight() int {
	_, natural, _, _ := p.root.Measure(gtk.OrientationVertical, p.width)
	return natural
}

func (p *popup) Move(pt placement.Point) {
	if !p.r.layerShell {
		p.logger.Debug("cannot place window without layer-shell", "x", pt.X, "y", pt.Y)
		return
	}
	layershell.SetMargin(p.window, layershell.LayerShellEdgeLeft, pt.X-p.r.origin.X)
	layershell.SetMargin(p.window, layershell.LayerShellEdgeTop, pt.Y-p.r.origin.Y)
}

func (p *popup) SetOpacity(v float64) {
	p.window.SetOpacity(v)
}

func (p *popup) Present() {
	p.window.Present()
}

func (p *popup) Values() model.Values {
	var v model.Values
	if p.entry != nil {
		v.Text = p.entry.Text()
	}
	if p.combo != nil {
		if i := int(p.combo.Selected()); i >= 0 && i < len(p.options) {
			v.Selected = p.options[i]
		}
	}
	return v
}

func (p *popup) Animate(a animation.Animation, done func()) {
	if p.anim != nil {
		p.anim.Skip()
	}
	selector := "#" + p.name
	target := adw.NewCallbackAnimationTarget(func(t float64) {
		p.frame.LoadFromString(a.At(t).CSS(selector))
	})

	anim := adw.NewTimedAnimation(p.root, 0, 1, uint(a.Duration.Milliseconds()), target)
	anim.SetEasing(adw.Linear)
	anim.ConnectDone(func() {
		if p.anim == anim {
			p.anim = nil
		}
		if done != nil {
			done()
		}
	})
	p.anim = anim
	anim.Play()
}

func (p *popup) Close() {
	if p.closed {
		return
	}
	p.closed = true
	gtk.StyleContextRemoveProviderForDisplay(p.r.display, p.style)
	gtk.StyleContextRemoveProviderForDisplay(p.r.display, p.frame)
	p.window.Close()
}
