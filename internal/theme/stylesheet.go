package theme

import (
	"fmt"
	"strings"

	"github.com/jmylchreest/toastui/internal/model"
)

// CSS classes applied by renderers to toast widgets.
const (
	ClassWindow   = "toastui-window"
	ClassToast    = "toast"
	ClassHeader   = "toast-header"
	ClassBox      = "toast-box"
	ClassIcon     = "toast-icon"
	ClassTitle    = "toast-title"
	ClassMessage  = "toast-message"
	ClassAppName  = "toast-appname"
	ClassInputs   = "toast-inputs"
	ClassEntry    = "toast-entry"
	ClassCombo    = "toast-combo"
	ClassActions  = "toast-actions"
	ClassButton   = "toast-button"
	ClassCircle   = "circle"
	ClassSquare   = "square"
	ClassHovering = "hovering"
)

// BorderClass returns the CSS class for an icon border shape.
func BorderClass(b model.Border) string {
	if b == model.BorderSquare {
		return ClassSquare
	}
	return ClassCircle
}

// BorderRadius returns the CSS border-radius for an icon border shape.
func BorderRadius(b model.Border) string {
	if b == model.BorderSquare {
		return "0"
	}
	return "50%"
}

// Stylesheet returns the per-toast rules for the element named name
// (a GTK widget name, matched with #name).
func Stylesheet(name string, cfg model.NotificationConfig) string {
	sel := "#" + name
	var b strings.Builder

	fmt.Fprintf(&b, "%s { background-color: %s; }\n", sel, cssValue(cfg.BackgroundColor, model.DefaultBackgroundColor))
	fmt.Fprintf(&b, "%s .%s { color: %s; }\n", sel, ClassTitle, cssValue(cfg.TitleColor, model.DefaultTitleColor))
	fmt.Fprintf(&b, "%s .%s, %s .%s { color: %s; }\n",
		sel, ClassMessage, sel, ClassAppName, cssValue(cfg.MessageColor, model.DefaultMessageColor))
	fmt.Fprintf(&b, "%s .%s { border-radius: %s; }\n", sel, ClassIcon, BorderRadius(cfg.IconBorder))

	return b.String()
}

// cssValue strips characters that would end a declaration early.
func cssValue(v, def string) string {
	v = strings.TrimSpace(v)
	v = strings.Map(func(r rune) rune {
		switch r {
		case ';', '{', '}':
			return -1
		}
		return r
	}, v)
	if v == "" {
		return def
	}
	return v
}
