package display

import (
	"log/slog"
	"unsafe"

	"github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"

	"github.com/jmylchreest/toastui/internal/placement"
)

// selectMonitor returns the monitor at index (0-based), falling back to the
// first monitor when index is out of range. It returns nil when the display
// reports no monitors.
func selectMonitor(display *gdk.Display, index int, logger *slog.Logger) *gdk.Monitor {
	if display == nil {
		return nil
	}
	monitors := display.Monitors()
	if monitors == nil || monitors.NItems() == 0 {
		return nil
	}

	if index < 0 || uint(index) >= monitors.NItems() {
		logger.Warn("configured monitor not available, using first",
			"configured", index,
			"available", monitors.NItems(),
		)
		index = 0
	}

	return wrapMonitor(monitors.Item(uint(index)))
}

// wrapMonitor wraps a list item as a gdk.Monitor; gotk4 keeps its own
// wrapper unexported.
func wrapMonitor(obj *glib.Object) *gdk.Monitor {
	if obj == nil {
		return nil
	}
	type monitor struct {
		_ [0]func()
		*glib.Object
	}
	m := &monitor{Object: obj}
	return (*gdk.Monitor)(unsafe.Pointer(m))
}

// monitorRect returns the monitor geometry in layout pixels.
func monitorRect(m *gdk.Monitor) placement.Rect {
	geo := m.Geometry()
	return placement.Rect{
		X:      geo.X(),
		Y:      geo.Y(),
		Width:  geo.Width(),
		Height: geo.Height(),
	}
}
