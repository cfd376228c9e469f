// Package placement computes where a toast window goes on screen.
package placement

import "github.com/jmylchreest/toastui/internal/model"

// Fixed geometry of a toast window.
const (
	DefaultWidth           = 350
	DefaultMargin          = 15
	DefaultBottomAllowance = 205
)

// Rect is a screen rectangle in pixels.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Insets are the OS-reserved regions (panels, docks) on each screen edge.
type Insets struct {
	Top    int `toml:"top" yaml:"top"`
	Bottom int `toml:"bottom" yaml:"bottom"`
	Left   int `toml:"left" yaml:"left"`
	Right  int `toml:"right" yaml:"right"`
}

// Screen describes the monitor a toast is placed on.
type Screen struct {
	Bounds Rect
	Insets Insets
}

// Usable returns the screen bounds minus the insets.
func (s Screen) Usable() Rect {
	return Rect{
		X:      s.Bounds.X + s.Insets.Left,
		Y:      s.Bounds.Y + s.Insets.Top,
		Width:  s.Bounds.Width - s.Insets.Left - s.Insets.Right,
		Height: s.Bounds.Height - s.Insets.Top - s.Insets.Bottom,
	}
}

// Geometry holds the window width, edge margin, and the extra height
// reserved above bottom-anchored toasts.
type Geometry struct {
	Width           int
	Margin          int
	BottomAllowance int
}

// DefaultGeometry returns the fixed toast geometry.
func DefaultGeometry() Geometry {
	return Geometry{
		Width:           DefaultWidth,
		Margin:          DefaultMargin,
		BottomAllowance: DefaultBottomAllowance,
	}
}

// Point is the top-left corner of a window.
type Point struct {
	X, Y int
}

// Resolve returns the top-left coordinate for a toast anchored at pos.
// Bottom-anchored toasts are lifted by the bottom allowance plus the measured
// content height. A window of contentHeight placed at the result stays inside
// the usable area when it fits.
func Resolve(pos model.Position, screen Screen, geo Geometry, contentHeight int) Point {
	b := screen.Bounds
	in := screen.Insets

	var p Point
	if pos.IsLeft() {
		p.X = b.X + geo.Margin + in.Left
	} else {
		p.X = b.X + b.Width - geo.Width - geo.Margin - in.Right
	}

	if pos.IsBottom() {
		p.Y = b.Y + b.Height - in.Bottom - geo.BottomAllowance - geo.Margin - contentHeight
	} else {
		p.Y = b.Y + geo.Margin + in.Top
	}

	return clamp(p, screen.Usable(), geo.Width, contentHeight)
}

// clamp keeps the window inside area. When the window is larger than area
// its top-left corner wins.
func clamp(p Point, area Rect, width, height int) Point {
	maxX := area.X + area.Width - width
	if p.X > maxX {
		p.X = maxX
	}
	if p.X < area.X {
		p.X = area.X
	}
	maxY := area.Y + area.Height - height
	if p.Y > maxY {
		p.Y = maxY
	}
	if p.Y < area.Y {
		p.Y = area.Y
	}
	return p
}
