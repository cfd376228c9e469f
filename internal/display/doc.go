// Package display renders toasts as GTK4/libadwaita windows.
// Windows are placed with Wayland layer-shell when the compositor supports
// it, styled by the active theme plus a per-toast stylesheet, and animated
// with libadwaita timed animations.
package display
