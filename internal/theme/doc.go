// Package theme handles the CSS applied to toast windows.
//
// A base theme is loaded from ~/.config/toastui/themes/ or the embedded set,
// with @import statements inlined. Per-toast colors and icon shape are layered
// on top by Stylesheet.
package theme
