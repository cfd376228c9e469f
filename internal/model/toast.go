// Package model defines the value types describing a toast notification.
package model

import "slices"

// Default colors (dark theme).
const (
	DefaultTitleColor      = "#FFFFFF"
	DefaultMessageColor    = "#b0b0b0"
	DefaultBackgroundColor = "#1c1c1c"
)

// NotificationConfig holds the presentation settings of a toast.
// It is captured by the builder and frozen once the toast is built.
type NotificationConfig struct {
	Durability        Durability `json:"durability" toml:"durability" yaml:"durability"`
	Animation         Animation  `json:"animation" toml:"animation" yaml:"animation"`
	Position          Position   `json:"position" toml:"position" yaml:"position"`
	IconBorder        Border     `json:"border" toml:"border" yaml:"border"`
	Sound             Sound      `json:"sound" toml:"sound" yaml:"sound"`
	TitleColor        string     `json:"title_color" toml:"title_color" yaml:"title_color"`
	MessageColor      string     `json:"message_color" toml:"message_color" yaml:"message_color"`
	BackgroundColor   string     `json:"background" toml:"background" yaml:"background"`
	BackgroundOpacity float64    `json:"opacity" toml:"opacity" yaml:"opacity"` // 0.0-1.0
	IconPathOrURL     string     `json:"icon,omitempty" toml:"icon" yaml:"icon"`
}

// DefaultConfig returns the default presentation settings.
func DefaultConfig() NotificationConfig {
	return NotificationConfig{
		Durability:        DurabilityShort,
		Animation:         AnimationSlide,
		Position:          PositionRightBottom,
		IconBorder:        BorderCircle,
		Sound:             SoundICQ,
		TitleColor:        DefaultTitleColor,
		MessageColor:      DefaultMessageColor,
		BackgroundColor:   DefaultBackgroundColor,
		BackgroundOpacity: 1.0,
	}
}

// Normalize clamps the opacity into [0,1]. Colors are passed through as given.
func (c NotificationConfig) Normalize() NotificationConfig {
	switch {
	case c.BackgroundOpacity < 0:
		c.BackgroundOpacity = 0
	case c.BackgroundOpacity > 1:
		c.BackgroundOpacity = 1
	}
	return c
}

// HasIcon reports whether an icon source was configured.
func (c NotificationConfig) HasIcon() bool {
	return c.IconPathOrURL != ""
}

// Values carries the current state of the input controls.
type Values struct {
	Text     string
	Selected string
}

// Action is a labelled button bound to a handler.
type Action struct {
	Label   string
	Handler func(Values)
}

// ComboBox is a single-select list with one preselected value.
type ComboBox struct {
	Options  []string
	Selected string
}

// NotificationRequest is the content of a toast.
// Empty strings and nil controls are omitted from the layout.
type NotificationRequest struct {
	Title     string
	Message   string
	AppName   string
	TextInput bool
	ComboBox  *ComboBox
	OK        *Action
	Cancel    *Action
}

// HasComboBox reports whether a combo box with at least one option was requested.
func (r NotificationRequest) HasComboBox() bool {
	return r.ComboBox != nil && len(r.ComboBox.Options) > 0
}

// Clone returns a copy that shares no mutable state with r.
func (r NotificationRequest) Clone() NotificationRequest {
	out := r
	if r.ComboBox != nil {
		out.ComboBox = &ComboBox{
			Options:  slices.Clone(r.ComboBox.Options),
			Selected: r.ComboBox.Selected,
		}
	}
	if r.OK != nil {
		ok := *r.OK
		out.OK = &ok
	}
	if r.Cancel != nil {
		cancel := *r.Cancel
		out.Cancel = &cancel
	}
	return out
}
