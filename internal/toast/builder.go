package toast

import (
	"context"

	"github.com/jmylchreest/toastui/internal/model"
)

// Definition is everything captured by a Builder.
type Definition struct {
	Request model.NotificationRequest
	Config  model.NotificationConfig
}

// Clone returns a deep copy of s.
func (s Definition) Clone() Definition {
	return Definition{Request: s.Request.Clone(), Config: s.Config}
}

// Builder collects toast settings with chained setters.
// It never touches a renderer; Build does.
type Builder struct {
	def Definition
}

// NewBuilder returns a builder with the default presentation settings.
func NewBuilder() *Builder {
	return &Builder{def: Definition{Config: model.DefaultConfig()}}
}

// Title sets the headline.
func (b *Builder) Title(s string) *Builder {
	b.def.Request.Title = s
	return b
}

// Message sets the body text.
func (b *Builder) Message(s string) *Builder {
	b.def.Request.Message = s
	return b
}

// AppName sets the source application label.
func (b *Builder) AppName(s string) *Builder {
	b.def.Request.AppName = s
	return b
}

// IconPathOrURL sets the icon location: a local path or an http(s) URL.
func (b *Builder) IconPathOrURL(s string) *Builder {
	b.def.Config.IconPathOrURL = s
	return b
}

// IconBorder sets the icon shape.
func (b *Builder) IconBorder(border model.Border) *Builder {
	b.def.Config.IconBorder = border
	return b
}

// TextInput adds a free-text field.
func (b *Builder) TextInput() *Builder {
	b.def.Request.TextInput = true
	return b
}

// ComboBox adds a drop-down with the given options and preselected value.
// The options are copied.
func (b *Builder) ComboBox(selected string, options ...string) *Builder {
	b.def.Request.ComboBox = &model.ComboBox{
		Options:  append([]string(nil), options...),
		Selected: selected,
	}
	return b
}

// OKButton adds an OK button running fn before the toast closes.
func (b *Builder) OKButton(label string, fn func(model.Values)) *Builder {
	b.def.Request.OK = &model.Action{Label: label, Handler: fn}
	return b
}

// CancelButton adds a Cancel button running fn before the toast closes.
func (b *Builder) CancelButton(label string, fn func(model.Values)) *Builder {
	b.def.Request.Cancel = &model.Action{Label: label, Handler: fn}
	return b
}

// Durability sets how long the toast stays up.
func (b *Builder) Durability(d model.Durability) *Builder {
	b.def.Config.Durability = d
	return b
}

// Animation sets the open/close animation.
func (b *Builder) Animation(a model.Animation) *Builder {
	b.def.Config.Animation = a
	return b
}

// Position sets the screen corner.
func (b *Builder) Position(p model.Position) *Builder {
	b.def.Config.Position = p
	return b
}

// Sound sets the sound played on show.
func (b *Builder) Sound(s model.Sound) *Builder {
	b.def.Config.Sound = s
	return b
}

// TitleColor sets the title text color.
func (b *Builder) TitleColor(c string) *Builder {
	b.def.Config.TitleColor = c
	return b
}

// MessageColor sets the message and app name text color.
func (b *Builder) MessageColor(c string) *Builder {
	b.def.Config.MessageColor = c
	return b
}

// BackgroundColor sets the window background color.
func (b *Builder) BackgroundColor(c string) *Builder {
	b.def.Config.BackgroundColor = c
	return b
}

// BackgroundOpacity sets the resting window opacity (0.0-1.0).
func (b *Builder) BackgroundOpacity(v float64) *Builder {
	b.def.Config.BackgroundOpacity = v
	return b
}

// Config replaces all presentation settings at once.
func (b *Builder) Config(cfg model.NotificationConfig) *Builder {
	b.def.Config = cfg
	return b
}

// Definition returns a copy of the captured settings.
func (b *Builder) Definition() Definition {
	return b.def.Clone()
}

// Build creates the toast on r. It must be called on the UI thread.
func (b *Builder) Build(r Renderer, opts ...Option) (*Widget, error) {
	return New(b.Definition(), r, opts...)
}

// BuildContext is Build with a context bounding the icon fetch.
func (b *Builder) BuildContext(ctx context.Context, r Renderer, opts ...Option) (*Widget, error) {
	return NewContext(ctx, b.Definition(), r, opts...)
}
