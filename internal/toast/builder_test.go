package toast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/toastui/internal/model"
)

func TestNewBuilder_Defaults(t *testing.T) {
	def := NewBuilder().Definition()
	assert.Equal(t, model.DefaultConfig(), def.Config)
	assert.Equal(t, model.NotificationRequest{}, def.Request)
}

func TestBuilder_Setters(t *testing.T) {
	ok := func(model.Values) {}
	def := NewBuilder().
		Title("Title").
		Message("Message").
		AppName("App").
		IconPathOrURL("https://example.com/a.png").
		IconBorder(model.BorderSquare).
		TextInput().
		ComboBox("Fedora", "Fedora", "Ubuntu").
		OKButton("OK", ok).
		CancelButton("Cancel", ok).
		Durability(model.DurabilityLong).
		Animation(model.AnimationRotate).
		Position(model.PositionLeftTop).
		Sound(model.SoundApple).
		TitleColor("#111111").
		MessageColor("#222222").
		BackgroundColor("#333333").
		BackgroundOpacity(0.5).
		Definition()

	req := def.Request
	assert.Equal(t, "Title", req.Title)
	assert.Equal(t, "Message", req.Message)
	assert.Equal(t, "App", req.AppName)
	assert.True(t, req.TextInput)
	require.NotNil(t, req.ComboBox)
	assert.Equal(t, "Fedora", req.ComboBox.Selected)
	assert.Equal(t, []string{"Fedora", "Ubuntu"}, req.ComboBox.Options)
	require.NotNil(t, req.OK)
	assert.Equal(t, "OK", req.OK.Label)
	require.NotNil(t, req.Cancel)
	assert.Equal(t, "Cancel", req.Cancel.Label)

	cfg := def.Config
	assert.Equal(t, "https://example.com/a.png", cfg.IconPathOrURL)
	assert.Equal(t, model.BorderSquare, cfg.IconBorder)
	assert.Equal(t, model.DurabilityLong, cfg.Durability)
	assert.Equal(t, model.AnimationRotate, cfg.Animation)
	assert.Equal(t, model.PositionLeftTop, cfg.Position)
	assert.Equal(t, model.SoundApple, cfg.Sound)
	assert.Equal(t, "#111111", cfg.TitleColor)
	assert.Equal(t, "#222222", cfg.MessageColor)
	assert.Equal(t, "#333333", cfg.BackgroundColor)
	assert.Equal(t, 0.5, cfg.BackgroundOpacity)
}

func TestBuilder_ComboOptionsAreCopied(t *testing.T) {
	opts := []string{"a", "b"}
	b := NewBuilder().ComboBox("a", opts...)
	opts[0] = "z"

	assert.Equal(t, "a", b.Definition().Request.ComboBox.Options[0])
}

func TestBuilder_DefinitionIsSnapshot(t *testing.T) {
	b := NewBuilder().ComboBox("a", "a", "b")
	def := b.Definition()
	def.Request.ComboBox.Options[0] = "z"
	def.Config.TitleColor = "red"

	again := b.Definition()
	assert.Equal(t, "a", again.Request.ComboBox.Options[0])
	assert.Equal(t, model.DefaultTitleColor, again.Config.TitleColor)
}

func TestBuilder_IndependentInstances(t *testing.T) {
	a := NewBuilder().ComboBox("x", "x")
	b := NewBuilder()

	assert.NotNil(t, a.Definition().Request.ComboBox)
	assert.Nil(t, b.Definition().Request.ComboBox)
}

func TestBuilder_Config(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Position = model.PositionRightTop
	cfg.Sound = model.SoundVK

	def := NewBuilder().Config(cfg).Title("x").Definition()
	assert.Equal(t, cfg, def.Config)
	assert.Equal(t, "x", def.Request.Title)
}
