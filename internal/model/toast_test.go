package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, DurabilityShort, cfg.Durability)
	assert.Equal(t, AnimationSlide, cfg.Animation)
	assert.Equal(t, PositionRightBottom, cfg.Position)
	assert.Equal(t, BorderCircle, cfg.IconBorder)
	assert.Equal(t, SoundICQ, cfg.Sound)
	assert.Equal(t, "#FFFFFF", cfg.TitleColor)
	assert.Equal(t, "#b0b0b0", cfg.MessageColor)
	assert.Equal(t, "#1c1c1c", cfg.BackgroundColor)
	assert.Equal(t, 1.0, cfg.BackgroundOpacity)
	assert.False(t, cfg.HasIcon())
}

func TestZeroValuesAreDefaults(t *testing.T) {
	var cfg NotificationConfig
	def := DefaultConfig()

	assert.Equal(t, def.Durability, cfg.Durability)
	assert.Equal(t, def.Animation, cfg.Animation)
	assert.Equal(t, def.Position, cfg.Position)
	assert.Equal(t, def.IconBorder, cfg.IconBorder)
	assert.Equal(t, def.Sound, cfg.Sound)
}

func TestNormalize_ClampsOpacity(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.4, 0.4},
		{1, 1},
		{3, 1},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.BackgroundOpacity = tt.in
		assert.Equal(t, tt.want, cfg.Normalize().BackgroundOpacity)
	}
}

func TestNormalize_LeavesColorsAlone(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BackgroundColor = "not-a-color"
	assert.Equal(t, "not-a-color", cfg.Normalize().BackgroundColor)
}

func TestParseEnums(t *testing.T) {
	tests := []struct {
		name  string
		parse func(string) (any, error)
		input string
		want  any
	}{
		{"durability", func(s string) (any, error) { return ParseDurability(s) }, "LONG", DurabilityLong},
		{"animation alias display", func(s string) (any, error) { return ParseAnimation(s) }, "display", AnimationSlide},
		{"animation alias transparent", func(s string) (any, error) { return ParseAnimation(s) }, "transparent", AnimationFade},
		{"animation rotate", func(s string) (any, error) { return ParseAnimation(s) }, "rotate", AnimationRotate},
		{"position underscore", func(s string) (any, error) { return ParsePosition(s) }, "LEFT_TOP", PositionLeftTop},
		{"position alias", func(s string) (any, error) { return ParsePosition(s) }, "bottom-left", PositionLeftBottom},
		{"border", func(s string) (any, error) { return ParseBorder(s) }, "square", BorderSquare},
		{"sound", func(s string) (any, error) { return ParseSound(s) }, "telegram", SoundTelegram},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseEnums_Invalid(t *testing.T) {
	_, err := ParseDurability("forever")
	assert.ErrorContains(t, err, "invalid durability")

	_, err = ParsePosition("center")
	assert.ErrorContains(t, err, "invalid position")

	_, err = ParseSound("")
	assert.Error(t, err)
}

func TestEnumText(t *testing.T) {
	text, err := PositionLeftBottom.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "left-bottom", string(text))

	var s Sound
	require.NoError(t, s.UnmarshalText([]byte("vk")))
	assert.Equal(t, SoundVK, s)

	var a Animation
	assert.Error(t, a.UnmarshalText([]byte("spin")))

	assert.Equal(t, "sound(9)", Sound(9).String())
}

func TestPositionSides(t *testing.T) {
	assert.True(t, PositionLeftTop.IsLeft())
	assert.True(t, PositionLeftBottom.IsLeft())
	assert.False(t, PositionRightTop.IsLeft())
	assert.True(t, PositionRightBottom.IsBottom())
	assert.False(t, PositionLeftTop.IsBottom())
}

func TestRequestClone_IsolatesComboOptions(t *testing.T) {
	req := NotificationRequest{
		ComboBox: &ComboBox{Options: []string{"Fedora", "Ubuntu"}, Selected: "Fedora"},
		OK:       &Action{Label: "OK"},
	}

	clone := req.Clone()
	req.ComboBox.Options[0] = "Arch"
	req.OK.Label = "Changed"

	assert.Equal(t, []string{"Fedora", "Ubuntu"}, clone.ComboBox.Options)
	assert.Equal(t, "OK", clone.OK.Label)
	assert.Nil(t, clone.Cancel)
}

func TestHasComboBox(t *testing.T) {
	assert.False(t, NotificationRequest{}.HasComboBox())
	assert.False(t, NotificationRequest{ComboBox: &ComboBox{Selected: "x"}}.HasComboBox())
	assert.True(t, NotificationRequest{ComboBox: &ComboBox{Options: []string{"x"}}}.HasComboBox())
}
