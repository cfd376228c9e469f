package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/toastui/internal/model"
	"github.com/jmylchreest/toastui/internal/placement"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 350, cfg.Display.Width)
	assert.Equal(t, 15, cfg.Display.Margin)
	assert.Equal(t, 205, cfg.Display.BottomAllowance)
	assert.Equal(t, 5*time.Second, cfg.Timeouts.Short.Duration())
	assert.Equal(t, 24*time.Second, cfg.Timeouts.Long.Duration())
	assert.Equal(t, 600*time.Millisecond, cfg.Animation.Duration.Duration())
	assert.Equal(t, model.DefaultConfig(), cfg.Defaults)
	assert.True(t, cfg.Audio.Enabled)
	assert.Equal(t, 80, cfg.Audio.Volume)
	assert.Equal(t, "default", cfg.Theme.Name)
	assert.Equal(t, "default", cfg.Layout.Template)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.toml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_ParsesTOML(t *testing.T) {
	path := writeConfig(t, `
[display]
width = 400
margin = 20
monitor = 1

[display.insets]
top = 32
right = 8

[timeouts]
short = "3s"
long = 30000

[animation]
duration = "250ms"

[defaults]
durability = "long"
animation = "rotate"
position = "top-left"
border = "square"
sound = "telegram"
title_color = "#ff0000"
opacity = 0.8
icon = "https://example.com/icon.png"

[audio]
enabled = false
volume = 40
sounds_dir = "/opt/sounds"

[theme]
name = "adwaita"

[layout]
template = "compact"

[icon]
fetch_timeout = "2s"
max_bytes = 1024
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 400, cfg.Display.Width)
	assert.Equal(t, 20, cfg.Display.Margin)
	assert.Equal(t, 1, cfg.Display.Monitor)
	assert.Equal(t, placement.Insets{Top: 32, Right: 8}, cfg.Display.Insets)
	assert.Equal(t, 3*time.Second, cfg.Timeouts.Short.Duration())
	assert.Equal(t, 30*time.Second, cfg.Timeouts.Long.Duration())
	assert.Equal(t, 250*time.Millisecond, cfg.Animation.Duration.Duration())

	assert.Equal(t, model.DurabilityLong, cfg.Defaults.Durability)
	assert.Equal(t, model.AnimationRotate, cfg.Defaults.Animation)
	assert.Equal(t, model.PositionLeftTop, cfg.Defaults.Position)
	assert.Equal(t, model.BorderSquare, cfg.Defaults.IconBorder)
	assert.Equal(t, model.SoundTelegram, cfg.Defaults.Sound)
	assert.Equal(t, "#ff0000", cfg.Defaults.TitleColor)
	assert.Equal(t, model.DefaultMessageColor, cfg.Defaults.MessageColor)
	assert.InDelta(t, 0.8, cfg.Defaults.BackgroundOpacity, 1e-9)
	assert.Equal(t, "https://example.com/icon.png", cfg.Defaults.IconPathOrURL)

	assert.False(t, cfg.Audio.Enabled)
	assert.Equal(t, 40, cfg.Audio.Volume)
	assert.Equal(t, "/opt/sounds", cfg.SoundsPath())
	assert.Equal(t, "adwaita", cfg.Theme.Name)
	assert.Equal(t, "compact", cfg.Layout.Template)
	assert.Equal(t, 2*time.Second, cfg.Icon.FetchTimeout.Duration())
	assert.Equal(t, int64(1024), cfg.Icon.MaxBytes)
}

func TestLoadConfig_PartialConfig(t *testing.T) {
	path := writeConfig(t, `
[defaults]
position = "right-top"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, model.PositionRightTop, cfg.Defaults.Position)
	assert.Equal(t, model.DefaultTitleColor, cfg.Defaults.TitleColor)
	assert.Equal(t, 1.0, cfg.Defaults.BackgroundOpacity)
	assert.Equal(t, 350, cfg.Display.Width)
	assert.True(t, cfg.Audio.Enabled)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid toml", `this is not valid toml [`},
		{"unknown position", "[defaults]\nposition = \"center\""},
		{"unknown sound", "[defaults]\nsound = \"slack\""},
		{"opacity too high", "[defaults]\nopacity = 1.5"},
		{"negative opacity", "[defaults]\nopacity = -0.1"},
		{"volume too high", "[audio]\nvolume = 101"},
		{"width too small", "[display]\nwidth = 10"},
		{"negative inset", "[display.insets]\nbottom = -1"},
		{"bad duration", "[timeouts]\nshort = \"soon\""},
		{"zero timeout", "[timeouts]\nlong = 0"},
		{"zero animation", "[animation]\nduration = \"0s\""},
		{"empty theme", "[theme]\nname = \"\""},
		{"zero icon limit", "[icon]\nmax_bytes = 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestConfig_SaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subdir", "config.toml")

	cfg := DefaultConfig()
	cfg.Defaults.Animation = model.AnimationFade
	cfg.Defaults.Durability = model.DurabilityNever
	cfg.Timeouts.Short = Duration(7 * time.Second)
	cfg.Display.Insets.Bottom = 48

	require.NoError(t, cfg.Save(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestConfig_YAMLEncoding(t *testing.T) {
	data, err := yaml.Marshal(DefaultConfig())
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "position: right-bottom")
	assert.Contains(t, out, "short: 5s")
	assert.Contains(t, out, "duration: 600ms")
}

func TestConfig_Helpers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Display.Width = 300
	cfg.Timeouts.Long = Duration(time.Minute)
	cfg.Defaults.IconPathOrURL = "~/icons/a.png"

	assert.Equal(t, placement.Geometry{Width: 300, Margin: 15, BottomAllowance: 205}, cfg.Geometry())
	assert.Equal(t, time.Minute, cfg.Durations().Long)
	assert.Equal(t, 5*time.Second, cfg.Durations().Short)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "icons", "a.png"), cfg.NotificationDefaults().IconPathOrURL)
}

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"5000", 5 * time.Second, false},
		{"5s", 5 * time.Second, false},
		{"1m30s", 90 * time.Second, false},
		{"600ms", 600 * time.Millisecond, false},
		{"later", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.in))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Duration())
		})
	}

	assert.Equal(t, 1500, Duration(1500*time.Millisecond).Milliseconds())
}

func TestPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/toastui", ConfigDir())
	assert.Equal(t, "/custom/config/toastui/config.toml", ConfigPath())
	assert.Equal(t, "/custom/config/toastui/themes", ThemesDir())
	assert.Equal(t, "/custom/config/toastui/templates", TemplatesDir())
	assert.Equal(t, "/custom/config/toastui/sounds", DefaultConfig().SoundsPath())
}

func TestConfigPathDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	assert.Contains(t, ConfigPath(), filepath.Join(".config", "toastui", "config.toml"))
}
