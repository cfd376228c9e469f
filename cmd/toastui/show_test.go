package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/toastui/internal/adapter/output"
	"github.com/jmylchreest/toastui/internal/config"
	"github.com/jmylchreest/toastui/internal/model"
	"github.com/jmylchreest/toastui/internal/toast"
)

func parseToastFlags(t *testing.T, args ...string) (*cobra.Command, *toastOptions) {
	t.Helper()
	o := &toastOptions{}
	cmd := &cobra.Command{Use: "test"}
	addToastFlags(cmd, o)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd, o
}

func TestToastOptions_Defaults(t *testing.T) {
	cmd, o := parseToastFlags(t, "--title", "Hello")
	cfg := config.DefaultConfig()

	def, _, err := o.definition(cmd, cfg)
	require.NoError(t, err)

	assert.Equal(t, "Hello", def.Request.Title)
	assert.Equal(t, cfg.NotificationDefaults(), def.Config)
	assert.Nil(t, def.Request.OK)
	assert.Nil(t, def.Request.Cancel)
	assert.Nil(t, def.Request.ComboBox)
	assert.False(t, def.Request.TextInput)
}

func TestToastOptions_AllFlags(t *testing.T) {
	cmd, o := parseToastFlags(t,
		"--title", "T",
		"--message", "M",
		"--app-name", "A",
		"--icon", "/tmp/icon.png",
		"--border", "square",
		"--input",
		"--combo", "Fedora",
		"--combo", "Ubuntu",
		"--combo-selected", "Ubuntu",
		"--ok=Go",
		"--cancel",
		"--durability", "never",
		"--animation", "fade",
		"--position", "left_top",
		"--sound", "vk",
		"--title-color", "#111111",
		"--message-color", "#222222",
		"--background", "#333333",
		"--opacity", "0.5",
	)

	def, _, err := o.definition(cmd, config.DefaultConfig())
	require.NoError(t, err)

	req := def.Request
	assert.Equal(t, "T", req.Title)
	assert.Equal(t, "M", req.Message)
	assert.Equal(t, "A", req.AppName)
	assert.True(t, req.TextInput)
	require.NotNil(t, req.ComboBox)
	assert.Equal(t, []string{"Fedora", "Ubuntu"}, req.ComboBox.Options)
	assert.Equal(t, "Ubuntu", req.ComboBox.Selected)
	require.NotNil(t, req.OK)
	assert.Equal(t, "Go", req.OK.Label)
	require.NotNil(t, req.Cancel)
	assert.Equal(t, "Cancel", req.Cancel.Label)

	c := def.Config
	assert.Equal(t, "/tmp/icon.png", c.IconPathOrURL)
	assert.Equal(t, model.BorderSquare, c.IconBorder)
	assert.Equal(t, model.DurabilityNever, c.Durability)
	assert.Equal(t, model.AnimationFade, c.Animation)
	assert.Equal(t, model.PositionLeftTop, c.Position)
	assert.Equal(t, model.SoundVK, c.Sound)
	assert.Equal(t, "#111111", c.TitleColor)
	assert.Equal(t, "#222222", c.MessageColor)
	assert.Equal(t, "#333333", c.BackgroundColor)
	assert.Equal(t, 0.5, c.BackgroundOpacity)
}

func TestToastOptions_ComboSelectsFirstByDefault(t *testing.T) {
	cmd, o := parseToastFlags(t, "--combo", "a", "--combo", "b")

	def, _, err := o.definition(cmd, config.DefaultConfig())
	require.NoError(t, err)
	require.NotNil(t, def.Request.ComboBox)
	assert.Equal(t, "a", def.Request.ComboBox.Selected)
}

func TestToastOptions_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"border", []string{"--border", "hexagon"}},
		{"durability", []string{"--durability", "forever"}},
		{"animation", []string{"--animation", "spin"}},
		{"position", []string{"--position", "center"}},
		{"sound", []string{"--sound", "beep"}},
		{"opacity", []string{"--opacity", "1.5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, o := parseToastFlags(t, tt.args...)
			_, _, err := o.definition(cmd, config.DefaultConfig())
			assert.Error(t, err)
		})
	}
}

func TestToastOptions_HandlersRecord(t *testing.T) {
	cmd, o := parseToastFlags(t, "--ok", "--cancel")

	def, c, err := o.definition(cmd, config.DefaultConfig())
	require.NoError(t, err)

	def.Request.OK.Handler(model.Values{Text: "hi", Selected: "Fedora"})
	assert.Equal(t, output.Result{Reason: "ok", Text: "hi", Selected: "Fedora"}, c.Result())

	def.Request.Cancel.Handler(model.Values{})
	assert.Equal(t, "cancel", c.Result().Reason)
}

func TestToastOptions_FromDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "toast.toml")
	doc := `title = "From file"
message = "Body"
combo = ["a", "b"]
ok = "Go"
position = "left_top"
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cmd, o := parseToastFlags(t, "--from", path, "--message", "Flag wins", "--sound", "apple")
	def, _, err := o.definition(cmd, config.DefaultConfig())
	require.NoError(t, err)

	req := def.Request
	assert.Equal(t, "From file", req.Title)
	assert.Equal(t, "Flag wins", req.Message)
	require.NotNil(t, req.ComboBox)
	assert.Equal(t, "a", req.ComboBox.Selected)
	require.NotNil(t, req.OK)
	assert.Equal(t, "Go", req.OK.Label)
	assert.Nil(t, req.Cancel)
	assert.Equal(t, model.PositionLeftTop, def.Config.Position)
	assert.Equal(t, model.SoundApple, def.Config.Sound)
}

func TestToastOptions_FromErrors(t *testing.T) {
	cmd, o := parseToastFlags(t, "--from", filepath.Join(t.TempDir(), "missing.json"))
	_, _, err := o.definition(cmd, config.DefaultConfig())
	assert.Error(t, err)

	cmd, o = parseToastFlags(t, "--from", "-", "--from-format", "ini")
	_, _, err = o.definition(cmd, config.DefaultConfig())
	assert.Error(t, err)
}

func TestCollector_Flush(t *testing.T) {
	f, err := outputOptions{format: "plain"}.formatter()
	require.NoError(t, err)

	c := &collector{}
	var buf bytes.Buffer
	require.NoError(t, c.flush(&buf, f))
	assert.Empty(t, buf.String())

	c.setID("id")
	c.press(toast.ReasonOK)(model.Values{Text: "hi", Selected: "x"})
	c.closed(toast.ReasonOK)
	require.NoError(t, c.flush(&buf, f))
	assert.Equal(t, "text=hi\nselected=x\n", buf.String())
}

func TestCollector_FlushExpiredJSON(t *testing.T) {
	f, err := outputOptions{format: "json", all: true}.formatter()
	require.NoError(t, err)

	c := &collector{}
	c.setID("id")
	c.closed(toast.ReasonExpired)

	var buf bytes.Buffer
	require.NoError(t, c.flush(&buf, f))
	assert.JSONEq(t, `{"id":"id","reason":"expired"}`, buf.String())
}

func TestOutputOptions_Invalid(t *testing.T) {
	_, err := outputOptions{format: "xml"}.formatter()
	assert.Error(t, err)

	_, err = outputOptions{format: "plain", template: "{{"}.formatter()
	assert.Error(t, err)
}

func TestDemoDefinition(t *testing.T) {
	c := &collector{}
	def := demoDefinition(c)

	req := def.Request
	assert.Equal(t, "Notification!", req.Title)
	assert.True(t, req.TextInput)
	require.NotNil(t, req.ComboBox)
	assert.Equal(t, "Ubuntu", req.ComboBox.Selected)
	assert.Len(t, req.ComboBox.Options, 7)
	require.NotNil(t, req.OK)
	require.NotNil(t, req.Cancel)
	assert.Equal(t, "CANCEL", req.Cancel.Label)
	assert.Equal(t, 1.0, def.Config.BackgroundOpacity)
	assert.True(t, def.Config.HasIcon())

	req.Cancel.Handler(model.Values{})
	assert.Equal(t, "cancel", c.Result().Reason)
}
