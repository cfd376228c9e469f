package input

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/toastui/internal/model"
)

const tomlDoc = `title = "Deploy"
message = "Pick a target"
combo = ["staging", "production"]
ok = "Deploy"
cancel = ""
durability = "never"
position = "left_top"
opacity = 0.5
`

const yamlDoc = `title: Deploy
message: Pick a target
combo: [staging, production]
combo_selected: production
ok: Deploy
durability: never
position: left_top
opacity: 0.5
`

const jsonDoc = `{
  "title": "Deploy",
  "message": "Pick a target",
  "input": true,
  "cancel": "Abort",
  "sound": "vk",
  "title_color": "#ff0000"
}`

func TestDecode_TOML(t *testing.T) {
	doc, err := Decode([]byte(tomlDoc), FormatTOML, model.DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, "Deploy", doc.Title)
	assert.Equal(t, "Pick a target", doc.Message)
	assert.Equal(t, []string{"staging", "production"}, doc.Combo)
	assert.Equal(t, "staging", doc.Selected())
	require.NotNil(t, doc.OK)
	assert.Equal(t, "Deploy", *doc.OK)
	require.NotNil(t, doc.Cancel)
	assert.Empty(t, *doc.Cancel)

	assert.Equal(t, model.DurabilityNever, doc.Durability)
	assert.Equal(t, model.PositionLeftTop, doc.Position)
	assert.Equal(t, 0.5, doc.BackgroundOpacity)
	// Keys not present keep the defaults.
	assert.Equal(t, model.AnimationSlide, doc.Animation)
	assert.Equal(t, model.DefaultTitleColor, doc.TitleColor)
}

func TestDecode_YAML(t *testing.T) {
	doc, err := Decode([]byte(yamlDoc), FormatYAML, model.DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, "Deploy", doc.Title)
	assert.Equal(t, "production", doc.Selected())
	assert.Nil(t, doc.Cancel)
	assert.Equal(t, model.DurabilityNever, doc.Durability)
	assert.Equal(t, model.PositionLeftTop, doc.Position)
	assert.Equal(t, model.SoundICQ, doc.Sound)
}

func TestDecode_JSON(t *testing.T) {
	doc, err := Decode([]byte(jsonDoc), FormatJSON, model.DefaultConfig())
	require.NoError(t, err)

	assert.True(t, doc.TextInput)
	assert.Nil(t, doc.OK)
	require.NotNil(t, doc.Cancel)
	assert.Equal(t, "Abort", *doc.Cancel)
	assert.Equal(t, model.SoundVK, doc.Sound)
	assert.Equal(t, "#ff0000", doc.TitleColor)
	assert.Empty(t, doc.Selected())
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
	}{
		{"bad enum", `durability = "forever"`, FormatTOML},
		{"bad syntax", `{"title":`, FormatJSON},
		{"opacity range", `opacity: 2`, FormatYAML},
		{"selected without combo", `combo_selected = "x"`, FormatTOML},
		{"unknown format", `title = "x"`, Format("ini")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data), tt.format, model.DefaultConfig())
			assert.Error(t, err)
		})
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		file string
		data string
		want Format
	}{
		{"json extension", "toast.json", "", FormatJSON},
		{"yml extension", "toast.yml", "", FormatYAML},
		{"toml extension", "toast.toml", "", FormatTOML},
		{"json content", StdinName, jsonDoc, FormatJSON},
		{"yaml content", StdinName, yamlDoc, FormatYAML},
		{"toml content", StdinName, tomlDoc, FormatTOML},
		{"unknown extension", "toast.txt", tomlDoc, FormatTOML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFormat(tt.file, []byte(tt.data)))
		})
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestReader_Stdin(t *testing.T) {
	r := NewReaderWithStdin(strings.NewReader(jsonDoc))

	doc, err := r.Load(StdinName, "", model.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "Deploy", doc.Title)
}

func TestReader_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "toast.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlDoc), 0o644))

	doc, err := NewReader().Load(path, "", model.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "production", doc.Selected())
}

func TestReader_Errors(t *testing.T) {
	_, err := NewReader().Load(filepath.Join(t.TempDir(), "missing.toml"), "", model.DefaultConfig())
	var adapterErr *AdapterError
	require.ErrorAs(t, err, &adapterErr)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = NewReaderWithStdin(strings.NewReader("")).Load(StdinName, "", model.DefaultConfig())
	assert.Error(t, err)

	big := strings.NewReader(strings.Repeat("#", MaxDocumentSize+1))
	_, err = NewReaderWithStdin(big).Load(StdinName, FormatTOML, model.DefaultConfig())
	assert.ErrorContains(t, err, "too large")
}
