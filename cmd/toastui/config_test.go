package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/toastui/internal/config"
)

func TestWriteConfig_TOML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeConfig(&buf, config.DefaultConfig(), "toml"))

	assert.Contains(t, buf.String(), "[display]")
	assert.Contains(t, buf.String(), "[audio]")

	got := config.DefaultConfig()
	require.NoError(t, toml.Unmarshal(buf.Bytes(), got))
	assert.Equal(t, config.DefaultConfig(), got)
}

func TestWriteConfig_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeConfig(&buf, config.DefaultConfig(), "yaml"))

	got := config.DefaultConfig()
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), got))
	assert.Equal(t, config.DefaultConfig(), got)
}

func TestWriteConfig_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := writeConfig(&buf, config.DefaultConfig(), "json")
	require.Error(t, err)
	assert.Empty(t, buf.String())
}

func TestSaveConfig_NewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	c := config.DefaultConfig()
	c.Theme.Name = "adwaita"

	require.NoError(t, saveConfig(c, path, false))

	got, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "adwaita", got.Theme.Name)
}

func TestSaveConfig_ExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("# mine\n"), 0644))

	err := saveConfig(config.DefaultConfig(), path, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# mine\n", string(data))
}

func TestSaveConfig_Force(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("# mine\n"), 0644))

	require.NoError(t, saveConfig(config.DefaultConfig(), path, true))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[display]")
}
