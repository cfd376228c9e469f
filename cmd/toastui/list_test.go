package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/toastui/internal/layout"
	"github.com/jmylchreest/toastui/internal/theme"
)

func lineFor(t *testing.T, out, name string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(strings.TrimPrefix(line, "*"))
		if len(fields) > 0 && fields[0] == name {
			return line
		}
	}
	t.Fatalf("no line for %q in:\n%s", name, out)
	return ""
}

func TestWriteThemes(t *testing.T) {
	infos := []theme.ThemeInfo{
		{Name: "adwaita", IsBundled: true},
		{Name: "default", IsDefault: true, IsBundled: true, Path: "/home/u/themes/default.css", Overridden: true},
		{Name: "mine", Path: "/home/u/themes/mine.css"},
	}

	var buf bytes.Buffer
	require.NoError(t, writeThemes(&buf, infos, "mine"))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "  NAME"))
	assert.Contains(t, lineFor(t, out, "adwaita"), "bundled")
	assert.Contains(t, lineFor(t, out, "default"), "user (overrides bundled)")
	assert.Contains(t, lineFor(t, out, "default"), "/home/u/themes/default.css")
	assert.True(t, strings.HasPrefix(lineFor(t, out, "mine"), "* mine"))
	assert.False(t, strings.HasPrefix(lineFor(t, out, "default"), "*"))
}

func TestWriteThemes_EmptyCurrentMarksDefault(t *testing.T) {
	infos := []theme.ThemeInfo{
		{Name: "adwaita", IsBundled: true},
		{Name: "default", IsDefault: true, IsBundled: true},
	}

	var buf bytes.Buffer
	require.NoError(t, writeThemes(&buf, infos, ""))

	assert.True(t, strings.HasPrefix(lineFor(t, buf.String(), "default"), "* default"))
	assert.Contains(t, lineFor(t, buf.String(), "default"), "-")
}

func TestWriteTemplates(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "wide.xml"), []byte("<layout/>"), 0644))

	infos, err := layout.NewLoader(dir).List()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeTemplates(&buf, infos, ""))
	out := buf.String()

	assert.True(t, strings.HasPrefix(lineFor(t, out, "default"), "* default"))
	assert.Contains(t, lineFor(t, out, "compact"), "bundled")
	assert.Contains(t, lineFor(t, out, "wide"), "user")
	assert.Contains(t, lineFor(t, out, "wide"), "wide.xml")
}
