package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// importRegex matches @import "file.css"; or @import 'file.css'; or @import url("file.css");
var importRegex = regexp.MustCompile(`@import\s+(?:url\s*\(\s*)?["']([^"']+)["']\s*\)?;?`)

// Theme represents a CSS theme with metadata.
type Theme struct {
	Name     string    // Theme name (without .css extension)
	Path     string    // Full path to the CSS file (empty for bundled themes)
	CSS      string    // The CSS content with imports inlined
	ModTime  time.Time // Last modification time
	Embedded bool      // True if loaded from the bundled set
}

// NewTheme creates a new Theme by loading a CSS file.
// CSS @import statements are resolved and inlined.
func NewTheme(name, path string) (*Theme, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	css, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return &Theme{
		Name:    name,
		Path:    path,
		CSS:     ProcessImports(string(css), filepath.Dir(path), nil),
		ModTime: info.ModTime(),
	}, nil
}

// NewEmbeddedTheme creates a bundled theme by name.
func NewEmbeddedTheme(name string) (*Theme, error) {
	css, ok := GetEmbeddedTheme(name)
	if !ok {
		return nil, fmt.Errorf("theme not found: %s", name)
	}
	return &Theme{
		Name:     name,
		CSS:      ProcessImports(css, "", nil),
		Embedded: true,
	}, nil
}

// NewDefaultTheme creates the embedded default theme.
func NewDefaultTheme() *Theme {
	t, err := NewEmbeddedTheme(DefaultThemeName)
	if err != nil {
		return &Theme{Name: DefaultThemeName, Embedded: true}
	}
	return t
}

// Resolve loads a theme by name.
// Resolution order:
//  1. themesDir/<name>.css
//  2. Embedded/bundled themes
//
// A file in themesDir overrides a bundled theme of the same name.
func Resolve(name, themesDir string) (*Theme, error) {
	if name == "" {
		name = DefaultThemeName
	}

	if themesDir != "" {
		themePath := filepath.Join(themesDir, name+".css")
		if _, err := os.Stat(themePath); err == nil {
			return NewTheme(name, themePath)
		}
	}
	return NewEmbeddedTheme(name)
}

// ProcessImports resolves and inlines @import statements in CSS.
// Imports are resolved relative to baseDir, then against the embedded set.
// The seen map prevents circular imports.
func ProcessImports(css string, baseDir string, seen map[string]bool) string {
	if seen == nil {
		seen = make(map[string]bool)
	}

	return importRegex.ReplaceAllStringFunc(css, func(match string) string {
		submatch := importRegex.FindStringSubmatch(match)
		if len(submatch) < 2 {
			return match
		}
		importPath := submatch[1]

		fullPath := importPath
		if !filepath.IsAbs(importPath) {
			fullPath = filepath.Join(baseDir, importPath)
		}

		if seen[fullPath] {
			return "/* circular import prevented: " + importPath + " */"
		}
		seen[fullPath] = true

		importedCSS, err := os.ReadFile(fullPath)
		if err != nil || baseDir == "" {
			baseName := filepath.Base(importPath)
			if strings.HasPrefix(baseName, "_") {
				if embeddedCSS, found := GetEmbeddedPartial(baseName); found {
					return "/* imported (embedded): " + importPath + " */\n" + embeddedCSS
				}
			}
			if embeddedCSS, found := GetEmbeddedTheme(strings.TrimSuffix(baseName, ".css")); found {
				return "/* imported (embedded): " + importPath + " */\n" + embeddedCSS
			}
			if err == nil {
				err = os.ErrNotExist
			}
			return "/* import failed: " + importPath + " - " + err.Error() + " */"
		}

		processed := ProcessImports(string(importedCSS), filepath.Dir(fullPath), seen)
		return "/* imported: " + importPath + " */\n" + processed
	})
}

// Reload reloads the theme from disk.
// Returns true if the content changed.
func (t *Theme) Reload() (bool, error) {
	if t.Embedded {
		return false, nil
	}

	info, err := os.Stat(t.Path)
	if err != nil {
		return false, err
	}
	if !info.ModTime().After(t.ModTime) {
		return false, nil
	}

	css, err := os.ReadFile(t.Path)
	if err != nil {
		return false, err
	}

	oldCSS := t.CSS
	t.CSS = ProcessImports(string(css), filepath.Dir(t.Path), nil)
	t.ModTime = info.ModTime()

	return oldCSS != t.CSS, nil
}

// ThemeInfo provides basic theme information for listing.
type ThemeInfo struct {
	Name      string
	Path      string // user file, empty for a bundled theme in use
	IsDefault bool
	IsBundled bool
	// Overridden marks a bundled theme shadowed by a user file of the same name.
	Overridden bool
}

// ListAvailableThemes lists bundled themes followed by themes in themesDir.
// A user file named like a bundled theme replaces it, as Resolve does.
func ListAvailableThemes(themesDir string) ([]ThemeInfo, error) {
	index := make(map[string]int)
	var themes []ThemeInfo

	for _, name := range ListEmbeddedThemes() {
		index[name] = len(themes)
		themes = append(themes, ThemeInfo{
			Name:      name,
			IsDefault: name == DefaultThemeName,
			IsBundled: true,
		})
	}

	if themesDir == "" {
		return themes, nil
	}

	entries, err := os.ReadDir(themesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return themes, nil
		}
		return themes, err
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, "_") || filepath.Ext(name) != ".css" {
			continue
		}
		themeName := strings.TrimSuffix(name, ".css")
		path := filepath.Join(themesDir, name)

		if i, ok := index[themeName]; ok {
			if IsEmbeddedTheme(themeName) {
				themes[i].Path = path
				themes[i].Overridden = true
			}
			continue
		}
		index[themeName] = len(themes)
		themes = append(themes, ThemeInfo{
			Name: themeName,
			Path: path,
		})
	}

	return themes, nil
}
