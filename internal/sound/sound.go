// Package sound maps toast sounds to audio assets.
//
// Assets are looked up in a user sounds directory first (any of .wav, .ogg,
// .mp3), then in the bundled WAV files.
package sound

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jmylchreest/toastui/internal/model"
)

// EmbeddedAssets contains the bundled notification sounds.
//
//go:embed assets/*.wav
var EmbeddedAssets embed.FS

// ErrAssetNotFound is returned when a sound has no asset on disk or bundled.
var ErrAssetNotFound = errors.New("sound asset not found")

// Extensions lists the formats accepted from the user sounds directory, in lookup order.
var Extensions = []string{".wav", ".ogg", ".mp3"}

// assets maps each sound to its asset base name.
var assets = map[model.Sound]string{
	model.SoundApple:    "apple",
	model.SoundICQ:      "icq",
	model.SoundTelegram: "telegram",
	model.SoundVK:       "vk",
}

// AssetName returns the asset base name for s.
func AssetName(s model.Sound) (string, bool) {
	name, ok := assets[s]
	return name, ok
}

// Source is a resolved, openable audio asset.
type Source struct {
	Name     string // cache key: absolute path or "embedded:<file>"
	Ext      string // lowercase extension including the dot
	Path     string // empty for embedded assets
	Embedded bool
	open     func() (io.ReadCloser, error)
}

// Open returns a reader for the asset data.
func (s Source) Open() (io.ReadCloser, error) {
	if s.open == nil {
		return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, s.Name)
	}
	return s.open()
}

// Resolver locates assets for sounds.
type Resolver struct {
	dir string
	fs  fs.FS
}

// NewResolver creates a resolver that prefers files in dir. An empty dir
// resolves bundled assets only.
func NewResolver(dir string) *Resolver {
	return &Resolver{dir: dir, fs: EmbeddedAssets}
}

// Dir returns the user sounds directory.
func (r *Resolver) Dir() string {
	return r.dir
}

// Resolve returns the asset for s.
func (r *Resolver) Resolve(s model.Sound) (Source, error) {
	name, ok := AssetName(s)
	if !ok {
		return Source{}, fmt.Errorf("%w: unknown sound %s", ErrAssetNotFound, s)
	}

	if r.dir != "" {
		for _, ext := range Extensions {
			path := filepath.Join(r.dir, name+ext)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return fileSource(path, ext), nil
			}
		}
	}

	file := "assets/" + name + ".wav"
	if _, err := fs.Stat(r.fs, file); err != nil {
		return Source{}, fmt.Errorf("%w: %s", ErrAssetNotFound, name)
	}
	return Source{
		Name:     "embedded:" + name + ".wav",
		Ext:      ".wav",
		Embedded: true,
		open: func() (io.ReadCloser, error) {
			return r.fs.Open(file)
		},
	}, nil
}

// FileSource returns a Source for an arbitrary audio file.
func FileSource(path string) Source {
	return fileSource(path, filepath.Ext(path))
}

func fileSource(path, ext string) Source {
	return Source{
		Name: path,
		Ext:  ext,
		Path: path,
		open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}
}
