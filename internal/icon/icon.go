// Package icon resolves and loads toast icons from local paths or URLs.
package icon

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// Default loader limits.
const (
	DefaultTimeout  = 10 * time.Second
	DefaultMaxBytes = 8 << 20
)

var (
	// ErrEmptySource is returned when no icon path or URL was given.
	ErrEmptySource = errors.New("icon source is empty")
	// ErrTooLarge is returned when the icon exceeds the loader's size limit.
	ErrTooLarge = errors.New("icon exceeds size limit")
)

// Source is a parsed icon location.
type Source struct {
	Raw  string
	URL  *url.URL // set for http(s) sources
	Path string   // set for local files
}

// IsRemote reports whether the icon is fetched over HTTP.
func (s Source) IsRemote() bool {
	return s.URL != nil
}

// Parse classifies raw as an http(s) URL, a file:// URL, or a local path.
func Parse(raw string) (Source, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Source{}, ErrEmptySource
	}

	lower := strings.ToLower(raw)
	switch {
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		u, err := url.Parse(raw)
		if err != nil {
			return Source{}, fmt.Errorf("invalid icon url %q: %w", raw, err)
		}
		if u.Host == "" {
			return Source{}, fmt.Errorf("invalid icon url %q: missing host", raw)
		}
		return Source{Raw: raw, URL: u}, nil
	case strings.HasPrefix(lower, "file://"):
		u, err := url.Parse(raw)
		if err != nil {
			return Source{}, fmt.Errorf("invalid icon url %q: %w", raw, err)
		}
		return Source{Raw: raw, Path: u.Path}, nil
	default:
		return Source{Raw: raw, Path: expandPath(raw)}, nil
	}
}

// Loader reads icon bytes.
type Loader struct {
	client   *http.Client
	maxBytes int64
}

// NewLoader creates a loader with the given fetch timeout and size limit.
// Non-positive values select the defaults.
func NewLoader(timeout time.Duration, maxBytes int64) *Loader {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Loader{
		client:   &http.Client{Timeout: timeout},
		maxBytes: maxBytes,
	}
}

// Load returns the raw image bytes for raw.
func (l *Loader) Load(ctx context.Context, raw string) ([]byte, error) {
	src, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	if src.IsRemote() {
		return l.fetch(ctx, src.URL)
	}
	return l.readFile(src.Path)
}

func (l *Loader) readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open icon: %w", err)
	}
	defer func() { _ = f.Close() }()
	return l.readLimited(f)
}

func (l *Loader) fetch(ctx context.Context, u *url.URL) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create icon request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch icon: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to fetch icon: unexpected status %s", resp.Status)
	}
	return l.readLimited(resp.Body)
}

func (l *Loader) readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, l.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read icon: %w", err)
	}
	if int64(len(data)) > l.maxBytes {
		return nil, ErrTooLarge
	}
	if len(data) == 0 {
		return nil, errors.New("icon is empty")
	}
	return data, nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return home + path[1:]
}
