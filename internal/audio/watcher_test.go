package audio

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_InvalidatesOnWrite(t *testing.T) {
	dir := t.TempDir()
	var mu sync.Mutex
	var got []string

	w, err := NewWatcher(dir, func(name string) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, name)
	}, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start(t.Context()))
	defer func() { _ = w.Stop() }()
	assert.True(t, w.Watching())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	path := filepath.Join(dir, "icq.wav")
	require.NoError(t, os.WriteFile(path, []byte("RIFF"), 0o644))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) > 0
	}, 2*time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	for _, name := range got {
		assert.Equal(t, path, name)
	}
}

func TestWatcher_MissingDir(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), "nope"), func(string) {}, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start(t.Context()))
	assert.False(t, w.Watching())
	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
}

func TestIsSoundFile(t *testing.T) {
	assert.True(t, isSoundFile("/a/b.WAV"))
	assert.True(t, isSoundFile("b.mp3"))
	assert.True(t, isSoundFile("b.ogg"))
	assert.False(t, isSoundFile("b.txt"))
}
