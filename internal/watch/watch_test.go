package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldIgnore(t *testing.T) {
	ignored := []string{".hidden", "a/.DS_Store", "page.html~", "x.swp", "x.swx", "#draft#", "Thumbs.db", ".#lock"}
	for _, p := range ignored {
		assert.True(t, ShouldIgnore(p), p)
	}
	kept := []string{"index.html", "src/data/site.yml", "#notes.md"}
	for _, p := range kept {
		assert.False(t, ShouldIgnore(p), p)
	}
}

func TestWatcher_RebuildsOnChange(t *testing.T) {
	dir := t.TempDir()
	var builds atomic.Int32

	w := New([]string{dir}, func(context.Context) error {
		builds.Add(1)
		return nil
	}, WithDebounce(20*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give fsnotify time to register the directory.
	time.Sleep(100 * time.Millisecond)
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "page.html"), []byte{byte('a' + i)}, 0o600))
	}

	require.Eventually(t, func() bool { return builds.Load() >= 1 }, 3*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_NoDirectories(t *testing.T) {
	w := New([]string{filepath.Join(t.TempDir(), "missing")}, func(context.Context) error { return nil })
	require.Error(t, w.Run(context.Background()))
}
