package watcher_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kvisser/scrollto/internal/watcher"
)

func writeFeed(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestWatcher_DebouncesWriteBursts(t *testing.T) {
	dir := t.TempDir()
	feed := filepath.Join(dir, "items.txt")
	writeFeed(t, feed, "one\ntwo\n")

	w, err := watcher.New(feed, watcher.WithDebounce(50*time.Millisecond))
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	changed, err := w.Start()
	require.NoError(t, err)

	// A burst of writes coalesces into one signal.
	for i := 0; i < 10; i++ {
		writeFeed(t, feed, fmt.Sprintf("line %d\n", i))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-changed:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected a change signal")
	}

	select {
	case <-changed:
		t.Fatal("burst must produce a single signal")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	feed := filepath.Join(dir, "items.txt")
	other := filepath.Join(dir, "notes.md")
	writeFeed(t, feed, "one\n")
	writeFeed(t, other, "scratch")

	w, err := watcher.New(feed, watcher.WithDebounce(50*time.Millisecond))
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	changed, err := w.Start()
	require.NoError(t, err)

	writeFeed(t, other, "more scratch")

	select {
	case <-changed:
		t.Fatal("unrelated files must not signal")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcher_SignalsOnRenameReplace(t *testing.T) {
	dir := t.TempDir()
	feed := filepath.Join(dir, "items.txt")
	writeFeed(t, feed, "one\n")

	w, err := watcher.New(feed, watcher.WithDebounce(50*time.Millisecond))
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	changed, err := w.Start()
	require.NoError(t, err)

	// Editors often save by writing a temp file and renaming over the
	// target; the create of the final name must still signal.
	tmp := filepath.Join(dir, "items.txt.tmp")
	writeFeed(t, tmp, "replaced\n")
	require.NoError(t, os.Rename(tmp, feed))

	select {
	case <-changed:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected a change signal after rename-replace")
	}
}

func TestWatcher_StopDoesNotHang(t *testing.T) {
	dir := t.TempDir()
	feed := filepath.Join(dir, "items.txt")
	writeFeed(t, feed, "one\n")

	w, err := watcher.New(feed)
	require.NoError(t, err)
	_, err = w.Start()
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		assert.NoError(t, w.Stop())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop timed out")
	}
}

func TestWatcher_StartFailsForMissingDirectory(t *testing.T) {
	w, err := watcher.New(filepath.Join(t.TempDir(), "missing", "items.txt"))
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	_, err = w.Start()
	require.Error(t, err)
}
