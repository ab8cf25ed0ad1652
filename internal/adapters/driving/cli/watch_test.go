package cli

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchCmd_Use(t *testing.T) {
	assert.Equal(t, "watch", watchCmd.Use)
	assert.NotNil(t, watchCmd.Flags().Lookup("manifest"))
	assert.NotNil(t, watchCmd.Flags().Lookup("pom"))
	assert.Nil(t, watchCmd.Flags().Lookup("format"))
}

func TestWatchFiles(t *testing.T) {
	dir := t.TempDir()
	watched := writeFile(t, dir, "project.toml", "v1")
	other := writeFile(t, dir, "other.txt", "v1")

	ctx, cancel := context.WithCancel(context.Background())
	changes := make(chan string, 16)
	done := make(chan error, 1)
	go func() {
		done <- watchFiles(ctx, []string{watched}, 20*time.Millisecond, func(path string) {
			changes <- path
		})
	}()

	// Keep writing until the watcher is up and reports the change.
	want, err := filepath.Abs(watched)
	require.NoError(t, err)
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(100 * time.Millisecond)
	defer tick.Stop()

	var got string
loop:
	for {
		select {
		case got = <-changes:
			break loop
		case <-tick.C:
			require.NoError(t, os.WriteFile(other, []byte("ignored"), 0o644))
			require.NoError(t, os.WriteFile(watched, []byte("v2"), 0o644))
		case <-deadline:
			t.Fatal("no change reported")
		}
	}
	assert.Equal(t, want, got)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatchFiles_WaitsForRunningChange(t *testing.T) {
	dir := t.TempDir()
	watched := writeFile(t, dir, "project.toml", "v1")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	started := make(chan struct{})
	release := make(chan struct{})
	var finished atomic.Bool
	var once sync.Once

	done := make(chan error, 1)
	go func() {
		done <- watchFiles(ctx, []string{watched}, 20*time.Millisecond, func(string) {
			once.Do(func() { close(started) })
			<-release
			finished.Store(true)
		})
	}()

	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(100 * time.Millisecond)
	defer tick.Stop()
wait:
	for {
		select {
		case <-started:
			break wait
		case <-tick.C:
			require.NoError(t, os.WriteFile(watched, []byte("v2"), 0o644))
		case <-deadline:
			t.Fatal("no change reported")
		}
	}

	cancel()
	select {
	case <-done:
		t.Fatal("watcher returned while a change was still being handled")
	case <-time.After(100 * time.Millisecond):
	}

	close(release)
	select {
	case err := <-done:
		assert.NoError(t, err)
		assert.True(t, finished.Load())
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatchFiles_MissingDirectory(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope", "project.toml")

	err := watchFiles(context.Background(), []string{missing}, time.Millisecond, func(string) {})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to watch directory")
}
