package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string, at time.Time) {
	t.Helper()
	require.NoError(t, os.Chtimes(path, at, at))
}

func TestWatcherCheck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "points.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0644))
	start := time.Now().Add(-time.Hour)
	touch(t, path, start)

	w, err := NewWatcher(path, time.Second)
	require.NoError(t, err)
	assert.False(t, w.Check())

	touch(t, path, start.Add(time.Minute))
	assert.True(t, w.Check())
	assert.False(t, w.Check(), "baseline moves forward")
	assert.Equal(t, start.Add(time.Minute).Unix(), w.Baseline().Unix())
}

func TestWatcherMissingFile(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "nope.json"), time.Second)
	assert.Error(t, err)
}

func TestWatcherCallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "points.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0644))
	start := time.Now().Add(-time.Hour)
	touch(t, path, start)

	w, err := NewWatcher(path, 10*time.Millisecond)
	require.NoError(t, err)
	changed := make(chan struct{}, 4)
	w.OnChange(func() { changed <- struct{}{} })
	w.Start()
	w.Start()
	defer w.Stop()

	for i := 1; i <= 2; i++ {
		touch(t, path, start.Add(time.Duration(i)*time.Minute))
		select {
		case <-changed:
		case <-time.After(2 * time.Second):
			t.Fatalf("no callback for change %d", i)
		}
	}
}

func TestWatcherStopIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "points.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0644))
	w, err := NewWatcher(path, time.Millisecond)
	require.NoError(t, err)
	w.Stop()
	w.Start()
	w.Stop()
	w.Stop()
}
