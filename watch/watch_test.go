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

	"github.com/teranos/gwkit/errors"
)

func startWatcher(t *testing.T, path string, fn Func) {
	t.Helper()
	w, err := New(path, 50*time.Millisecond, fn)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
	})
}

func TestWatcher_DebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "base.gw")
	require.NoError(t, os.WriteFile(path, []byte("fam A B + C D\n"), 0o644))

	var calls atomic.Int32
	startWatcher(t, path, func(context.Context) error {
		calls.Add(1)
		return nil
	})

	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("fam A B + C E\n"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("fam A B + C F\n"), 0o644))

	require.Eventually(t, func() bool { return calls.Load() == 2 }, 2*time.Second, 10*time.Millisecond)
	assert.Never(t, func() bool { return calls.Load() > 2 }, 250*time.Millisecond, 10*time.Millisecond)
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "base.gw")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	var calls atomic.Int32
	startWatcher(t, path, func(context.Context) error {
		calls.Add(1)
		return nil
	})
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.gw"), []byte("x"), 0o644))
	assert.Never(t, func() bool { return calls.Load() > 1 }, 250*time.Millisecond, 10*time.Millisecond)
}

func TestWatcher_KeepsRunningAfterCallbackError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "base.gw")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	var calls atomic.Int32
	startWatcher(t, path, func(context.Context) error {
		calls.Add(1)
		return errors.New("parse failed")
	})
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("fam A B + C D\n"), 0o644))
	require.Eventually(t, func() bool { return calls.Load() == 2 }, 2*time.Second, 10*time.Millisecond)
}

func TestNew_MissingFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "absent.gw"), time.Millisecond, func(context.Context) error { return nil })
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}
