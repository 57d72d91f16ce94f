package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/elab/internal/adapters/watcher"
	"go.trai.ch/elab/internal/core/domain"
	"go.trai.ch/elab/internal/core/ports"
)

func TestWatcher_ReportsMatchingFiles(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "nested"), domain.DirPerm))

	w, err := watcher.NewWatcher(".yaml")
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, w.Start(ctx, root))

	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), domain.FilePerm))
	target := filepath.Join(root, "nested", "a.yaml")
	require.NoError(t, os.WriteFile(target, []byte("name: a\n"), domain.FilePerm))

	events := make(chan ports.WatchEvent, 10)
	go func() {
		for ev := range w.Events() {
			events <- ev
		}
		close(events)
	}()

	select {
	case ev := <-events:
		assert.Equal(t, target, ev.Path)
		assert.Contains(t, []ports.WatchOp{ports.OpCreate, ports.OpWrite}, ev.Operation)
	case <-time.After(5 * time.Second):
		t.Fatal("no event received")
	}
}
