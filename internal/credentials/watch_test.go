package credentials

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatch_ReportsSaveAndDelete(t *testing.T) {
	slot, err := NewFileSlot(t.TempDir(), nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var changes atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, slot, func() { changes.Add(1) }, nil)
	}()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, slot.Save(context.Background(), StoredSession{TokenPair: TokenPair{Access: "a", Refresh: "r"}, Persistent: true}))
	require.Eventually(t, func() bool { return changes.Load() >= 1 }, 3*time.Second, 20*time.Millisecond)

	before := changes.Load()
	require.NoError(t, slot.Delete(context.Background()))
	require.Eventually(t, func() bool { return changes.Load() > before }, 3*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not stop after context cancellation")
	}
}

func TestWatch_MissingDirectory(t *testing.T) {
	slot, err := NewFileSlot(t.TempDir(), nil)
	require.NoError(t, err)
	slot.dir = slot.dir + "/does-not-exist"

	err = Watch(context.Background(), slot, func() {}, nil)
	assert.Error(t, err)
}
