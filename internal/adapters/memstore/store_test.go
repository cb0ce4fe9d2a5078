package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/biblio-admin/internal/ports"
)

func TestStore_SetAndGet(t *testing.T) {
	store := New()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, ports.KeyToken, "abc"))

	v, ok, err := store.Get(ctx, ports.KeyToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", v)
}

func TestStore_GetMissing(t *testing.T) {
	store := New()

	v, ok, err := store.Get(context.Background(), ports.KeyUser)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestStore_Remove(t *testing.T) {
	store := New()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, ports.KeyToken, "abc"))
	require.NoError(t, store.Remove(ctx, ports.KeyToken))

	_, ok, err := store.Get(ctx, ports.KeyToken)
	require.NoError(t, err)
	assert.False(t, ok)

	// Removing an absent key is a no-op.
	require.NoError(t, store.Remove(ctx, ports.KeyToken))
}

func TestStore_WatchDeliversChanges(t *testing.T) {
	store := New()
	ctx := context.Background()

	ch, stop, err := store.Watch(ctx)
	require.NoError(t, err)
	defer stop()

	require.NoError(t, store.Set(ctx, ports.KeyToken, "abc"))

	select {
	case change := <-ch:
		assert.Equal(t, ports.KeyToken, change.Key)
		assert.Equal(t, "abc", change.Value)
		assert.False(t, change.Removed)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for change")
	}

	require.NoError(t, store.Remove(ctx, ports.KeyToken))

	select {
	case change := <-ch:
		assert.Equal(t, ports.KeyToken, change.Key)
		assert.True(t, change.Removed)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for removal")
	}
}

func TestStore_WatchStopClosesChannel(t *testing.T) {
	store := New()

	ch, stop, err := store.Watch(context.Background())
	require.NoError(t, err)

	stop()
	stop() // idempotent

	_, open := <-ch
	assert.False(t, open)
}

func TestStore_WatchContextCancelClosesChannel(t *testing.T) {
	store := New()
	ctx, cancel := context.WithCancel(context.Background())

	ch, _, err := store.Watch(ctx)
	require.NoError(t, err)

	cancel()

	select {
	case _, open := <-ch:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("channel not closed after context cancel")
	}
}
