package filestore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/biblio-admin/internal/ports"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(Options{Dir: t.TempDir(), PollInterval: 20 * time.Millisecond})
	require.NoError(t, err)
	return store
}

func TestNew_RequiresDir(t *testing.T) {
	_, err := New(Options{})
	require.Error(t, err)
}

func TestStore_SetAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, ports.KeyToken, "abc"))

	v, ok, err := store.Get(ctx, ports.KeyToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", v)
}

func TestStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first, err := New(Options{Dir: dir})
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, ports.KeyUser, `{"id":1}`))

	second, err := New(Options{Dir: dir})
	require.NoError(t, err)

	v, ok, err := second.Get(ctx, ports.KeyUser)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"id":1}`, v)
}

func TestStore_GetMissing(t *testing.T) {
	store := newTestStore(t)

	_, ok, err := store.Get(context.Background(), ports.KeyUser)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_RemoveIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, ports.KeyToken, "abc"))
	require.NoError(t, store.Remove(ctx, ports.KeyToken))
	require.NoError(t, store.Remove(ctx, ports.KeyToken))

	_, ok, err := store.Get(ctx, ports.KeyToken)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_RejectsPathTraversal(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, _, err := store.Get(ctx, "../escape")
	require.Error(t, err)
	require.Error(t, store.Set(ctx, "a/b", "x"))
	require.Error(t, store.Remove(ctx, ".."))
}

func TestStore_WatchSeesExternalWrites(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	watcher, err := New(Options{Dir: dir, PollInterval: 20 * time.Millisecond})
	require.NoError(t, err)
	writer, err := New(Options{Dir: dir})
	require.NoError(t, err)

	ch, stop, err := watcher.Watch(ctx)
	require.NoError(t, err)
	defer stop()

	require.NoError(t, writer.Set(ctx, ports.KeyToken, "abc"))

	select {
	case change := <-ch:
		assert.Equal(t, ports.KeyToken, change.Key)
		assert.Equal(t, "abc", change.Value)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for poll-based change")
	}

	require.NoError(t, writer.Remove(ctx, ports.KeyToken))

	select {
	case change := <-ch:
		assert.Equal(t, ports.KeyToken, change.Key)
		assert.True(t, change.Removed)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for removal")
	}
}
