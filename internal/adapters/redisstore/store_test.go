package redisstore

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/biblio-admin/internal/ports"
	"github.com/openshelf/biblio-admin/internal/testutil"
)

// testPrefix returns a unique prefix per test so parallel runs and leftover
// keys cannot interfere.
func testPrefix(t *testing.T) string {
	t.Helper()
	return "test:" + t.Name() + ":" + uuid.NewString()[:8] + ":"
}

func TestStore_SetAndGet(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	store := NewWithPrefix(client, testPrefix(t))
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, ports.KeyToken, "abc"))

	v, ok, err := store.Get(ctx, ports.KeyToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", v)
}

func TestStore_GetMissing(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	store := NewWithPrefix(client, testPrefix(t))

	_, ok, err := store.Get(context.Background(), ports.KeyUser)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_Remove(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	store := NewWithPrefix(client, testPrefix(t))
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, ports.KeyToken, "abc"))
	require.NoError(t, store.Remove(ctx, ports.KeyToken))

	_, ok, err := store.Get(ctx, ports.KeyToken)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_EmptyKey(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	store := NewWithPrefix(client, testPrefix(t))
	ctx := context.Background()

	_, _, err := store.Get(ctx, "")
	require.Error(t, err)
	require.Error(t, store.Set(ctx, "", "x"))
	require.NoError(t, store.Remove(ctx, "")) // nothing to remove
}

func TestStore_WatchSeesOtherClients(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	prefix := testPrefix(t)
	watcher := NewWithPrefix(client, prefix)
	writer := NewWithPrefix(client, prefix)
	ctx := context.Background()

	ch, stop, err := watcher.Watch(ctx)
	require.NoError(t, err)
	defer stop()

	require.NoError(t, writer.Set(ctx, ports.KeyToken, "abc"))

	select {
	case change := <-ch:
		assert.Equal(t, ports.KeyToken, change.Key)
		assert.Equal(t, "abc", change.Value)
		assert.False(t, change.Removed)
		assert.NotEmpty(t, change.Origin)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for change from other client")
	}

	require.NoError(t, writer.Remove(ctx, ports.KeyToken))

	select {
	case change := <-ch:
		assert.Equal(t, ports.KeyToken, change.Key)
		assert.True(t, change.Removed)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for removal from other client")
	}
}

func TestStore_WatchSkipsOwnWrites(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	store := NewWithPrefix(client, testPrefix(t))
	ctx := context.Background()

	ch, stop, err := store.Watch(ctx)
	require.NoError(t, err)
	defer stop()

	require.NoError(t, store.Set(ctx, ports.KeyToken, "abc"))

	select {
	case change := <-ch:
		t.Fatalf("unexpected self-delivered change: %+v", change)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestStore_PrefixIsolation(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	a := NewWithPrefix(client, testPrefix(t))
	b := NewWithPrefix(client, testPrefix(t))
	ctx := context.Background()

	require.NoError(t, a.Set(ctx, ports.KeyToken, "abc"))

	_, ok, err := b.Get(ctx, ports.KeyToken)
	require.NoError(t, err)
	assert.False(t, ok)
}
