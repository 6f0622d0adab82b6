package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Invex-api/internal/application/deal"
)

func newRedisStore(t *testing.T, ttl time.Duration) (*RedisIdempotencyStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisIdempotencyStoreWithClient(client, "test:", ttl)
	t.Cleanup(func() { _ = store.Close() })
	return store, mr
}

// exerciseStore comprueba el contrato común a los dos almacenes.
func exerciseStore(t *testing.T, store deal.IdempotencyStore) {
	ctx := context.Background()

	t.Run("first reservation wins", func(t *testing.T) {
		dealID, reserved, err := store.Reserve(ctx, "k1")
		require.NoError(t, err)
		assert.True(t, reserved)
		assert.Empty(t, dealID)
	})

	t.Run("second reservation sees request in progress", func(t *testing.T) {
		dealID, reserved, err := store.Reserve(ctx, "k1")
		require.NoError(t, err)
		assert.False(t, reserved)
		assert.Empty(t, dealID)
	})

	t.Run("completed key returns deal id", func(t *testing.T) {
		require.NoError(t, store.Complete(ctx, "k1", "deal-1"))
		dealID, reserved, err := store.Reserve(ctx, "k1")
		require.NoError(t, err)
		assert.False(t, reserved)
		assert.Equal(t, "deal-1", dealID)
	})

	t.Run("released key can be reserved again", func(t *testing.T) {
		_, reserved, err := store.Reserve(ctx, "k2")
		require.NoError(t, err)
		require.True(t, reserved)
		require.NoError(t, store.Release(ctx, "k2"))

		_, reserved, err = store.Reserve(ctx, "k2")
		require.NoError(t, err)
		assert.True(t, reserved)
	})
}

func TestMemoryIdempotencyStore(t *testing.T) {
	store := NewMemoryIdempotencyStore(time.Hour)
	defer store.Close()
	exerciseStore(t, store)
	assert.Equal(t, 2, store.Size())
}

func TestMemoryIdempotencyStore_Expiration(t *testing.T) {
	store := NewMemoryIdempotencyStore(10 * time.Millisecond)
	defer store.Close()
	ctx := context.Background()

	_, reserved, err := store.Reserve(ctx, "k")
	require.NoError(t, err)
	require.True(t, reserved)

	time.Sleep(20 * time.Millisecond)

	_, reserved, err = store.Reserve(ctx, "k")
	require.NoError(t, err)
	assert.True(t, reserved, "expired key should be reservable")
}

func TestRedisIdempotencyStore(t *testing.T) {
	store, _ := newRedisStore(t, time.Hour)
	exerciseStore(t, store)
}

func TestRedisIdempotencyStore_KeysCarryPrefixAndTTL(t *testing.T) {
	store, mr := newRedisStore(t, time.Minute)
	ctx := context.Background()

	_, reserved, err := store.Reserve(ctx, "import:abc")
	require.NoError(t, err)
	require.True(t, reserved)

	assert.True(t, mr.Exists("test:import:abc"))
	assert.Equal(t, time.Minute, mr.TTL("test:import:abc"))

	mr.FastForward(2 * time.Minute)
	_, reserved, err = store.Reserve(ctx, "import:abc")
	require.NoError(t, err)
	assert.True(t, reserved)
}
