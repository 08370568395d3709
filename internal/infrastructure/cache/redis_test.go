package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/scrum-assistant/pkg/config"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client), mr
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := &config.Config{Redis: config.RedisConfig{Host: mr.Host(), Port: mr.Port()}}

	client, err := NewRedisClient(context.Background(), cfg)
	require.NoError(t, err)
	require.NoError(t, client.Close())

	mr.Close()
	_, err = NewRedisClient(context.Background(), cfg)
	assert.Error(t, err)
}

func TestRedisStore_SetNXAndGet(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()

	ok, err := store.SetNX(ctx, "session:1", []byte("a"), 0)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.SetNX(ctx, "session:1", []byte("b"), 0)
	require.NoError(t, err)
	assert.False(t, ok)

	value, err := store.Get(ctx, "session:1")
	require.NoError(t, err)
	assert.Equal(t, []byte("a"), value)

	_, err = store.Get(ctx, "session:2")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestRedisStore_Expiry(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	_, err := store.SetNX(ctx, "k", []byte("v"), time.Minute)
	require.NoError(t, err)

	mr.FastForward(30 * time.Second)
	_, err = store.Get(ctx, "k")
	require.NoError(t, err)

	// Update refreshes the expiry
	require.NoError(t, store.Update(ctx, "k", time.Minute, func(b []byte) ([]byte, error) { return b, nil }))
	mr.FastForward(45 * time.Second)
	_, err = store.Get(ctx, "k")
	require.NoError(t, err)

	mr.FastForward(time.Minute)
	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	keys, err := store.Keys(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, keys)

	ok, err := store.SetNX(ctx, "k", []byte("again"), 0)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisStore_UpdateErrorKeepsValue(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()

	_, err := store.SetNX(ctx, "k", []byte("v1"), 0)
	require.NoError(t, err)

	boom := errors.New("boom")
	err = store.Update(ctx, "k", 0, func([]byte) ([]byte, error) { return []byte("v2"), boom })
	require.ErrorIs(t, err, boom)

	value, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), value)

	err = store.Update(ctx, "missing", 0, func(b []byte) ([]byte, error) { return b, nil })
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestRedisStore_UpdateRetriesAfterConcurrentWrite(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	_, err := store.SetNX(ctx, "k", []byte("a"), 0)
	require.NoError(t, err)

	calls := 0
	err = store.Update(ctx, "k", 0, func(b []byte) ([]byte, error) {
		calls++
		if calls == 1 {
			// another instance writes between WATCH and EXEC
			require.NoError(t, mr.Set("k", "b"))
		}
		return append(b, 'x'), nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)

	value, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("bx"), value)
}

func TestRedisStore_UpdateGivesUpUnderContention(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	_, err := store.SetNX(ctx, "k", []byte("a"), 0)
	require.NoError(t, err)

	calls := 0
	err = store.Update(ctx, "k", 0, func(b []byte) ([]byte, error) {
		calls++
		require.NoError(t, mr.Set("k", "other"))
		return []byte("mine"), nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "contention")
	assert.Equal(t, maxTxRetries, calls)

	value, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("other"), value)
}

func TestRedisStore_ConcurrentUpdates(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()

	_, err := store.SetNX(ctx, "counter", []byte{}, 0)
	require.NoError(t, err)

	const writers = 20
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// a writer that loses every retry tries again, so no increment is dropped
			for attempt := 0; attempt < 50; attempt++ {
				err := store.Update(ctx, "counter", 0, func(b []byte) ([]byte, error) {
					return append(b, 'x'), nil
				})
				if err == nil {
					return
				}
			}
			errs <- errors.New("update never committed")
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	value, err := store.Get(ctx, "counter")
	require.NoError(t, err)
	assert.Len(t, value, writers)
}

func TestRedisStore_KeysByPrefix(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()

	for _, k := range []string{"session:b", "other:a", "session:a"} {
		_, err := store.SetNX(ctx, k, []byte("v"), 0)
		require.NoError(t, err)
	}

	keys, err := store.Keys(ctx, "session:")
	require.NoError(t, err)
	assert.Equal(t, []string{"session:a", "session:b"}, keys)
}
