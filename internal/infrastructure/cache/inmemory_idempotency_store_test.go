package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestStore(t *testing.T) (*InMemoryIdempotencyStore, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
	store := newInMemoryIdempotencyStore(time.Hour, clock.Now)
	t.Cleanup(func() { _ = store.Close() })
	return store, clock
}

func TestInMemoryIdempotencyStore_MarkProcessed(t *testing.T) {
	store, clock := newTestStore(t)
	ctx := context.Background()

	t.Run("first mark is new", func(t *testing.T) {
		isNew, err := store.MarkProcessed(ctx, "create-tour-1", time.Minute)
		require.NoError(t, err)
		assert.True(t, isNew)
	})

	t.Run("second mark is a duplicate", func(t *testing.T) {
		isNew, err := store.MarkProcessed(ctx, "create-tour-1", time.Minute)
		require.NoError(t, err)
		assert.False(t, isNew)
	})

	t.Run("key is reusable after expiry", func(t *testing.T) {
		clock.Advance(time.Minute)
		isNew, err := store.MarkProcessed(ctx, "create-tour-1", time.Minute)
		require.NoError(t, err)
		assert.True(t, isNew)
	})
}

func TestInMemoryIdempotencyStore_IsProcessed(t *testing.T) {
	store, clock := newTestStore(t)
	ctx := context.Background()

	processed, err := store.IsProcessed(ctx, "unknown")
	require.NoError(t, err)
	assert.False(t, processed)

	_, err = store.MarkProcessed(ctx, "upload-7", 10*time.Second)
	require.NoError(t, err)

	processed, err = store.IsProcessed(ctx, "upload-7")
	require.NoError(t, err)
	assert.True(t, processed)

	clock.Advance(11 * time.Second)
	processed, err = store.IsProcessed(ctx, "upload-7")
	require.NoError(t, err)
	assert.False(t, processed)
}

func TestInMemoryIdempotencyStore_Release(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	_, err := store.MarkProcessed(ctx, "create-tour-9", time.Hour)
	require.NoError(t, err)
	require.NoError(t, store.Release(ctx, "create-tour-9"))
	require.NoError(t, store.Release(ctx, "never-marked"))

	isNew, err := store.MarkProcessed(ctx, "create-tour-9", time.Hour)
	require.NoError(t, err)
	assert.True(t, isNew)
}

func TestInMemoryIdempotencyStore_Cleanup(t *testing.T) {
	store, clock := newTestStore(t)
	ctx := context.Background()

	_, _ = store.MarkProcessed(ctx, "short-1", time.Second)
	_, _ = store.MarkProcessed(ctx, "short-2", time.Second)
	_, _ = store.MarkProcessed(ctx, "long", time.Hour)
	assert.Equal(t, 3, store.Size())

	clock.Advance(2 * time.Second)
	store.cleanup()

	assert.Equal(t, 1, store.Size())
	processed, err := store.IsProcessed(ctx, "long")
	require.NoError(t, err)
	assert.True(t, processed)
}

func TestInMemoryIdempotencyStore_ConcurrentAccess(t *testing.T) {
	store := NewInMemoryIdempotencyStore(0)
	defer store.Close()

	ctx := context.Background()
	const workers = 100

	results := make(chan bool, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			isNew, err := store.MarkProcessed(ctx, "same-key", time.Hour)
			results <- err == nil && isNew
		}()
	}
	wg.Wait()
	close(results)

	newCount := 0
	for isNew := range results {
		if isNew {
			newCount++
		}
	}
	assert.Equal(t, 1, newCount)
}

func TestInMemoryIdempotencyStore_Close(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Millisecond)
	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}
