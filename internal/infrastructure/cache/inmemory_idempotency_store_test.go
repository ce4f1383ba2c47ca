package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryIdempotencyStore_MarkProcessed(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()

	ctx := context.Background()

	t.Run("claims a new key", func(t *testing.T) {
		isNew, err := store.MarkProcessed(ctx, "draft:create:s1", time.Hour)
		require.NoError(t, err)
		assert.True(t, isNew, "new key should return true")
	})

	t.Run("returns false for an already claimed key", func(t *testing.T) {
		isNew, err := store.MarkProcessed(ctx, "draft:create:s2", time.Hour)
		require.NoError(t, err)
		assert.True(t, isNew)

		isNew, err = store.MarkProcessed(ctx, "draft:create:s2", time.Hour)
		require.NoError(t, err)
		assert.False(t, isNew, "claimed key should return false")
	})

	t.Run("allows reclaiming after expiration", func(t *testing.T) {
		isNew, err := store.MarkProcessed(ctx, "draft:create:s3", 10*time.Millisecond)
		require.NoError(t, err)
		assert.True(t, isNew)

		time.Sleep(20 * time.Millisecond)

		isNew, err = store.MarkProcessed(ctx, "draft:create:s3", 10*time.Millisecond)
		require.NoError(t, err)
		assert.True(t, isNew, "expired key should be claimable again")
	})
}

func TestInMemoryIdempotencyStore_IsProcessed(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()

	ctx := context.Background()

	t.Run("returns false for an unknown key", func(t *testing.T) {
		processed, err := store.IsProcessed(ctx, "unknown-key")
		require.NoError(t, err)
		assert.False(t, processed)
	})

	t.Run("returns true for a claimed key", func(t *testing.T) {
		_, err := store.MarkProcessed(ctx, "claimed-key", time.Hour)
		require.NoError(t, err)

		processed, err := store.IsProcessed(ctx, "claimed-key")
		require.NoError(t, err)
		assert.True(t, processed)
	})

	t.Run("returns false for an expired key", func(t *testing.T) {
		_, err := store.MarkProcessed(ctx, "expired-key", 10*time.Millisecond)
		require.NoError(t, err)

		time.Sleep(20 * time.Millisecond)

		processed, err := store.IsProcessed(ctx, "expired-key")
		require.NoError(t, err)
		assert.False(t, processed, "expired key should return false")
	})
}

func TestInMemoryIdempotencyStore_Cleanup(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()

	ctx := context.Background()

	store.MarkProcessed(ctx, "short-lived-1", 10*time.Millisecond)
	store.MarkProcessed(ctx, "short-lived-2", 10*time.Millisecond)
	store.MarkProcessed(ctx, "long-lived", time.Hour)

	assert.Equal(t, 3, store.Size())

	time.Sleep(20 * time.Millisecond)
	store.cleanup()

	assert.Equal(t, 1, store.Size())

	processed, err := store.IsProcessed(ctx, "long-lived")
	require.NoError(t, err)
	assert.True(t, processed)

	processed, err = store.IsProcessed(ctx, "short-lived-1")
	require.NoError(t, err)
	assert.False(t, processed)
}

func TestInMemoryIdempotencyStore_ConcurrentAccess(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()

	ctx := context.Background()
	const numGoroutines = 100
	const key = "draft:create:shared-session"

	results := make(chan bool, numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			isNew, err := store.MarkProcessed(ctx, key, time.Hour)
			results <- err == nil && isNew
		}()
	}

	newCount := 0
	for i := 0; i < numGoroutines; i++ {
		if <-results {
			newCount++
		}
	}

	// Exactly one caller wins the claim; everyone else sees a duplicate.
	assert.Equal(t, 1, newCount)
}

func TestInMemoryIdempotencyStore_Close(t *testing.T) {
	store := NewInMemoryIdempotencyStore()

	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close(), "close is idempotent")
}
