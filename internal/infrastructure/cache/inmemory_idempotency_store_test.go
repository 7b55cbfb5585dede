package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkProcessedOnce(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()
	ctx := context.Background()

	first, err := store.MarkProcessed(ctx, "evt_123", time.Minute)
	require.NoError(t, err)
	assert.True(t, first)

	second, err := store.MarkProcessed(ctx, "evt_123", time.Minute)
	require.NoError(t, err)
	assert.False(t, second)
}

func TestIsProcessed(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()
	ctx := context.Background()

	processed, err := store.IsProcessed(ctx, "evt_abc")
	require.NoError(t, err)
	assert.False(t, processed)

	_, err = store.MarkProcessed(ctx, "evt_abc", time.Minute)
	require.NoError(t, err)

	processed, err = store.IsProcessed(ctx, "evt_abc")
	require.NoError(t, err)
	assert.True(t, processed)
}

func TestExpiredEntryIsReprocessable(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()
	ctx := context.Background()

	_, err := store.MarkProcessed(ctx, "evt_ttl", time.Millisecond)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	processed, err := store.IsProcessed(ctx, "evt_ttl")
	require.NoError(t, err)
	assert.False(t, processed)

	first, err := store.MarkProcessed(ctx, "evt_ttl", time.Minute)
	require.NoError(t, err)
	assert.True(t, first)
}

func TestReleaseAllowsReprocessing(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()
	ctx := context.Background()

	first, err := store.MarkProcessed(ctx, "evt_retry", time.Minute)
	require.NoError(t, err)
	assert.True(t, first)

	require.NoError(t, store.Release(ctx, "evt_retry"))

	again, err := store.MarkProcessed(ctx, "evt_retry", time.Minute)
	require.NoError(t, err)
	assert.True(t, again)
}

func TestCloseIsIdempotent(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	require.NoError(t, store.Close())
	require.NoError(t, store.Close())
}
