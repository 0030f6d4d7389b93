package cachestore

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreHitIsCaseAndWhitespaceInsensitive(t *testing.T) {
	store := New(5*time.Minute, 100)

	store.Set("paris", "value")

	got, ok := store.Get("  PARIS ")
	require.True(t, ok)
	assert.Equal(t, "value", got)
}

func TestStoreExpiredEntryIsAMiss(t *testing.T) {
	store := New(20*time.Millisecond, 100)

	store.Set("lisbon", "value")
	time.Sleep(30 * time.Millisecond)

	_, ok := store.Get("lisbon")
	assert.False(t, ok)
}

func TestStoreSetOverwritesAndResetsExpiry(t *testing.T) {
	store := New(40*time.Millisecond, 100)

	store.Set("tokyo", "old")
	time.Sleep(25 * time.Millisecond)
	store.Set("tokyo", "new")
	time.Sleep(25 * time.Millisecond)

	// The rewrite reset the clock, so the entry is still live.
	got, ok := store.Get("tokyo")
	require.True(t, ok)
	assert.Equal(t, "new", got)
}

func TestStoreSweepRemovesOnlyExpiredEntries(t *testing.T) {
	store := New(30*time.Millisecond, 10)

	for i := 0; i < 10; i++ {
		store.Set(fmt.Sprintf("old-%d", i), i)
	}
	time.Sleep(40 * time.Millisecond)

	// Crossing maxEntries triggers the sweep; the stale entries go, the
	// fresh one stays even though the threshold was exceeded.
	store.Set("fresh", "value")

	assert.Equal(t, 1, store.Len())
	_, ok := store.Get("fresh")
	assert.True(t, ok)
	_, ok = store.Get("old-3")
	assert.False(t, ok)
}
