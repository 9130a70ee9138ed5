package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryMissLeavesDefault(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	out := []string{"fallback"}
	found, err := store.Get(ctx, "nope", &out)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, []string{"fallback"}, out, "a miss must not touch the caller's default")
}

func TestMemoryRoundTrip(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	type record struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}

	require.NoError(t, store.Set(ctx, "records", []record{{ID: 1, Name: "one"}}))

	var out []record
	found, err := store.Get(ctx, "records", &out)
	require.NoError(t, err)
	assert.True(t, found)
	require.Len(t, out, 1)
	assert.Equal(t, "one", out[0].Name)

	// Set replaces the whole value.
	require.NoError(t, store.Set(ctx, "records", []record{{ID: 2, Name: "two"}}))
	out = nil
	_, err = store.Get(ctx, "records", &out)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, int64(2), out[0].ID)
}

func TestMemoryRemove(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", "v"))
	require.NoError(t, store.Remove(ctx, "k"))

	var out string
	found, err := store.Get(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, found)

	// Removing a missing key is fine.
	require.NoError(t, store.Remove(ctx, "k"))
}
