package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_GetSet(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	_, ok, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "key", []byte("value"), time.Minute))

	got, ok, err := c.Get(ctx, "key")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("value"), got)
}

func TestMemory_Expiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	require.NoError(t, c.Set(ctx, "key", []byte("value"), 10*time.Millisecond))

	_, ok, err := c.Get(ctx, "key")
	require.NoError(t, err)
	assert.True(t, ok)

	time.Sleep(20 * time.Millisecond)

	_, ok, err = c.Get(ctx, "key")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemory_DeletePrefix(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	require.NoError(t, c.Set(ctx, "news:page=1", []byte("a"), time.Minute))
	require.NoError(t, c.Set(ctx, "news:page=2", []byte("b"), time.Minute))
	require.NoError(t, c.Set(ctx, "profile:4", []byte("c"), time.Minute))

	require.NoError(t, c.DeletePrefix(ctx, "news:"))

	_, ok, err := c.Get(ctx, "news:page=1")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = c.Get(ctx, "news:page=2")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = c.Get(ctx, "profile:4")
	require.NoError(t, err)
	assert.True(t, ok)
}
