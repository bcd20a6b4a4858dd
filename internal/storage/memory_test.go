package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryKV(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()

	t.Run("missing key", func(t *testing.T) {
		_, ok, err := kv.Get(ctx, "nope")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, kv.Set(ctx, "k", "v"))

		v, ok, err := kv.Get(ctx, "k")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "v", v)
	})

	t.Run("overwrite", func(t *testing.T) {
		require.NoError(t, kv.Set(ctx, "k", "v2"))

		v, _, err := kv.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "v2", v)
	})

	t.Run("remove", func(t *testing.T) {
		require.NoError(t, kv.Remove(ctx, "k"))

		_, ok, err := kv.Get(ctx, "k")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("empty value is still present", func(t *testing.T) {
		require.NoError(t, kv.Set(ctx, "empty", ""))

		_, ok, err := kv.Get(ctx, "empty")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	assert.NoError(t, kv.Close())
}
