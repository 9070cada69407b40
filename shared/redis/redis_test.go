package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doc struct {
	Name string `json:"name"`
}

func TestNewClient(t *testing.T) {
	mr := miniredis.RunT(t)

	addr := mr.Addr()

	c, err := NewClient(context.Background(), addr, "", 0)
	require.NoError(t, err)
	defer c.Close()

	mr.Close()
	_, err = NewClient(context.Background(), addr, "", 0)
	assert.Error(t, err)
}

func TestDocumentCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()

	ctx := context.Background()
	cache := NewDocumentCache[doc](client, 0)

	got, ok, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)

	written, err := cache.SetIfAbsent(ctx, "k", &doc{Name: "first"})
	require.NoError(t, err)
	assert.True(t, written)

	written, err = cache.SetIfAbsent(ctx, "k", &doc{Name: "second"})
	require.NoError(t, err)
	assert.False(t, written)

	got, ok, err = cache.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "first", got.Name)

	mr.Set("bad", "not json")
	_, _, err = cache.Get(ctx, "bad")
	assert.Error(t, err)
}
