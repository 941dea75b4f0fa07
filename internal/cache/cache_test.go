package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/usrinivasan240-cpu/shareplate-api/internal/cache"
)

func newTestCache(t *testing.T) *cache.Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.New(client, time.Minute)
}

func TestCacheRoundTrip(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	type payload struct {
		Name  string  `json:"name"`
		Price float64 `json:"price"`
	}

	var missing payload
	found, err := c.GetJSON(ctx, "menu:all", &missing)
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, c.SetJSON(ctx, "menu:all", payload{Name: "Masala Dosa", Price: 45}))

	var got payload
	found, err = c.GetJSON(ctx, "menu:all", &got)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "Masala Dosa", got.Name)

	require.NoError(t, c.Invalidate(ctx, "menu:all"))
	found, err = c.GetJSON(ctx, "menu:all", &got)
	require.NoError(t, err)
	require.False(t, found)
}

func TestNilCacheIsNoop(t *testing.T) {
	var c *cache.Cache
	ctx := context.Background()
	found, err := c.GetJSON(ctx, "k", nil)
	require.NoError(t, err)
	require.False(t, found)
	require.NoError(t, c.SetJSON(ctx, "k", 1))
	require.NoError(t, c.Invalidate(ctx, "k"))
}
