package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dashboard struct {
	Name          string `json:"name"`
	AvailableBeds int    `json:"availableBeds"`
}

func setupMiniredis(t *testing.T) (*miniredis.Miniredis, *RedisCache) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, NewRedisCache(client)
}

func TestRedisCacheRoundTrip(t *testing.T) {
	_, c := setupMiniredis(t)
	ctx := context.Background()

	err := c.SetJSON(ctx, "dashboard:1", dashboard{Name: "Apollo", AvailableBeds: 12}, time.Minute)
	require.NoError(t, err)

	var got dashboard
	hit, err := c.GetJSON(ctx, "dashboard:1", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, dashboard{Name: "Apollo", AvailableBeds: 12}, got)
}

func TestRedisCacheMiss(t *testing.T) {
	_, c := setupMiniredis(t)

	var got dashboard
	hit, err := c.GetJSON(context.Background(), "dashboard:missing", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestRedisCacheExpiresAndNamespaces(t *testing.T) {
	mr, c := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, "dashboard:2", dashboard{Name: "AIIMS"}, time.Minute))
	assert.True(t, mr.Exists("mediguide:dashboard:2"))

	mr.FastForward(2 * time.Minute)

	var got dashboard
	hit, err := c.GetJSON(ctx, "dashboard:2", &got)
	require.NoError(t, err)
	assert.False(t, hit, "entry should expire after its ttl")
}

func TestRedisCacheDelete(t *testing.T) {
	_, c := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, "dashboard:3", dashboard{Name: "Fortis"}, time.Minute))
	require.NoError(t, c.Delete(ctx, "dashboard:3", "dashboard:never-set"))

	var got dashboard
	hit, err := c.GetJSON(ctx, "dashboard:3", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestRedisCacheCorruptEntry(t *testing.T) {
	mr, c := setupMiniredis(t)
	require.NoError(t, mr.Set("mediguide:dashboard:4", "{not json"))

	var got dashboard
	_, err := c.GetJSON(context.Background(), "dashboard:4", &got)
	assert.Error(t, err)
}

func TestNoopAlwaysMisses(t *testing.T) {
	var c Cache = Noop{}
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, "k", dashboard{}, time.Minute))
	hit, err := c.GetJSON(ctx, "k", &dashboard{})
	require.NoError(t, err)
	assert.False(t, hit)
}
