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

func newMiniRedis(t *testing.T) (*miniredis.Miniredis, *Redis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, NewRedisFromClient(rdb, time.Hour)
}

func TestRedis_MissThenHit(t *testing.T) {
	ctx := context.Background()
	_, c := newMiniRedis(t)

	_, ok, err := c.Get(ctx, "u1", "audio/u1/a", "fr")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "u1", "audio/u1/a", "fr", "bonjour"))

	v, ok, err := c.Get(ctx, "u1", "audio/u1/a", "fr")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "bonjour", v)

	_, ok, err = c.Get(ctx, "u1", "audio/u1/a", "en")
	require.NoError(t, err)
	assert.False(t, ok, "language is part of the key")

	_, ok, err = c.Get(ctx, "u2", "audio/u1/a", "fr")
	require.NoError(t, err)
	assert.False(t, ok, "user is part of the key")
}

func TestRedis_Expires(t *testing.T) {
	ctx := context.Background()
	mr, c := newMiniRedis(t)

	require.NoError(t, c.Set(ctx, "u1", "k", "fr", "salut"))
	assert.Equal(t, time.Hour, mr.TTL(key("u1", "k", "fr")))

	mr.FastForward(2 * time.Hour)

	_, ok, err := c.Get(ctx, "u1", "k", "fr")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewRedis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	c, err := NewRedis(context.Background(), "redis://"+mr.Addr()+"/0", time.Minute)
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Set(context.Background(), "u", "k", "fr", "x"))
	got, err := mr.Get(key("u", "k", "fr"))
	require.NoError(t, err)
	assert.Equal(t, "x", got)

	_, err = NewRedis(context.Background(), "not-a-url", time.Minute)
	assert.Error(t, err)
}

func TestNop(t *testing.T) {
	var c Transcripts = Nop{}
	require.NoError(t, c.Set(context.Background(), "u", "k", "fr", "x"))
	_, ok, err := c.Get(context.Background(), "u", "k", "fr")
	require.NoError(t, err)
	assert.False(t, ok)
}
