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

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisCache(client), mr
}

func TestGetSetDel(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	_, err := c.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, c.Set(ctx, "k", "v", 0))
	val, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", val)

	require.NoError(t, c.Del(ctx, "k"))
	ok, err := c.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestJSONRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	type item struct {
		Name string `json:"name"`
	}
	require.NoError(t, c.SetJSON(ctx, "items", []item{{Name: "a"}, {Name: "b"}}, 0))

	var got []item
	require.NoError(t, c.GetJSON(ctx, "items", &got))
	assert.Equal(t, []item{{Name: "a"}, {Name: "b"}}, got)
}

func TestTokenBlacklistExpires(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.AddToTokenBlacklist(ctx, "tok", time.Minute))
	blacklisted, err := c.IsTokenBlacklisted(ctx, "tok")
	require.NoError(t, err)
	assert.True(t, blacklisted)

	mr.FastForward(2 * time.Minute)
	blacklisted, err = c.IsTokenBlacklisted(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, blacklisted)
}

func TestOAuthStateIsSingleUse(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetOAuthState(ctx, "state-1"))

	ok, err := c.ConsumeOAuthState(ctx, "state-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.ConsumeOAuthState(ctx, "state-1")
	require.NoError(t, err)
	assert.False(t, ok)
}
