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

type cachedUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestEntityKey(t *testing.T) {
	assert.Equal(t, "murmur:users:7", EntityKey("users", uint(7)))
	assert.Equal(t, "murmur:thoughts:abc", EntityKey("thoughts", "abc"))
}

func TestGetSetJSON(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	var miss cachedUser
	found, err := GetJSON(ctx, "murmur:users:1", &miss)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetJSON(ctx, "murmur:users:1", cachedUser{ID: 1, Username: "bob"}, time.Minute))

	var hit cachedUser
	found, err = GetJSON(ctx, "murmur:users:1", &hit)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "bob", hit.Username)
}

func TestCacheAside_PopulatesOnMiss(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	calls := 0
	fetch := func(dest *cachedUser) func() error {
		return func() error {
			calls++
			*dest = cachedUser{ID: 1, Username: "bob"}
			return nil
		}
	}

	var first cachedUser
	require.NoError(t, CacheAside(ctx, "users", "murmur:users:1", &first, time.Minute, fetch(&first)))
	assert.Equal(t, 1, calls)
	assert.Equal(t, "bob", first.Username)

	// Second read is served from the cache.
	var second cachedUser
	require.NoError(t, CacheAside(ctx, "users", "murmur:users:1", &second, time.Minute, fetch(&second)))
	assert.Equal(t, 1, calls)
	assert.Equal(t, "bob", second.Username)
}

func TestCacheAside_InvalidateForcesRefetch(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	calls := 0
	var user cachedUser
	fetch := func() error {
		calls++
		user = cachedUser{ID: 1, Username: "bob"}
		return nil
	}

	require.NoError(t, CacheAside(ctx, "users", "murmur:users:1", &user, time.Minute, fetch))
	Invalidate(ctx, "murmur:users:1")
	require.NoError(t, CacheAside(ctx, "users", "murmur:users:1", &user, time.Minute, fetch))
	assert.Equal(t, 2, calls)
}

func TestCacheAside_RedisDownFallsThrough(t *testing.T) {
	mr := setupMiniredis(t)
	mr.Close()
	ctx := context.Background()

	calls := 0
	var user cachedUser
	fetch := func() error {
		calls++
		user = cachedUser{ID: 1, Username: "bob"}
		return nil
	}

	require.NoError(t, CacheAside(ctx, "users", "murmur:users:1", &user, time.Minute, fetch))
	assert.Equal(t, 1, calls)
	assert.Equal(t, "bob", user.Username)
}

func TestHelpers_NilClientAreNoops(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	var user cachedUser
	found, err := GetJSON(ctx, "murmur:users:1", &user)
	require.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, SetJSON(ctx, "murmur:users:1", cachedUser{}, time.Minute))
	Invalidate(ctx, "murmur:users:1")
}
