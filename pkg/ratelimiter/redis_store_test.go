package ratelimiter_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stroomai/leadgen/pkg/ratelimiter"
)

func TestRedisStore(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}

	opt, err := redis.ParseURL(url)
	require.NoError(t, err)
	client := redis.NewClient(opt)
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	store := ratelimiter.NewRedisStore(client, "test:ratelimit:")
	b, err := ratelimiter.NewBucket(store, ratelimiter.Config{Capacity: 2, RefillRate: 1, RefillInterval: time.Hour})
	require.NoError(t, err)

	key := uuid.NewString()
	t.Cleanup(func() { _ = client.Del(ctx, "test:ratelimit:"+key).Err() })

	for range 2 {
		res, err := b.Allow(ctx, key)
		require.NoError(t, err)
		assert.True(t, res.Allowed())
	}

	res, err := b.Allow(ctx, key)
	require.NoError(t, err)
	assert.False(t, res.Allowed())
	assert.Equal(t, -1, res.Remaining)
	assert.True(t, res.ResetAt.After(time.Now()))

	// denied attempts are not charged
	for range 3 {
		res, err = b.Allow(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, -1, res.Remaining)
	}
	tokens, err := client.HGet(ctx, "test:ratelimit:"+key, "tokens").Int()
	require.NoError(t, err)
	assert.Zero(t, tokens)

	require.NoError(t, client.Del(ctx, "test:ratelimit:"+key).Err())
	res, err = b.Allow(ctx, key)
	require.NoError(t, err)
	assert.True(t, res.Allowed())
}
