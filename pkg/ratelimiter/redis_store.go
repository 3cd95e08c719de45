package ratelimiter

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// consumeScript refills and consumes atomically. Times are unix milliseconds.
var consumeScript = redis.NewScript(`
local capacity = tonumber(ARGV[1])
local rate = tonumber(ARGV[2])
local interval = tonumber(ARGV[3])
local tokens = tonumber(ARGV[4])
local now = tonumber(ARGV[5])
local ttl = tonumber(ARGV[6])

local state = redis.call('HMGET', KEYS[1], 'tokens', 'last')
local cur = tonumber(state[1])
local last = tonumber(state[2])
if cur == nil or last == nil then
  cur = capacity
  last = now
end

local maxIntervals = math.floor(capacity / rate) + 1
local intervals = math.min(math.floor((now - last) / interval), maxIntervals)
if intervals > 0 then
  cur = math.min(cur + intervals * rate, capacity)
  last = now
end

-- a denied request is not charged and does not extend the key's life
local remaining = cur - tokens
if remaining >= 0 then
  redis.call('HSET', KEYS[1], 'tokens', remaining, 'last', last)
  redis.call('PEXPIRE', KEYS[1], ttl)
elseif intervals > 0 then
  redis.call('HSET', KEYS[1], 'tokens', cur, 'last', last)
  if redis.call('PTTL', KEYS[1]) < 0 then
    redis.call('PEXPIRE', KEYS[1], ttl)
  end
end
return {remaining, last + interval}
`)

// RedisStore keeps buckets in Redis hashes under Prefix+key.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "ratelimit:"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) ConsumeTokens(ctx context.Context, key string, tokens int, cfg Config) (int, time.Time, error) {
	interval := cfg.RefillInterval.Milliseconds()
	if interval <= 0 {
		interval = 1
	}
	// long enough for an empty bucket to refill completely
	ttl := interval * int64(cfg.Capacity/cfg.RefillRate+2)

	vals, err := consumeScript.Run(ctx, s.client, []string{s.prefix + key},
		cfg.Capacity, cfg.RefillRate, interval, tokens, time.Now().UnixMilli(), ttl,
	).Int64Slice()
	if err != nil {
		return 0, time.Time{}, errors.Join(ErrStoreUnavailable, err)
	}
	if len(vals) != 2 {
		return 0, time.Time{}, ErrStoreUnavailable
	}
	return int(vals[0]), time.UnixMilli(vals[1]), nil
}
