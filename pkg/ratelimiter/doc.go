// Package ratelimiter implements a token bucket limiter over pluggable
// stores. MemoryStore serves a single process; RedisStore keeps buckets in
// Redis so several replicas share one budget per key.
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//	bucket, err := ratelimiter.NewBucket(store, ratelimiter.Config{
//	    Capacity: 5, RefillRate: 1, RefillInterval: 10 * time.Minute,
//	})
//	res, err := bucket.Allow(ctx, ipHash)
//	if !res.Allowed() { ... }
package ratelimiter
