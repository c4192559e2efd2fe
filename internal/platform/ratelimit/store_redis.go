// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces limiter keys inside a shared Redis.
const keyPrefix = "ratelimit:"

// takeScript increments the counter and opens the window on the first hit.
// It returns {count, pttl}.
var takeScript = redis.NewScript(`
local current = redis.call('INCR', KEYS[1])
if current == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('PTTL', KEYS[1])
if ttl < 0 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
	ttl = tonumber(ARGV[1])
end
return {current, ttl}
`)

// RedisStore shares fixed windows across replicas. Key expiry replaces the sweep.
type RedisStore struct {
	client redis.Scripter
}

// NewRedisStore creates a store on top of any go-redis client.
func NewRedisStore(client redis.Scripter) *RedisStore {
	return &RedisStore{client: client}
}

// Take implements [Store].
func (store *RedisStore) Take(ctx context.Context, key string, max int, window time.Duration) (Decision, error) {
	result, err := takeScript.Run(ctx, store.client, []string{keyPrefix + key}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return Decision{}, fmt.Errorf("redis_rate_limit_take_failed: %w", err)
	}
	if len(result) != 2 {
		return Decision{}, fmt.Errorf("redis_rate_limit_take_failed: unexpected reply %v", result)
	}

	count, ttl := result[0], result[1]
	if count <= int64(max) {
		return Decision{Allowed: true}, nil
	}
	return Decision{Allowed: false, RetryAfter: time.Duration(ttl) * time.Millisecond}, nil
}
