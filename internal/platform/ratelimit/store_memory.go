// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ratelimit

import (
	"context"
	"hash/fnv"
	"sync"
	"time"
)

const shardCount = 32

type window struct {
	count   int
	resetAt time.Time
}

type shard struct {
	mu      sync.Mutex
	entries map[string]*window
}

// MemoryStore keeps counters in a sharded map. Each shard has its own mutex so
// the check-and-increment for a key is atomic and count never exceeds max.
type MemoryStore struct {
	shards [shardCount]*shard
	now    func() time.Time
}

// NewMemoryStore creates an empty store using the wall clock.
func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithClock(time.Now)
}

// NewMemoryStoreWithClock creates an empty store reading time from now.
func NewMemoryStoreWithClock(now func() time.Time) *MemoryStore {
	store := &MemoryStore{now: now}
	for i := range store.shards {
		store.shards[i] = &shard{entries: make(map[string]*window)}
	}
	return store
}

func (store *MemoryStore) shardFor(key string) *shard {
	hasher := fnv.New32a()
	_, _ = hasher.Write([]byte(key))
	return store.shards[hasher.Sum32()%shardCount]
}

// Take implements [Store].
func (store *MemoryStore) Take(_ context.Context, key string, max int, duration time.Duration) (Decision, error) {
	bucket := store.shardFor(key)
	now := store.now()

	bucket.mu.Lock()
	defer bucket.mu.Unlock()

	entry, ok := bucket.entries[key]
	if !ok || !now.Before(entry.resetAt) {
		bucket.entries[key] = &window{count: 1, resetAt: now.Add(duration)}
		return Decision{Allowed: true}, nil
	}

	if entry.count < max {
		entry.count++
		return Decision{Allowed: true}, nil
	}

	return Decision{Allowed: false, RetryAfter: entry.resetAt.Sub(now)}, nil
}

// Sweep removes every entry whose window has elapsed and returns how many were dropped.
func (store *MemoryStore) Sweep() int {
	now := store.now()
	removed := 0
	for _, bucket := range store.shards {
		bucket.mu.Lock()
		for key, entry := range bucket.entries {
			if !now.Before(entry.resetAt) {
				delete(bucket.entries, key)
				removed++
			}
		}
		bucket.mu.Unlock()
	}
	return removed
}

// Len returns the number of tracked keys.
func (store *MemoryStore) Len() int {
	total := 0
	for _, bucket := range store.shards {
		bucket.mu.Lock()
		total += len(bucket.entries)
		bucket.mu.Unlock()
	}
	return total
}

// Run sweeps every interval until ctx is cancelled.
func (store *MemoryStore) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			store.Sweep()
		}
	}
}
