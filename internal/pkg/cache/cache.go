// Package cache provides the time-bounded result cache sitting in front of
// target resolution, achievement aggregation and the leaderboard.
//
// An entry is a hit only while now-writtenAt < TTL; expired entries are
// treated as absent and overwritten by the next compute. Concurrent misses
// for the same key may both invoke the compute function; the second write
// wins, which is safe because every cached value is idempotently derivable
// from the same inputs. There is deliberately no compute-level locking.
package cache

import (
	"context"
	"sync"
	"time"
)

// Clock abstracts time.Now so tests can simulate TTL expiry without real
// delays.
type Clock func() time.Time

type entry struct {
	value     any
	writtenAt time.Time
}

// ResultCache is an unbounded TTL cache keyed by caller-chosen strings
// (conventionally "ownerID:queryKind"). Construct once per process and
// share by reference.
type ResultCache struct {
	ttl     time.Duration
	now     Clock
	entries sync.Map
}

func New(ttl time.Duration, now Clock) *ResultCache {
	if now == nil {
		now = time.Now
	}
	return &ResultCache{ttl: ttl, now: now}
}

// GetOrCompute returns the cached value for key if it is still fresh,
// otherwise invokes compute, stores its result with the current timestamp,
// and returns it. A compute error is returned as-is and nothing is stored.
func (c *ResultCache) GetOrCompute(ctx context.Context, key string, compute func(ctx context.Context) (any, error)) (any, error) {
	if v, ok := c.lookup(key); ok {
		return v, nil
	}

	value, err := compute(ctx)
	if err != nil {
		return nil, err
	}
	// A write from an abandoned computation is still valid data; the value
	// was derived from the same inputs a fresh call would use.
	c.entries.Store(key, entry{value: value, writtenAt: c.now()})
	return value, nil
}

// Peek reports the cached value without computing on a miss.
func (c *ResultCache) Peek(key string) (any, bool) {
	return c.lookup(key)
}

// Invalidate drops a single key.
func (c *ResultCache) Invalidate(key string) {
	c.entries.Delete(key)
}

func (c *ResultCache) lookup(key string) (any, bool) {
	v, ok := c.entries.Load(key)
	if !ok {
		return nil, false
	}
	e := v.(entry)
	if c.now().Sub(e.writtenAt) >= c.ttl {
		// Expired entries count as absent; the next compute overwrites
		// them, so there is no separate eviction pass.
		return nil, false
	}
	return e.value, true
}

// GetOrCompute is the typed convenience wrapper services use.
func GetOrCompute[T any](ctx context.Context, c *ResultCache, key string, compute func(ctx context.Context) (T, error)) (T, error) {
	v, err := c.GetOrCompute(ctx, key, func(ctx context.Context) (any, error) {
		return compute(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
