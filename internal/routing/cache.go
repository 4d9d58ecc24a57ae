package routing

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/pkordes/bike-logbook/internal/metrics"
)

// DefaultCacheTTL is how long a resolved distance stays in Redis.
const DefaultCacheTTL = 24 * time.Hour

const cacheKeyPrefix = "route:" + travelMode + ":"

// CachedFinder wraps a Finder with a Redis cache and collapses concurrent
// lookups of the same address pair into one upstream call.
//
// A caller that gives up stops waiting without cancelling the shared lookup
// for the others. With a nil Redis client only the collapsing applies. Redis failures are
// logged and the lookup falls through to the wrapped Finder. Failed lookups
// are never cached.
type CachedFinder struct {
	next   Finder
	client *redis.Client
	ttl    time.Duration
	log    *slog.Logger
	group  singleflight.Group
}

// NewCachedFinder constructs a CachedFinder. ttl <= 0 uses DefaultCacheTTL.
func NewCachedFinder(next Finder, client *redis.Client, ttl time.Duration, log *slog.Logger) *CachedFinder {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if log == nil {
		log = slog.Default()
	}
	return &CachedFinder{next: next, client: client, ttl: ttl, log: log}
}

// Distance returns the cached distance for the pair or resolves it upstream.
func (f *CachedFinder) Distance(ctx context.Context, origin, destination string) (int64, error) {
	key := CacheKey(origin, destination)

	if metres, ok := f.lookup(ctx, key); ok {
		metrics.RecordCacheHit()
		return metres, nil
	}

	// The shared lookup outlives any single caller; the wrapped Finder's own
	// timeout bounds it.
	shared := context.WithoutCancel(ctx)
	ch := f.group.DoChan(key, func() (any, error) {
		metres, err := f.next.Distance(shared, origin, destination)
		if err != nil {
			return int64(0), err
		}
		f.store(shared, key, metres)
		return metres, nil
	})

	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("routing.CachedFinder.Distance: %w", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return 0, fmt.Errorf("routing.CachedFinder.Distance: %w", res.Err)
		}
		return res.Val.(int64), nil
	}
}

func (f *CachedFinder) lookup(ctx context.Context, key string) (int64, bool) {
	if f.client == nil {
		return 0, false
	}
	metres, err := f.client.Get(ctx, key).Int64()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			f.log.WarnContext(ctx, "route cache read failed", "key", key, "error", err)
		}
		return 0, false
	}
	return metres, true
}

func (f *CachedFinder) store(ctx context.Context, key string, metres int64) {
	if f.client == nil {
		return
	}
	if err := f.client.Set(ctx, key, metres, f.ttl).Err(); err != nil {
		f.log.WarnContext(ctx, "route cache write failed", "key", key, "error", err)
	}
}

// CacheKey derives the Redis key for an ordered address pair. Addresses are
// case- and whitespace-normalised; order matters because routes are directed.
func CacheKey(origin, destination string) string {
	sum := sha256.Sum256([]byte(normalizeAddress(origin) + "\x00" + normalizeAddress(destination)))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}

func normalizeAddress(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
