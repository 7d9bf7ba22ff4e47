// Package cache provides the TTL key-value store used to memoize provider
// responses and computed indicator reports. The engine itself never caches;
// callers decide what to cache and for how long.
package cache

import (
	"context"
	"time"
)

// Common TTL tiers, mirroring how the API uses them: short for real-time
// quotes, medium for history and indicator reports, long for fundamentals.
const (
	TTLShort  = 30 * time.Second
	TTLMedium = 5 * time.Minute
	TTLLong   = time.Hour
)

// Store is a TTL cache for JSON-serializable values. Get returns false on
// miss, expiry, or decode failure; implementations never surface transport
// errors to callers — a broken cache degrades to a cache miss.
type Store interface {
	Get(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, value any, ttl time.Duration)
	Delete(ctx context.Context, key string)
}
