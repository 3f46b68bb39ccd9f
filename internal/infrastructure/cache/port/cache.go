package port

import (
	"context"
	"time"
)

// Cache is the minimal key-value contract the application depends on.
// Implementations must be concurrency-safe and context-aware. Values are
// plain strings; serialization is the caller's concern.
type Cache interface {
	// Get fetches the value for key, returning ErrMiss when absent.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value at key. Zero or negative TTL means no expiration.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	// Del removes keys and returns the number actually removed.
	Del(ctx context.Context, keys ...string) (int64, error)

	// Ping verifies connectivity with the backend.
	Ping(ctx context.Context) error

	// Close releases held resources.
	Close() error
}

// ErrMiss signals a cache miss in a typed way so callers can tell misses
// apart from transport errors. The revocation check relies on this: a
// miss means "token not revoked", while a transport error is surfaced.
var ErrMiss = errMiss{}

type errMiss struct{}

func (e errMiss) Error() string { return "cache: miss" }
