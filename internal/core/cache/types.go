// Package cache provides the cache type constants.
package cache

// Type represents the type of cache.
type Type string

const (
	// TypeRedis represents a Redis cache.
	TypeRedis Type = "redis"
	// TypeNone disables query caching.
	TypeNone Type = "none"
)
