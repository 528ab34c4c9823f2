// Package rediscache implements the byte cache port on redis. Every
// failure is reported as a miss so a dead redis never breaks a request.
package rediscache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Cache is an opportunistic byte store backed by redis.
type Cache struct {
	rdb *redis.Client
	log zerolog.Logger
}

// New builds a cache on the given redis connection parameters. The
// connection is verified lazily; callers may Ping explicitly.
func New(addr, password string, db int, log zerolog.Logger) *Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &Cache{rdb: rdb, log: log}
}

// Ping verifies the connection.
func (c *Cache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Get fetches a key. A missing key, a dead server or any other failure
// reports a miss.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Debug().Err(err).Str("key", key).Msg("cache get failed")
		}
		return nil, false
	}
	return raw, true
}

// Set stores a key with a TTL. Failures are logged and swallowed.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := c.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		c.log.Debug().Err(err).Str("key", key).Msg("cache set failed")
	}
}

// Close releases the underlying connection.
func (c *Cache) Close() error {
	return c.rdb.Close()
}
