// Package cache holds the optional redis-backed catalog response cache.
// When redis is not configured the server simply runs without it.
package cache

import (
	"context"
	"crypto/sha1"
	"fmt"
	"time"

	"kindle/log"

	"github.com/go-redis/redis/v8"
)

const versionKey = "catalog:ver"

// CatalogCache stores serialized catalog responses keyed by the
// normalized filter query. Invalidation bumps a namespace version
// instead of scanning keys; stale entries just age out via TTL.
type CatalogCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(addr, password string, db int, ttl time.Duration) (*CatalogCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &CatalogCache{rdb: rdb, ttl: ttl}, nil
}

func (c *CatalogCache) key(ctx context.Context, query string) string {
	ver, err := c.rdb.Get(ctx, versionKey).Int64()
	if err != nil && err != redis.Nil {
		log.GetLogger(ctx).WithError(err).Warn("catalog cache version lookup failed")
	}
	return fmt.Sprintf("catalog:%d:%x", ver, sha1.Sum([]byte(query)))
}

// Get returns the cached payload for the query, or false on any miss
// or redis failure. Cache trouble never fails a catalog request.
func (c *CatalogCache) Get(ctx context.Context, query string) ([]byte, bool) {
	payload, err := c.rdb.Get(ctx, c.key(ctx, query)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.GetLogger(ctx).WithError(err).Warn("catalog cache get failed")
		}
		return nil, false
	}
	return payload, true
}

func (c *CatalogCache) Set(ctx context.Context, query string, payload []byte) {
	if err := c.rdb.Set(ctx, c.key(ctx, query), payload, c.ttl).Err(); err != nil {
		log.GetLogger(ctx).WithError(err).Warn("catalog cache set failed")
	}
}

// Invalidate drops every cached catalog response by moving the
// namespace version forward. Called after admin book mutations.
func (c *CatalogCache) Invalidate(ctx context.Context) {
	if err := c.rdb.Incr(ctx, versionKey).Err(); err != nil {
		log.GetLogger(ctx).WithError(err).Warn("catalog cache invalidate failed")
	}
}

func (c *CatalogCache) Close() error {
	return c.rdb.Close()
}
