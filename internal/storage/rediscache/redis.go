// Package rediscache provides a Redis-backed implementation of storage.Cache.
package rediscache

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/mmynk/tutorbook/internal/storage"
)

var _ storage.Cache = (*Cache)(nil)

// DefaultNamespace prefixes every key written by the cache.
const DefaultNamespace = "tutorbook:"

// Cache stores cache entries as plain Redis strings under a namespace.
type Cache struct {
	rdb       *redis.Client
	namespace string
}

// New connects to addr and pings the server before returning.
func New(ctx context.Context, addr string) (*Cache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewWithClient(rdb, DefaultNamespace), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(rdb *redis.Client, namespace string) *Cache {
	return &Cache{rdb: rdb, namespace: namespace}
}

func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := c.rdb.Get(ctx, c.namespace+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get cache entry: %w", err)
	}
	return value, true, nil
}

func (c *Cache) Set(ctx context.Context, key string, value []byte) error {
	if err := c.rdb.Set(ctx, c.namespace+key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set cache entry: %w", err)
	}
	return nil
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	if err := c.rdb.Del(ctx, c.namespace+key).Err(); err != nil {
		return fmt.Errorf("failed to delete cache entry: %w", err)
	}
	return nil
}

// Keys walks the keyspace with SCAN so large caches do not block the server.
func (c *Cache) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	iter := c.rdb.Scan(ctx, 0, escapeGlob(c.namespace+prefix)+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, strings.TrimPrefix(iter.Val(), c.namespace))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to list cache keys: %w", err)
	}
	sort.Strings(keys)
	return keys, nil
}

func (c *Cache) Close() error {
	return c.rdb.Close()
}

// escapeGlob escapes the MATCH pattern metacharacters in s.
func escapeGlob(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)
	return r.Replace(s)
}
