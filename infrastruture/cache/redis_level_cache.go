// Package cache stores rendered maze grids in Redis.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/beka-birhanu/drone-maze/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix  = "dronemaze:grid:"
	lockSuffix = ":gen_lock"
	lockExpiry = 10 * time.Second
)

// RedisLevelCache caches character grids and guards their generation with a redsync mutex.
type RedisLevelCache struct {
	client *redis.Client
	locker *redsync.Redsync
	ttl    time.Duration
}

// NewRedisLevelCache initializes a RedisLevelCache with the provided client and TTL.
func NewRedisLevelCache(client *redis.Client, ttlSeconds int) i.LevelCache {
	pool := goredis.NewPool(client)
	return &RedisLevelCache{
		client: client,
		locker: redsync.New(pool),
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}
}

// Get returns the cached grid for key.
func (c *RedisLevelCache) Get(ctx context.Context, key string) (string, bool, error) {
	grid, err := c.client.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return grid, true, nil
}

// Set stores grid under key.
func (c *RedisLevelCache) Set(ctx context.Context, key string, grid string) error {
	return c.client.Set(ctx, keyPrefix+key, grid, c.ttl).Err()
}

// Lock acquires the generation mutex for key.
func (c *RedisLevelCache) Lock(ctx context.Context, key string) (func(), error) {
	mutex := c.locker.NewMutex(keyPrefix+key+lockSuffix, redsync.WithExpiry(lockExpiry))
	if err := mutex.LockContext(ctx); err != nil {
		return nil, err
	}

	return func() {
		_, _ = mutex.UnlockContext(context.Background())
	}, nil
}
