package sortedstorage

import (
	"context"
	"time"

	"github.com/beka-birhanu/drone-maze/service/i"
	"github.com/redis/go-redis/v9"
)

// RedisSortedStore keeps best-score sorted sets in Redis with optional TTL.
type RedisSortedStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSortedStore initializes a RedisSortedStore. A ttlSeconds of 0 keeps keys forever.
func NewRedisSortedStore(client *redis.Client, ttlSeconds int) i.SortedStore {
	return &RedisSortedStore{
		client: client,
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}
}

// AddIfLower stores score for member unless the member already holds a lower one.
func (rss *RedisSortedStore) AddIfLower(ctx context.Context, key string, score float64, member string) error {
	err := rss.client.ZAddArgs(ctx, key, redis.ZAddArgs{
		LT:      true,
		Members: []redis.Z{{Score: score, Member: member}},
	}).Err()
	if err != nil {
		return err
	}

	if rss.ttl <= 0 {
		return nil
	}

	// Set expiration only if it's not already set
	ttl, err := rss.client.TTL(ctx, key).Result()
	if err == nil && ttl == -1 {
		_ = rss.client.Expire(ctx, key, rss.ttl).Err()
	}

	return nil
}

// Lowest returns up to n members with the lowest scores, best first.
func (rss *RedisSortedStore) Lowest(ctx context.Context, key string, n int64) ([]i.ScoredMember, error) {
	if n <= 0 {
		return nil, nil
	}

	entries, err := rss.client.ZRangeWithScores(ctx, key, 0, n-1).Result()
	if err != nil {
		return nil, err
	}

	members := make([]i.ScoredMember, 0, len(entries))
	for _, e := range entries {
		member, ok := e.Member.(string)
		if !ok {
			continue
		}
		members = append(members, i.ScoredMember{Member: member, Score: e.Score})
	}
	return members, nil
}

// Count returns the number of members in the sorted set.
func (rss *RedisSortedStore) Count(ctx context.Context, key string) int64 {
	return rss.client.ZCard(ctx, key).Val()
}
