package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	scoreKeyPrefix = "vote:score"
	scoreTTL       = 24 * time.Hour
)

// ScoreCache caches vote totals per target. Misses fall back to a DB
// recount in the service layer, which then warms the key.
type ScoreCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewScoreCache() *ScoreCache {
	return &ScoreCache{rdb: Client, ttl: scoreTTL}
}

func (c *ScoreCache) key(targetType string, targetID uint64) string {
	return fmt.Sprintf("%s:%s:%d", scoreKeyPrefix, targetType, targetID)
}

func (c *ScoreCache) Get(ctx context.Context, targetType string, targetID uint64) (int64, bool, error) {
	val, err := c.rdb.Get(ctx, c.key(targetType, targetID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return val, true, nil
}

func (c *ScoreCache) Set(ctx context.Context, targetType string, targetID uint64, score int64) error {
	return c.rdb.Set(ctx, c.key(targetType, targetID), score, c.ttl).Err()
}

// Bump adjusts a cached score in place; only keys that already exist are
// touched, so an unread target never grows a key.
func (c *ScoreCache) Bump(ctx context.Context, targetType string, targetID uint64, delta int64) error {
	k := c.key(targetType, targetID)
	if ok, err := c.rdb.Exists(ctx, k).Result(); err != nil || ok == 0 {
		return err
	}
	if err := c.rdb.IncrBy(ctx, k, delta).Err(); err != nil {
		return err
	}
	return c.rdb.Expire(ctx, k, c.ttl).Err()
}

func (c *ScoreCache) Invalidate(ctx context.Context, targetType string, targetID uint64) error {
	err := c.rdb.Del(ctx, c.key(targetType, targetID)).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	return nil
}
