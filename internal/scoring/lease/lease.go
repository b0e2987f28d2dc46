// Package lease provides the redis-backed recompute lease and score
// cache used by the scoring service.
package lease

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"scoutscore_backend/internal/scoring/domain"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisLeaser serializes recomputes with a per-key SET NX lock.
type RedisLeaser struct {
	client *redis.Client
}

// NewRedisLeaser creates a leaser on an existing client.
func NewRedisLeaser(client *redis.Client) *RedisLeaser {
	return &RedisLeaser{client: client}
}

// Acquire takes the lease if nobody holds it. The TTL guards against
// leases orphaned by a crashed worker.
func (l *RedisLeaser) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := l.client.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquire lease %s: %w", key, err)
	}
	return ok, nil
}

// Release drops the lease.
func (l *RedisLeaser) Release(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("release lease %s: %w", key, err)
	}
	return nil
}

// RedisCache stores fused scores as JSON blobs keyed by owning user
// and prospect.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a score cache on an existing client.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func scoreKey(prospectID, userID uuid.UUID) string {
	return "scoring:score:" + userID.String() + ":" + prospectID.String()
}

// GetScore returns the cached fused score; the boolean reports a hit.
func (c *RedisCache) GetScore(ctx context.Context, prospectID, userID uuid.UUID) (domain.FinalScore, bool, error) {
	raw, err := c.client.Get(ctx, scoreKey(prospectID, userID)).Bytes()
	if err == redis.Nil {
		return domain.FinalScore{}, false, nil
	}
	if err != nil {
		return domain.FinalScore{}, false, fmt.Errorf("get cached score: %w", err)
	}

	var score domain.FinalScore
	if err := json.Unmarshal(raw, &score); err != nil {
		// A corrupt entry reads as a miss; the next recompute overwrites it.
		return domain.FinalScore{}, false, nil
	}
	return score, true, nil
}

// SetScore stores the fused score with a TTL.
func (c *RedisCache) SetScore(ctx context.Context, prospectID, userID uuid.UUID, score domain.FinalScore, ttl time.Duration) error {
	raw, err := json.Marshal(score)
	if err != nil {
		return fmt.Errorf("marshal cached score: %w", err)
	}
	if err := c.client.Set(ctx, scoreKey(prospectID, userID), raw, ttl).Err(); err != nil {
		return fmt.Errorf("set cached score: %w", err)
	}
	return nil
}
