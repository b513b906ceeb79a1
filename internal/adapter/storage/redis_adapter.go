package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	remainingKeyPrefix = "remaining:"
	idempotencyKeyTTL  = 24 * time.Hour
)

// RedisAdapter mirrors production remaining amounts for cheap stock reads
// and backs the buy path's idempotency keys.
type RedisAdapter struct {
	client *redis.Client
}

func NewRedisAdapter(client *redis.Client) *RedisAdapter {
	return &RedisAdapter{client: client}
}

func remainingKey(assetID, productionID uint64) string {
	return fmt.Sprintf("%s%d:%d", remainingKeyPrefix, assetID, productionID)
}

func (r *RedisAdapter) SetRemaining(ctx context.Context, assetID, productionID, remaining uint64) error {
	return r.client.Set(ctx, remainingKey(assetID, productionID), remaining, 0).Err()
}

func (r *RedisAdapter) Remaining(ctx context.Context, assetID, productionID uint64) (uint64, bool, error) {
	val, err := r.client.Get(ctx, remainingKey(assetID, productionID)).Uint64()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return val, true, nil
}

func (r *RedisAdapter) SetIdempotency(ctx context.Context, key string) (bool, error) {
	ok, err := r.client.SetNX(ctx, key, 1, idempotencyKeyTTL).Result()
	if err != nil {
		return false, err
	}

	return ok, nil
}
