package payment

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	confirmLockPrefix = "payment:confirm_lock:"
	confirmLockTTL    = 10 * time.Minute
)

// Locker serializes confirmation work per transaction id so two concurrent
// webhook deliveries cannot both schedule the workflow.
type Locker interface {
	Acquire(ctx context.Context, transactionID string) (bool, error)
	Release(ctx context.Context, transactionID string) error
}

// RedisLock implements Locker with SET NX and a TTL safety net: a crashed
// worker cannot hold a transaction hostage past the TTL.
type RedisLock struct {
	client *redis.Client
}

// NewRedisLock creates a per-transaction lock backed by Redis.
func NewRedisLock(client *redis.Client) *RedisLock {
	return &RedisLock{client: client}
}

// Acquire takes the lock for a transaction id. Returns false when another
// confirmation for the same id is already in flight.
func (l *RedisLock) Acquire(ctx context.Context, transactionID string) (bool, error) {
	return l.client.SetNX(ctx, confirmLockPrefix+transactionID, "1", confirmLockTTL).Result()
}

// Release frees the lock after the workflow finishes.
func (l *RedisLock) Release(ctx context.Context, transactionID string) error {
	return l.client.Del(ctx, confirmLockPrefix+transactionID).Err()
}
