package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	apporder "github.com/storefront/backend/internal/application/order"
)

// RedisCheckoutLock implements the checkout lock using Redis SETNX.
// The lock serializes checkout per user across all instances.
type RedisCheckoutLock struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisCheckoutLock creates a new Redis-backed checkout lock.
// It verifies connectivity before returning.
func NewRedisCheckoutLock(addr, password string, db int, ttl time.Duration) (*RedisCheckoutLock, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisCheckoutLock{
		client:    client,
		keyPrefix: "checkout:lock:",
		ttl:       ttl,
	}, nil
}

// NewRedisCheckoutLockWithClient creates a lock using an existing Redis client.
// Useful when the client is shared or managed externally.
func NewRedisCheckoutLockWithClient(client *redis.Client, ttl time.Duration) *RedisCheckoutLock {
	return &RedisCheckoutLock{
		client:    client,
		keyPrefix: "checkout:lock:",
		ttl:       ttl,
	}
}

// Acquire attempts to take the per-user checkout lock.
// Returns true if the lock was acquired, false if another checkout holds it.
// Uses SETNX which is atomic in Redis. The TTL guarantees the lock is
// released even if the holder crashes mid-checkout.
func (l *RedisCheckoutLock) Acquire(ctx context.Context, userID uuid.UUID) (bool, error) {
	key := l.keyPrefix + userID.String()

	acquired, err := l.client.SetNX(ctx, key, "1", l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire checkout lock: %w", err)
	}

	return acquired, nil
}

// Release frees the per-user checkout lock.
// Releasing a lock that is not held is not an error.
func (l *RedisCheckoutLock) Release(ctx context.Context, userID uuid.UUID) error {
	key := l.keyPrefix + userID.String()

	if err := l.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to release checkout lock: %w", err)
	}

	return nil
}

// Close closes the underlying Redis connection
func (l *RedisCheckoutLock) Close() error {
	return l.client.Close()
}

// GetClient returns the underlying Redis client (for health checks)
func (l *RedisCheckoutLock) GetClient() *redis.Client {
	return l.client
}

// Ensure RedisCheckoutLock implements CheckoutLock
var _ apporder.CheckoutLock = (*RedisCheckoutLock)(nil)
