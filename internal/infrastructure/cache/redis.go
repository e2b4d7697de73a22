package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient creates a Redis client and verifies connectivity
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

// Locker provides short-lived exclusive locks keyed by string. Used to keep
// concurrent audit runs for the same user from stepping on each other.
type Locker interface {
	// Acquire takes the lock if free. Returns false without error when the
	// lock is already held.
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release frees the lock
	Release(ctx context.Context, key string) error
}

// redisLocker implements Locker on top of Redis SET NX
type redisLocker struct {
	client *redis.Client
}

// NewRedisLocker creates a Redis-backed locker
func NewRedisLocker(client *redis.Client) Locker {
	return &redisLocker{client: client}
}

func (l *redisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return l.client.SetNX(ctx, key, "1", ttl).Result()
}

func (l *redisLocker) Release(ctx context.Context, key string) error {
	return l.client.Del(ctx, key).Err()
}

// memoryLocker implements Locker on the in-memory store for tests and
// single-process deployments without Redis
type memoryLocker struct {
	store *MemoryStore
}

// NewMemoryLocker creates an in-memory locker
func NewMemoryLocker(store *MemoryStore) Locker {
	return &memoryLocker{store: store}
}

func (l *memoryLocker) Acquire(_ context.Context, key string, ttl time.Duration) (bool, error) {
	return l.store.SetNX(key, "1", ttl), nil
}

func (l *memoryLocker) Release(_ context.Context, key string) error {
	l.store.Delete(key)
	return nil
}
