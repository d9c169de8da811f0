// Package counter keeps the best-effort "last seminar id" value used as an id hint
// by the creation flow. It reduces, but does not prevent, id collisions.
package counter

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Key is the storage key of the counter.
const Key = "lastSeminarId"

// initial is the value an untouched counter reports.
const initial int64 = 1

// Counter is the last-seminar-id store.
type Counter interface {
	Current(ctx context.Context) (int64, error)
	Advance(ctx context.Context) (int64, error)
}

// Redis keeps the counter in Redis.
type Redis struct {
	client redis.Cmdable
	key    string
}

// NewRedis creates a Redis-backed counter.
func NewRedis(client redis.Cmdable) *Redis {
	return &Redis{client: client, key: Key}
}

// Current returns the stored value, or 1 when nothing was stored yet.
func (r *Redis) Current(ctx context.Context) (int64, error) {
	n, err := r.client.Get(ctx, r.key).Int64()
	if errors.Is(err, redis.Nil) {
		return initial, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get %s: %w", r.key, err)
	}
	return n, nil
}

// Advance increments the counter and returns the new value.
func (r *Redis) Advance(ctx context.Context) (int64, error) {
	if err := r.client.SetNX(ctx, r.key, initial, 0).Err(); err != nil {
		return 0, fmt.Errorf("init %s: %w", r.key, err)
	}
	n, err := r.client.Incr(ctx, r.key).Result()
	if err != nil {
		return 0, fmt.Errorf("incr %s: %w", r.key, err)
	}
	return n, nil
}

// Memory keeps the counter in process memory; used when Redis is not configured.
type Memory struct {
	mu sync.Mutex
	n  int64
}

// NewMemory creates an in-memory counter starting at 1.
func NewMemory() *Memory {
	return &Memory{n: initial}
}

func (m *Memory) Current(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.n, nil
}

func (m *Memory) Advance(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.n++
	return m.n, nil
}
