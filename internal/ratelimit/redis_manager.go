package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter shares the windows between instances through Redis
type RedisLimiter struct {
	client *redis.Client
	max    int
	period time.Duration
	prefix string
}

// NewRedisClient connects to Redis and checks the connection
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// NewRedisLimiter creates a limiter allowing max hits per period and key
func NewRedisLimiter(client *redis.Client, max int, period time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		max:    max,
		period: period,
		prefix: "ratelimit",
	}
}

// Allow increments the counter of the current window; the first hit starts the window
func (l *RedisLimiter) Allow(ctx context.Context, key string) (Result, error) {
	redisKey := fmt.Sprintf("%s:%s", l.prefix, key)

	var incr *redis.IntCmd
	var ttl *redis.DurationCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		ttl = pipe.PTTL(ctx, redisKey)
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("failed to count request: %w", err)
	}

	remaining := ttl.Val()
	if remaining <= 0 {
		// new window, or a key that lost its expiry
		if err := l.client.PExpire(ctx, redisKey, l.period).Err(); err != nil {
			return Result{}, fmt.Errorf("failed to start window: %w", err)
		}
		remaining = l.period
	}
	return result(int(incr.Val()), l.max, time.Now().Add(remaining)), nil
}

// Close closes the Redis connection
func (l *RedisLimiter) Close() error {
	return l.client.Close()
}
