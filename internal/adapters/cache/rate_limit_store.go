package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const rateLimitKeyPrefix = "ratelimit:"

// RedisRateLimitStore backs fixed-window rate limiting with a shared
// counter, so limits hold across replicas.
type RedisRateLimitStore struct {
	client *redis.Client
}

func NewRedisRateLimitStore(client *redis.Client) *RedisRateLimitStore {
	return &RedisRateLimitStore{client: client}
}

// Increment adds one to the window counter and returns the new count.
// The expiry is set only when the counter is created, which fixes the
// window start at the first request.
func (s *RedisRateLimitStore) Increment(ctx context.Context, key string, window time.Duration) (int64, error) {
	redisKey := rateLimitKeyPrefix + key
	count, err := s.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		if err := s.client.Expire(ctx, redisKey, window).Err(); err != nil {
			return 0, err
		}
	}
	return count, nil
}
