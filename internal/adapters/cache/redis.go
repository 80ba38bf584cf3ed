// Package cache implements the revocation and rate-limit ports on Redis.
package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	connectMaxRetries = 3
	connectMinBackoff = 50 * time.Millisecond
	connectMaxBackoff = 2 * time.Second
	pingTimeout       = 5 * time.Second
)

// Connect opens a Redis client with bounded reconnect backoff and
// verifies the connection before returning it.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	var opt *redis.Options
	if strings.HasPrefix(redisURL, "redis://") || strings.HasPrefix(redisURL, "rediss://") {
		parsed, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		opt = parsed
	} else {
		opt = &redis.Options{Addr: redisURL}
	}
	opt.MaxRetries = connectMaxRetries
	opt.MinRetryBackoff = connectMinBackoff
	opt.MaxRetryBackoff = connectMaxBackoff

	client := redis.NewClient(opt)
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}
