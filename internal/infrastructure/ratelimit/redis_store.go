// Package ratelimit holds rate limiter stores shared across server instances.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultOpTimeout = 500 * time.Millisecond

// RedisStore is a fixed-window counter kept in redis. Every identifier may
// make max requests per window; the window starts with its first request.
// When redis is unreachable requests are let through.
type RedisStore struct {
	client    redis.UniversalClient
	prefix    string
	max       int64
	window    time.Duration
	opTimeout time.Duration
	logger    *zap.Logger
}

var _ middleware.RateLimiterStore = (*RedisStore)(nil)

// NewRedisStore creates a store whose keys start with prefix
func NewRedisStore(client redis.UniversalClient, prefix string, max int, window time.Duration, logger *zap.Logger) *RedisStore {
	return &RedisStore{
		client:    client,
		prefix:    prefix,
		max:       int64(max),
		window:    window,
		opTimeout: defaultOpTimeout,
		logger:    logger,
	}
}

// Allow counts a request for identifier and reports whether it is within the limit
func (s *RedisStore) Allow(identifier string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.opTimeout)
	defer cancel()

	key := s.key(identifier)
	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		s.logger.Warn("rate limit counter unavailable, allowing request",
			zap.String("key", key),
			zap.Error(err))
		return true, nil
	}

	if count == 1 {
		if err := s.client.Expire(ctx, key, s.window).Err(); err != nil {
			s.logger.Warn("failed to set rate limit window",
				zap.String("key", key),
				zap.Error(err))
		}
	}

	return count <= s.max, nil
}

func (s *RedisStore) key(identifier string) string {
	return fmt.Sprintf("%s:%s", s.prefix, identifier)
}
