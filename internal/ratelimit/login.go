// Package ratelimit protects the login operation with a fixed-window
// failure counter in redis.
package ratelimit

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const loginKeyPrefix = "login:attempts:"

type LoginLimiter struct {
	client *redis.Client
	max    int
	window time.Duration
	log    zerolog.Logger
}

func NewLoginLimiter(client *redis.Client, max int, window time.Duration, log zerolog.Logger) *LoginLimiter {
	return &LoginLimiter{
		client: client,
		max:    max,
		window: window,
		log:    log,
	}
}

// Allow reports whether another attempt for username may proceed. Redis
// being unreachable fails open: login availability wins over strictness.
func (l *LoginLimiter) Allow(ctx context.Context, username string) bool {
	if l == nil || l.client == nil || l.max <= 0 {
		return true
	}

	count, err := l.client.Get(ctx, loginKeyPrefix+username).Int()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			l.log.Warn().Err(err).Msg("login limiter read failed")
		}
		return true
	}
	return count < l.max
}

// RecordFailure counts one failed attempt; the first failure in a window
// starts the expiry clock.
func (l *LoginLimiter) RecordFailure(ctx context.Context, username string) {
	if l == nil || l.client == nil {
		return
	}

	key := loginKeyPrefix + username
	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		l.log.Warn().Err(err).Msg("login limiter incr failed")
		return
	}
	if count == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			l.log.Warn().Err(err).Msg("login limiter expire failed")
		}
	}
}

// Reset clears the counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, username string) {
	if l == nil || l.client == nil {
		return
	}
	if err := l.client.Del(ctx, loginKeyPrefix+username).Err(); err != nil {
		l.log.Warn().Err(err).Msg("login limiter reset failed")
	}
}
