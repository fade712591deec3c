package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultMaxAttempts = 5
	DefaultWindow      = 5 * time.Minute
	DefaultBlock       = 15 * time.Minute
)

// LoginGuard counts failed admin logins per client IP in Redis. Reaching
// maxAttempts failures inside window blocks the IP for block.
type LoginGuard struct {
	rdb         *redis.Client
	maxAttempts int64
	window      time.Duration
	block       time.Duration
}

func NewLoginGuard(rdb *redis.Client) *LoginGuard {
	return &LoginGuard{
		rdb:         rdb,
		maxAttempts: DefaultMaxAttempts,
		window:      DefaultWindow,
		block:       DefaultBlock,
	}
}

func failKey(ip string) string  { return "auth:login:fail:" + ip }
func blockKey(ip string) string { return "auth:login:block:" + ip }

func (g *LoginGuard) Blocked(ctx context.Context, ip string) (bool, error) {
	n, err := g.rdb.Exists(ctx, blockKey(ip)).Result()
	if err != nil {
		return false, fmt.Errorf("auth: check block: %w", err)
	}
	return n > 0, nil
}

// RecordFailure registers one failed attempt and reports whether the IP is
// now blocked.
func (g *LoginGuard) RecordFailure(ctx context.Context, ip string) (bool, error) {
	n, err := g.rdb.Incr(ctx, failKey(ip)).Result()
	if err != nil {
		return false, fmt.Errorf("auth: record failure: %w", err)
	}
	if n == 1 {
		if err := g.rdb.Expire(ctx, failKey(ip), g.window).Err(); err != nil {
			return false, fmt.Errorf("auth: set window: %w", err)
		}
	}
	if n < g.maxAttempts {
		return false, nil
	}

	pipe := g.rdb.TxPipeline()
	pipe.Set(ctx, blockKey(ip), n, g.block)
	pipe.Del(ctx, failKey(ip))
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("auth: block ip: %w", err)
	}
	return true, nil
}

// Reset clears the failure counter after a successful login.
func (g *LoginGuard) Reset(ctx context.Context, ip string) error {
	return g.rdb.Del(ctx, failKey(ip)).Err()
}
