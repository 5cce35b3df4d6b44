package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionBlacklistPrefix = "session_blacklist:"

// SessionBlacklistKey returns the Redis key marking a session token ID as revoked.
func SessionBlacklistKey(jti string) string {
	return sessionBlacklistPrefix + jti
}

// RevokeSession marks jti as revoked until ttl elapses. A nil client is a no-op.
func RevokeSession(ctx context.Context, rdb *redis.Client, jti string, ttl time.Duration) error {
	if rdb == nil || jti == "" {
		return nil
	}
	if ttl <= 0 {
		return nil
	}
	return rdb.Set(ctx, SessionBlacklistKey(jti), "1", ttl).Err()
}

// IsSessionRevoked reports whether jti was revoked by a logout.
func IsSessionRevoked(ctx context.Context, rdb *redis.Client, jti string) (bool, error) {
	if rdb == nil || jti == "" {
		return false, nil
	}
	_, err := rdb.Get(ctx, SessionBlacklistKey(jti)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
