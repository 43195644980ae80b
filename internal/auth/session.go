package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "fomo:session:revoked:"

// redisKV is the subset of go-redis commands the session store needs.
type redisKV interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisSessionStore remembers logged-out session IDs until their tokens expire.
type RedisSessionStore struct {
	rdb redisKV
}

// NewRedisSessionStore creates a session store backed by Redis.
func NewRedisSessionStore(rdb redisKV) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb}
}

// Revoke marks the session ID as logged out for ttl. A non-positive ttl is a no-op
// because the token has already expired.
func (s *RedisSessionStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if jti == "" || ttl <= 0 {
		return nil
	}
	if err := s.rdb.Set(ctx, revokedKeyPrefix+jti, 1, ttl).Err(); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

// IsRevoked reports whether the session ID was logged out.
func (s *RedisSessionStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.rdb.Exists(ctx, revokedKeyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("check session: %w", err)
	}
	return n > 0, nil
}
