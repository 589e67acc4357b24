package infra

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationStore records revoked session token IDs in Redis. Entries expire
// with the token itself, so the set never needs sweeping.
type RevocationStore struct {
	rdb *redis.Client
}

func NewRevocationStore(rdb *redis.Client) *RevocationStore {
	return &RevocationStore{rdb: rdb}
}

func revocationKey(jti string) string {
	return "session:revoked:" + jti
}

// Revoke marks the token id as revoked for the remaining token lifetime.
func (s *RevocationStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return s.rdb.Set(ctx, revocationKey(jti), "1", ttl).Err()
}

// IsRevoked reports whether the token id has been revoked. Lookup failures
// are returned so the caller can reject rather than silently accept.
func (s *RevocationStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.rdb.Exists(ctx, revocationKey(jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
