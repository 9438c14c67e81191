package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/99minutos/account-service/internal/core/domain"
)

// RevocationStore keeps one mark per user: the unix nanosecond up to which
// every token the user holds is void.
// Key format: revoked:<user_id>
type RevocationStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRevocationStore wraps client. Marks expire after ttl, the access token
// lifetime, since no older token can still be valid by then.
func NewRevocationStore(client *redis.Client, ttl time.Duration) *RevocationStore {
	return &RevocationStore{client: client, ttl: ttl}
}

// RevokeUser voids every token of userID issued at or before at.
func (s *RevocationStore) RevokeUser(ctx context.Context, userID string, at time.Time) error {
	if err := s.client.Set(ctx, s.key(userID), at.UnixNano(), s.ttl).Err(); err != nil {
		return fmt.Errorf("revoke user: %w", err)
	}
	return nil
}

// IsRevoked reports whether a token issued at issuedAt has been voided.
func (s *RevocationStore) IsRevoked(ctx context.Context, userID string, issuedAt time.Time) (bool, error) {
	val, err := s.client.Get(ctx, s.key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}

	mark, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return false, fmt.Errorf("revocation check: bad mark %q: %w", val, err)
	}
	return domain.RevokedBy(issuedAt, time.Unix(0, mark)), nil
}

func (s *RevocationStore) key(userID string) string {
	return "revoked:" + userID
}
