package ports

import (
	"context"
	"time"

	"github.com/99minutos/account-service/internal/core/domain"
)

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Compare(plaintext, digest string) bool
}

// TokenIssuer signs and verifies access tokens.
type TokenIssuer interface {
	Issue(userID, role string) (string, error)
	Parse(token string) (*domain.Identity, error)
	TTL() time.Duration
}

// RevocationStore invalidates every token a user holds that was issued before
// the revocation.
type RevocationStore interface {
	RevokeUser(ctx context.Context, userID string, at time.Time) error
	IsRevoked(ctx context.Context, userID string, issuedAt time.Time) (bool, error)
}

// AuditRecorder accepts account lifecycle events. Recording never blocks the
// caller on persistence.
type AuditRecorder interface {
	Record(event domain.AuditEvent)
}
