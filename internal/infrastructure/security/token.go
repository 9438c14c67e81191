package security

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/99minutos/account-service/internal/core/domain"
)

// AccessTokenTTL is the lifetime of tokens issued at login.
const AccessTokenTTL = 60 * time.Minute

// Claims is the access token payload: {id, role} plus the registered claims.
// IssuedAtNano carries the issue time at full precision, since "iat" only
// holds whole seconds.
type Claims struct {
	ID           string `json:"id"`
	Role         string `json:"role"`
	IssuedAtNano int64  `json:"iat_ns,omitempty"`
	jwt.RegisteredClaims
}

// JWTIssuer signs and verifies HS256 access tokens.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTIssuer(secret string, ttl time.Duration) *JWTIssuer {
	if ttl <= 0 {
		ttl = AccessTokenTTL
	}
	return &JWTIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (j *JWTIssuer) TTL() time.Duration { return j.ttl }

func (j *JWTIssuer) Issue(userID, role string) (string, error) {
	now := j.now()
	claims := Claims{
		ID:           userID,
		Role:         role,
		IssuedAtNano: now.UnixNano(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies signature, algorithm and expiry and returns the identity the
// token asserts. Every failure wraps domain.ErrInvalidToken.
func (j *JWTIssuer) Parse(token string) (*domain.Identity, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return j.secret, nil
	}, jwt.WithExpirationRequired(), jwt.WithTimeFunc(j.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidToken, err)
	}
	if !tkn.Valid || claims.ID == "" {
		return nil, domain.ErrInvalidToken
	}

	id := &domain.Identity{UserID: claims.ID, Role: claims.Role}
	switch {
	case claims.IssuedAtNano > 0:
		id.IssuedAt = time.Unix(0, claims.IssuedAtNano)
	case claims.IssuedAt != nil:
		id.IssuedAt = claims.IssuedAt.Time
	}
	return id, nil
}
