// Package token issues and verifies the signed bearer tokens that identify
// API users. Tokens are stateless: expiry is the only invalidation path.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/loomra/crm-api/internal/core/domain"
)

// DefaultTTL is the validity window applied when no TTL is configured.
const DefaultTTL = 7 * 24 * time.Hour

// Service signs and verifies HS256 tokens carrying a user id.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService creates a Service signing with secret. A zero ttl means
// DefaultTTL; a negative ttl is kept as-is so tests can mint already-expired
// tokens.
func NewService(secret string, ttl time.Duration) *Service {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &Service{secret: []byte(secret), ttl: ttl}
}

// Issue returns a signed token embedding userID, valid for the configured TTL.
func (s *Service) Issue(userID int64) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":  userID,
		"iat": now.Unix(),
		"exp": now.Add(s.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify parses and validates a token and returns the embedded user id.
// Malformed, badly signed, and expired tokens all fail with
// domain.ErrInvalidToken; callers cannot distinguish the cases.
func (s *Service) Verify(tokenString string) (int64, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !tkn.Valid {
		return 0, domain.ErrInvalidToken
	}

	// JSON numbers decode as float64.
	id, ok := claims["id"].(float64)
	if !ok {
		return 0, domain.ErrInvalidToken
	}
	return int64(id), nil
}
