package service

import (
	"context"
	"time"
)

type SessionClaims struct {
	UserID    string
	TokenID   string
	ExpiresAt time.Time
}

// TokenIssuer signs and verifies session tokens.
type TokenIssuer interface {
	Issue(userID string) (string, SessionClaims, error)
	Parse(token string) (SessionClaims, error)
}

// TokenRevocationList remembers logged out tokens until they would have expired.
type TokenRevocationList interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
