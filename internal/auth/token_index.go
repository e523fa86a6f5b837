package auth

import (
	"context"
	"encoding/json"
	"time"

	"marketcatalyst/internal/cache"
)

const (
	issuedTokenKeyPrefix   = "issued_token:"
	canceledTokenKeyPrefix = "canceled_token:"
)

// TokenIndex mirrors issued tokens into Redis, keyed by JWT ID. The Tokens
// table remains the system of record; the index is a fail-safe side channel,
// so a cold or unreachable Redis never affects authentication.
type TokenIndex struct {
	cache *cache.Client
}

// NewTokenIndex creates a token index over the given cache. A nil cache
// yields a no-op index.
func NewTokenIndex(c *cache.Client) *TokenIndex {
	return &TokenIndex{cache: c}
}

type issuedToken struct {
	UserID    uint      `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Remember records an issued token until its expiry.
func (i *TokenIndex) Remember(ctx context.Context, jti string, userID uint, expiresAt time.Time) {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return
	}
	payload, err := json.Marshal(issuedToken{UserID: userID, ExpiresAt: expiresAt})
	if err != nil {
		return
	}
	i.cache.Set(ctx, issuedTokenKeyPrefix+jti, payload, ttl)
}

// Canceled reports whether a cancellation marker exists for the token.
// Fail-safe: with no marker, or no Redis, the token counts as live.
func (i *TokenIndex) Canceled(ctx context.Context, jti string) bool {
	return i.cache.Get(ctx, canceledTokenKeyPrefix+jti) != nil
}
