package service

import (
	"context"
	"fmt"
	"log"

	"marketcatalyst/internal/auth"
	apperrors "marketcatalyst/internal/errors"
	"marketcatalyst/internal/model"
	"marketcatalyst/internal/repository"
)

// TokenIssuer builds, signs and records a bearer credential for an
// authenticated user.
type TokenIssuer interface {
	Issue(ctx context.Context, user *model.User) (string, error)
}

type tokenIssuer struct {
	jwt    *auth.JWTService
	tokens repository.TokenRepository
	index  *auth.TokenIndex
}

// NewTokenIssuer creates a token issuer over the JWT service and token store.
func NewTokenIssuer(jwt *auth.JWTService, tokens repository.TokenRepository, index *auth.TokenIndex) TokenIssuer {
	return &tokenIssuer{jwt: jwt, tokens: tokens, index: index}
}

// Issue signs a token for the user and persists the issuance record. Unlike
// the register/authenticate paths, a store failure here is logged and
// returned to the caller rather than converted to a result message.
func (i *tokenIssuer) Issue(ctx context.Context, user *model.User) (string, error) {
	if user.ID == 0 {
		return "", apperrors.ErrNoUserID
	}

	signed, claims, err := i.jwt.Generate(user.ID, user.Username)
	if err != nil {
		return "", err
	}

	expires := claims.ExpiresAt.Time
	record := &model.Token{
		UserID:      user.ID,
		Token:       signed,
		CreatedTime: expires.Add(-auth.TokenExpiry),
		ExpiresTime: expires,
		IsCanceled:  false,
	}
	if err := i.tokens.Create(ctx, record); err != nil {
		log.Printf("token issuer: store token for user %d: %v", user.ID, err)
		return "", fmt.Errorf("store token: %w", err)
	}

	// Best-effort mirror into Redis; the row above is the system of record.
	i.index.Remember(ctx, claims.ID, user.ID, expires)

	return signed, nil
}
