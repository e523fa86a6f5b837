package repository

import (
	"context"

	"gorm.io/gorm"

	"marketcatalyst/internal/model"
)

// TokenRepository persists issued bearer tokens. Records are written once and
// never read back on the request path.
type TokenRepository interface {
	Create(ctx context.Context, token *model.Token) error
}

type tokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository builds a GORM-backed token repository.
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Create(ctx context.Context, token *model.Token) error {
	return r.db.WithContext(ctx).Create(token).Error
}
