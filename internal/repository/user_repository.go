package repository

import (
	"context"

	"gorm.io/gorm"

	"marketcatalyst/internal/model"
)

// UserRepository defines persistence operations on the Users table. All
// queries bind parameters; no caller input is concatenated into SQL text.
type UserRepository interface {
	// CountByUsername returns the number of rows with exactly this username.
	CountByUsername(ctx context.Context, username string) (int64, error)
	// Create inserts the user and fills in the store-assigned ID.
	Create(ctx context.Context, user *model.User) error
	// FindIDByCredentials returns the ID of the row matching username and
	// password digest, or gorm.ErrRecordNotFound.
	FindIDByCredentials(ctx context.Context, username string, passwordHash []byte) (uint, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CountByUsername(ctx context.Context, username string) (int64, error) {
	// Raw scan so an empty scalar result surfaces as sql.ErrNoRows, which
	// the service maps to its own defensive branch.
	row := r.db.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM `Users` WHERE `Username` = ?", username).Row()
	var count int64
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindIDByCredentials(ctx context.Context, username string, passwordHash []byte) (uint, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Select("ID").
		Where("Username = ? AND Password = ?", username, passwordHash).
		First(&user).Error
	if err != nil {
		return 0, err
	}
	return user.ID, nil
}
