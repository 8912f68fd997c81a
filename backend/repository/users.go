package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"learnhub/backend/apperr"
	"learnhub/backend/models"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create stores a new user. A taken email is a validation error.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	user.Email = normalizeEmail(user.Email)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.User{}).Where("email = ?", user.Email).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return apperr.ValidationFields("email already registered", map[string]string{
				"email": "email already registered",
			})
		}
		return tx.Create(user).Error
	})
	return translate(err, "create user")
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err, "user")
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", normalizeEmail(email)).Error; err != nil {
		return nil, translate(err, "user")
	}
	return &user, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, displayName string, bio *string) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{"display_name": displayName, "bio": bio})
	if res.Error != nil {
		return translate(res.Error, "update profile")
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}

func (r *UserRepository) SetAvatarURL(ctx context.Context, id uuid.UUID, url string) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("avatar_url", url)
	if res.Error != nil {
		return translate(res.Error, "update avatar")
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Count(&n).Error
	return n, translate(err, "count users")
}
