package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/amoryapp/amory-backend/internal/db"
)

// UserRepository provides data access for profiles and their images.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{db: database}
}

func (r *UserRepository) Create(ctx context.Context, user *db.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetByID fetches a profile with its images in display order.
func (r *UserRepository) GetByID(ctx context.Context, id uint64) (db.User, error) {
	var user db.User
	err := r.db.WithContext(ctx).
		Preload("Images", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("position ASC")
		}).
		First(&user, id).Error
	return user, err
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (db.User, error) {
	var user db.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	return user, err
}

// UpdateProfile overwrites the owner-editable profile fields.
func (r *UserRepository) UpdateProfile(ctx context.Context, user *db.User) error {
	return r.db.WithContext(ctx).
		Model(&db.User{ID: user.ID}).
		Select("Name", "Age", "City", "Country", "Bio", "Religion",
			"HasKids", "WantsKids", "Ethnicities", "Intents", "SubstanceUse").
		Updates(user).Error
}

// AddImage appends a profile photo at the next free position.
func (r *UserRepository) AddImage(ctx context.Context, img *db.UserImage) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var max *int
		err := tx.Model(&db.UserImage{}).
			Where("user_id = ?", img.UserID).
			Select("MAX(position)").
			Scan(&max).Error
		if err != nil {
			return err
		}
		if max != nil {
			img.Position = *max + 1
		}
		return tx.Create(img).Error
	})
}
