package repositories

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"rezoom/feedback-api/internal/models"
)

type UserRepository interface {
	Create(user *models.User) error
	FindByEmail(email string) (*models.User, error)
	UpdateProfile(email string, profile *models.ProfileRequest) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) UpdateProfile(email string, profile *models.ProfileRequest) error {
	result := r.db.Model(&models.User{}).
		Where("email = ?", email).
		Updates(map[string]interface{}{
			"name":       profile.Name,
			"age":        profile.Age,
			"university": profile.University,
			"gpa":        profile.GPA,
			"nickname":   profile.Nickname,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update profile: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("user %s: %w", email, ErrNotFound)
	}

	return nil
}
