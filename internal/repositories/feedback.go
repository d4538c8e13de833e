package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"rezoom/feedback-api/internal/models"
)

type FeedbackRepository interface {
	Create(feedback *models.Feedback) error
	FindByID(id uuid.UUID) (*models.Feedback, error)
	FindByIDs(ids []uuid.UUID) ([]models.Feedback, error)
	FindByUserEmail(email string) ([]models.Feedback, error)
	FindTodosByUserEmail(email string) ([]models.Feedback, error)
	FindUnindexed(limit int) ([]models.Feedback, error)
	FindAllIDs() ([]uuid.UUID, error)
	MarkIndexed(id uuid.UUID) error
}

type feedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(feedback *models.Feedback) error {
	if err := r.db.Create(feedback).Error; err != nil {
		return fmt.Errorf("failed to create feedback: %w", err)
	}
	return nil
}

func (r *feedbackRepository) FindByID(id uuid.UUID) (*models.Feedback, error) {
	var fb models.Feedback
	if err := r.db.Where("id = ?", id).First(&fb).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("feedback %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find feedback: %w", err)
	}
	return &fb, nil
}

func (r *feedbackRepository) FindByIDs(ids []uuid.UUID) ([]models.Feedback, error) {
	var feedbacks []models.Feedback
	if len(ids) == 0 {
		return feedbacks, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&feedbacks).Error; err != nil {
		return nil, fmt.Errorf("failed to find feedbacks: %w", err)
	}
	return feedbacks, nil
}

// FindByUserEmail returns the user's feedbacks, newest first.
func (r *feedbackRepository) FindByUserEmail(email string) ([]models.Feedback, error) {
	var feedbacks []models.Feedback
	err := r.db.
		Where("user_email = ?", email).
		Order("created_at DESC").
		Find(&feedbacks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find feedbacks for user: %w", err)
	}
	return feedbacks, nil
}

func (r *feedbackRepository) FindTodosByUserEmail(email string) ([]models.Feedback, error) {
	var feedbacks []models.Feedback
	err := r.db.
		Where("user_email = ?", email).
		Where("todo IS NOT NULL AND TRIM(todo) <> ''").
		Order("created_at DESC").
		Find(&feedbacks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find todos for user: %w", err)
	}
	return feedbacks, nil
}

func (r *feedbackRepository) FindUnindexed(limit int) ([]models.Feedback, error) {
	var feedbacks []models.Feedback
	err := r.db.
		Where("indexed = ?", false).
		Order("created_at ASC").
		Limit(limit).
		Find(&feedbacks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find unindexed feedbacks: %w", err)
	}
	return feedbacks, nil
}

func (r *feedbackRepository) FindAllIDs() ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.Model(&models.Feedback{}).Order("created_at ASC").Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list feedback ids: %w", err)
	}
	return ids, nil
}

func (r *feedbackRepository) MarkIndexed(id uuid.UUID) error {
	result := r.db.Model(&models.Feedback{}).
		Where("id = ?", id).
		Update("indexed", true)

	if result.Error != nil {
		return fmt.Errorf("failed to mark feedback indexed: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("feedback %s: %w", id, ErrNotFound)
	}

	return nil
}
