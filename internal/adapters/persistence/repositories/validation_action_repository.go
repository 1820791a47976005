package repositories

import (
	"context"

	"siports-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// validationActionRepository implements ValidationActionRepository interface
type validationActionRepository struct {
	db *gorm.DB
}

// NewValidationActionRepository creates a new validation action repository
func NewValidationActionRepository(db *gorm.DB) ValidationActionRepository {
	return &validationActionRepository{db: db}
}

// Create appends an audit row
func (r *validationActionRepository) Create(ctx context.Context, action *models.ValidationAction) error {
	return r.db.WithContext(ctx).Create(action).Error
}

// ListByUser lists a user's audit trail, newest first
func (r *validationActionRepository) ListByUser(ctx context.Context, userID uint) ([]*models.ValidationAction, error) {
	var actions []*models.ValidationAction
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&actions).Error
	if err != nil {
		return nil, err
	}
	return actions, nil
}
