package repositories

import (
	"context"
	"time"

	"siports-backend/internal/adapters/persistence/models"
	"siports-backend/internal/core/domain"

	"gorm.io/gorm"
)

// userRepository implements UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetByID gets a user by ID
func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail gets a user by email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ExistsByEmail checks if email exists
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// ListPending lists pending accounts oldest-first, so the queue is
// processed in registration order.
func (r *userRepository) ListPending(ctx context.Context, offset, limit int) ([]*models.User, int64, error) {
	var users []*models.User
	var total int64

	query := r.db.WithContext(ctx).Model(&models.User{}).
		Where("status = ? AND is_anonymous = ?", string(domain.StatusPending), false)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at ASC").Offset(offset).Limit(limit).Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// List lists users newest-first with optional role/status/search filters
func (r *userRepository) List(ctx context.Context, filter UserFilter, offset, limit int) ([]*models.User, int64, error) {
	var users []*models.User
	var total int64

	query := r.db.WithContext(ctx).Model(&models.User{}).Where("is_anonymous = ?", false)

	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("email LIKE ? OR first_name LIKE ? OR last_name LIKE ? OR company LIKE ?",
			like, like, like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// MarkValidated transitions pending -> validated. The WHERE clause makes
// the transition atomic: only one of two racing admins sees RowsAffected == 1.
func (r *userRepository) MarkValidated(ctx context.Context, userID uint, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND status = ?", userID, string(domain.StatusPending)).
		Updates(map[string]interface{}{
			"status":       string(domain.StatusValidated),
			"validated_at": at,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// MarkRejected transitions pending -> rejected with reason code and comment
func (r *userRepository) MarkRejected(ctx context.Context, userID uint, reason, comment string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND status = ?", userID, string(domain.StatusPending)).
		Updates(map[string]interface{}{
			"status":            string(domain.StatusRejected),
			"rejection_reason":  reason,
			"rejection_comment": comment,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// SetStatus sets the account status unconditionally. Rejection details
// only exist on a rejected account, so moving to any other status clears
// them in the same statement.
func (r *userRepository) SetStatus(ctx context.Context, userID uint, status string) error {
	updates := map[string]interface{}{"status": status}
	if status != string(domain.StatusRejected) {
		updates["rejection_reason"] = nil
		updates["rejection_comment"] = nil
	}
	return r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Updates(updates).Error
}

// AssignPackage replaces the user's entitlement and resets the used counter
func (r *userRepository) AssignPackage(ctx context.Context, userID uint, packageID string, allowed int, expiresAt time.Time) error {
	return r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"current_package":    packageID,
			"package_expires_at": expiresAt,
			"meetings_allowed":   allowed,
			"meetings_used":      0,
		}).Error
}

// IncrementMeetingsUsed consumes one meeting credit. The guard keeps
// meetings_used <= meetings_allowed under concurrent bookings; -1 means
// unlimited and always passes.
func (r *userRepository) IncrementMeetingsUsed(ctx context.Context, userID uint) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND (meetings_allowed = ? OR meetings_used < meetings_allowed)",
			userID, domain.UnlimitedMeetings).
		Update("meetings_used", gorm.Expr("meetings_used + 1"))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// DeleteAnonymousBefore hard-deletes stale anonymous visitor sessions
func (r *userRepository) DeleteAnonymousBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Unscoped().
		Where("is_anonymous = ? AND created_at < ?", true, cutoff).
		Delete(&models.User{})
	return result.RowsAffected, result.Error
}
