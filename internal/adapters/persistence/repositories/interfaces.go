package repositories

import (
	"context"
	"time"

	"siports-backend/internal/adapters/persistence/models"
)

// UserFilter narrows the admin user listing.
// Zero values mean "no filter"; Search matches email, name or company.
type UserFilter struct {
	Role   string
	Status string
	Search string
}

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ListPending(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	List(ctx context.Context, filter UserFilter, offset, limit int) ([]*models.User, int64, error)

	// Guarded transitions: each returns false when the row was not in the
	// required state, so concurrent admins cannot double-apply a decision.
	MarkValidated(ctx context.Context, userID uint, at time.Time) (bool, error)
	MarkRejected(ctx context.Context, userID uint, reason, comment string) (bool, error)
	SetStatus(ctx context.Context, userID uint, status string) error

	AssignPackage(ctx context.Context, userID uint, packageID string, allowed int, expiresAt time.Time) error
	// IncrementMeetingsUsed consumes one credit. Returns false when the
	// user has no remaining credit.
	IncrementMeetingsUsed(ctx context.Context, userID uint) (bool, error)

	DeleteAnonymousBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// ValidationActionRepository defines validation audit log repository interface.
// The log is append-only.
type ValidationActionRepository interface {
	Create(ctx context.Context, action *models.ValidationAction) error
	ListByUser(ctx context.Context, userID uint) ([]*models.ValidationAction, error)
}

// PackageRepository defines entitlement catalog repository interface.
// Read-only access to the seeded packages table.
type PackageRepository interface {
	ListByScope(ctx context.Context, scope string) ([]*models.Package, error)
	GetByID(ctx context.Context, id string) (*models.Package, error)
	GetByIDAndScope(ctx context.Context, id, scope string) (*models.Package, error)
}
