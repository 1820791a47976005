package services

import (
	"context"
	"errors"
	"time"

	"siports-backend/internal/adapters/persistence/models"
	"siports-backend/internal/adapters/persistence/repositories"
	"siports-backend/internal/core/domain"

	"gorm.io/gorm"
)

// PackageService handles the entitlement catalog and metered B2B
// meeting credits
type PackageService struct {
	userRepo    repositories.UserRepository
	packageRepo repositories.PackageRepository
}

// NewPackageService creates a new package service
func NewPackageService(userRepo repositories.UserRepository, packageRepo repositories.PackageRepository) *PackageService {
	return &PackageService{
		userRepo:    userRepo,
		packageRepo: packageRepo,
	}
}

// UpdatePackageInput represents a package selection
type UpdatePackageInput struct {
	PackageID string `json:"package_id" validate:"required"`
}

// MeetingQuota is the metered B2B meeting credit view.
// Remaining is -1 for unlimited pools, whatever the usage.
type MeetingQuota struct {
	Allowed   int `json:"allowed"`
	Used      int `json:"used"`
	Remaining int `json:"remaining"`
}

// PackageStatus is the user-facing view of the current entitlement
type PackageStatus struct {
	PackageID   string       `json:"package_id"`
	ExpiresAt   *time.Time   `json:"expires_at"`
	IsExpired   bool         `json:"is_expired"`
	B2BMeetings MeetingQuota `json:"b2b_meetings"`
}

// ListCatalog returns the catalog for one audience scope
func (s *PackageService) ListCatalog(ctx context.Context, scope domain.PackageScope) ([]*models.PackageResponse, error) {
	packages, err := s.packageRepo.ListByScope(ctx, string(scope))
	if err != nil {
		return nil, err
	}

	out := make([]*models.PackageResponse, len(packages))
	for i, p := range packages {
		out[i] = p.ToResponse()
	}
	return out, nil
}

// Assign replaces the user's current package with a catalog entry from
// their own scope. Credits reset: meetings_used starts at zero and the
// expiry restarts from now, even when re-assigning the same package.
func (s *PackageService) Assign(ctx context.Context, userID uint, packageID string) (*PackageStatus, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	scope := domain.ScopeForRole(domain.Role(user.Role))
	pkg, err := s.packageRepo.GetByIDAndScope(ctx, packageID, string(scope))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPackageNotFound
		}
		return nil, err
	}

	expiresAt := time.Now().AddDate(0, 0, pkg.DurationDays)
	if err := s.userRepo.AssignPackage(ctx, userID, pkg.ID, pkg.MeetingCredits, expiresAt); err != nil {
		return nil, err
	}

	return s.Status(ctx, userID)
}

// Status reports the user's current entitlement. A user who never
// selected a package is treated as holding the scope's free tier.
func (s *PackageService) Status(ctx context.Context, userID uint) (*PackageStatus, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	status := &PackageStatus{
		PackageID: "free",
		B2BMeetings: MeetingQuota{
			Allowed: user.MeetingsAllowed,
			Used:    user.MeetingsUsed,
		},
	}

	if user.CurrentPackage != nil {
		status.PackageID = *user.CurrentPackage
	}

	if user.PackageExpiresAt != nil {
		status.ExpiresAt = user.PackageExpiresAt
		status.IsExpired = user.PackageExpiresAt.Before(time.Now())
	}

	if user.MeetingsAllowed == domain.UnlimitedMeetings {
		status.B2BMeetings.Remaining = domain.UnlimitedMeetings
	} else {
		status.B2BMeetings.Remaining = user.MeetingsAllowed - user.MeetingsUsed
		if status.B2BMeetings.Remaining < 0 {
			status.B2BMeetings.Remaining = 0
		}
	}

	return status, nil
}

// BookMeeting consumes one B2B meeting credit. The increment is atomic,
// so concurrent bookings can never push usage past the allowance.
func (s *PackageService) BookMeeting(ctx context.Context, userID uint) (*MeetingQuota, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	if user.MeetingsAllowed == 0 {
		return nil, domain.ErrNoCreditAllowed
	}

	ok, err := s.userRepo.IncrementMeetingsUsed(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrCreditExhausted
	}

	user, err = s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	quota := &MeetingQuota{
		Allowed: user.MeetingsAllowed,
		Used:    user.MeetingsUsed,
	}
	if user.MeetingsAllowed == domain.UnlimitedMeetings {
		quota.Remaining = domain.UnlimitedMeetings
	} else {
		quota.Remaining = user.MeetingsAllowed - user.MeetingsUsed
	}

	return quota, nil
}
