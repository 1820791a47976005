package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"time"

	"siports-backend/internal/adapters/persistence/models"
	"siports-backend/internal/adapters/persistence/repositories"
	"siports-backend/internal/core/domain"

	"gorm.io/gorm"
)

// ValidationService handles the admin account validation workflow
type ValidationService struct {
	userRepo   repositories.UserRepository
	actionRepo repositories.ValidationActionRepository
	notifier   *NotificationService
}

// NewValidationService creates a new validation service
func NewValidationService(
	userRepo repositories.UserRepository,
	actionRepo repositories.ValidationActionRepository,
	notifier *NotificationService,
) *ValidationService {
	return &ValidationService{
		userRepo:   userRepo,
		actionRepo: actionRepo,
		notifier:   notifier,
	}
}

// RejectInput represents rejection input.
// Raison is the canonical reason code; Commentaire is free text.
type RejectInput struct {
	Raison      string `json:"raison" validate:"required,oneof=invalid_email incomplete_profile missing_document"`
	Commentaire string `json:"commentaire" validate:"omitempty,max=2000"`
}

// requireAdmin loads the caller and checks its role from the database,
// never from token claims, so a stale token cannot grant admin access.
func (s *ValidationService) requireAdmin(ctx context.Context, adminID uint) (*models.User, error) {
	admin, err := s.userRepo.GetByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrForbidden
		}
		return nil, err
	}
	if admin.Role != string(domain.RoleAdmin) {
		return nil, domain.ErrForbidden
	}
	return admin, nil
}

// Validate transitions a pending account to validated.
// The transition is exclusive: if two admins race, exactly one succeeds
// and the other gets ErrInvalidTransition.
func (s *ValidationService) Validate(ctx context.Context, adminID, userID uint) (*models.User, error) {
	admin, err := s.requireAdmin(ctx, adminID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	ok, err := s.userRepo.MarkValidated(ctx, userID, time.Now())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrInvalidTransition
	}

	if err := s.actionRepo.Create(ctx, &models.ValidationAction{
		UserID:     userID,
		Action:     string(domain.ActionValidate),
		AdminID:    admin.ID,
		AdminEmail: admin.Email,
		Comment:    "Compte validé",
	}); err != nil {
		return nil, err
	}

	go s.notifier.NotifyAccountValidated(user.Email, user.FirstName)

	return s.userRepo.GetByID(ctx, userID)
}

// Reject transitions a pending account to rejected with a reason code.
// Same exclusivity guarantee as Validate.
func (s *ValidationService) Reject(ctx context.Context, adminID, userID uint, input *RejectInput) (*models.User, error) {
	admin, err := s.requireAdmin(ctx, adminID)
	if err != nil {
		return nil, err
	}

	reason := domain.RejectionReason(input.Raison)
	if !domain.ValidRejectionReason(reason) {
		return nil, domain.ErrInvalidArgument
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	ok, err := s.userRepo.MarkRejected(ctx, userID, string(reason), input.Commentaire)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrInvalidTransition
	}

	comment := fmt.Sprintf("Raison: %s.", domain.ReasonLabel(reason))
	if input.Commentaire != "" {
		comment = comment + " " + input.Commentaire
	}

	if err := s.actionRepo.Create(ctx, &models.ValidationAction{
		UserID:     userID,
		Action:     string(domain.ActionReject),
		AdminID:    admin.ID,
		AdminEmail: admin.Email,
		Comment:    comment,
	}); err != nil {
		return nil, err
	}

	go s.notifier.NotifyAccountRejected(user.Email, user.FirstName, domain.ReasonLabel(reason), input.Commentaire)

	return s.userRepo.GetByID(ctx, userID)
}

// Remind nudges a user to complete their profile. No status
// precondition and no state change: reminders can be sent repeatedly
// and each one is audited.
func (s *ValidationService) Remind(ctx context.Context, adminID, userID uint) error {
	admin, err := s.requireAdmin(ctx, adminID)
	if err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	if err := s.actionRepo.Create(ctx, &models.ValidationAction{
		UserID:     userID,
		Action:     string(domain.ActionRemind),
		AdminID:    admin.ID,
		AdminEmail: admin.Email,
		Comment:    "Relance envoyée",
	}); err != nil {
		return err
	}

	go s.notifier.NotifyProfileReminder(user.Email, user.FirstName)

	return nil
}

// Deactivate sets an account to deactivated, whatever its current status
func (s *ValidationService) Deactivate(ctx context.Context, adminID, userID uint) (*models.User, error) {
	_, err := s.requireAdmin(ctx, adminID)
	if err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	if err := s.userRepo.SetStatus(ctx, userID, string(domain.StatusDeactivated)); err != nil {
		return nil, err
	}

	return s.userRepo.GetByID(ctx, userID)
}

// ListPending lists accounts awaiting validation, oldest first
func (s *ValidationService) ListPending(ctx context.Context, adminID uint, offset, limit int) ([]*models.User, int64, error) {
	if _, err := s.requireAdmin(ctx, adminID); err != nil {
		return nil, 0, err
	}
	return s.userRepo.ListPending(ctx, offset, limit)
}

// ListAll lists all accounts with optional filters, newest first
func (s *ValidationService) ListAll(ctx context.Context, adminID uint, filter repositories.UserFilter, offset, limit int) ([]*models.User, int64, error) {
	if _, err := s.requireAdmin(ctx, adminID); err != nil {
		return nil, 0, err
	}
	return s.userRepo.List(ctx, filter, offset, limit)
}

// History returns a user's validation audit trail
func (s *ValidationService) History(ctx context.Context, adminID, userID uint) ([]*models.ValidationAction, error) {
	if _, err := s.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}
	return s.actionRepo.ListByUser(ctx, userID)
}

// ExportCSV renders the filtered user list as a CSV document
func (s *ValidationService) ExportCSV(ctx context.Context, adminID uint, filter repositories.UserFilter) ([]byte, error) {
	if _, err := s.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}

	// Export is unpaginated but capped to keep the response bounded
	users, _, err := s.userRepo.List(ctx, filter, 0, 10000)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"id", "email", "prenom", "nom", "type", "statut", "societe", "date_inscription"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, u := range users {
		record := []string{
			strconv.FormatUint(uint64(u.ID), 10),
			u.Email,
			u.FirstName,
			u.LastName,
			u.Role,
			u.Status,
			u.Company,
			u.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
