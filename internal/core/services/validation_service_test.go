package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"siports-backend/internal/adapters/persistence/models"
	"siports-backend/internal/adapters/persistence/repositories"
	"siports-backend/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newValidationService(t *testing.T) (*ValidationService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	userRepo := repositories.NewUserRepository(db)
	actionRepo := repositories.NewValidationActionRepository(db)
	notifier := NewNotificationService("") // disabled
	return NewValidationService(userRepo, actionRepo, notifier), db
}

func TestValidateTransitionsPendingUser(t *testing.T) {
	svc, db := newValidationService(t)
	admin := createAdmin(t, db)
	target := createUser(t, db, "u@x.com", domain.RoleVisitor, domain.StatusPending)

	user, err := svc.Validate(context.Background(), admin.ID, target.ID)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusValidated), user.Status)
	require.NotNil(t, user.ValidatedAt)
	assert.WithinDuration(t, time.Now(), *user.ValidatedAt, 5*time.Second)

	var actions []models.ValidationAction
	require.NoError(t, db.Where("user_id = ?", target.ID).Find(&actions).Error)
	require.Len(t, actions, 1)
	assert.Equal(t, string(domain.ActionValidate), actions[0].Action)
	assert.Equal(t, admin.Email, actions[0].AdminEmail)
}

func TestValidateRequiresAdmin(t *testing.T) {
	svc, db := newValidationService(t)
	notAdmin := createUser(t, db, "v@x.com", domain.RoleVisitor, domain.StatusValidated)
	target := createUser(t, db, "u@x.com", domain.RoleVisitor, domain.StatusPending)

	_, err := svc.Validate(context.Background(), notAdmin.ID, target.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// No mutation happened
	var fresh models.User
	require.NoError(t, db.First(&fresh, target.ID).Error)
	assert.Equal(t, string(domain.StatusPending), fresh.Status)
}

func TestValidateUnknownUser(t *testing.T) {
	svc, db := newValidationService(t)
	admin := createAdmin(t, db)

	_, err := svc.Validate(context.Background(), admin.ID, 9999)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestRejectSetsReasonAndAuditComment(t *testing.T) {
	svc, db := newValidationService(t)
	admin := createAdmin(t, db)
	target := createUser(t, db, "u@x.com", domain.RoleVisitor, domain.StatusPending)

	user, err := svc.Reject(context.Background(), admin.ID, target.ID, &RejectInput{
		Raison:      "invalid_email",
		Commentaire: "adresse jetable",
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusRejected), user.Status)
	require.NotNil(t, user.RejectionReason)
	assert.Equal(t, "invalid_email", *user.RejectionReason)
	require.NotNil(t, user.RejectionComment)
	assert.Equal(t, "adresse jetable", *user.RejectionComment)

	var action models.ValidationAction
	require.NoError(t, db.Where("user_id = ?", target.ID).First(&action).Error)
	assert.Equal(t, string(domain.ActionReject), action.Action)
	assert.Equal(t, "Raison: Email invalide. adresse jetable", action.Comment)
}

func TestRejectInvalidReason(t *testing.T) {
	svc, db := newValidationService(t)
	admin := createAdmin(t, db)
	target := createUser(t, db, "u@x.com", domain.RoleVisitor, domain.StatusPending)

	_, err := svc.Reject(context.Background(), admin.ID, target.ID, &RejectInput{Raison: "because"})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestRejectionConsistency(t *testing.T) {
	svc, db := newValidationService(t)
	admin := createAdmin(t, db)
	validated := createUser(t, db, "ok@x.com", domain.RoleVisitor, domain.StatusPending)
	rejected := createUser(t, db, "ko@x.com", domain.RoleVisitor, domain.StatusPending)

	_, err := svc.Validate(context.Background(), admin.ID, validated.ID)
	require.NoError(t, err)
	_, err = svc.Reject(context.Background(), admin.ID, rejected.ID, &RejectInput{Raison: "missing_document"})
	require.NoError(t, err)

	// reason set iff status == rejected
	var users []models.User
	require.NoError(t, db.Find(&users).Error)
	for _, u := range users {
		if u.Status == string(domain.StatusRejected) {
			assert.NotNil(t, u.RejectionReason, "rejected user %s must carry a reason", u.Email)
		} else {
			assert.Nil(t, u.RejectionReason, "non-rejected user %s must not carry a reason", u.Email)
		}
	}
}

func TestDecisionIsExclusive(t *testing.T) {
	svc, db := newValidationService(t)
	admin := createAdmin(t, db)
	target := createUser(t, db, "u@x.com", domain.RoleVisitor, domain.StatusPending)

	_, err := svc.Validate(context.Background(), admin.ID, target.ID)
	require.NoError(t, err)

	_, err = svc.Reject(context.Background(), admin.ID, target.ID, &RejectInput{Raison: "invalid_email"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = svc.Validate(context.Background(), admin.ID, target.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestConcurrentDecisionsExactlyOneWins(t *testing.T) {
	svc, db := newValidationService(t)
	admin := createAdmin(t, db)
	target := createUser(t, db, "u@x.com", domain.RoleVisitor, domain.StatusPending)

	var wg sync.WaitGroup
	errs := make([]error, 2)

	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errs[0] = svc.Validate(context.Background(), admin.ID, target.ID)
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = svc.Reject(context.Background(), admin.ID, target.ID, &RejectInput{Raison: "incomplete_profile"})
	}()
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		}
	}
	assert.Equal(t, 1, winners)
}

func TestRemindKeepsStatusAndAppendsAudit(t *testing.T) {
	svc, db := newValidationService(t)
	admin := createAdmin(t, db)
	target := createUser(t, db, "u@x.com", domain.RoleVisitor, domain.StatusPending)

	require.NoError(t, svc.Remind(context.Background(), admin.ID, target.ID))
	require.NoError(t, svc.Remind(context.Background(), admin.ID, target.ID))

	var fresh models.User
	require.NoError(t, db.First(&fresh, target.ID).Error)
	assert.Equal(t, string(domain.StatusPending), fresh.Status)

	var count int64
	db.Model(&models.ValidationAction{}).
		Where("user_id = ? AND action = ?", target.ID, string(domain.ActionRemind)).
		Count(&count)
	assert.EqualValues(t, 2, count)
}

func TestDeactivateIsUnconditional(t *testing.T) {
	svc, db := newValidationService(t)
	admin := createAdmin(t, db)

	for i, status := range []domain.Status{domain.StatusPending, domain.StatusValidated, domain.StatusRejected} {
		email := fmt.Sprintf("u%d@x.com", i)
		target := createUser(t, db, email, domain.RoleVisitor, status)
		if status == domain.StatusRejected {
			db.Model(target).Updates(map[string]interface{}{
				"rejection_reason":  "invalid_email",
				"rejection_comment": "adresse jetable",
			})
		}

		user, err := svc.Deactivate(context.Background(), admin.ID, target.ID)
		require.NoError(t, err, "deactivate from %s", status)
		assert.Equal(t, string(domain.StatusDeactivated), user.Status)
	}
}

func TestDeactivateClearsRejectionDetails(t *testing.T) {
	svc, db := newValidationService(t)
	admin := createAdmin(t, db)
	target := createUser(t, db, "u@x.com", domain.RoleVisitor, domain.StatusPending)

	_, err := svc.Reject(context.Background(), admin.ID, target.ID, &RejectInput{
		Raison:      "invalid_email",
		Commentaire: "adresse jetable",
	})
	require.NoError(t, err)

	user, err := svc.Deactivate(context.Background(), admin.ID, target.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusDeactivated), user.Status)

	// A reason only accompanies the rejected status
	var fresh models.User
	require.NoError(t, db.First(&fresh, target.ID).Error)
	assert.Nil(t, fresh.RejectionReason)
	assert.Nil(t, fresh.RejectionComment)
}

func TestListPendingIsOldestFirst(t *testing.T) {
	svc, db := newValidationService(t)
	admin := createAdmin(t, db)

	base := time.Now().Add(-3 * time.Hour)
	for i := 0; i < 3; i++ {
		u := createUser(t, db, fmt.Sprintf("u%d@x.com", i), domain.RoleVisitor, domain.StatusPending)
		// Space out registration times explicitly
		db.Model(u).Update("created_at", base.Add(time.Duration(i)*time.Hour))
	}

	users, total, err := svc.ListPending(context.Background(), admin.ID, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, users, 3)
	assert.Equal(t, "u0@x.com", users[0].Email)
	assert.Equal(t, "u1@x.com", users[1].Email)
	assert.Equal(t, "u2@x.com", users[2].Email)

	// A new signup lands at the back of the queue
	createUser(t, db, "u3@x.com", domain.RoleVisitor, domain.StatusPending)
	users, _, err = svc.ListPending(context.Background(), admin.ID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, "u3@x.com", users[len(users)-1].Email)
}

func TestListAllFilters(t *testing.T) {
	svc, db := newValidationService(t)
	admin := createAdmin(t, db)
	createUser(t, db, "vis@x.com", domain.RoleVisitor, domain.StatusPending)
	exhibitor := createUser(t, db, "expo@x.com", domain.RoleExhibitor, domain.StatusValidated)
	db.Model(exhibitor).Update("company", "Maritime Tech")

	users, _, err := svc.ListAll(context.Background(), admin.ID, repositories.UserFilter{Role: "exhibitor"}, 0, 10)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "expo@x.com", users[0].Email)

	users, _, err = svc.ListAll(context.Background(), admin.ID, repositories.UserFilter{Search: "Maritime"}, 0, 10)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "expo@x.com", users[0].Email)

	users, _, err = svc.ListAll(context.Background(), admin.ID, repositories.UserFilter{Status: "pending"}, 0, 10)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "vis@x.com", users[0].Email)
}

func TestExportCSV(t *testing.T) {
	svc, db := newValidationService(t)
	admin := createAdmin(t, db)
	createUser(t, db, "u@x.com", domain.RoleVisitor, domain.StatusPending)

	data, err := svc.ExportCSV(context.Background(), admin.ID, repositories.UserFilter{})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal(t, "id,email,prenom,nom,type,statut,societe,date_inscription", lines[0])
	// admin + one user
	assert.Len(t, lines, 3)
}
