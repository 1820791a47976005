package services

import (
	"context"
	"testing"
	"time"

	"siports-backend/internal/adapters/persistence/models"
	"siports-backend/internal/adapters/persistence/repositories"
	"siports-backend/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanupPurgesOnlyStaleAnonymousSessions(t *testing.T) {
	db := newTestDB(t)
	svc := NewCleanupService(repositories.NewUserRepository(db))

	registered := createUser(t, db, "old@x.com", domain.RoleVisitor, domain.StatusValidated)
	require.NoError(t, db.Model(registered).Update("created_at", time.Now().Add(-48*time.Hour)).Error)

	staleAnon := createUser(t, db, "visiteur_old@siportevent.com", domain.RoleVisitor, domain.StatusPending)
	require.NoError(t, db.Model(staleAnon).Updates(map[string]interface{}{
		"is_anonymous": true,
		"created_at":   time.Now().Add(-48 * time.Hour),
	}).Error)

	freshAnon := createUser(t, db, "visiteur_new@siportevent.com", domain.RoleVisitor, domain.StatusPending)
	require.NoError(t, db.Model(freshAnon).Update("is_anonymous", true).Error)

	svc.Run(context.Background())

	var emails []string
	require.NoError(t, db.Model(&models.User{}).Pluck("email", &emails).Error)
	assert.ElementsMatch(t, []string{"old@x.com", "visiteur_new@siportevent.com"}, emails)

	// The stale session is gone for good, not soft-deleted
	var count int64
	db.Unscoped().Model(&models.User{}).Where("email = ?", "visiteur_old@siportevent.com").Count(&count)
	assert.EqualValues(t, 0, count)
}
