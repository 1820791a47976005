package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"siports-backend/internal/adapters/persistence/models"
	"siports-backend/internal/config"
	"siports-backend/internal/core/domain"
	"siports-backend/internal/pkg/password"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// One named in-memory database per test, single connection so
	// goroutines in concurrency tests share the same store
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, models.AutoMigrate(db))
	require.NoError(t, config.SeedPackages(db))

	return db
}

func testConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:      "test-secret",
			ExpiryHours: 24,
		},
	}
}

func createUser(t *testing.T, db *gorm.DB, email string, role domain.Role, status domain.Status) *models.User {
	t.Helper()

	hashed, err := password.Hash("password123")
	require.NoError(t, err)

	user := &models.User{
		Email:        email,
		PasswordHash: hashed,
		FirstName:    "Test",
		LastName:     "User",
		Role:         string(role),
		Status:       string(status),
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createAdmin(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return createUser(t, db, "admin@siportevent.com", domain.RoleAdmin, domain.StatusValidated)
}

func assignPackage(t *testing.T, svc *PackageService, userID uint, packageID string) {
	t.Helper()
	_, err := svc.Assign(context.Background(), userID, packageID)
	require.NoError(t, err)
}
