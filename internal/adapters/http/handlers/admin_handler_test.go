package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"siports-backend/internal/adapters/http/routes"
	"siports-backend/internal/adapters/persistence/models"
	"siports-backend/internal/config"
	"siports-backend/internal/core/domain"
	"siports-backend/internal/pkg/jwt"
	"siports-backend/internal/pkg/password"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestApp(t *testing.T) (*fiber.App, *gorm.DB, *config.Config) {
	t.Helper()

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

	cfg := &config.Config{
		AppMode: "dev",
		JWT:     config.JWTConfig{Secret: "test-secret", ExpiryHours: 24},
	}
	config.AppConfig = cfg

	app := fiber.New()
	routes.Setup(app, db, cfg)
	return app, db, cfg
}

func seedUser(t *testing.T, db *gorm.DB, email string, role domain.Role, status domain.Status) *models.User {
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

func bearerFor(t *testing.T, cfg *config.Config, userID uint) string {
	t.Helper()
	token, err := jwt.GenerateAccessToken(userID, cfg.JWT.Secret, cfg.JWT.ExpiryHours)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestAdminRoutesRejectMissingToken(t *testing.T) {
	app, _, _ := setupTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/users/pending", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminRoutesRejectNonAdmin(t *testing.T) {
	app, db, cfg := setupTestApp(t)
	visitor := seedUser(t, db, "v@x.com", domain.RoleVisitor, domain.StatusValidated)
	target := seedUser(t, db, "p@x.com", domain.RoleVisitor, domain.StatusPending)

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/admin/users/%d/validate", target.ID), nil)
	req.Header.Set("Authorization", bearerFor(t, cfg, visitor.ID))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// The forbidden call must not have mutated the target
	var fresh models.User
	require.NoError(t, db.First(&fresh, target.ID).Error)
	assert.Equal(t, string(domain.StatusPending), fresh.Status)
}

func TestAdminValidateEndpoint(t *testing.T) {
	app, db, cfg := setupTestApp(t)
	admin := seedUser(t, db, "admin@siportevent.com", domain.RoleAdmin, domain.StatusValidated)
	target := seedUser(t, db, "p@x.com", domain.RoleVisitor, domain.StatusPending)

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/admin/users/%d/validate", target.ID), nil)
	req.Header.Set("Authorization", bearerFor(t, cfg, admin.ID))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Message string `json:"message"`
		User    struct {
			Status string `json:"status"`
		} `json:"user"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "validated", body.User.Status)

	// A second validate hits the exclusivity guard
	req = httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/admin/users/%d/validate", target.ID), nil)
	req.Header.Set("Authorization", bearerFor(t, cfg, admin.ID))
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestAdminRejectEndpointValidatesReason(t *testing.T) {
	app, db, cfg := setupTestApp(t)
	admin := seedUser(t, db, "admin@siportevent.com", domain.RoleAdmin, domain.StatusValidated)
	target := seedUser(t, db, "p@x.com", domain.RoleVisitor, domain.StatusPending)

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/admin/users/%d/reject", target.ID),
		strings.NewReader(`{"raison":"because"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerFor(t, cfg, admin.ID))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	req = httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/admin/users/%d/reject", target.ID),
		strings.NewReader(`{"raison":"missing_document","commentaire":"Kbis manquant"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerFor(t, cfg, admin.ID))
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPublicCatalogNeedsNoAuth(t *testing.T) {
	app, _, _ := setupTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/visitor-packages", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Packages []struct {
			ID          string `json:"id"`
			B2BMeetings int    `json:"b2b_meetings"`
		} `json:"packages"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Packages, 4)
	assert.Equal(t, "free", body.Packages[0].ID)
}
