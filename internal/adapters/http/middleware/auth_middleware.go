package middleware

import (
	"errors"
	"strings"

	"siports-backend/internal/adapters/persistence/repositories"
	"siports-backend/internal/config"
	"siports-backend/internal/core/domain"
	"siports-backend/internal/pkg/jwt"
	"siports-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware creates authentication middleware. The token only
// carries the user ID; anything role-related is re-read from the
// database by the guards that need it.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var accessToken string

		authHeader := c.Get("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			accessToken = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		c.Locals("userID", claims.UserID)

		return c.Next()
	}
}

// AdminRequired resolves the caller's role from the database and rejects
// non-admins. DB resolution means a role change takes effect immediately,
// without waiting for old tokens to expire.
func AdminRequired(userRepo repositories.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userID").(uint)
		if !ok {
			return response.Unauthorized(c, "Access token required")
		}

		user, err := userRepo.GetByID(c.Context(), userID)
		if err != nil {
			return response.Forbidden(c, "Accès administrateur requis")
		}

		if user.Role != string(domain.RoleAdmin) {
			return response.Forbidden(c, "Accès administrateur requis")
		}

		return c.Next()
	}
}

// UserID extracts the authenticated user's ID from the request context
func UserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals("userID").(uint); ok {
		return id
	}
	return 0
}
