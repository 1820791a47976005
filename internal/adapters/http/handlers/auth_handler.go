package handlers

import (
	"errors"
	"strings"

	"siports-backend/internal/adapters/http/middleware"
	"siports-backend/internal/core/domain"
	"siports-backend/internal/core/services"
	"siports-backend/internal/pkg/response"
	"siports-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
	notifier    *services.NotificationService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, notifier *services.NotificationService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		notifier:    notifier,
	}
}

// Register handles user registration. The account starts in pending
// status and waits for an admin decision.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input services.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input.Email = strings.TrimSpace(input.Email)
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)

	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	user, err := h.authService.Register(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateEmail):
			return response.Conflict(c, "Cet email est déjà enregistré")
		case errors.Is(err, domain.ErrInvalidArgument):
			return response.BadRequest(c, "Type de compte invalide")
		default:
			return response.InternalServerError(c, "Échec de l'inscription")
		}
	}

	go h.notifier.NotifyRegistrationReceived(user.Email, user.FirstName)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user_id": user.ID,
		"message": "Inscription réussie. Votre compte est en attente de validation.",
	})
}

// Login handles user login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input services.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input.Email = strings.TrimSpace(input.Email)

	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	result, err := h.authService.Login(c.Context(), &input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return response.Unauthorized(c, "Email ou mot de passe incorrect")
		}
		return response.InternalServerError(c, "Échec de la connexion")
	}

	return c.JSON(fiber.Map{
		"access_token": result.AccessToken,
		"token_type":   "bearer",
		"user":         result.User.ToSummary(),
	})
}

// VisitorLogin issues an anonymous visitor session
func (h *AuthHandler) VisitorLogin(c *fiber.Ctx) error {
	result, err := h.authService.VisitorSession(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Échec de la création de session")
	}

	return c.JSON(fiber.Map{
		"access_token": result.AccessToken,
		"token_type":   "bearer",
		"user":         result.User.ToSummary(),
	})
}

// Me returns the authenticated user's profile
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.authService.GetUserByID(c.Context(), middleware.UserID(c))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return response.Unauthorized(c, "Invalid access token")
		}
		return response.InternalServerError(c, "Échec de la récupération du profil")
	}

	return c.JSON(fiber.Map{
		"user": user.ToResponse(),
	})
}
