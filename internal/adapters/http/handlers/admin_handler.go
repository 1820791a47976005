package handlers

import (
	"errors"
	"fmt"
	"time"

	"siports-backend/internal/adapters/http/middleware"
	"siports-backend/internal/adapters/persistence/models"
	"siports-backend/internal/adapters/persistence/repositories"
	"siports-backend/internal/core/domain"
	"siports-backend/internal/core/services"
	"siports-backend/internal/pkg/pagination"
	"siports-backend/internal/pkg/response"
	"siports-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles the admin validation workflow endpoints
type AdminHandler struct {
	validationService *services.ValidationService
	dashboardService  *services.DashboardService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(validationService *services.ValidationService, dashboardService *services.DashboardService) *AdminHandler {
	return &AdminHandler{
		validationService: validationService,
		dashboardService:  dashboardService,
	}
}

// adminError maps workflow errors to HTTP responses
func adminError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrForbidden):
		return response.Forbidden(c, "Accès administrateur requis")
	case errors.Is(err, domain.ErrUserNotFound):
		return response.NotFound(c, "Utilisateur introuvable")
	case errors.Is(err, domain.ErrInvalidTransition):
		return response.Conflict(c, "Ce compte n'est plus en attente de validation")
	case errors.Is(err, domain.ErrInvalidArgument):
		return response.BadRequest(c, "Raison de rejet invalide")
	default:
		return response.InternalServerError(c, "Échec de l'opération")
	}
}

// DashboardStats returns the admin dashboard aggregation
func (h *AdminHandler) DashboardStats(c *fiber.Ctx) error {
	data, err := h.dashboardService.GetAdminDashboard(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Échec du chargement des statistiques")
	}

	return c.JSON(data)
}

// PendingUsers lists the validation queue, oldest registration first
func (h *AdminHandler) PendingUsers(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	users, total, err := h.validationService.ListPending(c.Context(), middleware.UserID(c), params.Offset, params.PerPage)
	if err != nil {
		return adminError(c, err)
	}

	return c.JSON(fiber.Map{
		"users":        toUserResponses(users),
		"total":        total,
		"pages":        pagination.Pages(total, params.PerPage),
		"current_page": params.Page,
	})
}

// Users lists all accounts with optional role/status/search filters
func (h *AdminHandler) Users(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	filter := repositories.UserFilter{
		Role:   c.Query("role"),
		Status: c.Query("status"),
		Search: c.Query("search"),
	}

	users, total, err := h.validationService.ListAll(c.Context(), middleware.UserID(c), filter, params.Offset, params.PerPage)
	if err != nil {
		return adminError(c, err)
	}

	return c.JSON(fiber.Map{
		"users":        toUserResponses(users),
		"total":        total,
		"pages":        pagination.Pages(total, params.PerPage),
		"current_page": params.Page,
	})
}

// Validate approves a pending account
func (h *AdminHandler) Validate(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil || userID < 1 {
		return response.BadRequest(c, "Identifiant utilisateur invalide")
	}

	user, err := h.validationService.Validate(c.Context(), middleware.UserID(c), uint(userID))
	if err != nil {
		return adminError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Compte validé avec succès",
		"user":    user.ToResponse(),
	})
}

// Reject refuses a pending account with a reason code
func (h *AdminHandler) Reject(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil || userID < 1 {
		return response.BadRequest(c, "Identifiant utilisateur invalide")
	}

	var input services.RejectInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	user, err := h.validationService.Reject(c.Context(), middleware.UserID(c), uint(userID), &input)
	if err != nil {
		return adminError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Compte rejeté",
		"user":    user.ToResponse(),
	})
}

// Remind sends a profile completion reminder
func (h *AdminHandler) Remind(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil || userID < 1 {
		return response.BadRequest(c, "Identifiant utilisateur invalide")
	}

	if err := h.validationService.Remind(c.Context(), middleware.UserID(c), uint(userID)); err != nil {
		return adminError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Relance envoyée",
	})
}

// Deactivate disables an account whatever its current status
func (h *AdminHandler) Deactivate(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil || userID < 1 {
		return response.BadRequest(c, "Identifiant utilisateur invalide")
	}

	user, err := h.validationService.Deactivate(c.Context(), middleware.UserID(c), uint(userID))
	if err != nil {
		return adminError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Compte désactivé",
		"user":    user.ToResponse(),
	})
}

// History returns a user's validation audit trail
func (h *AdminHandler) History(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil || userID < 1 {
		return response.BadRequest(c, "Identifiant utilisateur invalide")
	}

	actions, err := h.validationService.History(c.Context(), middleware.UserID(c), uint(userID))
	if err != nil {
		return adminError(c, err)
	}

	return c.JSON(fiber.Map{
		"actions": actions,
	})
}

// Export downloads the filtered user list as CSV
func (h *AdminHandler) Export(c *fiber.Ctx) error {
	filter := repositories.UserFilter{
		Role:   c.Query("role"),
		Status: c.Query("status"),
		Search: c.Query("search"),
	}

	data, err := h.validationService.ExportCSV(c.Context(), middleware.UserID(c), filter)
	if err != nil {
		return adminError(c, err)
	}

	filename := fmt.Sprintf("utilisateurs_%s.csv", time.Now().Format("20060102"))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(data)
}

func toUserResponses(users []*models.User) []*models.UserResponse {
	out := make([]*models.UserResponse, len(users))
	for i, u := range users {
		out[i] = u.ToResponse()
	}
	return out
}
