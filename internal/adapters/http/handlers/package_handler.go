package handlers

import (
	"errors"

	"siports-backend/internal/adapters/http/middleware"
	"siports-backend/internal/core/domain"
	"siports-backend/internal/core/services"
	"siports-backend/internal/pkg/response"
	"siports-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// PackageHandler handles catalog and entitlement endpoints
type PackageHandler struct {
	packageService *services.PackageService
}

// NewPackageHandler creates a new package handler
func NewPackageHandler(packageService *services.PackageService) *PackageHandler {
	return &PackageHandler{packageService: packageService}
}

// listCatalog serves one scope of the public catalog
func (h *PackageHandler) listCatalog(c *fiber.Ctx, scope domain.PackageScope) error {
	packages, err := h.packageService.ListCatalog(c.Context(), scope)
	if err != nil {
		return response.InternalServerError(c, "Échec du chargement des forfaits")
	}

	return c.JSON(fiber.Map{
		"packages": packages,
	})
}

// VisitorPackages lists the visitor catalog
func (h *PackageHandler) VisitorPackages(c *fiber.Ctx) error {
	return h.listCatalog(c, domain.ScopeVisitor)
}

// PartnershipPackages lists the partnership catalog
func (h *PackageHandler) PartnershipPackages(c *fiber.Ctx) error {
	return h.listCatalog(c, domain.ScopePartnership)
}

// ExhibitionPackages lists the exhibition catalog
func (h *PackageHandler) ExhibitionPackages(c *fiber.Ctx) error {
	return h.listCatalog(c, domain.ScopeExhibition)
}

// UpdatePackage assigns a catalog package to the authenticated user
func (h *PackageHandler) UpdatePackage(c *fiber.Ctx) error {
	var input services.UpdatePackageInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	status, err := h.packageService.Assign(c.Context(), middleware.UserID(c), input.PackageID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPackageNotFound):
			return response.NotFound(c, "Forfait introuvable pour votre profil")
		case errors.Is(err, domain.ErrUserNotFound):
			return response.Unauthorized(c, "Invalid access token")
		default:
			return response.InternalServerError(c, "Échec de la mise à jour du forfait")
		}
	}

	return c.JSON(fiber.Map{
		"message": "Forfait mis à jour avec succès",
		"package": status,
	})
}

// PackageStatus returns the authenticated user's entitlement view
func (h *PackageHandler) PackageStatus(c *fiber.Ctx) error {
	status, err := h.packageService.Status(c.Context(), middleware.UserID(c))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return response.Unauthorized(c, "Invalid access token")
		}
		return response.InternalServerError(c, "Échec de la récupération du forfait")
	}

	return c.JSON(status)
}

// BookMeeting consumes one B2B meeting credit
func (h *PackageHandler) BookMeeting(c *fiber.Ctx) error {
	quota, err := h.packageService.BookMeeting(c.Context(), middleware.UserID(c))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoCreditAllowed):
			return response.Forbidden(c, "Votre forfait n'inclut pas de rendez-vous B2B")
		case errors.Is(err, domain.ErrCreditExhausted):
			return response.Forbidden(c, "Quota de rendez-vous B2B atteint pour votre forfait")
		case errors.Is(err, domain.ErrUserNotFound):
			return response.Unauthorized(c, "Invalid access token")
		default:
			return response.InternalServerError(c, "Échec de la réservation")
		}
	}

	return c.JSON(fiber.Map{
		"message":      "Rendez-vous B2B réservé",
		"b2b_meetings": quota,
	})
}
