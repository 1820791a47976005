package handlers

import (
	"siports-backend/internal/core/services"
	"siports-backend/internal/pkg/response"
	"siports-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// ChatHandler handles the assistant widget endpoint
type ChatHandler struct {
	chatbotService *services.ChatbotService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatbotService *services.ChatbotService) *ChatHandler {
	return &ChatHandler{chatbotService: chatbotService}
}

// Chat forwards a message to the assistant service
func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	var input services.ChatInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	return c.JSON(h.chatbotService.Ask(c.Context(), &input))
}
