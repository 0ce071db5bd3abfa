package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/facturation-pro/internal/application/assistant"
	"github.com/tu-usuario/facturation-pro/internal/application/dto"
)

// AssistantHandler maneja los comandos en lenguaje natural (protegido).
type AssistantHandler struct {
	uc *assistant.UseCase
}

// NewAssistantHandler construye el handler.
func NewAssistantHandler(uc *assistant.UseCase) *AssistantHandler {
	return &AssistantHandler{uc: uc}
}

// Command POST /api/assistant/command
func (h *AssistantHandler) Command(c *fiber.Ctx) error {
	var in dto.CommandRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.uc.Execute(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}
