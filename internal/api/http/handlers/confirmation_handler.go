package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/event-staffing-service/internal/api/dto"
	"github.com/spec-kit/event-staffing-service/internal/domain"
	"github.com/spec-kit/event-staffing-service/internal/service"
)

// ConfirmationHandler is the token action entrypoint. The token is the
// only credential; no session is involved.
type ConfirmationHandler struct {
	confirmation *service.ConfirmationService
}

// NewConfirmationHandler constructs handler.
func NewConfirmationHandler(confirmationService *service.ConfirmationService) *ConfirmationHandler {
	return &ConfirmationHandler{confirmation: confirmationService}
}

// Resolve POST /assignments/confirmation.
func (h *ConfirmationHandler) Resolve(c *fiber.Ctx) error {
	var req dto.ConfirmationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	return h.resolve(c, req.Token, req.Action)
}

// ResolveFromLink GET /assignments/confirmation handles the email links.
func (h *ConfirmationHandler) ResolveFromLink(c *fiber.Ctx) error {
	token := c.Query("token")
	action := domain.ConfirmationAction(strings.ToLower(c.Query("action", string(domain.ActionCheck))))
	return h.resolve(c, token, action)
}

func (h *ConfirmationHandler) resolve(c *fiber.Ctx, token string, action domain.ConfirmationAction) error {
	if strings.TrimSpace(token) == "" {
		return fiber.NewError(http.StatusBadRequest, "token required")
	}
	assignment, err := h.confirmation.Resolve(c.UserContext(), token, action)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ConfirmationResponse{
		EventID:            assignment.EventID,
		StaffID:            assignment.StaffID,
		Role:               assignment.Role,
		ConfirmationStatus: assignment.ConfirmationStatus,
	}})
}
