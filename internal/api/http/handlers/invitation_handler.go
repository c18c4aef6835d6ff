package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/event-staffing-service/internal/api/dto"
	"github.com/spec-kit/event-staffing-service/internal/service"
)

// InvitationHandler triggers invitation emails.
type InvitationHandler struct {
	invitations *service.InvitationService
}

// NewInvitationHandler constructs handler.
func NewInvitationHandler(invitationService *service.InvitationService) *InvitationHandler {
	return &InvitationHandler{invitations: invitationService}
}

// Send POST /events/:eventId/staff/:staffId/invite.
func (h *InvitationHandler) Send(c *fiber.Ctx) error {
	assignment, err := h.invitations.Send(c.UserContext(), c.Params("eventId"), c.Params("staffId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.AssignmentFromDomain(assignment)})
}
