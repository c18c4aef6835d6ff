package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/event-staffing-service/internal/service"
)

// SweepsHandler triggers the lifecycle sweeps on demand, mirroring the
// scheduled runs.
type SweepsHandler struct {
	sweeper *service.SweeperService
}

// NewSweepsHandler constructs handler.
func NewSweepsHandler(sweeperService *service.SweeperService) *SweepsHandler {
	return &SweepsHandler{sweeper: sweeperService}
}

// SweepUnconfirmed POST /admin/sweeps/unconfirmed.
func (h *SweepsHandler) SweepUnconfirmed(c *fiber.Ctx) error {
	summary, err := h.sweeper.SweepUnconfirmed(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": summary})
}

// SweepLeaves POST /admin/sweeps/leaves.
func (h *SweepsHandler) SweepLeaves(c *fiber.Ctx) error {
	removed, err := h.sweeper.SweepExpiredLeaves(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"removed": removed}})
}
