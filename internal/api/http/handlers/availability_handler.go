package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/event-staffing-service/internal/api/dto"
	"github.com/spec-kit/event-staffing-service/internal/availability"
	"github.com/spec-kit/event-staffing-service/internal/service"
	apperrors "github.com/spec-kit/event-staffing-service/pkg/util/errorutil"
)

// AvailabilityHandler exposes the two resolver call shapes.
type AvailabilityHandler struct {
	availability *service.AvailabilityService
}

// NewAvailabilityHandler constructs handler.
func NewAvailabilityHandler(availabilityService *service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availabilityService}
}

// ResolveForEvent GET /events/:id/availability.
func (h *AvailabilityHandler) ResolveForEvent(c *fiber.Ctx) error {
	ignoreConflicts := parseBoolQuery(c, "ignore_conflicts")
	ccsOnly := parseBoolQuery(c, "ccs_only")

	result, err := h.availability.ResolveForEvent(c.UserContext(), c.Params("id"), ignoreConflicts, ccsOnly)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.AvailabilityFromResult(result)})
}

// CheckStaff GET /staff/:id/availability.
func (h *AvailabilityHandler) CheckStaff(c *fiber.Ctx) error {
	req := availability.Request{
		StartTime: c.Query("start_time"),
		EndTime:   c.Query("end_time"),
	}
	if dateStr := c.Query("date"); dateStr != "" {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return apperrors.NewValidationError("invalid date", map[string]any{"date": dateStr})
		}
		req.Date = date
	}
	if v := parseBoolQuery(c, "ignore_conflicts"); v != nil {
		req.IgnoreConflicts = *v
	}
	if v := parseBoolQuery(c, "ccs_only"); v != nil {
		req.CCSOnly = *v
	}

	entry, err := h.availability.CheckStaff(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.AvailabilityEntryFromDomain(entry)})
}

func parseBoolQuery(c *fiber.Ctx, key string) *bool {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &parsed
}
