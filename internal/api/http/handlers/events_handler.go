package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/event-staffing-service/internal/api/dto"
	"github.com/spec-kit/event-staffing-service/internal/domain"
	"github.com/spec-kit/event-staffing-service/internal/repository"
	"github.com/spec-kit/event-staffing-service/internal/service"
	apperrors "github.com/spec-kit/event-staffing-service/pkg/util/errorutil"
)

// EventsHandler handles event and assignment CRUD endpoints.
type EventsHandler struct {
	events *service.EventService
}

// NewEventsHandler constructs handler.
func NewEventsHandler(eventService *service.EventService) *EventsHandler {
	return &EventsHandler{events: eventService}
}

// Create POST /events.
func (h *EventsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return apperrors.NewValidationError("invalid date", map[string]any{"date": req.Date})
	}
	event := domain.Event{
		Name:            req.Name,
		Location:        req.Location,
		Date:            date,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		CCSOnly:         req.CCSOnly,
		IgnoreConflicts: req.IgnoreConflicts,
	}
	created, err := h.events.CreateEvent(c.UserContext(), &event)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.EventFromDomain(created, time.Now())})
}

// Get GET /events/:id.
func (h *EventsHandler) Get(c *fiber.Ctx) error {
	event, err := h.events.GetEvent(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.EventFromDomain(event, time.Now())})
}

// List GET /events.
func (h *EventsHandler) List(c *fiber.Ctx) error {
	filter := repository.EventFilter{}
	if from := c.Query("date_from"); from != "" {
		if parsed, err := time.Parse("2006-01-02", from); err == nil {
			filter.DateFrom = &parsed
		}
	}
	if to := c.Query("date_to"); to != "" {
		if parsed, err := time.Parse("2006-01-02", to); err == nil {
			filter.DateTo = &parsed
		}
	}
	events, err := h.events.ListEvents(c.UserContext(), filter)
	if err != nil {
		return err
	}
	now := time.Now()
	items := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		items = append(items, dto.EventFromDomain(&events[i], now))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Update PUT /events/:id.
func (h *EventsHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	event, err := h.events.GetEvent(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if req.Name != "" {
		event.Name = req.Name
	}
	if req.Location != "" {
		event.Location = req.Location
	}
	if req.Date != "" {
		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return apperrors.NewValidationError("invalid date", map[string]any{"date": req.Date})
		}
		event.Date = date
	}
	if req.StartTime != "" {
		event.StartTime = req.StartTime
	}
	if req.EndTime != "" {
		event.EndTime = req.EndTime
	}
	// cancellation is sticky; it can be set but never unset
	if req.Cancelled != nil && *req.Cancelled {
		event.Cancelled = true
	}
	if req.CCSOnly != nil {
		event.CCSOnly = *req.CCSOnly
	}
	if req.IgnoreConflicts != nil {
		event.IgnoreConflicts = *req.IgnoreConflicts
	}
	updated, err := h.events.UpdateEvent(c.UserContext(), event)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.EventFromDomain(updated, time.Now())})
}

// Delete DELETE /events/:id.
func (h *EventsHandler) Delete(c *fiber.Ctx) error {
	if err := h.events.DeleteEvent(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// AssignStaff POST /events/:id/staff.
func (h *EventsHandler) AssignStaff(c *fiber.Ctx) error {
	var req dto.AssignStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	assignment, err := h.events.AssignStaff(c.UserContext(), c.Params("id"), req.StaffID, req.Role)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.AssignmentFromDomain(assignment)})
}

// ListAssignments GET /events/:id/staff.
func (h *EventsHandler) ListAssignments(c *fiber.Ctx) error {
	assignments, err := h.events.ListAssignments(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		items = append(items, dto.AssignmentFromDomain(&assignments[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// RemoveAssignment DELETE /events/:eventId/staff/:staffId.
func (h *EventsHandler) RemoveAssignment(c *fiber.Ctx) error {
	if err := h.events.RemoveAssignment(c.UserContext(), c.Params("eventId"), c.Params("staffId")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
