package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/event-staffing-service/internal/api/dto"
	"github.com/spec-kit/event-staffing-service/internal/domain"
	"github.com/spec-kit/event-staffing-service/internal/repository"
	"github.com/spec-kit/event-staffing-service/internal/service"
)

// StaffHandler handles roster CRUD endpoints.
type StaffHandler struct {
	staff *service.StaffService
}

// NewStaffHandler constructs handler.
func NewStaffHandler(staffService *service.StaffService) *StaffHandler {
	return &StaffHandler{staff: staffService}
}

// Create POST /staff.
func (h *StaffHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	member, err := h.staff.CreateStaffMember(c.UserContext(), req.Name, req.Email, req.Roles)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.StaffFromDomain(member)})
}

// Get GET /staff/:id.
func (h *StaffHandler) Get(c *fiber.Ctx) error {
	member, err := h.staff.GetStaffMember(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.StaffFromDomain(member)})
}

// List GET /staff.
func (h *StaffHandler) List(c *fiber.Ctx) error {
	filter := repository.StaffFilter{}
	if role := c.Query("role"); role != "" {
		r := domain.StaffRole(role)
		filter.Role = &r
	}
	if active := c.Query("active"); active != "" {
		if parsed, err := strconv.ParseBool(active); err == nil {
			filter.Active = &parsed
		}
	}
	members, err := h.staff.ListStaffMembers(c.UserContext(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.StaffResponse, 0, len(members))
	for i := range members {
		items = append(items, dto.StaffFromDomain(&members[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Update PUT /staff/:id.
func (h *StaffHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	member, err := h.staff.GetStaffMember(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if req.Name != "" {
		member.Name = req.Name
	}
	if req.Email != "" {
		member.Email = req.Email
	}
	if len(req.Roles) > 0 {
		member.Roles = req.Roles
	}
	if req.Active != nil {
		member.Active = *req.Active
	}
	updated, err := h.staff.UpdateStaffMember(c.UserContext(), member)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.StaffFromDomain(updated)})
}

// Delete DELETE /staff/:id.
func (h *StaffHandler) Delete(c *fiber.Ctx) error {
	if err := h.staff.DeleteStaffMember(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// AddSchedule POST /staff/:id/schedules.
func (h *StaffHandler) AddSchedule(c *fiber.Ctx) error {
	var req dto.CreateScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	schedule, err := h.staff.AddSchedule(c.UserContext(), c.Params("id"), req.DayOfWeek, req.StartTime, req.EndTime, req.Subject)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.ScheduleResponse{
		ID:        schedule.ID,
		DayOfWeek: schedule.DayOfWeek,
		StartTime: schedule.StartTime,
		EndTime:   schedule.EndTime,
		Subject:   schedule.Subject,
	}})
}

// RemoveSchedule DELETE /staff/:id/schedules/:scheduleId.
func (h *StaffHandler) RemoveSchedule(c *fiber.Ctx) error {
	if err := h.staff.RemoveSchedule(c.UserContext(), c.Params("scheduleId")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// AddLeave POST /staff/:id/leaves.
func (h *StaffHandler) AddLeave(c *fiber.Ctx) error {
	var req dto.CreateLeaveRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	leave, err := h.staff.AddLeaveDates(c.UserContext(), c.Params("id"), req.StartDate, req.EndDate)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.LeaveResponse{
		ID:        leave.ID,
		StartDate: leave.StartDate.Format("2006-01-02"),
		EndDate:   leave.EndDate.Format("2006-01-02"),
	}})
}

// RemoveLeave DELETE /staff/:id/leaves/:leaveId.
func (h *StaffHandler) RemoveLeave(c *fiber.Ctx) error {
	if err := h.staff.RemoveLeaveDates(c.UserContext(), c.Params("leaveId")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
