package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/event-staffing-service/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health       *handlers.HealthHandler
	Staff        *handlers.StaffHandler
	Events       *handlers.EventsHandler
	Availability *handlers.AvailabilityHandler
	Confirmation *handlers.ConfirmationHandler
	Invitation   *handlers.InvitationHandler
	Sweeps       *handlers.SweepsHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	staff := app.Group("/staff")
	staff.Post("", cfg.Staff.Create)
	staff.Get("", cfg.Staff.List)
	staff.Get("/:id", cfg.Staff.Get)
	staff.Put("/:id", cfg.Staff.Update)
	staff.Delete("/:id", cfg.Staff.Delete)
	staff.Post("/:id/schedules", cfg.Staff.AddSchedule)
	staff.Delete("/:id/schedules/:scheduleId", cfg.Staff.RemoveSchedule)
	staff.Post("/:id/leaves", cfg.Staff.AddLeave)
	staff.Delete("/:id/leaves/:leaveId", cfg.Staff.RemoveLeave)
	staff.Get("/:id/availability", cfg.Availability.CheckStaff)

	eventsGroup := app.Group("/events")
	eventsGroup.Post("", cfg.Events.Create)
	eventsGroup.Get("", cfg.Events.List)
	eventsGroup.Get("/:id", cfg.Events.Get)
	eventsGroup.Put("/:id", cfg.Events.Update)
	eventsGroup.Delete("/:id", cfg.Events.Delete)
	eventsGroup.Post("/:id/staff", cfg.Events.AssignStaff)
	eventsGroup.Get("/:id/staff", cfg.Events.ListAssignments)
	eventsGroup.Delete("/:eventId/staff/:staffId", cfg.Events.RemoveAssignment)
	eventsGroup.Get("/:id/availability", cfg.Availability.ResolveForEvent)
	eventsGroup.Post("/:eventId/staff/:staffId/invite", cfg.Invitation.Send)

	app.Post("/assignments/confirmation", cfg.Confirmation.Resolve)
	app.Get("/assignments/confirmation", cfg.Confirmation.ResolveFromLink)

	admin := app.Group("/admin")
	admin.Post("/sweeps/unconfirmed", cfg.Sweeps.SweepUnconfirmed)
	admin.Post("/sweeps/leaves", cfg.Sweeps.SweepLeaves)
}
