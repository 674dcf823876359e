package routers

import (
	"telemed-service/internal/app/delivery/http/controllers"
	"telemed-service/internal/app/delivery/http/middlewares"
	"telemed-service/internal/app/models"

	"github.com/go-chi/chi/v5"
)

func attachScheduleRoutes(router chi.Router, m *middlewares.Middlewares, c *controllers.ScheduleController) {
	router.With(m.RequireRoles(models.RoleDoctor)).Post("/slots", c.PublishSlot)
	router.Get("/doctors/{doctorID}/slots", c.ListDoctorSlots)
	router.Get("/slots/{slotID}", c.GetSlot)
	router.With(m.RequireRoles(models.RoleDoctor, models.RoleAdmin)).Delete("/slots/{slotID}", c.DeleteSlot)
}
