package routers

import (
	"telemed-service/internal/app/delivery/http/controllers"
	"telemed-service/internal/app/delivery/http/middlewares"
	"telemed-service/internal/app/models"

	"github.com/go-chi/chi/v5"
)

func attachMedicalRecordRoutes(router chi.Router, m *middlewares.Middlewares, c *controllers.MedicalRecordController) {
	router.With(m.RequireRoles(models.RoleDoctor)).Post("/", c.Create)
	router.Get("/my", c.ListMine)
	router.Get("/patients/{patientID}", c.ListByPatient)
	router.Get("/{recordID}", c.Get)
	router.With(m.RequireRoles(models.RoleDoctor)).Put("/{recordID}", c.Update)
}
