package routers

import (
	"telemed-service/internal/app/delivery/http/controllers"
	"telemed-service/internal/app/delivery/http/middlewares"
	"telemed-service/internal/app/models"

	"github.com/go-chi/chi/v5"
)

func attachConsultationRoutes(router chi.Router, m *middlewares.Middlewares, c *controllers.ConsultationController) {
	router.With(m.RequireRoles(models.RolePatient)).Post("/book", c.Book)
	router.Get("/history", c.History)
	router.Get("/files/{fileID}/download", c.DownloadFile)

	router.Route("/{consultationID}", func(r chi.Router) {
		r.Get("/", c.Get)
		r.Post("/start", c.Start)
		r.Post("/complete", c.Complete)
		r.Post("/cancel", c.Cancel)
		r.Post("/files", c.UploadFile)
		r.Get("/files", c.ListFiles)
	})
}
