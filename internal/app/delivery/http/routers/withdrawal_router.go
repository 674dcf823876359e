package routers

import (
	"telemed-service/internal/app/delivery/http/controllers"
	"telemed-service/internal/app/delivery/http/middlewares"
	"telemed-service/internal/app/models"

	"github.com/go-chi/chi/v5"
)

func attachWithdrawalRoutes(router chi.Router, m *middlewares.Middlewares, c *controllers.WithdrawalController) {
	router.Use(m.RequireRoles(models.RoleDoctor))

	router.Get("/earnings", c.GetEarnings)
	router.Post("/", c.Request)
	router.Get("/", c.History)
	router.Post("/{withdrawalID}/cancel", c.Cancel)
}
