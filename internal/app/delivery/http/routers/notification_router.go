package routers

import (
	"telemed-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachNotificationRoutes(router chi.Router, c *controllers.NotificationController) {
	router.Get("/", c.List)
	router.Post("/{notificationID}/read", c.MarkAsRead)
}
