package routers

import (
	"telemed-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

// attachRealtimeRoutes mounts the websocket endpoint. It authenticates inside
// the handshake and must stay outside RequestTimeout.
func attachRealtimeRoutes(router chi.Router, c *controllers.RealtimeController) {
	router.Get("/consultations/{consultationID}", c.Connect)
}
