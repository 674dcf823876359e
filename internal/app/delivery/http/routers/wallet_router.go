package routers

import (
	"telemed-service/internal/app/delivery/http/controllers"
	"telemed-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachWalletRoutes(router chi.Router, m *middlewares.Middlewares, c *controllers.WalletController) {
	router.Get("/balance", c.GetBalance)
	router.Get("/transactions", c.GetTransactions)
}
