package routers

import (
	"telemed-service/internal/app/delivery/http/middlewares"
	"telemed-service/internal/app/models"

	"github.com/go-chi/chi/v5"
)

func attachAdminRoutes(router chi.Router, m *middlewares.Middlewares, c Controllers) {
	router.Use(m.RequireRoles(models.RoleAdmin))

	router.Post("/wallets/top-up", c.Wallet.AdminTopUp)
	router.Get("/transactions", c.Wallet.AdminListTransactions)

	router.Post("/consultations", c.Consultation.AdminCreate)
	router.Patch("/consultations/{consultationID}/status", c.Consultation.AdminUpdateStatus)

	router.Post("/doctors/{doctorID}/slots", c.Schedule.AdminPublishSlot)

	router.Post("/withdrawals/{withdrawalID}/approve", c.Withdrawal.AdminApprove)
	router.Post("/withdrawals/{withdrawalID}/complete", c.Withdrawal.AdminComplete)
	router.Post("/withdrawals/{withdrawalID}/reject", c.Withdrawal.AdminReject)
}
