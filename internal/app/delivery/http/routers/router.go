package routers

import (
	"fmt"
	"telemed-service/internal/app/config"
	"telemed-service/internal/app/delivery/http/controllers"
	"telemed-service/internal/app/delivery/http/middlewares"
	"telemed-service/internal/pkg/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

type Controllers struct {
	Health        *controllers.HealthController
	Wallet        *controllers.WalletController
	Schedule      *controllers.ScheduleController
	Consultation  *controllers.ConsultationController
	MedicalRecord *controllers.MedicalRecordController
	Withdrawal    *controllers.WithdrawalController
	Notification  *controllers.NotificationController
	Realtime      *controllers.RealtimeController
}

func SetupRoutes(
	router *chi.Mux,
	logger *zap.Logger,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	c Controllers,
) {
	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))
	router.Use(middlewares.CreateRateLimiter())
	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging(logger))
	router.Use(middlewares.ErrorHandler)

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Get("/health", c.Health.Check)
			r.Handle("/metrics", metrics.MetricsHandler())

			r.Route("/ws", func(r chi.Router) {
				attachRealtimeRoutes(r, c.Realtime)
			})

			r.Group(func(r chi.Router) {
				r.Use(middlewares.RequestTimeout)
				r.Use(middlewares.Authenticate)

				r.Route("/wallet", func(r chi.Router) {
					attachWalletRoutes(r, middlewares, c.Wallet)
				})

				r.Route("/schedule", func(r chi.Router) {
					attachScheduleRoutes(r, middlewares, c.Schedule)
				})

				r.Route("/consultations", func(r chi.Router) {
					attachConsultationRoutes(r, middlewares, c.Consultation)
				})

				r.Route("/medical-records", func(r chi.Router) {
					attachMedicalRecordRoutes(r, middlewares, c.MedicalRecord)
				})

				r.Route("/withdrawals", func(r chi.Router) {
					attachWithdrawalRoutes(r, middlewares, c.Withdrawal)
				})

				r.Route("/notifications", func(r chi.Router) {
					attachNotificationRoutes(r, c.Notification)
				})

				r.Route("/admin", func(r chi.Router) {
					attachAdminRoutes(r, middlewares, c)
				})
			})
		})
	})
}
