package middlewares

import (
	"telemed-service/internal/app/config"
	"telemed-service/internal/app/contracts"

	"go.uber.org/zap"
)

type Middlewares struct {
	Log             *zap.Logger
	IdentityService contracts.IdentityService
	InternalConfig  *config.InternalConfig
}

func NewMiddlewares(logger *zap.Logger, identityService contracts.IdentityService, internalConfig *config.InternalConfig) *Middlewares {
	return &Middlewares{
		Log:             logger,
		IdentityService: identityService,
		InternalConfig:  internalConfig,
	}
}
