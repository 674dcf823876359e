package controllers

import (
	"net/http"
	"telemed-service/internal/pkg/constvars"
	"telemed-service/internal/pkg/utils"
)

type HealthController struct {
	Version string
}

func NewHealthController(version string) *HealthController {
	return &HealthController{Version: version}
}

func (ctrl *HealthController) Check(w http.ResponseWriter, r *http.Request) {
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.HealthCheckSuccessMessage, map[string]string{
		"status":  constvars.ResponseSuccess,
		"version": ctrl.Version,
	})
}
