package controllers

import (
	"net/http"
	"telemed-service/internal/app/contracts"
	"telemed-service/internal/pkg/constvars"
	"telemed-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type NotificationController struct {
	Log                 *zap.Logger
	NotificationUsecase contracts.NotificationUsecase
}

func NewNotificationController(logger *zap.Logger, notificationUsecase contracts.NotificationUsecase) *NotificationController {
	return &NotificationController{
		Log:                 logger,
		NotificationUsecase: notificationUsecase,
	}
}

func (ctrl *NotificationController) List(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	unreadOnly, err := utils.ParseBoolQueryParam(r, constvars.QueryParamUnreadOnly)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	pagination, err := utils.BuildPaginationRequest(r, constvars.DefaultTransactionListLimit)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	notifications, err := ctrl.NotificationUsecase.List(r.Context(), identity.UserID, unreadOnly, pagination)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.GetNotificationsSuccessMessage, buildPagination(pagination, len(notifications)), notifications)
}

func (ctrl *NotificationController) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	err = ctrl.NotificationUsecase.MarkAsRead(r.Context(), chi.URLParam(r, constvars.URLParamNotificationID), identity.UserID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ReadNotificationSuccessMessage, nil)
}
